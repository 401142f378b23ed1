package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportJobsProcessedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "export",
			Name:      "jobs_processed_total",
			Help:      "Total number of export requests processed.",
		},
		[]string{"status"}, // "success" or "failed"
	)

	exportJobDurationHist = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "export",
			Name:      "job_processing_duration_seconds",
			Help:      "Duration of the full export pipeline.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	exportArchiveBytesHist = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "export",
			Name:      "archive_size_bytes",
			Help:      "Size of produced export archives.",
			Buckets:   prometheus.ExponentialBuckets(256*1024, 2, 8),
		},
	)

	vectorizeJobsQueuedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "export",
			Name:      "vectorize_jobs_queued_total",
			Help:      "Total number of vectorize jobs sent to the queue.",
		},
		[]string{"status"},
	)
)
