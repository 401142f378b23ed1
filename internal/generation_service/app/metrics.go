package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationJobsProcessedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "generation",
			Name:      "jobs_processed_total",
			Help:      "Total number of generation jobs processed.",
		},
		[]string{"mode", "status"}, // mode="text"|"variation"
	)

	generationJobDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "generation",
			Name:      "job_processing_duration_seconds",
			Help:      "Duration of generation jobs including candidate uploads.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	candidatesUploadedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "generation",
			Name:      "candidates_uploaded_total",
			Help:      "Total number of candidate images uploaded.",
		},
	)
)
