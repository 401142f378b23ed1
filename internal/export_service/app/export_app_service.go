package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/batiku-id/batiku/internal/export_service/domain"
)

const defaultBaseName = "batiku-export"

// Uploader publishes a single object and knows its public URL. Satisfied
// by the platform storage client.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error
	PublicURL(key string) string
}

// Notifier sends a fire-and-forget message to the vectorization queue.
type Notifier interface {
	Notify(ctx context.Context, payload any) error
}

// ExportService runs the export pipeline: fetch, normalize, package,
// publish, respond. Stages execute strictly in order and the first failure
// aborts the request; only the queue notification is best-effort.
type ExportService struct {
	uploader   Uploader
	notifier   Notifier // nil when no vectorize queue is configured
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

func NewExportService(uploader Uploader, notifier Notifier, httpClient *http.Client, logger *slog.Logger) *ExportService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ExportService{
		uploader:   uploader,
		notifier:   notifier,
		httpClient: httpClient,
		logger:     logger.With("service_component", "ExportService"),
		now:        time.Now,
	}
}

// Export processes one request end to end and returns the download URL and
// descriptive metadata.
func (s *ExportService) Export(ctx context.Context, req domain.ExportRequest) (result *domain.ExportResult, err error) {
	start := s.now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
		}
		exportJobsProcessedCounter.WithLabelValues(status).Inc()
		exportJobDurationHist.Observe(s.now().Sub(start).Seconds())
	}()

	s.logger.InfoContext(ctx, "starting export", "image_url", req.ImageURL, "rapport_cm", req.RapportCm, "fit", string(req.Fit))

	source, err := s.fetchSource(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch stage failed", "image_url", req.ImageURL, "error", err)
		return nil, err
	}

	targetPx := domain.TargetPixels(req.RapportCm)
	processed, err := normalize(source, targetPx, req.Fit)
	if err != nil {
		s.logger.ErrorContext(ctx, "normalize stage failed", "error", err)
		return nil, err
	}

	rapportCm := req.RapportCm
	if rapportCm != domain.RapportCmSmall {
		rapportCm = domain.RapportCmDefault
	}
	format := req.Format
	if format == "" {
		format = domain.FormatPNG
	}
	createdAt := s.now().UTC()
	meta := domain.ExportMetadata{
		SourceImage:    req.ImageURL,
		CreatedAt:      createdAt,
		EditorSettings: req.Settings,
		RapportCm:      rapportCm,
		Resolution:     fmt.Sprintf("%dx%d", targetPx, targetPx),
		DPI:            domain.ExportDPI,
		Format:         format,
		Version:        "1.0",
		OwnerID:        req.OwnerID,
		DesignID:       req.DesignID,
	}

	baseName := deriveBaseName(req.ImageURL)
	archive, err := buildArchive(baseName, processed, meta)
	if err != nil {
		s.logger.ErrorContext(ctx, "package stage failed", "error", err)
		return nil, fmt.Errorf("packaging export archive: %w", err)
	}
	exportArchiveBytesHist.Observe(float64(len(archive)))

	zipKey := fmt.Sprintf("exports/%s-%s-%s.zip",
		baseName,
		createdAt.Format("20060102T150405Z"),
		uuid.NewString()[:8])

	objectMeta := map[string]string{
		"rapport-cm": fmt.Sprintf("%d", rapportCm),
		"created-at": createdAt.Format(time.RFC3339),
	}
	if req.OwnerID != "" {
		objectMeta["owner-id"] = req.OwnerID
	}
	if req.DesignID != "" {
		objectMeta["design-id"] = req.DesignID
	}

	if err := s.uploader.Upload(ctx, zipKey, archive, "application/zip", objectMeta); err != nil {
		s.logger.ErrorContext(ctx, "publish stage failed", "zip_key", zipKey, "error", err)
		return nil, err
	}

	s.queueVectorizeJob(ctx, domain.VectorizeJob{
		ImageURL: req.ImageURL,
		ZipKey:   zipKey,
		BaseName: baseName,
		Settings: req.Settings,
	})

	downloadURL := s.uploader.PublicURL(zipKey)
	s.logger.InfoContext(ctx, "export finished", "zip_key", zipKey, "download_url", downloadURL, "bytes", len(archive))

	return &domain.ExportResult{
		DownloadURL: downloadURL,
		ZipKey:      zipKey,
		FileName:    path.Base(zipKey),
		FileSize:    int64(len(archive)),
		Metadata:    meta,
	}, nil
}

// queueVectorizeJob notifies the downstream tracer. Failures are logged
// and swallowed: the export must not depend on queue availability.
func (s *ExportService) queueVectorizeJob(ctx context.Context, job domain.VectorizeJob) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, job); err != nil {
		vectorizeJobsQueuedCounter.WithLabelValues("failed").Inc()
		s.logger.WarnContext(ctx, "vectorize job could not be queued", "zip_key", job.ZipKey, "error", err)
		return
	}
	vectorizeJobsQueuedCounter.WithLabelValues("success").Inc()
	s.logger.InfoContext(ctx, "vectorize job queued", "zip_key", job.ZipKey)
}

// deriveBaseName takes the trailing path segment of the source URL with
// its extension stripped, falling back to a generic name.
func deriveBaseName(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return defaultBaseName
	}
	name := path.Base(u.Path)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		return defaultBaseName
	}
	return name
}
