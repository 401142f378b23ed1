package app

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/batiku-id/batiku/internal/generation_service/domain"
)

const defaultVariationPrompt = "batik motif variation of the reference image"

// variationInputMaxPx bounds the reference image sent to the model.
const variationInputMaxPx = 1024

// ImageModel is the generative backend port.
type ImageModel interface {
	GenerateImages(ctx context.Context, prompt string, count int) ([][]byte, error)
	GenerateVariations(ctx context.Context, reference []byte, prompt string, count int) ([][]byte, error)
}

// Uploader publishes candidate images and knows their public URLs.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error
	PublicURL(key string) string
}

// GenerationService invokes the image model and fans the returned
// candidates out to object storage. Uploads are independent and run
// concurrently; the candidate list keeps the model's 1..N order.
type GenerationService struct {
	model          ImageModel
	uploader       Uploader
	logger         *slog.Logger
	generateCount  int
	variationCount int
	now            func() time.Time
}

func NewGenerationService(model ImageModel, uploader Uploader, generateCount, variationCount int, logger *slog.Logger) *GenerationService {
	if generateCount <= 0 {
		generateCount = 3
	}
	if variationCount <= 0 {
		variationCount = 4
	}
	return &GenerationService{
		model:          model,
		uploader:       uploader,
		logger:         logger.With("service_component", "GenerationService"),
		generateCount:  generateCount,
		variationCount: variationCount,
		now:            time.Now,
	}
}

// Generate runs one text-to-image job.
func (s *GenerationService) Generate(ctx context.Context, req domain.GenerateRequest) (result *domain.GenerationResult, err error) {
	start := s.now()
	defer func() { s.observe("text", start, err) }()

	prompt := composePrompt(req)
	s.logger.InfoContext(ctx, "starting generation", "family", req.Family, "style", req.Style, "palette", req.Palette)

	images, err := s.model.GenerateImages(ctx, prompt, s.generateCount)
	if err != nil {
		s.logger.ErrorContext(ctx, "model invocation failed", "error", err)
		return nil, err
	}

	keyPrefix := fmt.Sprintf("generated/batik_%d", s.now().UnixMilli())
	return s.uploadCandidates(ctx, images, keyPrefix+"_candidate")
}

// Variation runs one image-variation job. The reference image is scaled
// down to fit within 1024px (never enlarged) before being embedded in the
// model payload.
func (s *GenerationService) Variation(ctx context.Context, reference []byte, prompt string) (result *domain.GenerationResult, err error) {
	start := s.now()
	defer func() { s.observe("variation", start, err) }()

	if prompt == "" {
		prompt = defaultVariationPrompt
	}

	scaled, err := downscaleReference(reference)
	if err != nil {
		s.logger.ErrorContext(ctx, "reference image not usable", "error", err)
		return nil, err
	}

	images, err := s.model.GenerateVariations(ctx, scaled, prompt, s.variationCount)
	if err != nil {
		s.logger.ErrorContext(ctx, "model invocation failed", "error", err)
		return nil, err
	}

	keyPrefix := fmt.Sprintf("generated/variation_%d", s.now().UnixMilli())
	return s.uploadCandidates(ctx, images, keyPrefix)
}

// uploadCandidates uploads every image concurrently under
// <keyPrefix>_<n>.png and returns the candidates in original order.
func (s *GenerationService) uploadCandidates(ctx context.Context, images [][]byte, keyPrefix string) (*domain.GenerationResult, error) {
	candidates := make([]domain.Candidate, len(images))

	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			key := fmt.Sprintf("%s_%d.png", keyPrefix, i+1)
			if err := s.uploader.Upload(gctx, key, img, "image/png", nil); err != nil {
				return err
			}
			candidatesUploadedCounter.Inc()
			candidates[i] = domain.Candidate{ImageURL: s.uploader.PublicURL(key), Idx: i + 1}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "candidate upload failed", "error", err)
		return nil, fmt.Errorf("uploading candidates: %w", err)
	}

	jobID := "job_" + uuid.NewString()
	s.logger.InfoContext(ctx, "generation finished", "job_id", jobID, "candidates", len(candidates))
	return &domain.GenerationResult{JobID: jobID, Candidates: candidates}, nil
}

func (s *GenerationService) observe(mode string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	generationJobsProcessedCounter.WithLabelValues(mode, status).Inc()
	generationJobDurationHist.WithLabelValues(mode).Observe(s.now().Sub(start).Seconds())
}

// downscaleReference re-encodes the reference as PNG, scaling it down to
// fit variationInputMaxPx when larger. imaging.Fit never enlarges.
func downscaleReference(reference []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(reference))
	if err != nil {
		return nil, fmt.Errorf("decoding reference image: %w", err)
	}
	fitted := imaging.Fit(img, variationInputMaxPx, variationInputMaxPx, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, fitted); err != nil {
		return nil, fmt.Errorf("encoding reference image: %w", err)
	}
	return buf.Bytes(), nil
}
