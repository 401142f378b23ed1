package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	exportdomain "github.com/batiku-id/batiku/internal/export_service/domain"
	historydomain "github.com/batiku-id/batiku/internal/history_service/domain"
)

const exportSuccessMessage = "PNG ready. SVG processing in background."

// ExportPipeline is the application-service port the handler drives.
type ExportPipeline interface {
	Export(ctx context.Context, req exportdomain.ExportRequest) (*exportdomain.ExportResult, error)
}

type ExportHandler struct {
	// pipeline is nil when the object-storage bucket is not configured;
	// every request then fails fast with 500 before any work.
	pipeline ExportPipeline
	history  historydomain.Store
	logger   *slog.Logger
	validate *validator.Validate
}

func NewExportHandler(pipeline ExportPipeline, history historydomain.Store, logger *slog.Logger, validate *validator.Validate) *ExportHandler {
	return &ExportHandler{
		pipeline: pipeline,
		history:  history,
		logger:   logger.With("handler", "export"),
		validate: validate,
	}
}

func (h *ExportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/export", h.handleExport)
}

func (h *ExportHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	if h.pipeline == nil {
		logger.ErrorContext(ctx, "export requested but object storage is not configured")
		h.exportError(w, http.StatusInternalServerError, "Server not configured", "object storage bucket is not set")
		return
	}

	var dto ExportRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.WarnContext(ctx, "invalid export request body", "error", err)
		h.exportError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	defer r.Body.Close()

	if dto.ImageURL == "" {
		logger.WarnContext(ctx, "export request missing imageUrl")
		h.exportError(w, http.StatusBadRequest, "imageUrl is required", "")
		return
	}

	if err := h.validate.StructCtx(ctx, dto); err != nil {
		logger.WarnContext(ctx, "export request failed validation", "error", err)
		h.exportError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	req := exportdomain.ExportRequest{
		ImageURL:          dto.ImageURL,
		InlineImageBase64: dto.ProcessedImageBase64,
		Settings:          dto.Settings,
		RapportCm:         dto.RapportCm,
		Fit:               exportdomain.FitPolicy(dto.Fit),
		Format:            exportdomain.OutputFormat(dto.Format),
		OwnerID:           dto.UserID,
		DesignID:          dto.DesignID,
	}

	result, err := h.pipeline.Export(ctx, req)
	if err != nil {
		h.recordHistory(ctx, logger, req, nil)
		message := "Internal Server Error"
		if errors.Is(err, exportdomain.ErrSourceFetch) {
			message = "Failed to fetch source image"
		}
		logger.ErrorContext(ctx, "export failed", "image_url", dto.ImageURL, "error", err)
		h.exportError(w, http.StatusInternalServerError, message, err.Error())
		return
	}

	h.recordHistory(ctx, logger, req, result)

	resp := ExportResponseDTO{
		Success:     true,
		DownloadURL: result.DownloadURL,
		ZipKey:      result.ZipKey,
		Metadata: ExportMetadataDTO{
			FileName:   result.FileName,
			FileSize:   result.FileSize,
			RapportCm:  result.Metadata.RapportCm,
			Resolution: result.Metadata.Resolution,
			DPI:        result.Metadata.DPI,
		},
		Message: exportSuccessMessage,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// recordHistory appends an audit entry for the attempt, success or not.
// Best-effort: a store failure is logged and the response is unaffected.
func (h *ExportHandler) recordHistory(ctx context.Context, logger *slog.Logger, req exportdomain.ExportRequest, result *exportdomain.ExportResult) {
	if h.history == nil {
		return
	}
	item := historydomain.Item{
		ImageURL:       req.ImageURL,
		EditorSettings: req.Settings,
		RapportCm:      req.RapportCm,
		Format:         req.Format,
		Status:         historydomain.StatusFailed,
	}
	if result != nil {
		item.Status = historydomain.StatusSuccess
		item.DownloadURL = result.DownloadURL
		item.FileName = result.FileName
		item.FileSize = result.FileSize
		item.RapportCm = result.Metadata.RapportCm
		item.Format = result.Metadata.Format
	}
	if _, err := h.history.Save(ctx, item); err != nil {
		logger.WarnContext(ctx, "could not record export history entry", "error", err)
	}
}

func (h *ExportHandler) exportError(w http.ResponseWriter, statusCode int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ExportErrorResponseDTO{Success: false, Error: message, Details: details})
}
