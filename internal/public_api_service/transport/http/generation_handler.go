package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	generationdomain "github.com/batiku-id/batiku/internal/generation_service/domain"
)

// maxUploadBytes bounds the multipart reference image for the variation
// route.
const maxUploadBytes = 32 << 20

// Generator is the application-service port the handler drives.
type Generator interface {
	Generate(ctx context.Context, req generationdomain.GenerateRequest) (*generationdomain.GenerationResult, error)
	Variation(ctx context.Context, reference []byte, prompt string) (*generationdomain.GenerationResult, error)
}

type GenerationHandler struct {
	// generator is nil when the object-storage bucket is not configured.
	generator Generator
	logger    *slog.Logger
	validate  *validator.Validate
}

func NewGenerationHandler(generator Generator, logger *slog.Logger, validate *validator.Validate) *GenerationHandler {
	return &GenerationHandler{
		generator: generator,
		logger:    logger.With("handler", "generation"),
		validate:  validate,
	}
}

func (h *GenerationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-batik", h.handleGenerateBatik)
	r.Post("/generate-variation", h.handleGenerateVariation)
}

func (h *GenerationHandler) handleGenerateBatik(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	if h.generator == nil {
		logger.ErrorContext(ctx, "generation requested but object storage is not configured")
		h.jsonError(w, http.StatusInternalServerError, "Server not configured", "object storage bucket is not set")
		return
	}

	var dto GenerateBatikRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.WarnContext(ctx, "invalid generation request body", "error", err)
		h.jsonError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, dto); err != nil {
		logger.WarnContext(ctx, "generation request failed validation", "error", err)
		h.jsonError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	result, err := h.generator.Generate(ctx, generationdomain.GenerateRequest{
		Prompt:  dto.Prompt,
		Family:  dto.Family,
		Style:   dto.Style,
		Palette: dto.Palette,
	})
	if err != nil {
		logger.ErrorContext(ctx, "generation failed", "error", err)
		h.jsonError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	h.writeResult(w, result)
}

func (h *GenerationHandler) handleGenerateVariation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	if h.generator == nil {
		logger.ErrorContext(ctx, "variation requested but object storage is not configured")
		h.jsonError(w, http.StatusInternalServerError, "Server not configured", "object storage bucket is not set")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		h.jsonError(w, http.StatusBadRequest, "Invalid multipart form", err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		logger.WarnContext(ctx, "variation request missing image file")
		h.jsonError(w, http.StatusBadRequest, "image file is required", "")
		return
	}
	defer file.Close()

	reference, err := io.ReadAll(file)
	if err != nil {
		logger.ErrorContext(ctx, "could not read uploaded image", "error", err)
		h.jsonError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	logger.InfoContext(ctx, "variation job received", "file_name", header.Filename, "bytes", len(reference))

	result, err := h.generator.Variation(ctx, reference, r.FormValue("prompt"))
	if err != nil {
		logger.ErrorContext(ctx, "variation failed", "error", err)
		h.jsonError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	h.writeResult(w, result)
}

func (h *GenerationHandler) writeResult(w http.ResponseWriter, result *generationdomain.GenerationResult) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GenerationResponseDTO{
		JobID:      result.JobID,
		Candidates: result.Candidates,
	})
}

func (h *GenerationHandler) jsonError(w http.ResponseWriter, statusCode int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(GenericErrorResponse{Error: message, Details: details})
}
