package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"

	historydomain "github.com/batiku-id/batiku/internal/history_service/domain"
)

// HistoryHandler exposes the export-history store: list, delete one,
// clear. Entries are written by the export handler.
type HistoryHandler struct {
	store  historydomain.Store
	logger *slog.Logger
}

func NewHistoryHandler(store historydomain.Store, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		store:  store,
		logger: logger.With("handler", "history"),
	}
}

func (h *HistoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/history", h.handleList)
	r.Delete("/history", h.handleClear)
	r.Delete("/history/{historyID}", h.handleDelete)
}

func (h *HistoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	items, err := h.store.GetAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "could not read history", "error", err)
		h.jsonError(w, http.StatusInternalServerError, "Could not read export history", err.Error())
		return
	}
	if items == nil {
		items = []historydomain.Item{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *HistoryHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	historyID := chi.URLParam(r, "historyID")
	if err := h.store.DeleteByID(ctx, historyID); err != nil {
		logger.ErrorContext(ctx, "could not delete history entry", "history_id", historyID, "error", err)
		h.jsonError(w, http.StatusInternalServerError, "Could not delete export history entry", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	if err := h.store.Clear(ctx); err != nil {
		logger.ErrorContext(ctx, "could not clear history", "error", err)
		h.jsonError(w, http.StatusInternalServerError, "Could not clear export history", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) jsonError(w http.ResponseWriter, statusCode int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(GenericErrorResponse{Error: message, Details: details})
}
