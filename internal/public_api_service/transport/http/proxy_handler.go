package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
)

// ProxyHandler streams remote images back to the browser with permissive
// CORS headers, so canvas processing can read pixels from the public
// bucket.
type ProxyHandler struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewProxyHandler(httpClient *http.Client, logger *slog.Logger) *ProxyHandler {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ProxyHandler{
		httpClient: httpClient,
		logger:     logger.With("handler", "proxy"),
	}
}

func (h *ProxyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/proxy-image", h.handleProxyImage)
}

func (h *ProxyHandler) handleProxyImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		http.Error(w, "Missing url parameter", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		logger.WarnContext(ctx, "invalid proxy url", "url", imageURL, "error", err)
		http.Error(w, "Failed to fetch image", http.StatusInternalServerError)
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "proxy fetch failed", "url", imageURL, "error", err)
		http.Error(w, "Failed to fetch image", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.WarnContext(ctx, "proxy fetch returned non-2xx", "url", imageURL, "status", resp.StatusCode)
		http.Error(w, "Failed to fetch image", http.StatusInternalServerError)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are already sent; nothing to do but log.
		logger.WarnContext(ctx, "proxy stream interrupted", "url", imageURL, "error", err)
	}
}
