package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/batiku-id/batiku/internal/export_service/domain"
)

// fetchSource resolves the request's source reference to raw image bytes.
// An inline base64 payload takes precedence over the URL and never touches
// the network; otherwise a single GET is issued with the client's timeout.
// No retries: a transient failure fails the export.
func (s *ExportService) fetchSource(ctx context.Context, req domain.ExportRequest) ([]byte, error) {
	if req.InlineImageBase64 != "" {
		return decodeInlineImage(req.InlineImageBase64)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.ImageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", domain.ErrSourceFetch, req.ImageURL, err)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", domain.ErrSourceFetch, resp.StatusCode, req.ImageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrSourceFetch, err)
	}
	return body, nil
}

// decodeInlineImage strips an optional data-URI prefix and base64-decodes
// the payload.
func decodeInlineImage(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding inline image payload: %w", err)
	}
	return data, nil
}
