package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// httpClient is shared by all adapters. Per-call deadlines come from the
// registry's context, so the client itself carries no timeout.
var httpClient = &http.Client{}

const maxResponseBytes = 1 << 20

// postJSON sends a JSON payload and decodes the JSON response into out.
// Returns the HTTP status code; any transport or decode problem comes back
// as an error for the adapter to normalize.
func postJSON(ctx context.Context, url string, headers map[string]string, payload any, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read provider response: %w", err)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode provider response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
