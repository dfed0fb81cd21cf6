package search

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/youreview/youreview/internal/models"
)

const userAgent = "youreview-bot"

// NewHTTPClient returns the client adapters use for upstream calls, with a
// bounded timeout so one slow provider cannot stall a fan-out indefinitely.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// DoJSON executes req and decodes the JSON response body into target.
// Failures are wrapped as *ProviderError attributed to provider so the
// aggregator and retry layer can classify them; the request URL (which may
// carry credentials in query parameters) is never included.
func DoJSON(client *http.Client, req *http.Request, provider models.Provider, target any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return &ProviderError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{Provider: provider, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &ProviderError{Provider: provider, Err: err}
	}
	return nil
}
