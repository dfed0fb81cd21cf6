package search

import (
	"errors"
	"fmt"

	"github.com/youreview/youreview/internal/models"
)

// Custom search service errors
var (
	// ErrMissingQuery indicates the search query was empty
	ErrMissingQuery = errors.New("search query is required")

	// ErrUnknownCategory indicates the category is not one of movie/music/book
	ErrUnknownCategory = errors.New("unknown search category")

	// ErrUnknownProvider indicates the provider override names no registered provider
	ErrUnknownProvider = errors.New("unknown search provider")

	// ErrProviderNotConfigured indicates a required provider has no credentials.
	// This is a deployment problem, distinct from a transient upstream failure.
	ErrProviderNotConfigured = errors.New("search provider is not configured")
)

// ProviderError indicates an upstream request failure (rate limit, 5xx,
// timeout). It carries enough detail to distinguish "try again later" from a
// misconfiguration, without exposing provider credentials.
type ProviderError struct {
	Provider   models.Provider
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s search failed: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s search failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderNotConfigured checks if the error is a missing-credentials error
func IsProviderNotConfigured(err error) bool {
	return errors.Is(err, ErrProviderNotConfigured)
}

// IsUpstreamFailure checks if the error is a transient upstream failure
func IsUpstreamFailure(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
