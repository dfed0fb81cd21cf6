package search

import (
	"context"

	"github.com/youreview/youreview/internal/models"
)

// Provider is the single capability every catalog adapter implements: map a
// title query to the unified result shape. Adding a catalog means adding an
// implementation, not branching in the aggregator.
type Provider interface {
	// Name returns the provider's wire identifier (e.g. "tmdb")
	Name() models.Provider

	// Category returns the catalog category this provider serves
	Category() models.Category

	// Available reports whether the provider's credentials are configured
	Available() bool

	// SearchByTitle queries the upstream catalog and normalizes its response
	SearchByTitle(ctx context.Context, query string) ([]UnifiedResult, error)
}
