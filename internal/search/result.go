// Package search provides unified catalog search across third-party
// providers: provider fan-out, result merging and deduplication, short-TTL
// response caching, and retry handling for transient upstream failures.
package search

import (
	"strings"

	"github.com/youreview/youreview/internal/models"
)

// UnifiedResult is the common shape all provider adapters normalize into
type UnifiedResult struct {
	Provider    models.Provider `json:"provider"`
	ProviderID  string          `json:"providerId"`
	Title       string          `json:"title"`
	Creators    []string        `json:"creators,omitempty"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	LinkURL     string          `json:"linkUrl,omitempty"`
	ReleaseDate string          `json:"releaseDate,omitempty"` // YYYY-MM-DD
	Extra       map[string]any  `json:"extra,omitempty"`
}

// dedupKey builds the case-insensitive (title, creators) identity used when
// merging results from multiple providers.
func dedupKey(r UnifiedResult) string {
	return strings.ToLower(r.Title) + "|" + strings.ToLower(strings.Join(r.Creators, ", "))
}

// Deduplicate removes results whose (title, creators) identity repeats,
// keeping the first occurrence and preserving input order.
func Deduplicate(results []UnifiedResult) []UnifiedResult {
	seen := make(map[string]bool, len(results))
	out := make([]UnifiedResult, 0, len(results))
	for _, r := range results {
		key := dedupKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
