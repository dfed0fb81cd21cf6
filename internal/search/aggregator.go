package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/models"
	"golang.org/x/sync/singleflight"
)

// combinedKey marks cache entries produced by a multi-provider fan-out
const combinedKey = "combined"

// Service aggregates catalog search across the registered providers
type Service struct {
	providers map[models.Provider]Provider
	// resolution order per category; also fixes merge order during fan-out
	defaults map[models.Category][]models.Provider
	cache    Cache[[]UnifiedResult]
	cacheTTL time.Duration
	retry    RetryConfig
	sf       singleflight.Group
}

// ServiceOption customizes a search service
type ServiceOption func(*Service)

// WithRetryConfig overrides the retry policy for provider calls
func WithRetryConfig(cfg RetryConfig) ServiceOption {
	return func(s *Service) {
		s.retry = cfg
	}
}

// NewService creates a search service over the given providers. Registration
// order within a category decides fan-out merge order. cache may be nil to
// disable response caching.
func NewService(providers []Provider, cache Cache[[]UnifiedResult], cacheTTL time.Duration, opts ...ServiceOption) *Service {
	registry := make(map[models.Provider]Provider, len(providers))
	defaults := make(map[models.Category][]models.Provider)
	for _, p := range providers {
		if p == nil {
			continue
		}
		name := p.Name()
		if _, exists := registry[name]; exists {
			continue
		}
		registry[name] = p
		defaults[p.Category()] = append(defaults[p.Category()], name)
	}

	svc := &Service{
		providers: registry,
		defaults:  defaults,
		cache:     cache,
		cacheTTL:  cacheTTL,
		retry:     DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Search runs a title query against the providers for category. An explicit
// providerOverride restricts the search to that provider; otherwise movie and
// music use their canonical provider and book fans out to every configured
// book catalog, merging and deduplicating the results.
func (s *Service) Search(ctx context.Context, category models.Category, query, providerOverride string) ([]UnifiedResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingQuery
	}
	if !models.ValidCategory(string(category)) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	selected, err := s.resolveProviders(category, providerOverride)
	if err != nil {
		return nil, err
	}

	providerKey := combinedKey
	if len(selected) == 1 {
		providerKey = string(selected[0].Name())
	}
	cacheKey := fmt.Sprintf("%s:%s:%s", category, providerKey, strings.ToLower(query))

	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	// Collapse concurrent identical queries into one upstream round trip.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		results, err := s.fanOut(ctx, selected, query)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(cacheKey, results, s.cacheTTL)
		}
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]UnifiedResult), nil
}

// Providers lists the registered provider names for a category, available or not
func (s *Service) Providers(category models.Category) []models.Provider {
	return append([]models.Provider(nil), s.defaults[category]...)
}

// resolveProviders picks the providers a query will hit. A missing credential
// fails the request only when the provider was explicitly requested or no
// alternative remains.
func (s *Service) resolveProviders(category models.Category, override string) ([]Provider, error) {
	if override != "" {
		p, ok := s.providers[models.Provider(override)]
		if !ok || p.Category() != category {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, override)
		}
		if !p.Available() {
			return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, override)
		}
		return []Provider{p}, nil
	}

	names := s.defaults[category]
	var selected []Provider
	for _, name := range names {
		p := s.providers[name]
		if p.Available() {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no provider available for category %s", ErrProviderNotConfigured, category)
	}

	// Movie and music have one canonical default; book keeps the full set.
	if category != models.CategoryBook {
		selected = selected[:1]
	}
	return selected, nil
}

// fanOut queries the selected providers concurrently and merges their
// results in registration order. One provider failing does not fail the
// request as long as another succeeds.
func (s *Service) fanOut(ctx context.Context, selected []Provider, query string) ([]UnifiedResult, error) {
	if len(selected) == 1 {
		return s.searchOne(ctx, selected[0], query)
	}

	perProvider := make([][]UnifiedResult, len(selected))
	errs := make([]error, len(selected))

	var wg sync.WaitGroup
	for i, p := range selected {
		wg.Add(1)
		go func(index int, provider Provider) {
			defer wg.Done()
			perProvider[index], errs[index] = s.searchOne(ctx, provider, query)
		}(i, p)
	}
	wg.Wait()

	var merged []UnifiedResult
	var firstErr error
	succeeded := false
	for i := range selected {
		if errs[i] != nil {
			if firstErr == nil {
				firstErr = errs[i]
			}
			logger.Log.Warn().
				Err(errs[i]).
				Str("provider", string(selected[i].Name())).
				Msg("Provider failed during search fan-out")
			continue
		}
		succeeded = true
		merged = append(merged, perProvider[i]...)
	}

	if !succeeded {
		return nil, firstErr
	}
	return Deduplicate(merged), nil
}

// searchOne queries a single provider with bounded retries for transient failures
func (s *Service) searchOne(ctx context.Context, p Provider, query string) ([]UnifiedResult, error) {
	var results []UnifiedResult
	err := RetryWithBackoff(ctx, s.retry, func() error {
		var err error
		results, err = p.SearchByTitle(ctx, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
