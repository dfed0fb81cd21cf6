// Package tmdb adapts The Movie Database search API to the unified result shape.
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Client searches the TMDB movie catalog
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// New creates a TMDB client. An empty token leaves the provider unavailable.
func New(token string, httpClient *http.Client) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// WithBaseURL points the client at a different API root. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Name returns the provider's wire identifier
func (c *Client) Name() models.Provider { return models.ProviderTMDB }

// Category returns the catalog category this provider serves
func (c *Client) Category() models.Category { return models.CategoryMovie }

// Available reports whether the API token is configured
func (c *Client) Available() bool { return c.token != "" }

type searchResponse struct {
	Results []struct {
		ID            int      `json:"id"`
		Title         string   `json:"title"`
		OriginalTitle string   `json:"original_title"`
		Overview      string   `json:"overview"`
		PosterPath    *string  `json:"poster_path"`
		ReleaseDate   string   `json:"release_date"`
		VoteAverage   *float64 `json:"vote_average"`
		Popularity    *float64 `json:"popularity"`
	} `json:"results"`
}

// SearchByTitle queries TMDB movie search and normalizes the response
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]search.UnifiedResult, error) {
	if !c.Available() {
		return nil, fmt.Errorf("%w: %s", search.ErrProviderNotConfigured, c.Name())
	}

	endpoint := fmt.Sprintf("%s/search/movie?query=%s&include_adult=false",
		c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tmdb request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	var resp searchResponse
	if err := search.DoJSON(c.httpClient, req, c.Name(), &resp); err != nil {
		return nil, err
	}

	results := make([]search.UnifiedResult, 0, len(resp.Results))
	for _, m := range resp.Results {
		title := m.Title
		if title == "" {
			title = m.OriginalTitle
		}
		if title == "" {
			title = "Untitled"
		}

		r := search.UnifiedResult{
			Provider:    c.Name(),
			ProviderID:  fmt.Sprintf("%d", m.ID),
			Title:       title,
			Description: m.Overview,
			LinkURL:     fmt.Sprintf("https://www.themoviedb.org/movie/%d", m.ID),
			ReleaseDate: search.NormalizeReleaseDate(m.ReleaseDate),
		}
		if m.PosterPath != nil && *m.PosterPath != "" {
			r.ImageURL = "https://image.tmdb.org/t/p/w500" + *m.PosterPath
		}
		extra := map[string]any{}
		if m.VoteAverage != nil {
			extra["vote_average"] = *m.VoteAverage
		}
		if m.Popularity != nil {
			extra["popularity"] = *m.Popularity
		}
		if len(extra) > 0 {
			r.Extra = extra
		}
		results = append(results, r)
	}
	return results, nil
}
