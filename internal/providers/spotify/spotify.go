// Package spotify searches the Spotify catalog for tracks using the
// client-credentials flow.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
)

const defaultBaseURL = "https://api.spotify.com/v1"

const maxResults = 12

// Client implements search.Provider for Spotify track search.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokens       *tokenSource
	httpClient   *http.Client
}

func New(clientID, clientSecret string, httpClient *http.Client) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		tokens:       newTokenSource(clientID, clientSecret, httpClient),
		httpClient:   httpClient,
	}
}

// WithBaseURL overrides the API and token endpoints. Used by tests.
func (c *Client) WithBaseURL(apiURL, tokenURL string) *Client {
	c.baseURL = apiURL
	c.tokens.tokenURL = tokenURL
	return c
}

func (c *Client) Name() models.Provider     { return models.ProviderSpotify }
func (c *Client) Category() models.Category { return models.CategoryMusic }

func (c *Client) Available() bool {
	return c.clientID != "" && c.clientSecret != ""
}

type searchResponse struct {
	Tracks struct {
		Items []track `json:"items"`
	} `json:"tracks"`
}

type track struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
		ReleaseDate string `json:"release_date"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	PreviewURL *string `json:"preview_url"`
}

func (c *Client) SearchByTitle(ctx context.Context, query string) ([]search.UnifiedResult, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/search?type=track&limit=%d&q=%s", c.baseURL, maxResults, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &search.ProviderError{Provider: models.ProviderSpotify, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var resp searchResponse
	if err := search.DoJSON(c.httpClient, req, models.ProviderSpotify, &resp); err != nil {
		return nil, err
	}

	results := make([]search.UnifiedResult, 0, len(resp.Tracks.Items))
	for _, t := range resp.Tracks.Items {
		creators := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			creators = append(creators, a.Name)
		}

		r := search.UnifiedResult{
			Provider:    models.ProviderSpotify,
			ProviderID:  t.ID,
			Title:       t.Name,
			Creators:    creators,
			LinkURL:     t.ExternalURLs.Spotify,
			ReleaseDate: search.NormalizeReleaseDate(t.Album.ReleaseDate),
			Extra:       map[string]any{"album": t.Album.Name},
		}
		if len(t.Album.Images) > 0 {
			r.ImageURL = t.Album.Images[0].URL
		}
		if t.PreviewURL != nil {
			r.Extra["preview_url"] = *t.PreviewURL
		}
		results = append(results, r)
	}
	return results, nil
}
