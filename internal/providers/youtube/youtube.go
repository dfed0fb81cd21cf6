// Package youtube adapts the YouTube Data API video search to the unified result shape.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

const maxResults = 12

// Client searches YouTube videos
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a YouTube client. An empty API key leaves the provider unavailable.
func New(apiKey string, httpClient *http.Client) *Client {
	return &Client{
		apiKey:     apiKey,
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
func (c *Client) Name() models.Provider { return models.ProviderYouTube }

// Category returns the catalog category this provider serves
func (c *Client) Category() models.Category { return models.CategoryMusic }

// Available reports whether the API key is configured
func (c *Client) Available() bool { return c.apiKey != "" }

type thumbnail struct {
	URL string `json:"url"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			ChannelID    string `json:"channelId"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High    *thumbnail `json:"high"`
				Medium  *thumbnail `json:"medium"`
				Default *thumbnail `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchByTitle queries YouTube video search and normalizes the response
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]search.UnifiedResult, error) {
	if !c.Available() {
		return nil, fmt.Errorf("%w: %s", search.ErrProviderNotConfigured, c.Name())
	}

	endpoint := fmt.Sprintf("%s/search?part=snippet&type=video&maxResults=%d&q=%s&key=%s",
		c.baseURL, maxResults, url.QueryEscape(query), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build youtube request: %w", err)
	}

	var resp searchResponse
	if err := search.DoJSON(c.httpClient, req, c.Name(), &resp); err != nil {
		return nil, err
	}

	results := make([]search.UnifiedResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		videoID := item.ID.VideoID
		if videoID == "" {
			continue
		}
		sn := item.Snippet

		title := sn.Title
		if title == "" {
			title = "Untitled"
		}

		r := search.UnifiedResult{
			Provider:    c.Name(),
			ProviderID:  videoID,
			Title:       title,
			Description: sn.Description,
			LinkURL:     "https://www.youtube.com/watch?v=" + videoID,
		}
		if sn.ChannelTitle != "" {
			r.Creators = []string{sn.ChannelTitle}
		}
		switch {
		case sn.Thumbnails.High != nil:
			r.ImageURL = sn.Thumbnails.High.URL
		case sn.Thumbnails.Medium != nil:
			r.ImageURL = sn.Thumbnails.Medium.URL
		case sn.Thumbnails.Default != nil:
			r.ImageURL = sn.Thumbnails.Default.URL
		}
		if len(sn.PublishedAt) >= 10 {
			r.ReleaseDate = sn.PublishedAt[:10]
		}
		if sn.ChannelID != "" {
			r.Extra = map[string]any{"channelId": sn.ChannelID}
		}
		results = append(results, r)
	}
	return results, nil
}
