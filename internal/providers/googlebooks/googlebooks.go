// Package googlebooks searches the Google Books volumes API.
package googlebooks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

const maxResults = 12

// Client implements search.Provider for Google Books volume search.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func New(apiKey string, httpClient *http.Client) *Client {
	return &Client{apiKey: apiKey, baseURL: defaultBaseURL, httpClient: httpClient}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() models.Provider     { return models.ProviderGoogleBooks }
func (c *Client) Category() models.Category { return models.CategoryBook }
func (c *Client) Available() bool           { return c.apiKey != "" }

type searchResponse struct {
	Items []volume `json:"items"`
}

type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Publisher     string   `json:"publisher"`
		PublishedDate string   `json:"publishedDate"`
		Description   string   `json:"description"`
		PageCount     int      `json:"pageCount"`
		ImageLinks    struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
		CanonicalVolumeLink string `json:"canonicalVolumeLink"`
		InfoLink            string `json:"infoLink"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
	} `json:"volumeInfo"`
}

func (c *Client) SearchByTitle(ctx context.Context, query string) ([]search.UnifiedResult, error) {
	endpoint := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d&printType=books&key=%s",
		c.baseURL, url.QueryEscape(query), maxResults, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &search.ProviderError{Provider: models.ProviderGoogleBooks, Err: err}
	}

	var resp searchResponse
	if err := search.DoJSON(c.httpClient, req, models.ProviderGoogleBooks, &resp); err != nil {
		return nil, err
	}

	results := make([]search.UnifiedResult, 0, len(resp.Items))
	for _, v := range resp.Items {
		info := v.VolumeInfo
		if info.Title == "" {
			continue
		}

		r := search.UnifiedResult{
			Provider:    models.ProviderGoogleBooks,
			ProviderID:  v.ID,
			Title:       info.Title,
			Creators:    info.Authors,
			Description: info.Description,
			LinkURL:     info.CanonicalVolumeLink,
			ReleaseDate: search.NormalizeReleaseDate(info.PublishedDate),
			Extra:       map[string]any{},
		}
		img := info.ImageLinks.Thumbnail
		if img == "" {
			img = info.ImageLinks.SmallThumbnail
		}
		if img != "" {
			r.ImageURL = search.SecureImageURL(img)
		}
		if r.LinkURL == "" {
			r.LinkURL = info.InfoLink
		}
		if info.Publisher != "" {
			r.Extra["publisher"] = info.Publisher
		}
		if info.PageCount > 0 {
			r.Extra["pageCount"] = info.PageCount
		}
		if len(info.IndustryIdentifiers) > 0 {
			ids := make([]map[string]string, 0, len(info.IndustryIdentifiers))
			for _, id := range info.IndustryIdentifiers {
				ids = append(ids, map[string]string{"type": id.Type, "identifier": id.Identifier})
			}
			r.Extra["industryIdentifiers"] = ids
		}
		results = append(results, r)
	}
	return results, nil
}
