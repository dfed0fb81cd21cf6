// Package naverbooks searches the Naver book search API. Naver returns titles
// and descriptions with embedded highlighting markup, which is stripped before
// results leave this package.
package naverbooks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
)

const defaultBaseURL = "https://openapi.naver.com/v1/search"

const maxResults = 12

// Client implements search.Provider for Naver book search.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
}

func New(clientID, clientSecret string, httpClient *http.Client) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		httpClient:   httpClient,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() models.Provider     { return models.ProviderNaverBooks }
func (c *Client) Category() models.Category { return models.CategoryBook }

func (c *Client) Available() bool {
	return c.clientID != "" && c.clientSecret != ""
}

type searchResponse struct {
	Items []book `json:"items"`
}

type book struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	PubDate     string `json:"pubdate"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
}

func (c *Client) SearchByTitle(ctx context.Context, query string) ([]search.UnifiedResult, error) {
	endpoint := fmt.Sprintf("%s/book.json?query=%s&display=%d", c.baseURL, url.QueryEscape(query), maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &search.ProviderError{Provider: models.ProviderNaverBooks, Err: err}
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	var resp searchResponse
	if err := search.DoJSON(c.httpClient, req, models.ProviderNaverBooks, &resp); err != nil {
		return nil, err
	}

	results := make([]search.UnifiedResult, 0, len(resp.Items))
	for _, b := range resp.Items {
		title := search.StripHTML(b.Title)
		if title == "" {
			continue
		}

		r := search.UnifiedResult{
			Provider:    models.ProviderNaverBooks,
			ProviderID:  identity(b, title),
			Title:       title,
			Creators:    splitAuthors(b.Author),
			Description: search.StripHTML(b.Description),
			ImageURL:    search.SecureImageURL(b.Image),
			LinkURL:     b.Link,
			ReleaseDate: search.CompactDate(b.PubDate),
			Extra:       map[string]any{},
		}
		if b.Publisher != "" {
			r.Extra["publisher"] = b.Publisher
		}
		if b.ISBN != "" {
			r.Extra["isbn"] = b.ISBN
		}
		results = append(results, r)
	}
	return results, nil
}

// identity picks the most stable identifier available: ISBN when present,
// falling back to the catalog link and finally the stripped title.
func identity(b book, title string) string {
	if b.ISBN != "" {
		return b.ISBN
	}
	if b.Link != "" {
		return b.Link
	}
	return title
}

// splitAuthors breaks Naver's author field, which joins multiple authors with
// a caret or pipe, into individual names.
func splitAuthors(raw string) []string {
	raw = search.StripHTML(raw)
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '^' || r == '|'
	})
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}
