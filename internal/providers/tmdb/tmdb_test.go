package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New("test-token", &http.Client{Timeout: time.Second}).WithBaseURL(srv.URL)
	return srv, client
}

func TestSearchByTitle(t *testing.T) {
	t.Run("Normalizes a movie result", func(t *testing.T) {
		_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/movie", r.URL.Path)
			assert.Equal(t, "dune", r.URL.Query().Get("query"))
			assert.Equal(t, "false", r.URL.Query().Get("include_adult"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"results":[{
				"id": 438631,
				"title": "Dune",
				"overview": "Paul Atreides leads nomadic tribes.",
				"poster_path": "/poster.jpg",
				"release_date": "2021-09",
				"vote_average": 7.8
			}]}`))
		})

		results, err := client.SearchByTitle(context.Background(), "dune")
		require.NoError(t, err)
		require.Len(t, results, 1)

		r := results[0]
		assert.Equal(t, models.ProviderTMDB, r.Provider)
		assert.Equal(t, "438631", r.ProviderID)
		assert.Equal(t, "Dune", r.Title)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", r.ImageURL)
		assert.Equal(t, "https://www.themoviedb.org/movie/438631", r.LinkURL)
		assert.Equal(t, "2021-09-01", r.ReleaseDate)
		assert.Equal(t, 7.8, r.Extra["vote_average"])
	})

	t.Run("Falls back to original title", func(t *testing.T) {
		_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[{"id": 1, "original_title": "Oldboy"}]}`))
		})

		results, err := client.SearchByTitle(context.Background(), "oldboy")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Oldboy", results[0].Title)
		assert.Empty(t, results[0].ImageURL)
	})

	t.Run("Upstream failure becomes a provider error", func(t *testing.T) {
		_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.SearchByTitle(context.Background(), "dune")
		var pe *search.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, models.ProviderTMDB, pe.Provider)
		assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
	})

	t.Run("Missing token fails as not configured", func(t *testing.T) {
		client := New("", &http.Client{Timeout: time.Second})
		assert.False(t, client.Available())

		_, err := client.SearchByTitle(context.Background(), "dune")
		assert.True(t, search.IsProviderNotConfigured(err))
	})
}
