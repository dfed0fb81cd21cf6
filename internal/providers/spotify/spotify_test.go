package spotify

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youreview/youreview/internal/models"
)

func TestSearchByTitle(t *testing.T) {
	var tokenCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("id:secret"))
		assert.Equal(t, expected, r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "track", r.URL.Query().Get("type"))
		assert.Equal(t, "pink moon", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":{"items":[{
			"id": "track-1",
			"name": "Pink Moon",
			"artists": [{"name": "Nick Drake"}],
			"album": {
				"name": "Pink Moon",
				"images": [{"url": "https://img.example.com/a.jpg"}],
				"release_date": "1972"
			},
			"external_urls": {"spotify": "https://open.spotify.com/track/track-1"},
			"preview_url": "https://p.example.com/t.mp3"
		}]}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := New("id", "secret", &http.Client{Timeout: time.Second}).
		WithBaseURL(srv.URL, srv.URL+"/token")

	results, err := client.SearchByTitle(context.Background(), "pink moon")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, models.ProviderSpotify, r.Provider)
	assert.Equal(t, "track-1", r.ProviderID)
	assert.Equal(t, "Pink Moon", r.Title)
	assert.Equal(t, []string{"Nick Drake"}, r.Creators)
	assert.Equal(t, "https://img.example.com/a.jpg", r.ImageURL)
	assert.Equal(t, "https://open.spotify.com/track/track-1", r.LinkURL)
	assert.Equal(t, "1972-01-01", r.ReleaseDate)
	assert.Equal(t, "Pink Moon", r.Extra["album"])
	assert.Equal(t, "https://p.example.com/t.mp3", r.Extra["preview_url"])

	// The cached token serves subsequent searches without a second exchange.
	_, err = client.SearchByTitle(context.Background(), "pink moon")
	require.NoError(t, err)
	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestTokenRefreshAfterExpiry(t *testing.T) {
	var tokenCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		// Shorter than the refresh skew, so the next call re-exchanges.
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":1}`))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := New("id", "secret", &http.Client{Timeout: time.Second}).
		WithBaseURL(srv.URL, srv.URL+"/token")

	_, err := client.SearchByTitle(context.Background(), "a")
	require.NoError(t, err)
	_, err = client.SearchByTitle(context.Background(), "b")
	require.NoError(t, err)

	assert.Equal(t, int32(2), tokenCalls.Load())
}

func TestAvailable(t *testing.T) {
	httpClient := &http.Client{Timeout: time.Second}
	assert.True(t, New("id", "secret", httpClient).Available())
	assert.False(t, New("", "secret", httpClient).Available())
	assert.False(t, New("id", "", httpClient).Available())
}
