package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
	"golang.org/x/sync/singleflight"
)

const defaultTokenURL = "https://accounts.spotify.com/api/token"

// expirySkew refreshes tokens slightly before their deadline so an in-flight
// search never races token expiry.
const expirySkew = 5 * time.Second

// tokenSource exchanges client credentials for short-lived access tokens and
// caches the current token until it expires.
type tokenSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	sf        singleflight.Group
}

func newTokenSource(clientID, clientSecret string, httpClient *http.Client) *tokenSource {
	return &tokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultTokenURL,
		httpClient:   httpClient,
	}
}

// Token returns a valid access token, refreshing it when the cached one has
// expired. Concurrent refreshes collapse into a single upstream exchange.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	if ts.token != "" && time.Now().Add(expirySkew).Before(ts.expiresAt) {
		token := ts.token
		ts.mu.Unlock()
		return token, nil
	}
	ts.mu.Unlock()

	v, err, _ := ts.sf.Do("token", func() (interface{}, error) {
		return ts.exchange(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (ts *tokenSource) exchange(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &search.ProviderError{Provider: models.ProviderSpotify, Err: err}
	}
	basic := base64.StdEncoding.EncodeToString([]byte(ts.clientID + ":" + ts.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", &search.ProviderError{Provider: models.ProviderSpotify, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &search.ProviderError{Provider: models.ProviderSpotify, StatusCode: resp.StatusCode}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &search.ProviderError{Provider: models.ProviderSpotify, Err: err}
	}

	ts.mu.Lock()
	ts.token = tr.AccessToken
	ts.expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	ts.mu.Unlock()

	return tr.AccessToken, nil
}
