package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/youreview/youreview/internal/db"
	"github.com/youreview/youreview/internal/list"
	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/profile"
	"github.com/youreview/youreview/internal/recap"
	"github.com/youreview/youreview/internal/search"
)

// setupTestDB creates a migrated database in a temp directory
func setupTestDB(t *testing.T) (*db.DB, *db.Repositories) {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(sqlDB, "file://../../migrations"))

	return database, db.NewRepositories(database)
}

// asUser returns a middleware that fixes the authenticated caller, standing
// in for token verification in handler tests.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

// testEnv bundles one migrated database with its services so multiple
// routers, authenticated as different users, can share state.
type testEnv struct {
	database *db.DB
	repos    *db.Repositories
	lists    *list.Service
	profiles *profile.Service
	recaps   *recap.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database, repos := setupTestDB(t)
	return &testEnv{
		database: database,
		repos:    repos,
		lists:    list.NewService(database, repos),
		profiles: profile.NewService(repos),
		recaps:   recap.NewService(repos),
	}
}

// routerFor builds a router over the env's services, authenticated as userID
// ("" for anonymous).
func (env *testEnv) routerFor(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	apiGroup := router.Group("/api")

	SetupHealthRoutes(apiGroup, env.database)
	SetupUserRoutes(apiGroup, env.profiles, env.lists, env.recaps)

	authed := apiGroup.Group("")
	authed.Use(asUser(userID))
	SetupItemRoutes(authed, env.lists)
	SetupListRoutes(authed, env.lists)
	SetupProfileRoutes(authed, env.profiles)
	SetupAvailabilityRoutes(authed, env.profiles)

	return router
}

// setupTestRouter is the single-user shorthand most tests use
func setupTestRouter(t *testing.T, userID string) (*gin.Engine, *db.Repositories) {
	t.Helper()
	env := newTestEnv(t)
	return env.routerFor(userID), env.repos
}

// doJSON runs a JSON request against the router and decodes the response
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func saveItemBody(providerID string) SaveItemRequest {
	return SaveItemRequest{
		Year:     2025,
		Category: "movie",
		Media: search.UnifiedResult{
			Provider:   models.ProviderTMDB,
			ProviderID: providerID,
			Title:      "Movie " + providerID,
			Creators:   []string{"Director"},
			ImageURL:   "https://img.example.com/" + providerID + ".jpg",
		},
	}
}
