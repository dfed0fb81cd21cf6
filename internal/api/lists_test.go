package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetListEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t, "user-1")

	t.Run("Missing list reads as empty board", func(t *testing.T) {
		var resp ListResponse
		w := doJSON(t, router, http.MethodGet, "/api/lists?year=2025&category=movie", nil, &resp)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, resp.ID)
		assert.Empty(t, resp.Items)
		assert.Equal(t, 2025, resp.Year)
	})

	t.Run("Returns items rank ordered", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			w := doJSON(t, router, http.MethodPost, "/api/items", saveItemBody(fmt.Sprintf("m%d", i)), nil)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		var resp ListResponse
		w := doJSON(t, router, http.MethodGet, "/api/lists?year=2025&category=movie", nil, &resp)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, 3, resp.ItemCount)
		require.Len(t, resp.Items, 3)
		for i, item := range resp.Items {
			assert.Equal(t, i+1, item.Rank)
		}
	})

	t.Run("Rejects missing year", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/lists?category=movie", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Rejects unknown category", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/lists?year=2025&category=podcast", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCountEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t, "user-1")

	for i := 1; i <= 4; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/items", saveItemBody(fmt.Sprintf("m%d", i)), nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var resp CountResponse
	w := doJSON(t, router, http.MethodGet, "/api/lists/count?year=2025&category=movie", nil, &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4), resp.Count)
}

func TestReorderEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t, "user-1")

	items := make([]ItemResponse, 3)
	for i := range items {
		w := doJSON(t, router, http.MethodPost, "/api/items", saveItemBody(fmt.Sprintf("m%d", i+1)), &items[i])
		require.Equal(t, http.StatusCreated, w.Code)
	}
	listID := items[0].ListID

	t.Run("Applies a swap", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/lists/reorder", ReorderRequest{
			ListID: listID,
			Entries: []ReorderEntryUpdate{
				{ID: items[0].ID, Rank: 2},
				{ID: items[1].ID, Rank: 1},
			},
		}, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		var resp ListResponse
		w = doJSON(t, router, http.MethodGet, "/api/lists?year=2025&category=movie", nil, &resp)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Items, 3)
		assert.Equal(t, items[1].ID, resp.Items[0].ID)
		assert.Equal(t, items[0].ID, resp.Items[1].ID)
	})

	t.Run("Duplicate ranks rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/lists/reorder", ReorderRequest{
			ListID: listID,
			Entries: []ReorderEntryUpdate{
				{ID: items[0].ID, Rank: 1},
				{ID: items[1].ID, Rank: 1},
			},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown list is forbidden", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/lists/reorder", ReorderRequest{
			ListID:  uuid.NewString(),
			Entries: []ReorderEntryUpdate{{ID: items[0].ID, Rank: 1}},
		}, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Empty entries rejected by binding", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/lists/reorder", ReorderRequest{
			ListID: listID,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVisibilityEndpoint(t *testing.T) {
	env := newTestEnv(t)
	router := env.routerFor("user-1")

	w := doJSON(t, router, http.MethodPost, "/api/items", saveItemBody("m1"), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Toggles public", func(t *testing.T) {
		var resp ListResponse
		w := doJSON(t, router, http.MethodPost, "/api/lists/visibility", VisibilityRequest{
			Year: 2025, Category: "movie", Visibility: "public",
		}, &resp)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, "public", resp.Visibility)
	})

	t.Run("Missing list is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/lists/visibility", VisibilityRequest{
			Year: 1999, Category: "movie", Visibility: "public",
		}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unknown visibility is 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/lists/visibility", VisibilityRequest{
			Year: 2025, Category: "movie", Visibility: "unlisted",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
