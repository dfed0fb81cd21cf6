package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
)

// SearchResponse represents aggregated search results for one query
type SearchResponse struct {
	Category models.Category        `json:"category"`
	Query    string                 `json:"query"`
	Results  []search.UnifiedResult `json:"results"`
	Count    int                    `json:"count"`
}

// SearchHandler handles media search requests
type SearchHandler struct {
	search  *search.Service
	timeout time.Duration
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *search.Service, timeout time.Duration) *SearchHandler {
	return &SearchHandler{search: searchService, timeout: timeout}
}

// Search handles GET /api/search/:category
func (h *SearchHandler) Search(c *gin.Context) {
	category := c.Param("category")
	if !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_category",
			Message: "Category must be one of: movie, music, book",
		})
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_query",
			Message: "Query parameter q is required",
		})
		return
	}

	provider := c.Query("provider")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	results, err := h.search.Search(ctx, models.Category(category), query, provider)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrUnknownProvider):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_provider",
				Message: "Provider is not supported for this category",
			})
		case search.IsProviderNotConfigured(err):
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "provider_not_configured",
				Message: "No configured provider can serve this search",
			})
		case search.IsUpstreamFailure(err):
			logger.Log.Error().
				Err(err).
				Str("category", category).
				Msg("Upstream search failed")
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Error:   "upstream_failed",
				Message: "Search provider did not respond successfully",
			})
		default:
			logger.Log.Error().
				Err(err).
				Str("category", category).
				Msg("Search failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "search_failed",
				Message: "Failed to search",
			})
		}
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Category: models.Category(category),
		Query:    query,
		Results:  results,
		Count:    len(results),
	})
}

// SetupSearchRoutes registers search routes
func SetupSearchRoutes(apiGroup *gin.RouterGroup, searchService *search.Service, timeout time.Duration) {
	handler := NewSearchHandler(searchService, timeout)
	apiGroup.GET("/search/:category", handler.Search)
}
