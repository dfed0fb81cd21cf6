package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/youreview/youreview/internal/list"
	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/middleware"
	"github.com/youreview/youreview/internal/models"
)

// Request/Response DTOs

// ListResponse represents a top-10 list in API responses
type ListResponse struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Year       int               `json:"year"`
	Category   models.Category   `json:"category"`
	Visibility models.Visibility `json:"visibility"`
	ItemCount  int               `json:"item_count"`
	Items      []*ItemResponse   `json:"items"`
}

// CountResponse represents an item count for one list scope
type CountResponse struct {
	Year     int             `json:"year"`
	Category models.Category `json:"category"`
	Count    int64           `json:"count"`
}

// ReorderRequest represents a batch rank remapping for one list
type ReorderRequest struct {
	ListID  string               `json:"list_id" binding:"required"`
	Entries []ReorderEntryUpdate `json:"entries" binding:"required,min=1"`
}

// ReorderEntryUpdate assigns one item its new rank
type ReorderEntryUpdate struct {
	ID   string `json:"id" binding:"required"`
	Rank int    `json:"rank" binding:"required"`
}

// VisibilityRequest represents a request to change list visibility
type VisibilityRequest struct {
	Year       int    `json:"year" binding:"required"`
	Category   string `json:"category" binding:"required"`
	Visibility string `json:"visibility" binding:"required"`
}

// ListHandler handles list-related API requests
type ListHandler struct {
	lists *list.Service
}

// NewListHandler creates a new list handler
func NewListHandler(listService *list.Service) *ListHandler {
	return &ListHandler{lists: listService}
}

// toListResponse converts a list model and its items to API response format.
// A nil list reads as an empty board for the requested scope.
func toListResponse(l *models.List, items []*models.Item, userID string, year int, category models.Category) *ListResponse {
	resp := &ListResponse{
		UserID:     userID,
		Year:       year,
		Category:   category,
		Visibility: models.VisibilityPrivate,
		Items:      make([]*ItemResponse, 0, len(items)),
	}
	if l != nil {
		resp.ID = l.ID.String()
		resp.Visibility = l.Visibility
		resp.ItemCount = l.ItemCount
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}

// scopeParams extracts and validates the year and category query parameters
func scopeParams(c *gin.Context) (int, models.Category, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1900 || year > 2100 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_year",
			Message: "Year must be a four digit number",
		})
		return 0, "", false
	}

	category := c.Query("category")
	if !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_category",
			Message: "Category must be one of: movie, music, book",
		})
		return 0, "", false
	}
	return year, models.Category(category), true
}

// GetList handles GET /api/lists
func (h *ListHandler) GetList(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	year, category, ok := scopeParams(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	targetList, items, err := h.lists.GetListWithItems(ctx, userID, year, category)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Int("year", year).
			Msg("Failed to get list")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve list",
		})
		return
	}

	c.JSON(http.StatusOK, toListResponse(targetList, items, userID, year, category))
}

// Count handles GET /api/lists/count
func (h *ListHandler) Count(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	year, category, ok := scopeParams(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := h.lists.Count(ctx, userID, year, category)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to count items")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to count items",
		})
		return
	}

	c.JSON(http.StatusOK, CountResponse{Year: year, Category: category, Count: count})
}

// Reorder handles POST /api/lists/reorder
func (h *ListHandler) Reorder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	listID, err := uuid.Parse(req.ListID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid list ID format",
		})
		return
	}

	entries := make([]list.ReorderEntry, len(req.Entries))
	for i, entry := range req.Entries {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_id",
				Message: "Invalid item ID format",
			})
			return
		}
		entries[i] = list.ReorderEntry{ID: id, Rank: entry.Rank}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.lists.Reorder(ctx, userID, listID, entries); err != nil {
		switch {
		case list.IsValidation(err):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_reorder",
				Message: err.Error(),
			})
		case list.IsForbidden(err):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "You do not own this list",
			})
		default:
			logger.Log.Error().
				Err(err).
				Str("list_id", listID.String()).
				Msg("Failed to reorder list")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "reorder_failed",
				Message: "Failed to reorder list",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// SetVisibility handles POST /api/lists/visibility
func (h *ListHandler) SetVisibility(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	targetList, err := h.lists.SetVisibility(ctx, userID, req.Year, models.Category(req.Category), models.Visibility(req.Visibility))
	if err != nil {
		switch {
		case list.IsValidation(err):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
		case list.IsNotFound(err):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "No list exists for this year and category",
			})
		default:
			logger.Log.Error().
				Err(err).
				Str("user_id", userID).
				Msg("Failed to set list visibility")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "mutation_failed",
				Message: "Failed to set list visibility",
			})
		}
		return
	}

	c.JSON(http.StatusOK, toListResponse(targetList, nil, userID, req.Year, models.Category(req.Category)))
}

// SetupListRoutes registers list routes. All list operations require auth.
func SetupListRoutes(apiGroup *gin.RouterGroup, listService *list.Service) {
	handler := NewListHandler(listService)
	apiGroup.GET("/lists", handler.GetList)
	apiGroup.GET("/lists/count", handler.Count)
	apiGroup.POST("/lists/reorder", handler.Reorder)
	apiGroup.POST("/lists/visibility", handler.SetVisibility)
}
