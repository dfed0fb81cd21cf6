package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/youreview/youreview/internal/list"
	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/middleware"
	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/search"
)

// Request/Response DTOs

// SaveItemRequest represents a request to save a picked search result
type SaveItemRequest struct {
	Year     int                  `json:"year" binding:"required"`
	Category string               `json:"category" binding:"required"`
	Media    search.UnifiedResult `json:"media" binding:"required"`
	UserNote *string              `json:"user_note,omitempty"`
	UserLink *string              `json:"user_link,omitempty"`
}

// UpdateItemRequest represents a request to change an item's annotations
type UpdateItemRequest struct {
	UserNote *string `json:"user_note,omitempty"`
	UserLink *string `json:"user_link,omitempty"`
}

// ItemResponse represents a ranked item in API responses
type ItemResponse struct {
	ID        string        `json:"id"`
	ListID    string        `json:"list_id"`
	MediaID   string        `json:"media_id"`
	Rank      int           `json:"rank"`
	UserNote  *string       `json:"user_note,omitempty"`
	UserLink  *string       `json:"user_link,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Media     *models.Media `json:"media,omitempty"`
}

// ItemHandler handles item-related API requests
type ItemHandler struct {
	lists *list.Service
}

// NewItemHandler creates a new item handler
func NewItemHandler(listService *list.Service) *ItemHandler {
	return &ItemHandler{lists: listService}
}

// toItemResponse converts an item model to API response format
func toItemResponse(item *models.Item) *ItemResponse {
	return &ItemResponse{
		ID:        item.ID.String(),
		ListID:    item.ListID.String(),
		MediaID:   item.MediaID.String(),
		Rank:      item.Rank,
		UserNote:  item.UserNote,
		UserLink:  item.UserLink,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		Media:     item.Media,
	}
}

// SaveItem handles POST /api/items
func (h *ItemHandler) SaveItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var req SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if req.Media.Provider == "" || req.Media.ProviderID == "" || req.Media.Title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_media",
			Message: "Media must carry provider, providerId and title",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	item, err := h.lists.SaveItem(ctx, userID, list.SaveItemInput{
		Year:     req.Year,
		Category: models.Category(req.Category),
		Media: list.MediaInput{
			Provider:    req.Media.Provider,
			ProviderID:  req.Media.ProviderID,
			Title:       req.Media.Title,
			Creators:    req.Media.Creators,
			Description: req.Media.Description,
			ImageURL:    req.Media.ImageURL,
			LinkURL:     req.Media.LinkURL,
			ReleaseDate: req.Media.ReleaseDate,
			Extra:       req.Media.Extra,
		},
		UserNote: req.UserNote,
		UserLink: req.UserLink,
	})
	if err != nil {
		if list.IsListFull(err) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "list_full",
				Message: "This list already has 10 items",
			})
			return
		}
		if list.IsValidation(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
			return
		}

		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to save item")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "save_failed",
			Message: "Failed to save item",
		})
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

// UpdateItem handles PATCH /api/items/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid item ID format",
		})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	item, err := h.lists.UpdateItem(ctx, userID, id, req.UserNote, req.UserLink)
	if err != nil {
		h.writeItemError(c, err, id, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

// DeleteItem handles DELETE /api/items/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid item ID format",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.lists.DeleteItem(ctx, userID, id); err != nil {
		h.writeItemError(c, err, id, "Failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

// writeItemError maps item mutation errors to API responses
func (h *ItemHandler) writeItemError(c *gin.Context, err error, id uuid.UUID, logMsg string) {
	switch {
	case list.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Item not found",
		})
	case list.IsForbidden(err):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You do not own this item",
		})
	default:
		logger.Log.Error().
			Err(err).
			Str("item_id", id.String()).
			Msg(logMsg)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "mutation_failed",
			Message: logMsg,
		})
	}
}

// SetupItemRoutes registers item routes. All item mutations require auth.
func SetupItemRoutes(apiGroup *gin.RouterGroup, listService *list.Service) {
	handler := NewItemHandler(listService)
	apiGroup.POST("/items", handler.SaveItem)
	apiGroup.PATCH("/items/:id", handler.UpdateItem)
	apiGroup.DELETE("/items/:id", handler.DeleteItem)
}
