package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youreview/youreview/internal/list"
	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/profile"
	"github.com/youreview/youreview/internal/recap"
)

// PublicListResponse represents another user's shared list
type PublicListResponse struct {
	Username string        `json:"username"`
	List     *ListResponse `json:"list"`
}

// RecapResponse represents a user's public year recap
type RecapResponse struct {
	Username string      `json:"username"`
	Recap    recap.Recap `json:"recap"`
}

// UserHandler handles public per-username API requests
type UserHandler struct {
	profiles *profile.Service
	lists    *list.Service
	recaps   *recap.Service
}

// NewUserHandler creates a new public user handler
func NewUserHandler(profileService *profile.Service, listService *list.Service, recapService *recap.Service) *UserHandler {
	return &UserHandler{profiles: profileService, lists: listService, recaps: recapService}
}

// resolveUsername maps the :username path segment to a profile, writing the
// 404 itself when the handle is unknown.
func (h *UserHandler) resolveUsername(ctx context.Context, c *gin.Context) (string, string, bool) {
	username := c.Param("username")

	prof, err := h.profiles.GetByUsername(ctx, username)
	if err != nil {
		if profile.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "No user with this username",
			})
			return "", "", false
		}

		logger.Log.Error().
			Err(err).
			Str("username", username).
			Msg("Failed to resolve username")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to resolve username",
		})
		return "", "", false
	}
	return prof.ID, *prof.Username, true
}

// PublicList handles GET /api/users/:username/lists
func (h *UserHandler) PublicList(c *gin.Context) {
	year, category, ok := scopeParams(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ownerID, username, ok := h.resolveUsername(ctx, c)
	if !ok {
		return
	}

	targetList, items, err := h.lists.PublicListWithItems(ctx, ownerID, year, category)
	if err != nil {
		if list.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "No public list for this year and category",
			})
			return
		}

		logger.Log.Error().
			Err(err).
			Str("username", username).
			Msg("Failed to get public list")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve list",
		})
		return
	}

	c.JSON(http.StatusOK, PublicListResponse{
		Username: username,
		List:     toListResponse(targetList, items, ownerID, year, category),
	})
}

// Recap handles GET /api/users/:username/recap
func (h *UserHandler) Recap(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1900 || year > 2100 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_year",
			Message: "Year must be a four digit number",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ownerID, username, ok := h.resolveUsername(ctx, c)
	if !ok {
		return
	}

	result, err := h.recaps.ForUser(ctx, ownerID, year)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("username", username).
			Int("year", year).
			Msg("Failed to build recap")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to build recap",
		})
		return
	}

	c.JSON(http.StatusOK, RecapResponse{Username: username, Recap: result})
}

// SetupUserRoutes registers public per-username routes
func SetupUserRoutes(apiGroup *gin.RouterGroup, profileService *profile.Service, listService *list.Service, recapService *recap.Service) {
	handler := NewUserHandler(profileService, listService, recapService)
	apiGroup.GET("/users/:username/lists", handler.PublicList)
	apiGroup.GET("/users/:username/recap", handler.Recap)
}
