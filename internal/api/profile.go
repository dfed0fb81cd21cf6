package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/middleware"
	"github.com/youreview/youreview/internal/models"
	"github.com/youreview/youreview/internal/profile"
)

// Request/Response DTOs

// UpdateProfileRequest represents a request to change profile fields
type UpdateProfileRequest struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID          string  `json:"id"`
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// AvailabilityResponse represents a username availability check result
type AvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ProfileHandler handles profile-related API requests
type ProfileHandler struct {
	profiles *profile.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profileService}
}

// toProfileResponse converts a profile model to API response format
func toProfileResponse(p *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
	}
}

// Me handles GET /api/profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	prof, err := h.profiles.Get(ctx, userID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to get profile")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve profile",
		})
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(prof))
}

// Update handles POST /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}
	if req.Username == nil && req.DisplayName == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Nothing to update",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	prof, err := h.profiles.Update(ctx, userID, profile.UpdateInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case profile.IsInvalidUsername(err):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_username",
				Message: err.Error(),
			})
		case profile.IsUsernameTaken(err):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "username_taken",
				Message: "This username is already taken",
			})
		default:
			logger.Log.Error().
				Err(err).
				Str("user_id", userID).
				Msg("Failed to update profile")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "mutation_failed",
				Message: "Failed to update profile",
			})
		}
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(prof))
}

// Availability handles GET /api/profile/username/availability
func (h *ProfileHandler) Availability(c *gin.Context) {
	username := c.Query("q")
	if username == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_query",
			Message: "Query parameter q is required",
		})
		return
	}

	// An authenticated caller checking their own current handle reads as
	// available.
	userID, _ := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	available, err := h.profiles.Available(ctx, username, userID)
	if err != nil {
		if profile.IsInvalidUsername(err) {
			c.JSON(http.StatusOK, AvailabilityResponse{
				Username:  profile.NormalizeUsername(username),
				Available: false,
				Reason:    err.Error(),
			})
			return
		}

		logger.Log.Error().
			Err(err).
			Msg("Failed to check username availability")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to check username availability",
		})
		return
	}

	resp := AvailabilityResponse{
		Username:  profile.NormalizeUsername(username),
		Available: available,
	}
	if !available {
		resp.Reason = "username already taken"
	}
	c.JSON(http.StatusOK, resp)
}

// SetupProfileRoutes registers authenticated profile routes
func SetupProfileRoutes(apiGroup *gin.RouterGroup, profileService *profile.Service) {
	handler := NewProfileHandler(profileService)
	apiGroup.GET("/profile/me", handler.Me)
	apiGroup.POST("/profile", handler.Update)
}

// SetupAvailabilityRoutes registers the public username availability route
func SetupAvailabilityRoutes(apiGroup *gin.RouterGroup, profileService *profile.Service) {
	handler := NewProfileHandler(profileService)
	apiGroup.GET("/profile/username/availability", handler.Availability)
}
