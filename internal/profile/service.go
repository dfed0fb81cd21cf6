// Package profile manages usernames and display names for externally
// authenticated users.
package profile

import (
	"context"
	"errors"

	"github.com/youreview/youreview/internal/db"
	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/models"
)

// Service coordinates profile operations over the repository
type Service struct {
	repos *db.Repositories
}

// NewService creates a new profile service
func NewService(repos *db.Repositories) *Service {
	return &Service{repos: repos}
}

// Get returns the caller's profile. A user who has never set a username or
// display name reads as a bare profile rather than an error.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	prof, err := s.repos.Profiles.GetByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.NewProfile(userID), nil
		}
		return nil, err
	}
	return prof, nil
}

// GetByUsername resolves a public handle to its profile
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	normalized := NormalizeUsername(username)
	if err := ValidateUsername(normalized); err != nil {
		return nil, ErrProfileNotFound
	}

	prof, err := s.repos.Profiles.GetByUsername(ctx, normalized)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return prof, nil
}

// Available reports whether a username passes validation and is unclaimed by
// anyone other than the asking user.
func (s *Service) Available(ctx context.Context, username, userID string) (bool, error) {
	normalized := NormalizeUsername(username)
	if err := ValidateUsername(normalized); err != nil {
		return false, err
	}
	taken, err := s.repos.Profiles.UsernameTakenByOther(ctx, normalized, userID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// UpdateInput carries the profile fields a user can change. Nil fields are
// left untouched.
type UpdateInput struct {
	Username    *string
	DisplayName *string
}

// Update applies username and display name changes for the caller. The
// username is normalized and validated; a handle held by another user
// returns ErrUsernameTaken.
func (s *Service) Update(ctx context.Context, userID string, input UpdateInput) (*models.Profile, error) {
	if input.Username != nil {
		normalized := NormalizeUsername(*input.Username)
		if err := ValidateUsername(normalized); err != nil {
			return nil, err
		}

		taken, err := s.repos.Profiles.UsernameTakenByOther(ctx, normalized, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}

		if err := s.repos.Profiles.UpsertUsername(ctx, userID, normalized); err != nil {
			// The unique index catches a claim racing past the
			// availability check.
			if errors.Is(err, db.ErrDuplicate) {
				return nil, ErrUsernameTaken
			}
			return nil, err
		}

		logger.Log.Info().
			Str("user_id", userID).
			Str("username", normalized).
			Msg("Username set")
	}

	if input.DisplayName != nil {
		if err := s.repos.Profiles.UpdateDisplayName(ctx, userID, input.DisplayName); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, userID)
}
