package db

import (
	"context"
	"fmt"
	"time"

	"github.com/youreview/youreview/internal/models"
	"gorm.io/gorm/clause"
)

// ProfileRepository handles database operations for user profiles
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID retrieves a profile by user id
func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	result := r.db.WithContext(ctx).Where("id = ?", userID).First(&profile)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &profile, nil
}

// GetByUsername retrieves a profile by its normalized username.
// Usernames are stored lowercased, so the lookup lowercases its argument.
func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	result := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&profile)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &profile, nil
}

// UsernameTakenByOther reports whether any user besides excludeUserID holds
// the given normalized username.
func (r *ProfileRepository) UsernameTakenByOther(ctx context.Context, username, excludeUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("username = ? AND id <> ?", username, excludeUserID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", MapGormError(err))
	}
	return count > 0, nil
}

// UpsertUsername sets the username on a user's profile, creating the profile
// row on first use.
func (r *ProfileRepository) UpsertUsername(ctx context.Context, userID, username string) error {
	profile := models.NewProfile(userID)
	profile.Username = &username

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
	}).Create(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to set username: %w", MapGormError(result.Error))
	}
	return nil
}

// UpdateDisplayName sets the display name on a user's profile, creating the
// profile row on first use.
func (r *ProfileRepository) UpdateDisplayName(ctx context.Context, userID string, displayName *string) error {
	profile := models.NewProfile(userID)
	profile.DisplayName = displayName
	profile.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
	}).Create(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to update display name: %w", MapGormError(result.Error))
	}
	return nil
}
