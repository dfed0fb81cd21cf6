package db

import (
	"context"
	"fmt"
	"time"

	"github.com/youreview/youreview/internal/models"
	"gorm.io/gorm/clause"
)

// MediaRepository handles database operations for normalized catalog records
type MediaRepository struct {
	db *DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Upsert inserts a media row or, when (provider, provider_id) already exists,
// refreshes its mutable fields. The stored row is returned either way so a
// second save of the same provider item never duplicates.
func (r *MediaRepository) Upsert(ctx context.Context, media *models.Media) (*models.Media, error) {
	media.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}, {Name: "provider_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"category", "title", "creators", "description",
			"image_url", "link_url", "release_date", "extra", "updated_at",
		}),
	}).Create(media)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to upsert media: %w", MapGormError(result.Error))
	}

	// The conflict path keeps the original row's id, so re-read by identity.
	return r.GetByProviderIdentity(ctx, media.Provider, media.ProviderID)
}

// GetByProviderIdentity retrieves a media row by its (provider, provider_id) identity
func (r *MediaRepository) GetByProviderIdentity(ctx context.Context, provider models.Provider, providerID string) (*models.Media, error) {
	var media models.Media
	result := r.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", string(provider), providerID).
		First(&media)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &media, nil
}
