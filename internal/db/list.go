package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/youreview/youreview/internal/models"
)

// ListRepository handles database operations for top-10 lists
type ListRepository struct {
	db *DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *DB) *ListRepository {
	return &ListRepository{db: db}
}

// Create inserts a new list into the database
func (r *ListRepository) Create(ctx context.Context, list *models.List) error {
	result := r.db.WithContext(ctx).Create(list)
	if result.Error != nil {
		return fmt.Errorf("failed to create list: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a list by its UUID
func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.List, error) {
	var list models.List
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&list)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &list, nil
}

// GetByScope retrieves a list by its unique (user, year, category) scope
func (r *ListRepository) GetByScope(ctx context.Context, userID string, year int, category models.Category) (*models.List, error) {
	var list models.List
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND category = ?", userID, year, string(category)).
		First(&list)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &list, nil
}

// GetOrCreate returns the list for (user, year, category), creating it when
// missing. A concurrent create losing the unique-index race falls back to
// reading the winner's row, so exactly one list exists per scope.
func (r *ListRepository) GetOrCreate(ctx context.Context, userID string, year int, category models.Category) (*models.List, error) {
	list, err := r.GetByScope(ctx, userID, year, category)
	if err == nil {
		return list, nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	created := models.NewList(userID, year, category)
	if err := r.Create(ctx, created); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return r.GetByScope(ctx, userID, year, category)
		}
		return nil, err
	}
	return created, nil
}

// SetVisibility updates a list's visibility flag
func (r *ListRepository) SetVisibility(ctx context.Context, id uuid.UUID, visibility models.Visibility) error {
	result := r.db.WithContext(ctx).
		Model(&models.List{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{
			"visibility": string(visibility),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set list visibility: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
