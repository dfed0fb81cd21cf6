package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/youreview/youreview/internal/models"
	"gorm.io/gorm"
)

// rankParkOffset moves ranks out of the 1..10 band during a reorder so the
// (list_id, rank) unique index never trips on intermediate states.
const rankParkOffset = 100

// ItemRepository handles database operations for ranked list items
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// GetByID retrieves an item by its UUID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&item)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &item, nil
}

// ListByListID retrieves all items of a list ordered by rank, with media joined
func (r *ItemRepository) ListByListID(ctx context.Context, listID uuid.UUID) ([]*models.Item, error) {
	var items []*models.Item
	result := r.db.WithContext(ctx).
		Where("list_id = ?", listID.String()).
		Preload("Media").
		Order("rank ASC").
		Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list items: %w", MapGormError(result.Error))
	}
	return items, nil
}

// OccupiedRanks returns the set of ranks currently taken in a list
func (r *ItemRepository) OccupiedRanks(tx *gorm.DB, listID uuid.UUID) (map[int]bool, error) {
	var ranks []int
	if err := tx.Model(&models.Item{}).
		Where("list_id = ?", listID.String()).
		Pluck("rank", &ranks).Error; err != nil {
		return nil, fmt.Errorf("failed to read occupied ranks: %w", MapGormError(err))
	}
	occupied := make(map[int]bool, len(ranks))
	for _, rank := range ranks {
		occupied[rank] = true
	}
	return occupied, nil
}

// IDsByListID returns the ids of all items belonging to a list
func (r *ItemRepository) IDsByListID(ctx context.Context, listID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("list_id = ?", listID.String()).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to read item ids: %w", MapGormError(err))
	}
	members := make(map[uuid.UUID]bool, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt item id %q: %w", raw, err)
		}
		members[id] = true
	}
	return members, nil
}

// InsertWithCount creates an item and bumps the owning list's denormalized
// item count inside the supplied transaction.
func (r *ItemRepository) InsertWithCount(tx *gorm.DB, item *models.Item) error {
	if err := tx.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", MapGormError(err))
	}
	result := tx.Model(&models.List{}).
		Where("id = ?", item.ListID.String()).
		Updates(map[string]any{
			"item_count": gorm.Expr("item_count + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to bump item count: %w", MapGormError(result.Error))
	}
	return nil
}

// DeleteWithCount removes an item and decrements the owning list's
// denormalized item count inside a single transaction.
func (r *ItemRepository) DeleteWithCount(ctx context.Context, item *models.Item) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("id = ?", item.ID.String()).Delete(&models.Item{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete item: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&models.List{}).
			Where("id = ?", item.ListID.String()).
			Updates(map[string]any{
				"item_count": gorm.Expr("item_count - 1"),
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			return fmt.Errorf("failed to decrement item count: %w", MapGormError(err))
		}
		return nil
	})
}

// UpdateAnnotations sets the user-authored note and link override on an item
func (r *ItemRepository) UpdateAnnotations(ctx context.Context, id uuid.UUID, note, link *string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{
			"user_note":  note,
			"user_link":  link,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RankEntry represents an item rank update within a reorder
type RankEntry struct {
	ID   uuid.UUID
	Rank int
}

// Reorder applies all rank updates as one atomic unit. Targeted ranks are
// first parked outside the valid band, then set to their final values, so
// either every referenced item moves or none do.
func (r *ItemRepository) Reorder(ctx context.Context, listID uuid.UUID, entries []RankEntry) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		ids := make([]string, len(entries))
		for i, entry := range entries {
			ids[i] = entry.ID.String()
		}

		result := tx.Model(&models.Item{}).
			Where("list_id = ? AND id IN ?", listID.String(), ids).
			Update("rank", gorm.Expr("rank + ?", rankParkOffset))
		if result.Error != nil {
			return fmt.Errorf("failed to park ranks: %w", MapGormError(result.Error))
		}
		if result.RowsAffected != int64(len(entries)) {
			return ErrNotFound
		}

		now := time.Now().UTC()
		for _, entry := range entries {
			result := tx.Model(&models.Item{}).
				Where("id = ? AND list_id = ?", entry.ID.String(), listID.String()).
				Updates(map[string]any{
					"rank":       entry.Rank,
					"updated_at": now,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to set rank for item %s: %w", entry.ID, MapGormError(result.Error))
			}
			if result.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}

// CountByScope counts a user's items for (year, category) via the owning list
func (r *ItemRepository) CountByScope(ctx context.Context, userID string, year int, category models.Category) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Item{}).
		Joins("JOIN lists ON lists.id = items.list_id").
		Where("lists.user_id = ? AND lists.year = ? AND lists.category = ?", userID, year, string(category)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", MapGormError(err))
	}
	return count, nil
}

// ListByUserYear retrieves all of a user's items for a year across categories,
// media joined, ordered by rank.
func (r *ItemRepository) ListByUserYear(ctx context.Context, userID string, year int, publicOnly bool) ([]*models.Item, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN lists ON lists.id = items.list_id").
		Where("lists.user_id = ? AND lists.year = ?", userID, year)
	if publicOnly {
		query = query.Where("lists.visibility = ?", string(models.VisibilityPublic))
	}

	var items []*models.Item
	result := query.Preload("Media").Order("rank ASC").Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list items for year: %w", MapGormError(result.Error))
	}
	return items, nil
}
