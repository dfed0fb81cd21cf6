// Package list implements top-10 list curation: rank allocation, item
// mutation, reordering, and visibility.
package list

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/youreview/youreview/internal/db"
	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/models"
	"gorm.io/gorm"
)

// Service coordinates list and item operations over the repositories.
// All mutations of a single list are serialized through a per-list mutex.
type Service struct {
	database *db.DB
	repos    *db.Repositories
	locks    *locker
}

// NewService creates a new list service
func NewService(database *db.DB, repos *db.Repositories) *Service {
	return &Service{
		database: database,
		repos:    repos,
		locks:    newLocker(),
	}
}

// MediaInput carries the provider search result the user picked. Optional
// fields use the empty string for absence, matching the search wire shape.
type MediaInput struct {
	Provider    models.Provider
	ProviderID  string
	Title       string
	Creators    []string
	Description string
	ImageURL    string
	LinkURL     string
	ReleaseDate string
	Extra       map[string]any
}

// optional maps an empty string to a NULL column value
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SaveItemInput describes an item save request
type SaveItemInput struct {
	Year     int
	Category models.Category
	Media    MediaInput
	UserNote *string
	UserLink *string
}

// SaveItem stores the picked media, finds or creates the caller's list for
// (year, category), and places the item at the lowest free rank. Returns
// ErrListFull when all ten ranks are taken.
func (s *Service) SaveItem(ctx context.Context, userID string, input SaveItemInput) (*models.Item, error) {
	if !models.ValidCategory(string(input.Category)) {
		return nil, ErrInvalidCategory
	}

	media := models.NewMedia(input.Category, input.Media.Provider, input.Media.ProviderID, input.Media.Title)
	media.Creators = input.Media.Creators
	media.Description = optional(input.Media.Description)
	media.ImageURL = optional(input.Media.ImageURL)
	media.LinkURL = optional(input.Media.LinkURL)
	media.ReleaseDate = optional(input.Media.ReleaseDate)
	media.Extra = input.Media.Extra

	stored, err := s.repos.Media.Upsert(ctx, media)
	if err != nil {
		return nil, err
	}

	targetList, err := s.repos.Lists.GetOrCreate(ctx, userID, input.Year, input.Category)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(targetList.ID)
	defer unlock()

	var item *models.Item
	err = s.database.WithTransaction(ctx, func(tx *gorm.DB) error {
		occupied, err := s.repos.Items.OccupiedRanks(tx, targetList.ID)
		if err != nil {
			return err
		}

		rank := 0
		for candidate := models.MinRank; candidate <= models.MaxRank; candidate++ {
			if !occupied[candidate] {
				rank = candidate
				break
			}
		}
		if rank == 0 {
			return ErrListFull
		}

		item = models.NewItem(targetList.ID, stored.ID, rank)
		item.UserNote = input.UserNote
		item.UserLink = input.UserLink
		return s.repos.Items.InsertWithCount(tx, item)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Debug().
		Str("list_id", targetList.ID.String()).
		Str("item_id", item.ID.String()).
		Int("rank", item.Rank).
		Msg("Item saved")

	item.Media = stored
	return item, nil
}

// GetListWithItems returns the caller's list for (year, category) with its
// items ordered by rank. A list that does not exist yet reads as empty.
func (s *Service) GetListWithItems(ctx context.Context, userID string, year int, category models.Category) (*models.List, []*models.Item, error) {
	if !models.ValidCategory(string(category)) {
		return nil, nil, ErrInvalidCategory
	}

	targetList, err := s.repos.Lists.GetByScope(ctx, userID, year, category)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, []*models.Item{}, nil
		}
		return nil, nil, err
	}

	items, err := s.repos.Items.ListByListID(ctx, targetList.ID)
	if err != nil {
		return nil, nil, err
	}
	return targetList, items, nil
}

// PublicListWithItems returns another user's list for (year, category).
// Private and missing lists are indistinguishable to the caller.
func (s *Service) PublicListWithItems(ctx context.Context, ownerID string, year int, category models.Category) (*models.List, []*models.Item, error) {
	if !models.ValidCategory(string(category)) {
		return nil, nil, ErrInvalidCategory
	}

	targetList, err := s.repos.Lists.GetByScope(ctx, ownerID, year, category)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil, ErrListNotFound
		}
		return nil, nil, err
	}
	if !targetList.IsPublic() {
		return nil, nil, ErrListNotFound
	}

	items, err := s.repos.Items.ListByListID(ctx, targetList.ID)
	if err != nil {
		return nil, nil, err
	}
	return targetList, items, nil
}

// Count returns how many items the caller has saved for (year, category)
func (s *Service) Count(ctx context.Context, userID string, year int, category models.Category) (int64, error) {
	if !models.ValidCategory(string(category)) {
		return 0, ErrInvalidCategory
	}
	return s.repos.Items.CountByScope(ctx, userID, year, category)
}

// ReorderEntry assigns one item its new rank
type ReorderEntry struct {
	ID   uuid.UUID
	Rank int
}

// Reorder applies a batch of rank assignments to the caller's list. The batch
// must target existing items of the list, use ranks in 1..10, and repeat
// neither an item nor a rank. Either every entry applies or none do.
func (s *Service) Reorder(ctx context.Context, userID string, listID uuid.UUID, entries []ReorderEntry) error {
	if len(entries) == 0 {
		return ErrEmptyReorder
	}

	seenRanks := make(map[int]bool, len(entries))
	seenIDs := make(map[uuid.UUID]bool, len(entries))
	for _, entry := range entries {
		if entry.Rank < models.MinRank || entry.Rank > models.MaxRank {
			return fmt.Errorf("%w: got %d", ErrInvalidRank, entry.Rank)
		}
		if seenRanks[entry.Rank] {
			return fmt.Errorf("%w: rank %d", ErrDuplicateRank, entry.Rank)
		}
		if seenIDs[entry.ID] {
			return fmt.Errorf("%w: item %s", ErrDuplicateItem, entry.ID)
		}
		seenRanks[entry.Rank] = true
		seenIDs[entry.ID] = true
	}

	// Missing lists read as forbidden so callers cannot probe which list
	// ids exist.
	targetList, err := s.repos.Lists.GetByID(ctx, listID)
	if err != nil {
		if db.IsNotFound(err) {
			return ErrForbidden
		}
		return err
	}
	if targetList.UserID != userID {
		return ErrForbidden
	}

	unlock := s.locks.Lock(listID)
	defer unlock()

	members, err := s.repos.Items.IDsByListID(ctx, listID)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !members[entry.ID] {
			return fmt.Errorf("%w: item %s", ErrItemNotInList, entry.ID)
		}
	}

	updates := make([]db.RankEntry, len(entries))
	for i, entry := range entries {
		updates[i] = db.RankEntry{ID: entry.ID, Rank: entry.Rank}
	}

	if err := s.repos.Items.Reorder(ctx, listID, updates); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("%w: item removed during reorder", ErrItemNotInList)
		}
		return err
	}

	logger.Log.Debug().
		Str("list_id", listID.String()).
		Int("entries", len(entries)).
		Msg("List reordered")
	return nil
}

// UpdateItem sets the note and link override on an item the caller owns
func (s *Service) UpdateItem(ctx context.Context, userID string, itemID uuid.UUID, note, link *string) (*models.Item, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Items.UpdateAnnotations(ctx, item.ID, note, link); err != nil {
		return nil, err
	}
	item.UserNote = note
	item.UserLink = link
	return item, nil
}

// DeleteItem removes an item the caller owns. Its rank becomes free for the
// next save.
func (s *Service) DeleteItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(item.ListID)
	defer unlock()

	if err := s.repos.Items.DeleteWithCount(ctx, item); err != nil {
		if db.IsNotFound(err) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

// SetVisibility flips the caller's (year, category) list public or private
func (s *Service) SetVisibility(ctx context.Context, userID string, year int, category models.Category, visibility models.Visibility) (*models.List, error) {
	if !models.ValidCategory(string(category)) {
		return nil, ErrInvalidCategory
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return nil, ErrInvalidVisibility
	}

	targetList, err := s.repos.Lists.GetByScope(ctx, userID, year, category)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	if err := s.repos.Lists.SetVisibility(ctx, targetList.ID, visibility); err != nil {
		return nil, err
	}
	targetList.Visibility = visibility
	return targetList, nil
}

// ownedItem loads an item and verifies the caller owns its list
func (s *Service) ownedItem(ctx context.Context, userID string, itemID uuid.UUID) (*models.Item, error) {
	item, err := s.repos.Items.GetByID(ctx, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	targetList, err := s.repos.Lists.GetByID(ctx, item.ListID)
	if err != nil {
		return nil, err
	}
	if targetList.UserID != userID {
		return nil, ErrForbidden
	}
	return item, nil
}
