package models

import (
	"time"

	"github.com/google/uuid"
)

// Item represents one ranked entry in a List, pointing to a Media row.
// Rank is unique within a list and drawn from [MinRank, MaxRank].
type Item struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	ListID    uuid.UUID `json:"list_id" gorm:"type:text;not null;uniqueIndex:idx_items_list_rank;column:list_id" validate:"required"`
	MediaID   uuid.UUID `json:"media_id" gorm:"type:text;not null;column:media_id" validate:"required"`
	Rank      int       `json:"rank" gorm:"type:integer;not null;uniqueIndex:idx_items_list_rank;column:rank" validate:"gte=1,lte=10"`
	UserNote  *string   `json:"user_note,omitempty" gorm:"type:text;column:user_note"`
	UserLink  *string   `json:"user_link,omitempty" gorm:"type:text;column:user_link"`
	CreatedAt time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`

	Media *Media `json:"media,omitempty" gorm:"foreignKey:MediaID;references:ID"`
}

// NewItem creates a new Item with generated UUID and timestamps
func NewItem(listID, mediaID uuid.UUID, rank int) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:        uuid.New(),
		ListID:    listID,
		MediaID:   mediaID,
		Rank:      rank,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName pins the table name for GORM
func (Item) TableName() string { return "items" }
