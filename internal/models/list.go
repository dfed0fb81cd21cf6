package models

import (
	"time"

	"github.com/google/uuid"
)

// List represents a user's ranked top-10 board for one (year, category).
// Lists are created lazily on first item insertion and hold at most 10 items.
type List struct {
	ID         uuid.UUID  `json:"id" gorm:"type:text;primaryKey;column:id"`
	UserID     string     `json:"user_id" gorm:"type:text;not null;uniqueIndex:idx_lists_owner_scope;column:user_id" validate:"required"`
	Year       int        `json:"year" gorm:"type:integer;not null;uniqueIndex:idx_lists_owner_scope;column:year" validate:"required"`
	Category   Category   `json:"category" gorm:"type:text;not null;uniqueIndex:idx_lists_owner_scope;column:category" validate:"required"`
	Visibility Visibility `json:"visibility" gorm:"type:text;not null;default:private;column:visibility"`
	ItemCount  int        `json:"item_count" gorm:"type:integer;not null;default:0;column:item_count"`
	CreatedAt  time.Time  `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewList creates a new private List with generated UUID and timestamps
func NewList(userID string, year int, category Category) *List {
	now := time.Now().UTC()
	return &List{
		ID:         uuid.New(),
		UserID:     userID,
		Year:       year,
		Category:   category,
		Visibility: VisibilityPrivate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsPublic reports whether the list is visible on public profile pages
func (l *List) IsPublic() bool {
	return l.Visibility == VisibilityPublic
}

// TableName pins the table name for GORM
func (List) TableName() string { return "lists" }
