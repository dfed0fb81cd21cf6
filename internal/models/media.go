package models

import (
	"time"

	"github.com/google/uuid"
)

// Media represents a catalog item normalized across providers. Rows are
// shared between users; identity is (provider, provider_id).
type Media struct {
	ID          uuid.UUID      `json:"id" gorm:"type:text;primaryKey;column:id"`
	Category    Category       `json:"category" gorm:"type:text;not null;column:category" validate:"required"`
	Provider    Provider       `json:"provider" gorm:"type:text;not null;uniqueIndex:idx_media_provider_identity;column:provider" validate:"required"`
	ProviderID  string         `json:"provider_id" gorm:"type:text;not null;uniqueIndex:idx_media_provider_identity;column:provider_id" validate:"required"`
	Title       string         `json:"title" gorm:"type:text;not null;column:title" validate:"required"`
	Creators    []string       `json:"creators,omitempty" gorm:"type:text;serializer:json;column:creators"`
	Description *string        `json:"description,omitempty" gorm:"type:text;column:description"`
	ImageURL    *string        `json:"image_url,omitempty" gorm:"type:text;column:image_url"`
	LinkURL     *string        `json:"link_url,omitempty" gorm:"type:text;column:link_url"`
	ReleaseDate *string        `json:"release_date,omitempty" gorm:"type:text;column:release_date"` // YYYY-MM-DD
	Extra       map[string]any `json:"extra,omitempty" gorm:"type:text;serializer:json;column:extra"`
	CreatedAt   time.Time      `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewMedia creates a new Media with generated UUID and timestamps
func NewMedia(category Category, provider Provider, providerID, title string) *Media {
	now := time.Now().UTC()
	return &Media{
		ID:         uuid.New(),
		Category:   category,
		Provider:   provider,
		ProviderID: providerID,
		Title:      title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// TableName pins the table name for GORM
func (Media) TableName() string { return "media" }
