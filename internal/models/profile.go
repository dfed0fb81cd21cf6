package models

import "time"

// Profile holds per-user public identity. The ID is the subject assigned by
// the external identity provider; the username is set during onboarding and
// is unique case-insensitively.
type Profile struct {
	ID          string    `json:"id" gorm:"type:text;primaryKey;column:id"`
	Username    *string   `json:"username,omitempty" gorm:"type:text;uniqueIndex;column:username"`
	DisplayName *string   `json:"display_name,omitempty" gorm:"type:text;column:display_name"`
	CreatedAt   time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewProfile creates a profile shell for a user with no username yet
func NewProfile(userID string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName pins the table name for GORM
func (Profile) TableName() string { return "profiles" }
