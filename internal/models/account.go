package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Account is the identity-provider record. Metadata is a write-once snapshot of the
// signup submission; it is never reconciled with the Profile row afterwards.
type Account struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string            `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string            `gorm:"not null" json:"-"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt    time.Time         `json:"created_at"`
	LastSignInAt *time.Time        `json:"last_sign_in_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
