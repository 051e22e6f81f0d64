package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-owned user row (table "users"). ID equals the Account id,
// but a row is not guaranteed to exist for every Account: profile persistence can fail
// after account creation, and the aggregator is expected to fall back to the Account
// metadata snapshot in that case.
type Profile struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"not null;size:255;index" json:"email"`
	FullName       *string    `gorm:"size:255" json:"full_name"`
	Phone          *string    `gorm:"size:50" json:"phone"`
	ReferredBy     *string    `gorm:"size:255" json:"referred_by"`
	NumberOfCharts *int       `json:"number_of_charts"`
	LastLogin      *time.Time `json:"last_login"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (Profile) TableName() string { return "users" }
