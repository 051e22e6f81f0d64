package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Chart is one birth-chart intake record. Rows are created during signup completion or
// by the seed tool, never updated, and deleted only as part of cascading user deletion.
// Date and time of birth are kept as nullable strings so the wire format of the intake
// form survives round trips unchanged.
type Chart struct {
	ID               uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                     `gorm:"type:uuid;not null;index" json:"user_id"`
	FullName         string                        `gorm:"size:255" json:"full_name"`
	Relation         string                        `gorm:"size:100" json:"relation"`
	SelectedServices datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"selected_services"`
	DateOfBirth      *string                       `gorm:"type:date" json:"date_of_birth"`
	TimeOfBirth      *string                       `gorm:"type:time" json:"time_of_birth"`
	PlaceOfBirth     string                        `gorm:"size:255" json:"place_of_birth"`
	Address          string                        `gorm:"type:text" json:"address"`
	Occupation       string                        `gorm:"size:255" json:"occupation"`
	Question1        string                        `gorm:"type:text" json:"question1"`
	Question2        string                        `gorm:"type:text" json:"question2"`
	Question3        string                        `gorm:"type:text" json:"question3"`
	CreatedAt        time.Time                     `json:"created_at"`
}

func (Chart) TableName() string { return "charts" }

func (c *Chart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
