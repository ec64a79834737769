package models

import (
	"time"

	"gorm.io/gorm"
)

// Availability is the clinic's opening window for one weekday.
type Availability struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	DayOfWeek int    `gorm:"not null;uniqueIndex" json:"day_of_week"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}

func (Availability) TableName() string {
	return "availability"
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	a.ID = newID(a.ID)
	return nil
}
