package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type JournalEntry struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	Date        string         `gorm:"size:10;not null" json:"date"`
	EnergyLevel *int           `json:"energy_level"`
	Mood        *int           `json:"mood"`
	SleepHours  *float64       `json:"sleep_hours"`
	Symptoms    pq.StringArray `gorm:"type:text[]" json:"symptoms"`
	Notes       *string        `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (JournalEntry) TableName() string {
	return "health_journal_entries"
}

func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	e.ID = newID(e.ID)
	return nil
}
