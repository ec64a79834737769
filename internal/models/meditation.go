package models

import (
	"time"

	"gorm.io/gorm"
)

type MeditationSession struct {
	ID              string  `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string  `gorm:"size:200;not null" json:"title"`
	Description     *string `gorm:"type:text" json:"description"`
	Category        string  `gorm:"size:50;not null;index" json:"category"`
	DifficultyLevel *string `gorm:"size:20" json:"difficulty_level"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`

	// AudioKey is the object key in the audio bucket; AudioURL is filled per request.
	AudioKey *string `gorm:"size:255" json:"-"`
	AudioURL *string `gorm:"-" json:"audio_url"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *MeditationSession) BeforeCreate(tx *gorm.DB) error {
	m.ID = newID(m.ID)
	return nil
}

type MeditationCompletion struct {
	ID                  string `gorm:"type:uuid;primaryKey" json:"id"`
	MeditationSessionID string `gorm:"type:uuid;not null;index" json:"meditation_session_id"`
	UserID              string `gorm:"type:uuid;not null;index" json:"user_id"`
	Rating              *int   `json:"rating"`

	CompletedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`
}

func (m *MeditationCompletion) BeforeCreate(tx *gorm.DB) error {
	m.ID = newID(m.ID)
	return nil
}
