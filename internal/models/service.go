package models

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `gorm:"size:500" json:"description"`
	Duration    int     `gorm:"not null" json:"duration"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	s.ID = newID(s.ID)
	return nil
}
