package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type Assessment struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`

	// Questions holds the JSON-encoded []assessment.Question.
	Questions     json.RawMessage `gorm:"type:jsonb;not null" json:"questions"`
	ScoringMethod json.RawMessage `gorm:"type:jsonb" json:"scoring_method,omitempty"`

	UserID *string `gorm:"type:uuid" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	a.ID = newID(a.ID)
	return nil
}

type AssessmentResponse struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	AssessmentID *string `gorm:"type:uuid;index" json:"assessment_id"`
	UserID       *string `gorm:"type:uuid" json:"user_id"`

	Responses       json.RawMessage `gorm:"type:jsonb;not null" json:"responses"`
	Score           *int            `json:"score"`
	Recommendations *string         `gorm:"type:text" json:"recommendations"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *AssessmentResponse) BeforeCreate(tx *gorm.DB) error {
	r.ID = newID(r.ID)
	return nil
}
