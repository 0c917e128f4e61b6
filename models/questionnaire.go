package models

import (
	"time"
)

// Questionnaire represents a question set collecting startup applications for a program
type Questionnaire struct {
	ID          int64     `json:"id"`
	ProgramID   int64     `json:"program_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
