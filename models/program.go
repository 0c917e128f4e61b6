package models

import (
	"time"
)

// Program represents an accelerator program (application cycle/cohort)
type Program struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProgramStats holds aggregate counters shown on program lists and detail views
type ProgramStats struct {
	QuestionnaireCount    int     `json:"questionnaire_count"`
	CalibrationCompletion float64 `json:"calibration_completion"`
	HasActiveGuidelines   bool    `json:"has_active_guidelines"`
	ApplicationCount      int     `json:"application_count"`
}

// ProgramWithStats is a program annotated with its aggregate statistics
type ProgramWithStats struct {
	Program
	ProgramStats
}
