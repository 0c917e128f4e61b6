package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Application represents a startup application reachable through a
// non-guessable public unique_id
type Application struct {
	ID              int64      `json:"id"`
	ProgramID       int64      `json:"program_id"`
	QuestionnaireID int64      `json:"questionnaire_id"`
	UniqueID        string     `json:"unique_id"`
	StartupName     string     `json:"startup_name"`
	ContactEmail    string     `json:"contact_email"`
	IsSubmitted     bool       `json:"is_submitted"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ResponseValue is the flexible payload of an application answer: a string
// for text and single choice, a list for multi-choice, a number for scales.
type ResponseValue struct {
	Raw interface{}
}

// Value implements driver.Valuer for JSONB
func (v ResponseValue) Value() (driver.Value, error) {
	return json.Marshal(v.Raw)
}

// Scan implements sql.Scanner for JSONB
func (v *ResponseValue) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch t := value.(type) {
	case []byte:
		bytes = t
	case string:
		bytes = []byte(t)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, &v.Raw)
}

// MarshalJSON serializes the raw payload directly
func (v ResponseValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw)
}

// UnmarshalJSON deserializes into the raw payload
func (v *ResponseValue) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &v.Raw)
}

// Response is one answer to a questionnaire question within an application
type Response struct {
	ID            int64         `json:"id"`
	ApplicationID int64         `json:"application_id"`
	QuestionID    int64         `json:"question_id"`
	ResponseValue ResponseValue `json:"response_value"`
	ResponseText  *string       `json:"response_text,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
