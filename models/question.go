package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// QuestionType represents the type of a questionnaire question
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeScale          QuestionType = "scale"
	QuestionTypeFileUpload     QuestionType = "file_upload"
)

// Valid reports whether the question type is one of the supported types
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeMultipleChoice, QuestionTypeScale, QuestionTypeFileUpload:
		return true
	}
	return false
}

// QuestionOptions holds type-specific question configuration (choice lists,
// scale bounds, text limits). Shape depends on the question type.
type QuestionOptions map[string]interface{}

// Value implements driver.Valuer for JSONB
func (o QuestionOptions) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner for JSONB
func (o *QuestionOptions) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// ValidationRules holds extra per-question validation configuration
type ValidationRules map[string]interface{}

// Value implements driver.Valuer for JSONB
func (r ValidationRules) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB
func (r *ValidationRules) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// Question represents a single question within a questionnaire.
// order_index is a dense 0..n-1 sequence per questionnaire.
type Question struct {
	ID              int64           `json:"id"`
	QuestionnaireID int64           `json:"questionnaire_id"`
	Text            string          `json:"text"`
	QuestionType    QuestionType    `json:"question_type"`
	IsRequired      bool            `json:"is_required"`
	OrderIndex      int             `json:"order_index"`
	Options         QuestionOptions `json:"options,omitempty"`
	ValidationRules ValidationRules `json:"validation_rules,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
