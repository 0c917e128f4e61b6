package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AnswerValue is the structured value of a calibration answer. Exactly one of
// the fields is set, discriminated by the catalog question's type:
// scale questions carry ScaleValue, multiple choice carry ChoiceValue,
// free text carries TextValue.
type AnswerValue struct {
	ScaleValue  *int    `json:"scale_value,omitempty"`
	ChoiceValue *string `json:"choice_value,omitempty"`
	TextValue   *string `json:"text_value,omitempty"`
}

// Value implements driver.Valuer for JSONB
func (a AnswerValue) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *AnswerValue) Scan(value interface{}) error {
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

	return json.Unmarshal(bytes, a)
}

// CalibrationAnswer represents one accelerator preference answer for a
// program. Unique per (program_id, question_key); writes are upserts.
type CalibrationAnswer struct {
	ID          int64       `json:"id"`
	ProgramID   int64       `json:"program_id"`
	QuestionKey string      `json:"question_key"`
	AnswerValue AnswerValue `json:"answer_value"`
	AnswerText  *string     `json:"answer_text,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CompletionStatus describes how much of the calibration catalog a program
// has answered
type CompletionStatus struct {
	IsComplete           bool     `json:"is_complete"`
	TotalQuestions       int      `json:"total_questions"`
	AnsweredQuestions    int      `json:"answered_questions"`
	CompletionPercentage float64  `json:"completion_percentage"`
	MissingQuestions     []string `json:"missing_questions"`
	NextCategory         *string  `json:"next_category,omitempty"`
}
