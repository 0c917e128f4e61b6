package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProgramNotFound covers both a nonexistent program and one owned by
	// another organization, so callers cannot tell the two cases apart
	ErrProgramNotFound = errors.New("program not found")

	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrVersionNotFound       = errors.New("guideline version not found")

	ErrCalibrationAnswerNotFound = errors.New("calibration answer not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrProgramNameTaken means another active program of the organization
	// already carries the name
	ErrProgramNameTaken = errors.New("program name already in use")

	// ErrNoCalibrationData means guidelines generation was requested before
	// any calibration answers were saved
	ErrNoCalibrationData = errors.New("no calibration data for program")

	ErrAlreadySubmitted = errors.New("application already submitted")
	ErrQuestionLimit    = errors.New("questionnaire question limit reached")
)

// InputError reports a client-supplied value that failed validation
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

func inputErr(format string, args ...interface{}) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// RateLimitError reports a denied generation with the quota state the caller
// should surface
type RateLimitError struct {
	Remaining int
	ResetAt   time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, %d remaining, resets at %s", e.Remaining, e.ResetAt.Format(time.RFC3339))
}

// ValidationError reports a structural problem in generated guidelines,
// naming the offending category and field
type ValidationError struct {
	Section string
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("invalid guidelines: category %q: %s: %s", e.Section, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid guidelines: %s: %s", e.Field, e.Reason)
}
