package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Mattiasalardi/VDP/catalog"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/repository"
)

// CalibrationService manages accelerator preference answers against the
// fixed calibration catalog
type CalibrationService struct {
	programRepo     *repository.ProgramRepository
	calibrationRepo *repository.CalibrationRepository
}

// NewCalibrationService creates a new calibration service
func NewCalibrationService(programRepo *repository.ProgramRepository, calibrationRepo *repository.CalibrationRepository) *CalibrationService {
	return &CalibrationService{programRepo: programRepo, calibrationRepo: calibrationRepo}
}

// SaveAnswerRequest upserts one calibration answer
type SaveAnswerRequest struct {
	QuestionKey string
	AnswerValue models.AnswerValue
}

// SaveAnswer validates an answer against its catalog question and upserts it
func (s *CalibrationService) SaveAnswer(ctx context.Context, orgID, programID int64, req SaveAnswerRequest) (*models.CalibrationAnswer, error) {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}

	question, ok := catalog.QuestionByKey(req.QuestionKey)
	if !ok {
		return nil, inputErr("unknown calibration question %q", req.QuestionKey)
	}
	answerText, err := validateAnswer(question, req.AnswerValue)
	if err != nil {
		return nil, err
	}

	answer := &models.CalibrationAnswer{
		ProgramID:   programID,
		QuestionKey: req.QuestionKey,
		AnswerValue: req.AnswerValue,
		AnswerText:  &answerText,
	}
	if err := s.calibrationRepo.Upsert(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// SaveAnswers upserts a batch of answers. Every answer is validated before
// any row is written, so a bad entry rejects the whole batch.
func (s *CalibrationService) SaveAnswers(ctx context.Context, orgID, programID int64, reqs []SaveAnswerRequest) ([]*models.CalibrationAnswer, error) {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, inputErr("answers list is empty")
	}

	answers := make([]*models.CalibrationAnswer, 0, len(reqs))
	for _, req := range reqs {
		question, ok := catalog.QuestionByKey(req.QuestionKey)
		if !ok {
			return nil, inputErr("unknown calibration question %q", req.QuestionKey)
		}
		answerText, err := validateAnswer(question, req.AnswerValue)
		if err != nil {
			return nil, err
		}
		text := answerText
		answers = append(answers, &models.CalibrationAnswer{
			ProgramID:   programID,
			QuestionKey: req.QuestionKey,
			AnswerValue: req.AnswerValue,
			AnswerText:  &text,
		})
	}

	for _, answer := range answers {
		if err := s.calibrationRepo.Upsert(ctx, answer); err != nil {
			return nil, err
		}
	}
	return answers, nil
}

// DeleteAnswer removes a single answer by its catalog question key
func (s *CalibrationService) DeleteAnswer(ctx context.Context, orgID, programID int64, questionKey string) error {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return err
	}
	if _, ok := catalog.QuestionByKey(questionKey); !ok {
		return inputErr("unknown calibration question %q", questionKey)
	}
	deleted, err := s.calibrationRepo.DeleteByKey(ctx, programID, questionKey)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCalibrationAnswerNotFound
	}
	return nil
}

// Session bundles the catalog, the program's saved answers and its
// completion status into one payload for the calibration form
type Session struct {
	Categories []catalog.Category          `json:"categories"`
	Questions  []catalog.Question          `json:"questions"`
	Answers    []*models.CalibrationAnswer `json:"answers"`
	Status     *models.CompletionStatus    `json:"status"`
}

// GetSession assembles the full calibration session of a program
func (s *CalibrationService) GetSession(ctx context.Context, orgID, programID int64) (*Session, error) {
	status, err := s.CompletionStatus(ctx, orgID, programID)
	if err != nil {
		return nil, err
	}
	answers, err := s.calibrationRepo.ListByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	return &Session{
		Categories: catalog.Categories,
		Questions:  catalog.Questions,
		Answers:    answers,
		Status:     status,
	}, nil
}

// ListAnswers retrieves all saved answers of a program
func (s *CalibrationService) ListAnswers(ctx context.Context, orgID, programID int64) ([]*models.CalibrationAnswer, error) {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}
	return s.calibrationRepo.ListByProgram(ctx, programID)
}

// CompletionStatus computes catalog coverage for a program, including which
// questions are still unanswered and the next category to present
func (s *CalibrationService) CompletionStatus(ctx context.Context, orgID, programID int64) (*models.CompletionStatus, error) {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}

	answers, err := s.calibrationRepo.ListByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	// Answers whose keys have dropped out of the catalog do not count.
	known := catalog.QuestionKeys()
	answered := make(map[string]struct{}, len(answers))
	for _, answer := range answers {
		if _, ok := known[answer.QuestionKey]; ok {
			answered[answer.QuestionKey] = struct{}{}
		}
	}

	status := &models.CompletionStatus{
		TotalQuestions:    len(catalog.Questions),
		AnsweredQuestions: len(answered),
	}
	for _, question := range catalog.Questions {
		if _, ok := answered[question.Key]; !ok {
			status.MissingQuestions = append(status.MissingQuestions, question.Key)
		}
	}
	if status.TotalQuestions > 0 {
		status.CompletionPercentage = float64(status.AnsweredQuestions) / float64(status.TotalQuestions) * 100
	}
	status.IsComplete = len(status.MissingQuestions) == 0

	// The next category is the first one, in form order, with an unanswered
	// question.
	for _, category := range catalog.Categories {
		for _, key := range category.Questions {
			if _, ok := answered[key]; !ok {
				next := category.Key
				status.NextCategory = &next
				return status, nil
			}
		}
	}
	return status, nil
}

// Reset clears all calibration answers of a program
func (s *CalibrationService) Reset(ctx context.Context, orgID, programID int64) error {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return err
	}
	return s.calibrationRepo.DeleteByProgram(ctx, programID)
}

func (s *CalibrationService) checkProgram(ctx context.Context, orgID, programID int64) error {
	_, err := s.programRepo.GetByID(ctx, orgID, programID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProgramNotFound
	}
	return err
}

// validateAnswer checks an answer value against the question's type and
// constraints and returns its human-readable rendering
func validateAnswer(question catalog.Question, value models.AnswerValue) (string, error) {
	switch question.Type {
	case catalog.TypeScale:
		if value.ScaleValue == nil {
			return "", inputErr("question %q expects a scale value", question.Key)
		}
		n := *value.ScaleValue
		if n < question.ScaleMin || n > question.ScaleMax {
			return "", inputErr("question %q expects a value between %d and %d", question.Key, question.ScaleMin, question.ScaleMax)
		}
		return strconv.Itoa(n), nil

	case catalog.TypeMultipleChoice:
		if value.ChoiceValue == nil {
			return "", inputErr("question %q expects a choice value", question.Key)
		}
		for _, option := range question.Options {
			if option.Value == *value.ChoiceValue {
				return option.Label, nil
			}
		}
		return "", inputErr("question %q has no option %q", question.Key, *value.ChoiceValue)

	case catalog.TypeText:
		if value.TextValue == nil {
			return "", inputErr("question %q expects a text value", question.Key)
		}
		text := strings.TrimSpace(*value.TextValue)
		if text == "" {
			return "", inputErr("question %q expects non-empty text", question.Key)
		}
		if question.MaxLength > 0 && len(text) > question.MaxLength {
			return "", inputErr("question %q text exceeds %d characters", question.Key, question.MaxLength)
		}
		return text, nil
	}
	return "", inputErr("question %q has unknown type %q", question.Key, question.Type)
}
