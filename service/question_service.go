package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/repository"
)

// MaxQuestionsPerQuestionnaire caps questionnaire size
const MaxQuestionsPerQuestionnaire = 50

// QuestionService handles question CRUD and ordering within a questionnaire
type QuestionService struct {
	programRepo       *repository.ProgramRepository
	questionnaireRepo *repository.QuestionnaireRepository
	questionRepo      *repository.QuestionRepository
}

// NewQuestionService creates a new question service
func NewQuestionService(
	programRepo *repository.ProgramRepository,
	questionnaireRepo *repository.QuestionnaireRepository,
	questionRepo *repository.QuestionRepository,
) *QuestionService {
	return &QuestionService{
		programRepo:       programRepo,
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
	}
}

// CreateQuestionRequest adds a question to a questionnaire. OrderIndex is
// clamped to the end of the list when out of range.
type CreateQuestionRequest struct {
	Text            string
	QuestionType    models.QuestionType
	IsRequired      bool
	OrderIndex      *int
	Options         models.QuestionOptions
	ValidationRules models.ValidationRules
}

// CreateQuestion validates and inserts a question, shifting later questions
// when inserted mid-list
func (s *QuestionService) CreateQuestion(ctx context.Context, orgID, programID, questionnaireID int64, req CreateQuestionRequest) (*models.Question, error) {
	if err := s.checkQuestionnaire(ctx, orgID, programID, questionnaireID); err != nil {
		return nil, err
	}
	if err := validateQuestionPayload(req.Text, req.QuestionType, req.Options); err != nil {
		return nil, err
	}

	count, err := s.questionRepo.CountByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if count >= MaxQuestionsPerQuestionnaire {
		return nil, ErrQuestionLimit
	}

	orderIndex := count
	if req.OrderIndex != nil && *req.OrderIndex >= 0 && *req.OrderIndex < count {
		orderIndex = *req.OrderIndex
	}

	question := &models.Question{
		QuestionnaireID: questionnaireID,
		Text:            strings.TrimSpace(req.Text),
		QuestionType:    req.QuestionType,
		IsRequired:      req.IsRequired,
		OrderIndex:      orderIndex,
		Options:         req.Options,
		ValidationRules: req.ValidationRules,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListQuestions retrieves a questionnaire's questions in display order
func (s *QuestionService) ListQuestions(ctx context.Context, orgID, programID, questionnaireID int64) ([]*models.Question, error) {
	if err := s.checkQuestionnaire(ctx, orgID, programID, questionnaireID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByQuestionnaire(ctx, questionnaireID)
}

// UpdateQuestionRequest changes a question's content
type UpdateQuestionRequest struct {
	Text            string
	QuestionType    models.QuestionType
	IsRequired      bool
	Options         models.QuestionOptions
	ValidationRules models.ValidationRules
}

// UpdateQuestion updates a question's content fields
func (s *QuestionService) UpdateQuestion(ctx context.Context, orgID, programID, questionnaireID, id int64, req UpdateQuestionRequest) (*models.Question, error) {
	if err := s.checkQuestionnaire(ctx, orgID, programID, questionnaireID); err != nil {
		return nil, err
	}
	if err := validateQuestionPayload(req.Text, req.QuestionType, req.Options); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(ctx, questionnaireID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	question.Text = strings.TrimSpace(req.Text)
	question.QuestionType = req.QuestionType
	question.IsRequired = req.IsRequired
	question.Options = req.Options
	question.ValidationRules = req.ValidationRules
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// MoveQuestion moves a question to a new position, clamped to the list bounds
func (s *QuestionService) MoveQuestion(ctx context.Context, orgID, programID, questionnaireID, id int64, newIndex int) error {
	if err := s.checkQuestionnaire(ctx, orgID, programID, questionnaireID); err != nil {
		return err
	}

	question, err := s.questionRepo.GetByID(ctx, questionnaireID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return err
	}

	count, err := s.questionRepo.CountByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return err
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= count {
		newIndex = count - 1
	}

	return s.questionRepo.Move(ctx, questionnaireID, id, question.OrderIndex, newIndex)
}

// ReorderQuestions applies a full ordering. orderedIDs must be a permutation
// of the questionnaire's question IDs.
func (s *QuestionService) ReorderQuestions(ctx context.Context, orgID, programID, questionnaireID int64, orderedIDs []int64) error {
	if err := s.checkQuestionnaire(ctx, orgID, programID, questionnaireID); err != nil {
		return err
	}

	existing, err := s.questionRepo.ListByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(existing) {
		return inputErr("reorder must list all %d questions, got %d", len(existing), len(orderedIDs))
	}
	known := make(map[int64]struct{}, len(existing))
	for _, q := range existing {
		known[q.ID] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return ErrQuestionNotFound
		}
		if _, dup := seen[id]; dup {
			return inputErr("question %d listed twice in reorder", id)
		}
		seen[id] = struct{}{}
	}

	return s.questionRepo.Reorder(ctx, questionnaireID, orderedIDs)
}

// DeleteQuestion removes a question and closes its ordering gap
func (s *QuestionService) DeleteQuestion(ctx context.Context, orgID, programID, questionnaireID, id int64) error {
	if err := s.checkQuestionnaire(ctx, orgID, programID, questionnaireID); err != nil {
		return err
	}

	question, err := s.questionRepo.GetByID(ctx, questionnaireID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return err
	}

	return s.questionRepo.Delete(ctx, questionnaireID, id, question.OrderIndex)
}

func (s *QuestionService) checkQuestionnaire(ctx context.Context, orgID, programID, questionnaireID int64) error {
	if _, err := s.programRepo.GetByID(ctx, orgID, programID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProgramNotFound
		}
		return err
	}
	if _, err := s.questionnaireRepo.GetByID(ctx, programID, questionnaireID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionnaireNotFound
		}
		return err
	}
	return nil
}

func validateQuestionPayload(text string, questionType models.QuestionType, options models.QuestionOptions) error {
	if strings.TrimSpace(text) == "" {
		return inputErr("question text is required")
	}
	if !questionType.Valid() {
		return inputErr("unknown question type %q", questionType)
	}

	switch questionType {
	case models.QuestionTypeMultipleChoice:
		choices, ok := options["choices"].([]interface{})
		if !ok || len(choices) < 2 {
			return inputErr("multiple choice questions need at least 2 choices")
		}
	case models.QuestionTypeScale:
		min, okMin := numberOption(options, "min")
		max, okMax := numberOption(options, "max")
		if !okMin || !okMax || min >= max {
			return inputErr("scale questions need numeric min and max with min < max")
		}
	}
	return nil
}

func numberOption(options models.QuestionOptions, key string) (float64, bool) {
	switch v := options[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
