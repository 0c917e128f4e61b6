package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/repository"
)

// ApplicationService manages startup applications and their answers. The
// public flow is keyed by the application's non-guessable unique_id instead
// of an authenticated session.
type ApplicationService struct {
	programRepo       *repository.ProgramRepository
	questionnaireRepo *repository.QuestionnaireRepository
	questionRepo      *repository.QuestionRepository
	applicationRepo   *repository.ApplicationRepository
	responseRepo      *repository.ResponseRepository
}

// NewApplicationService creates a new application service
func NewApplicationService(
	programRepo *repository.ProgramRepository,
	questionnaireRepo *repository.QuestionnaireRepository,
	questionRepo *repository.QuestionRepository,
	applicationRepo *repository.ApplicationRepository,
	responseRepo *repository.ResponseRepository,
) *ApplicationService {
	return &ApplicationService{
		programRepo:       programRepo,
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
		applicationRepo:   applicationRepo,
		responseRepo:      responseRepo,
	}
}

// CreateApplicationRequest opens a new application slot
type CreateApplicationRequest struct {
	QuestionnaireID int64
	StartupName     string
	ContactEmail    string
}

// CreateApplication creates an application with a fresh public unique_id
func (s *ApplicationService) CreateApplication(ctx context.Context, orgID, programID int64, req CreateApplicationRequest) (*models.Application, error) {
	if _, err := s.programRepo.GetByID(ctx, orgID, programID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if _, err := s.questionnaireRepo.GetByID(ctx, programID, req.QuestionnaireID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, err
	}

	app := &models.Application{
		ProgramID:       programID,
		QuestionnaireID: req.QuestionnaireID,
		UniqueID:        uuid.NewString(),
		StartupName:     strings.TrimSpace(req.StartupName),
		ContactEmail:    strings.ToLower(strings.TrimSpace(req.ContactEmail)),
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	zap.L().Info("application created",
		zap.Int64("program_id", programID),
		zap.String("unique_id", app.UniqueID))
	return app, nil
}

// ListApplications retrieves a program's applications
func (s *ApplicationService) ListApplications(ctx context.Context, orgID, programID int64) ([]*models.Application, error) {
	if _, err := s.programRepo.GetByID(ctx, orgID, programID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return s.applicationRepo.ListByProgram(ctx, programID)
}

// PublicApplication is the applicant-facing view: the application plus its
// questionnaire's questions and any answers already saved
type PublicApplication struct {
	Application *models.Application `json:"application"`
	Questions   []*models.Question  `json:"questions"`
	Responses   []*models.Response  `json:"responses"`
}

// GetPublicApplication loads the applicant view by public unique_id
func (s *ApplicationService) GetPublicApplication(ctx context.Context, uniqueID string) (*PublicApplication, error) {
	app, err := s.findByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByQuestionnaire(ctx, app.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	return &PublicApplication{Application: app, Questions: questions, Responses: responses}, nil
}

// SaveResponse upserts one answer on an unsubmitted application
func (s *ApplicationService) SaveResponse(ctx context.Context, uniqueID string, questionID int64, value models.ResponseValue) (*models.Response, error) {
	app, err := s.findByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, err
	}
	if app.IsSubmitted {
		return nil, ErrAlreadySubmitted
	}

	question, err := s.questionRepo.GetByID(ctx, app.QuestionnaireID, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	text, err := validateResponse(question, value)
	if err != nil {
		return nil, err
	}

	response := &models.Response{
		ApplicationID: app.ID,
		QuestionID:    question.ID,
		ResponseValue: value,
		ResponseText:  &text,
	}
	if err := s.responseRepo.Upsert(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

// Submit finalizes an application once every required question is answered
func (s *ApplicationService) Submit(ctx context.Context, uniqueID string) (*models.Application, error) {
	app, err := s.findByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, err
	}
	if app.IsSubmitted {
		return nil, ErrAlreadySubmitted
	}

	questions, err := s.questionRepo.ListByQuestionnaire(ctx, app.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	answered := make(map[int64]struct{}, len(responses))
	for _, response := range responses {
		answered[response.QuestionID] = struct{}{}
	}
	for _, question := range questions {
		if !question.IsRequired {
			continue
		}
		if _, ok := answered[question.ID]; !ok {
			return nil, inputErr("required question %d is unanswered", question.ID)
		}
	}

	submitted, err := s.applicationRepo.MarkSubmitted(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if !submitted {
		return nil, ErrAlreadySubmitted
	}

	return s.findByUniqueID(ctx, uniqueID)
}

func (s *ApplicationService) findByUniqueID(ctx context.Context, uniqueID string) (*models.Application, error) {
	app, err := s.applicationRepo.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

// validateResponse checks an answer against its question's type and returns
// a human-readable rendering
func validateResponse(question *models.Question, value models.ResponseValue) (string, error) {
	switch question.QuestionType {
	case models.QuestionTypeText:
		text, ok := value.Raw.(string)
		if !ok || strings.TrimSpace(text) == "" {
			return "", inputErr("question %d expects text", question.ID)
		}
		return strings.TrimSpace(text), nil

	case models.QuestionTypeMultipleChoice:
		switch v := value.Raw.(type) {
		case string:
			return v, nil
		case []interface{}:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				text, ok := item.(string)
				if !ok {
					return "", inputErr("question %d expects string choices", question.ID)
				}
				parts = append(parts, text)
			}
			if len(parts) == 0 {
				return "", inputErr("question %d expects at least one choice", question.ID)
			}
			return strings.Join(parts, ", "), nil
		}
		return "", inputErr("question %d expects a choice or list of choices", question.ID)

	case models.QuestionTypeScale:
		n, ok := value.Raw.(float64)
		if !ok {
			return "", inputErr("question %d expects a number", question.ID)
		}
		if min, found := numberOption(question.Options, "min"); found && n < min {
			return "", inputErr("question %d value below minimum", question.ID)
		}
		if max, found := numberOption(question.Options, "max"); found && n > max {
			return "", inputErr("question %d value above maximum", question.ID)
		}
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", n), "0"), "."), nil

	case models.QuestionTypeFileUpload:
		// File uploads are referenced by name only; binary handling is out of
		// scope for the applicant API.
		name, ok := value.Raw.(string)
		if !ok || name == "" {
			return "", inputErr("question %d expects a file reference", question.ID)
		}
		return name, nil
	}
	return "", inputErr("question %d has unknown type %q", question.ID, question.QuestionType)
}
