package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/repository"
)

// QuestionnaireService handles questionnaire CRUD within a program
type QuestionnaireService struct {
	programRepo       *repository.ProgramRepository
	questionnaireRepo *repository.QuestionnaireRepository
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(programRepo *repository.ProgramRepository, questionnaireRepo *repository.QuestionnaireRepository) *QuestionnaireService {
	return &QuestionnaireService{programRepo: programRepo, questionnaireRepo: questionnaireRepo}
}

// CreateQuestionnaireRequest creates a new questionnaire
type CreateQuestionnaireRequest struct {
	Name        string
	Description *string
}

// CreateQuestionnaire creates a questionnaire under a program
func (s *QuestionnaireService) CreateQuestionnaire(ctx context.Context, orgID, programID int64, req CreateQuestionnaireRequest) (*models.Questionnaire, error) {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}

	questionnaire := &models.Questionnaire{
		ProgramID:   programID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.questionnaireRepo.Create(ctx, questionnaire); err != nil {
		return nil, err
	}
	return questionnaire, nil
}

// GetQuestionnaire retrieves one questionnaire
func (s *QuestionnaireService) GetQuestionnaire(ctx context.Context, orgID, programID, id int64) (*models.Questionnaire, error) {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}

	questionnaire, err := s.questionnaireRepo.GetByID(ctx, programID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, err
	}
	return questionnaire, nil
}

// ListQuestionnaires retrieves all questionnaires of a program
func (s *QuestionnaireService) ListQuestionnaires(ctx context.Context, orgID, programID int64) ([]*models.Questionnaire, error) {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}
	return s.questionnaireRepo.ListByProgram(ctx, programID)
}

// UpdateQuestionnaireRequest changes editable questionnaire fields
type UpdateQuestionnaireRequest struct {
	Name        string
	Description *string
	IsActive    bool
}

// UpdateQuestionnaire updates a questionnaire
func (s *QuestionnaireService) UpdateQuestionnaire(ctx context.Context, orgID, programID, id int64, req UpdateQuestionnaireRequest) (*models.Questionnaire, error) {
	questionnaire, err := s.GetQuestionnaire(ctx, orgID, programID, id)
	if err != nil {
		return nil, err
	}

	questionnaire.Name = strings.TrimSpace(req.Name)
	questionnaire.Description = req.Description
	questionnaire.IsActive = req.IsActive
	if err := s.questionnaireRepo.Update(ctx, questionnaire); err != nil {
		return nil, err
	}
	return questionnaire, nil
}

// DeleteQuestionnaire removes a questionnaire and its questions
func (s *QuestionnaireService) DeleteQuestionnaire(ctx context.Context, orgID, programID, id int64) error {
	if err := s.checkProgram(ctx, orgID, programID); err != nil {
		return err
	}

	deleted, err := s.questionnaireRepo.Delete(ctx, programID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrQuestionnaireNotFound
	}
	return nil
}

func (s *QuestionnaireService) checkProgram(ctx context.Context, orgID, programID int64) error {
	_, err := s.programRepo.GetByID(ctx, orgID, programID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProgramNotFound
	}
	return err
}
