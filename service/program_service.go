package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Mattiasalardi/VDP/catalog"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/repository"
)

// ProgramService handles program CRUD, always scoped to the organization
// from the access token
type ProgramService struct {
	programRepo *repository.ProgramRepository
}

// NewProgramService creates a new program service
func NewProgramService(programRepo *repository.ProgramRepository) *ProgramService {
	return &ProgramService{programRepo: programRepo}
}

// CreateProgramRequest creates a new program
type CreateProgramRequest struct {
	Name        string
	Description *string
}

// CreateProgram creates a program for the organization
func (s *ProgramService) CreateProgram(ctx context.Context, orgID int64, req CreateProgramRequest) (*models.Program, error) {
	program := &models.Program{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		IsActive:       true,
	}
	if err := s.programRepo.Create(ctx, program); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrProgramNameTaken
		}
		return nil, err
	}
	return program, nil
}

// GetProgram retrieves one program with its aggregate statistics
func (s *ProgramService) GetProgram(ctx context.Context, orgID, id int64) (*models.ProgramWithStats, error) {
	program, err := s.programRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	stats, err := s.programRepo.Stats(ctx, program.ID, len(catalog.Questions))
	if err != nil {
		return nil, err
	}
	return &models.ProgramWithStats{Program: *program, ProgramStats: *stats}, nil
}

// ListPrograms retrieves all of the organization's programs with statistics
func (s *ProgramService) ListPrograms(ctx context.Context, orgID int64) ([]*models.ProgramWithStats, error) {
	programs, err := s.programRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.ProgramWithStats, 0, len(programs))
	for _, program := range programs {
		stats, err := s.programRepo.Stats(ctx, program.ID, len(catalog.Questions))
		if err != nil {
			return nil, err
		}
		out = append(out, &models.ProgramWithStats{Program: *program, ProgramStats: *stats})
	}
	return out, nil
}

// UpdateProgramRequest changes editable program fields
type UpdateProgramRequest struct {
	Name        string
	Description *string
	IsActive    bool
}

// UpdateProgram updates a program
func (s *ProgramService) UpdateProgram(ctx context.Context, orgID, id int64, req UpdateProgramRequest) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	program.Name = strings.TrimSpace(req.Name)
	program.Description = req.Description
	program.IsActive = req.IsActive
	if err := s.programRepo.Update(ctx, program); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrProgramNameTaken
		}
		return nil, err
	}
	return program, nil
}

// DeleteProgram removes a program. The default is a soft delete that marks
// the program inactive; a hard delete drops the row and, via FK cascade,
// everything under it.
func (s *ProgramService) DeleteProgram(ctx context.Context, orgID, id int64, hard bool) error {
	var deleted bool
	var err error
	if hard {
		deleted, err = s.programRepo.Delete(ctx, orgID, id)
	} else {
		deleted, err = s.programRepo.Deactivate(ctx, orgID, id)
	}
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProgramNotFound
	}
	return nil
}
