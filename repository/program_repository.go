package repository

import (
	"context"

	"github.com/Mattiasalardi/VDP/models"
)

// ProgramRepository handles database operations for programs
type ProgramRepository struct {
	db DB
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Create creates a new program
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO programs (organization_id, name, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		program.OrganizationID,
		program.Name,
		program.Description,
		program.IsActive,
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)

	return err
}

// GetByID retrieves a program scoped to its owning organization
func (r *ProgramRepository) GetByID(ctx context.Context, orgID, id int64) (*models.Program, error) {
	program := &models.Program{}
	query := `
		SELECT id, organization_id, name, description, is_active, created_at, updated_at
		FROM programs
		WHERE id = $1 AND organization_id = $2`

	err := r.db.QueryRow(ctx, query, id, orgID).Scan(
		&program.ID,
		&program.OrganizationID,
		&program.Name,
		&program.Description,
		&program.IsActive,
		&program.CreatedAt,
		&program.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return program, nil
}

// ListByOrganization retrieves all programs of an organization
func (r *ProgramRepository) ListByOrganization(ctx context.Context, orgID int64) ([]*models.Program, error) {
	query := `
		SELECT id, organization_id, name, description, is_active, created_at, updated_at
		FROM programs
		WHERE organization_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		program := &models.Program{}
		err := rows.Scan(
			&program.ID,
			&program.OrganizationID,
			&program.Name,
			&program.Description,
			&program.IsActive,
			&program.CreatedAt,
			&program.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		programs = append(programs, program)
	}

	return programs, rows.Err()
}

// Update updates a program's editable fields
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	query := `
		UPDATE programs SET
			name = $3,
			description = $4,
			is_active = $5,
			updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		program.ID,
		program.OrganizationID,
		program.Name,
		program.Description,
		program.IsActive,
	).Scan(&program.UpdatedAt)
}

// Delete deletes a program and, via FK cascade, everything under it
func (r *ProgramRepository) Delete(ctx context.Context, orgID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1 AND organization_id = $2`, id, orgID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Deactivate marks a program inactive without touching its data
func (r *ProgramRepository) Deactivate(ctx context.Context, orgID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE programs SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND organization_id = $2`, id, orgID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Stats computes aggregate counters for one program. Calibration completion
// is the answered fraction of totalCalibration catalog questions.
func (r *ProgramRepository) Stats(ctx context.Context, programID int64, totalCalibration int) (*models.ProgramStats, error) {
	stats := &models.ProgramStats{}
	var answered int
	query := `
		SELECT
			(SELECT COUNT(*) FROM questionnaires WHERE program_id = $1),
			(SELECT COUNT(*) FROM calibration_answers WHERE program_id = $1),
			EXISTS (SELECT 1 FROM ai_guidelines WHERE program_id = $1 AND is_active = TRUE),
			(SELECT COUNT(*) FROM applications WHERE program_id = $1)`

	err := r.db.QueryRow(ctx, query, programID).Scan(
		&stats.QuestionnaireCount,
		&answered,
		&stats.HasActiveGuidelines,
		&stats.ApplicationCount,
	)
	if err != nil {
		return nil, err
	}

	if totalCalibration > 0 {
		stats.CalibrationCompletion = float64(answered) / float64(totalCalibration)
	}
	return stats, nil
}
