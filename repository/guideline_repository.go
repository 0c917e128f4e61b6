package repository

import (
	"context"
	"errors"

	"github.com/Mattiasalardi/VDP/models"
	"github.com/jackc/pgx/v5"
)

// ErrVersionNotFound is returned when a guideline version does not exist for
// the program
var ErrVersionNotFound = errors.New("guideline version not found")

// GuidelineRepository persists versioned scoring guidelines. One version is a
// batch of category rows sharing the same version number; at most one version
// per program is active. Concurrent saves and activations serialize on the
// program row lock.
type GuidelineRepository struct {
	db DB
}

// NewGuidelineRepository creates a new guideline repository
func NewGuidelineRepository(db DB) *GuidelineRepository {
	return &GuidelineRepository{db: db}
}

// SaveVersion stores guidelines as the next version for the program. With
// activate set, prior versions are deactivated in the same transaction.
// Returns the assigned version number.
func (r *GuidelineRepository) SaveVersion(ctx context.Context, programID int64, guidelines models.GeneratedGuidelines, promptTemplate string, activate bool) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM programs WHERE id = $1 FOR UPDATE`, programID).Scan(&lockedID)
	if err != nil {
		return 0, err
	}

	var version int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0) + 1 FROM ai_guidelines WHERE program_id = $1`,
		programID).Scan(&version)
	if err != nil {
		return 0, err
	}

	if activate {
		_, err = tx.Exec(ctx, `
			UPDATE ai_guidelines SET is_active = FALSE, updated_at = NOW()
			WHERE program_id = $1 AND is_active = TRUE`,
			programID)
		if err != nil {
			return 0, err
		}
	}

	for _, category := range guidelines.Categories {
		criteria := models.CategoryCriteria{
			Name:         category.Name,
			Criteria:     category.Criteria,
			RedFlags:     category.RedFlags,
			ScoringGuide: category.ScoringGuide,
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO ai_guidelines (program_id, section, weight, criteria, prompt_template, is_active, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			programID, category.Section, category.Weight, criteria, promptTemplate, activate, version)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return version, nil
}

// ActivateVersion makes the given version the single active one
func (r *GuidelineRepository) ActivateVersion(ctx context.Context, programID int64, version int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM programs WHERE id = $1 FOR UPDATE`, programID).Scan(&lockedID)
	if err != nil {
		return err
	}

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM ai_guidelines WHERE program_id = $1 AND version = $2)`,
		programID, version).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrVersionNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE ai_guidelines SET is_active = FALSE, updated_at = NOW()
		WHERE program_id = $1 AND is_active = TRUE`,
		programID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE ai_guidelines SET is_active = TRUE, updated_at = NOW()
		WHERE program_id = $1 AND version = $2`,
		programID, version)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetActive retrieves the currently active version, or ErrVersionNotFound if
// the program has none
func (r *GuidelineRepository) GetActive(ctx context.Context, programID int64) (*models.GuidelinesVersion, error) {
	return r.getVersion(ctx, programID, `
		SELECT id, program_id, section, weight, criteria, prompt_template, is_active, version, created_at, updated_at
		FROM ai_guidelines
		WHERE program_id = $1 AND is_active = TRUE
		ORDER BY id ASC`, programID)
}

// GetVersion retrieves one specific version
func (r *GuidelineRepository) GetVersion(ctx context.Context, programID int64, version int) (*models.GuidelinesVersion, error) {
	return r.getVersion(ctx, programID, `
		SELECT id, program_id, section, weight, criteria, prompt_template, is_active, version, created_at, updated_at
		FROM ai_guidelines
		WHERE program_id = $1 AND version = $2
		ORDER BY id ASC`, programID, version)
}

func (r *GuidelineRepository) getVersion(ctx context.Context, programID int64, query string, args ...any) (*models.GuidelinesVersion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guidelines []*models.Guideline
	for rows.Next() {
		g := &models.Guideline{}
		err := rows.Scan(
			&g.ID,
			&g.ProgramID,
			&g.Section,
			&g.Weight,
			&g.Criteria,
			&g.PromptTemplate,
			&g.IsActive,
			&g.Version,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		guidelines = append(guidelines, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(guidelines) == 0 {
		return nil, ErrVersionNotFound
	}

	return assembleVersion(programID, guidelines), nil
}

// ListVersions returns summaries of every saved version, newest first
func (r *GuidelineRepository) ListVersions(ctx context.Context, programID int64) ([]*models.GuidelinesVersionSummary, error) {
	query := `
		SELECT version, BOOL_OR(is_active), COUNT(*), MIN(created_at)
		FROM ai_guidelines
		WHERE program_id = $1
		GROUP BY version
		ORDER BY version DESC`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.GuidelinesVersionSummary
	for rows.Next() {
		s := &models.GuidelinesVersionSummary{}
		if err := rows.Scan(&s.Version, &s.IsActive, &s.CategoryCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func assembleVersion(programID int64, guidelines []*models.Guideline) *models.GuidelinesVersion {
	version := &models.GuidelinesVersion{
		ProgramID: programID,
		Version:   guidelines[0].Version,
		IsActive:  guidelines[0].IsActive,
		CreatedAt: guidelines[0].CreatedAt,
		UpdatedAt: guidelines[0].UpdatedAt,
	}
	for _, g := range guidelines {
		version.Guidelines.Categories = append(version.Guidelines.Categories, g.Category())
	}
	return version
}

// IsNotFound reports whether err means no rows matched
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
