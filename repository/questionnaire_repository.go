package repository

import (
	"context"

	"github.com/Mattiasalardi/VDP/models"
)

// QuestionnaireRepository handles database operations for questionnaires
type QuestionnaireRepository struct {
	db DB
}

// NewQuestionnaireRepository creates a new questionnaire repository
func NewQuestionnaireRepository(db DB) *QuestionnaireRepository {
	return &QuestionnaireRepository{db: db}
}

// Create creates a new questionnaire
func (r *QuestionnaireRepository) Create(ctx context.Context, q *models.Questionnaire) error {
	query := `
		INSERT INTO questionnaires (program_id, name, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		q.ProgramID,
		q.Name,
		q.Description,
		q.IsActive,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)

	return err
}

// GetByID retrieves a questionnaire by ID within a program
func (r *QuestionnaireRepository) GetByID(ctx context.Context, programID, id int64) (*models.Questionnaire, error) {
	q := &models.Questionnaire{}
	query := `
		SELECT id, program_id, name, description, is_active, created_at, updated_at
		FROM questionnaires
		WHERE id = $1 AND program_id = $2`

	err := r.db.QueryRow(ctx, query, id, programID).Scan(
		&q.ID,
		&q.ProgramID,
		&q.Name,
		&q.Description,
		&q.IsActive,
		&q.CreatedAt,
		&q.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return q, nil
}

// ListByProgram retrieves all questionnaires of a program
func (r *QuestionnaireRepository) ListByProgram(ctx context.Context, programID int64) ([]*models.Questionnaire, error) {
	query := `
		SELECT id, program_id, name, description, is_active, created_at, updated_at
		FROM questionnaires
		WHERE program_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questionnaires []*models.Questionnaire
	for rows.Next() {
		q := &models.Questionnaire{}
		err := rows.Scan(
			&q.ID,
			&q.ProgramID,
			&q.Name,
			&q.Description,
			&q.IsActive,
			&q.CreatedAt,
			&q.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		questionnaires = append(questionnaires, q)
	}

	return questionnaires, rows.Err()
}

// Update updates a questionnaire's editable fields
func (r *QuestionnaireRepository) Update(ctx context.Context, q *models.Questionnaire) error {
	query := `
		UPDATE questionnaires SET
			name = $3,
			description = $4,
			is_active = $5,
			updated_at = NOW()
		WHERE id = $1 AND program_id = $2
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		q.ID,
		q.ProgramID,
		q.Name,
		q.Description,
		q.IsActive,
	).Scan(&q.UpdatedAt)
}

// Delete deletes a questionnaire and its questions
func (r *QuestionnaireRepository) Delete(ctx context.Context, programID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM questionnaires WHERE id = $1 AND program_id = $2`, id, programID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
