package repository

import (
	"context"

	"github.com/Mattiasalardi/VDP/models"
)

// ApplicationRepository handles database operations for startup applications
type ApplicationRepository struct {
	db DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create creates a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (program_id, questionnaire_id, unique_id, startup_name, contact_email, is_submitted)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		app.ProgramID,
		app.QuestionnaireID,
		app.UniqueID,
		app.StartupName,
		app.ContactEmail,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)

	return err
}

// GetByUniqueID retrieves an application by its public unique_id
func (r *ApplicationRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*models.Application, error) {
	app := &models.Application{}
	query := `
		SELECT id, program_id, questionnaire_id, unique_id, startup_name, contact_email,
			is_submitted, submitted_at, created_at, updated_at
		FROM applications
		WHERE unique_id = $1`

	err := r.db.QueryRow(ctx, query, uniqueID).Scan(
		&app.ID,
		&app.ProgramID,
		&app.QuestionnaireID,
		&app.UniqueID,
		&app.StartupName,
		&app.ContactEmail,
		&app.IsSubmitted,
		&app.SubmittedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return app, nil
}

// ListByProgram retrieves all applications of a program, newest first
func (r *ApplicationRepository) ListByProgram(ctx context.Context, programID int64) ([]*models.Application, error) {
	query := `
		SELECT id, program_id, questionnaire_id, unique_id, startup_name, contact_email,
			is_submitted, submitted_at, created_at, updated_at
		FROM applications
		WHERE program_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app := &models.Application{}
		err := rows.Scan(
			&app.ID,
			&app.ProgramID,
			&app.QuestionnaireID,
			&app.UniqueID,
			&app.StartupName,
			&app.ContactEmail,
			&app.IsSubmitted,
			&app.SubmittedAt,
			&app.CreatedAt,
			&app.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

// MarkSubmitted finalizes an application. Returns false if it was already
// submitted.
func (r *ApplicationRepository) MarkSubmitted(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications SET is_submitted = TRUE, submitted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_submitted = FALSE`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
