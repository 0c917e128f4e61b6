package repository

import (
	"context"

	"github.com/Mattiasalardi/VDP/models"
)

// ResponseRepository handles database operations for application answers
type ResponseRepository struct {
	db DB
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(db DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Upsert saves one answer, replacing any previous answer to the same question
func (r *ResponseRepository) Upsert(ctx context.Context, response *models.Response) error {
	query := `
		INSERT INTO responses (application_id, question_id, response_value, response_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (application_id, question_id)
		DO UPDATE SET response_value = EXCLUDED.response_value, response_text = EXCLUDED.response_text, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		response.ApplicationID,
		response.QuestionID,
		response.ResponseValue,
		response.ResponseText,
	).Scan(&response.ID, &response.CreatedAt, &response.UpdatedAt)

	return err
}

// ListByApplication retrieves all answers of an application
func (r *ResponseRepository) ListByApplication(ctx context.Context, applicationID int64) ([]*models.Response, error) {
	query := `
		SELECT id, application_id, question_id, response_value, response_text, created_at, updated_at
		FROM responses
		WHERE application_id = $1
		ORDER BY question_id ASC`

	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*models.Response
	for rows.Next() {
		response := &models.Response{}
		err := rows.Scan(
			&response.ID,
			&response.ApplicationID,
			&response.QuestionID,
			&response.ResponseValue,
			&response.ResponseText,
			&response.CreatedAt,
			&response.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, rows.Err()
}
