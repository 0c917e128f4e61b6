package repository

import (
	"context"

	"github.com/Mattiasalardi/VDP/models"
)

// CalibrationRepository handles database operations for calibration answers
type CalibrationRepository struct {
	db DB
}

// NewCalibrationRepository creates a new calibration repository
func NewCalibrationRepository(db DB) *CalibrationRepository {
	return &CalibrationRepository{db: db}
}

// Upsert saves one answer, replacing any previous answer to the same question
func (r *CalibrationRepository) Upsert(ctx context.Context, answer *models.CalibrationAnswer) error {
	query := `
		INSERT INTO calibration_answers (program_id, question_key, answer_value, answer_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (program_id, question_key)
		DO UPDATE SET answer_value = EXCLUDED.answer_value, answer_text = EXCLUDED.answer_text, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		answer.ProgramID,
		answer.QuestionKey,
		answer.AnswerValue,
		answer.AnswerText,
	).Scan(&answer.ID, &answer.CreatedAt, &answer.UpdatedAt)

	return err
}

// ListByProgram retrieves all calibration answers of a program
func (r *CalibrationRepository) ListByProgram(ctx context.Context, programID int64) ([]*models.CalibrationAnswer, error) {
	query := `
		SELECT id, program_id, question_key, answer_value, answer_text, created_at, updated_at
		FROM calibration_answers
		WHERE program_id = $1
		ORDER BY question_key ASC`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*models.CalibrationAnswer
	for rows.Next() {
		answer := &models.CalibrationAnswer{}
		err := rows.Scan(
			&answer.ID,
			&answer.ProgramID,
			&answer.QuestionKey,
			&answer.AnswerValue,
			&answer.AnswerText,
			&answer.CreatedAt,
			&answer.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}

	return answers, rows.Err()
}

// DeleteByKey removes one answer by question key. Returns whether a row was
// deleted.
func (r *CalibrationRepository) DeleteByKey(ctx context.Context, programID int64, questionKey string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM calibration_answers WHERE program_id = $1 AND question_key = $2`, programID, questionKey)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByProgram clears all calibration answers of a program
func (r *CalibrationRepository) DeleteByProgram(ctx context.Context, programID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM calibration_answers WHERE program_id = $1`, programID)
	return err
}
