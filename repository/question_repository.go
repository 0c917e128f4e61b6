package repository

import (
	"context"
	"fmt"

	"github.com/Mattiasalardi/VDP/models"
)

// QuestionRepository handles database operations for questionnaire questions.
// Mutations keep order_index a dense 0..n-1 sequence per questionnaire, so
// every multi-row shift runs inside a transaction.
type QuestionRepository struct {
	db DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CountByQuestionnaire returns the number of questions in a questionnaire
func (r *QuestionRepository) CountByQuestionnaire(ctx context.Context, questionnaireID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE questionnaire_id = $1`, questionnaireID).Scan(&count)
	return count, err
}

// Create inserts a question at question.OrderIndex, shifting later questions
// down to make room
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE questions SET order_index = order_index + 1, updated_at = NOW()
		WHERE questionnaire_id = $1 AND order_index >= $2`,
		question.QuestionnaireID, question.OrderIndex)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO questions (questionnaire_id, text, question_type, is_required, order_index, options, validation_rules)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		question.QuestionnaireID,
		question.Text,
		question.QuestionType,
		question.IsRequired,
		question.OrderIndex,
		question.Options,
		question.ValidationRules,
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a question by ID within a questionnaire
func (r *QuestionRepository) GetByID(ctx context.Context, questionnaireID, id int64) (*models.Question, error) {
	question := &models.Question{}
	query := `
		SELECT id, questionnaire_id, text, question_type, is_required, order_index,
			options, validation_rules, created_at, updated_at
		FROM questions
		WHERE id = $1 AND questionnaire_id = $2`

	err := r.db.QueryRow(ctx, query, id, questionnaireID).Scan(
		&question.ID,
		&question.QuestionnaireID,
		&question.Text,
		&question.QuestionType,
		&question.IsRequired,
		&question.OrderIndex,
		&question.Options,
		&question.ValidationRules,
		&question.CreatedAt,
		&question.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return question, nil
}

// ListByQuestionnaire retrieves all questions of a questionnaire in display order
func (r *QuestionRepository) ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*models.Question, error) {
	query := `
		SELECT id, questionnaire_id, text, question_type, is_required, order_index,
			options, validation_rules, created_at, updated_at
		FROM questions
		WHERE questionnaire_id = $1
		ORDER BY order_index ASC`

	rows, err := r.db.Query(ctx, query, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		question := &models.Question{}
		err := rows.Scan(
			&question.ID,
			&question.QuestionnaireID,
			&question.Text,
			&question.QuestionType,
			&question.IsRequired,
			&question.OrderIndex,
			&question.Options,
			&question.ValidationRules,
			&question.CreatedAt,
			&question.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

// Update updates a question's content fields. Order changes go through Move
// or Reorder instead.
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	query := `
		UPDATE questions SET
			text = $3,
			question_type = $4,
			is_required = $5,
			options = $6,
			validation_rules = $7,
			updated_at = NOW()
		WHERE id = $1 AND questionnaire_id = $2
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		question.ID,
		question.QuestionnaireID,
		question.Text,
		question.QuestionType,
		question.IsRequired,
		question.Options,
		question.ValidationRules,
	).Scan(&question.UpdatedAt)
}

// Move moves a question from oldIndex to newIndex, shifting the questions in
// between by one position
func (r *QuestionRepository) Move(ctx context.Context, questionnaireID, id int64, oldIndex, newIndex int) error {
	if oldIndex == newIndex {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if newIndex < oldIndex {
		_, err = tx.Exec(ctx, `
			UPDATE questions SET order_index = order_index + 1, updated_at = NOW()
			WHERE questionnaire_id = $1 AND order_index >= $2 AND order_index < $3`,
			questionnaireID, newIndex, oldIndex)
	} else {
		_, err = tx.Exec(ctx, `
			UPDATE questions SET order_index = order_index - 1, updated_at = NOW()
			WHERE questionnaire_id = $1 AND order_index > $2 AND order_index <= $3`,
			questionnaireID, oldIndex, newIndex)
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE questions SET order_index = $3, updated_at = NOW()
		WHERE id = $1 AND questionnaire_id = $2`,
		id, questionnaireID, newIndex)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a question and closes the gap it leaves in the ordering
func (r *QuestionRepository) Delete(ctx context.Context, questionnaireID, id int64, orderIndex int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1 AND questionnaire_id = $2`, id, questionnaireID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %d not found in questionnaire %d", id, questionnaireID)
	}

	_, err = tx.Exec(ctx, `
		UPDATE questions SET order_index = order_index - 1, updated_at = NOW()
		WHERE questionnaire_id = $1 AND order_index > $2`,
		questionnaireID, orderIndex)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Reorder assigns order_index following the position of each ID in orderedIDs
func (r *QuestionRepository) Reorder(ctx context.Context, questionnaireID int64, orderedIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for index, id := range orderedIDs {
		tag, err := tx.Exec(ctx, `
			UPDATE questions SET order_index = $3, updated_at = NOW()
			WHERE id = $1 AND questionnaire_id = $2`,
			id, questionnaireID, index)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("question %d not found in questionnaire %d", id, questionnaireID)
		}
	}

	return tx.Commit(ctx)
}
