package service

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattiasalardi/VDP/catalog"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/repository"
)

func scaleValue(n int) models.AnswerValue {
	return models.AnswerValue{ScaleValue: &n}
}

func choiceValue(s string) models.AnswerValue {
	return models.AnswerValue{ChoiceValue: &s}
}

func textValue(s string) models.AnswerValue {
	return models.AnswerValue{TextValue: &s}
}

func TestValidateAnswerScale(t *testing.T) {
	question, ok := catalog.QuestionByKey("team_importance")
	require.True(t, ok)

	text, err := validateAnswer(question, scaleValue(8))
	require.NoError(t, err)
	assert.Equal(t, "8", text)

	_, err = validateAnswer(question, scaleValue(11))
	assert.Error(t, err)

	_, err = validateAnswer(question, scaleValue(0))
	assert.Error(t, err)

	_, err = validateAnswer(question, choiceValue("large_existing"))
	assert.Error(t, err)
}

func TestValidateAnswerChoice(t *testing.T) {
	question, ok := catalog.QuestionByKey("market_size_preference")
	require.True(t, ok)

	text, err := validateAnswer(question, choiceValue(question.Options[0].Value))
	require.NoError(t, err)
	assert.Equal(t, question.Options[0].Label, text)

	_, err = validateAnswer(question, choiceValue("not_a_real_option"))
	assert.Error(t, err)

	_, err = validateAnswer(question, scaleValue(3))
	assert.Error(t, err)
}

func TestValidateAnswerText(t *testing.T) {
	question, ok := catalog.QuestionByKey("geographic_preference")
	require.True(t, ok)

	text, err := validateAnswer(question, textValue("  Remote-first teams across Europe  "))
	require.NoError(t, err)
	assert.Equal(t, "Remote-first teams across Europe", text)

	_, err = validateAnswer(question, textValue("   "))
	assert.Error(t, err)

	if question.MaxLength > 0 {
		long := make([]byte, question.MaxLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err = validateAnswer(question, textValue(string(long)))
		assert.Error(t, err)
	}
}

func TestValidateAnswerErrorsAreInputErrors(t *testing.T) {
	question, ok := catalog.QuestionByKey("team_importance")
	require.True(t, ok)

	_, err := validateAnswer(question, scaleValue(42))
	var inputError *InputError
	assert.ErrorAs(t, err, &inputError)
}

func programRow() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "organization_id", "name", "description", "is_active", "created_at", "updated_at"}).
		AddRow(int64(1), int64(10), "Batch 2026", nil, true, now, now)
}

func newCalibrationService(t *testing.T) (*CalibrationService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	svc := NewCalibrationService(
		repository.NewProgramRepository(mock),
		repository.NewCalibrationRepository(mock),
	)
	return svc, mock
}

func TestSaveAnswersRejectsBatchOnFirstBadAnswer(t *testing.T) {
	svc, mock := newCalibrationService(t)

	mock.ExpectQuery(`SELECT id, organization_id, name, description, is_active`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(programRow())

	_, err := svc.SaveAnswers(context.Background(), 10, 1, []SaveAnswerRequest{
		{QuestionKey: "team_importance", AnswerValue: scaleValue(8)},
		{QuestionKey: "team_importance", AnswerValue: scaleValue(99)},
	})

	var inputError *InputError
	require.ErrorAs(t, err, &inputError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAnswersUpsertsEveryAnswer(t *testing.T) {
	svc, mock := newCalibrationService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, organization_id, name, description, is_active`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(programRow())
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`INSERT INTO calibration_answers`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(i+1), now, now))
	}

	answers, err := svc.SaveAnswers(context.Background(), 10, 1, []SaveAnswerRequest{
		{QuestionKey: "team_importance", AnswerValue: scaleValue(8)},
		{QuestionKey: "technology_innovation", AnswerValue: scaleValue(6)},
	})

	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "8", *answers[0].AnswerText)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAnswerMissingRowIsNotFound(t *testing.T) {
	svc, mock := newCalibrationService(t)

	mock.ExpectQuery(`SELECT id, organization_id, name, description, is_active`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(programRow())
	mock.ExpectExec(`DELETE FROM calibration_answers WHERE program_id = \$1 AND question_key = \$2`).
		WithArgs(int64(1), "team_importance").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.DeleteAnswer(context.Background(), 10, 1, "team_importance")

	assert.ErrorIs(t, err, ErrCalibrationAnswerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAnswerUnknownKeyIsInputError(t *testing.T) {
	svc, mock := newCalibrationService(t)

	mock.ExpectQuery(`SELECT id, organization_id, name, description, is_active`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(programRow())

	err := svc.DeleteAnswer(context.Background(), 10, 1, "favorite_color")

	var inputError *InputError
	assert.ErrorAs(t, err, &inputError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionStatusIgnoresStaleKeys(t *testing.T) {
	svc, mock := newCalibrationService(t)
	now := time.Now()

	eight := scaleValue(8)
	rows := pgxmock.NewRows([]string{"id", "program_id", "question_key", "answer_value", "answer_text", "created_at", "updated_at"}).
		AddRow(int64(1), int64(1), "team_importance", eight, nil, now, now).
		AddRow(int64(2), int64(1), "retired_question", eight, nil, now, now)

	mock.ExpectQuery(`SELECT id, organization_id, name, description, is_active`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(programRow())
	mock.ExpectQuery(`SELECT id, program_id, question_key, answer_value`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	status, err := svc.CompletionStatus(context.Background(), 10, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, status.AnsweredQuestions)
	assert.Equal(t, len(catalog.Questions), status.TotalQuestions)
	assert.False(t, status.IsComplete)
	assert.LessOrEqual(t, status.CompletionPercentage, float64(100))
	assert.NoError(t, mock.ExpectationsWereMet())
}
