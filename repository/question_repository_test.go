package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattiasalardi/VDP/models"
)

func TestCreateShiftsLaterQuestions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE questions SET order_index = order_index \+ 1`).
		WithArgs(int64(5), 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectQuery(`INSERT INTO questions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))
	mock.ExpectCommit()

	repo := NewQuestionRepository(mock)
	question := &models.Question{
		QuestionnaireID: 5,
		Text:            "Describe your team",
		QuestionType:    models.QuestionTypeText,
		IsRequired:      true,
		OrderIndex:      2,
	}
	require.NoError(t, repo.Create(context.Background(), question))
	assert.Equal(t, int64(11), question.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveUpShiftsRangeDown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE questions SET order_index = order_index \+ 1`).
		WithArgs(int64(5), 1, 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(`UPDATE questions SET order_index = \$3`).
		WithArgs(int64(11), int64(5), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	repo := NewQuestionRepository(mock)
	require.NoError(t, repo.Move(context.Background(), 5, 11, 4, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveDownShiftsRangeUp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE questions SET order_index = order_index - 1`).
		WithArgs(int64(5), 1, 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(`UPDATE questions SET order_index = \$3`).
		WithArgs(int64(11), int64(5), 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	repo := NewQuestionRepository(mock)
	require.NoError(t, repo.Move(context.Background(), 5, 11, 1, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveSamePositionIsNoop(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQuestionRepository(mock)
	require.NoError(t, repo.Move(context.Background(), 5, 11, 2, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClosesGap(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM questions`).
		WithArgs(int64(11), int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`UPDATE questions SET order_index = order_index - 1`).
		WithArgs(int64(5), 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))
	mock.ExpectCommit()

	repo := NewQuestionRepository(mock)
	require.NoError(t, repo.Delete(context.Background(), 5, 11, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderUnknownQuestionRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE questions SET order_index = \$3`).
		WithArgs(int64(10), int64(5), 0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE questions SET order_index = \$3`).
		WithArgs(int64(99), int64(5), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	repo := NewQuestionRepository(mock)
	err = repo.Reorder(context.Background(), 5, []int64{10, 99})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
