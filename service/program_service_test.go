package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattiasalardi/VDP/repository"
)

func newProgramService(t *testing.T) (*ProgramService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewProgramService(repository.NewProgramRepository(mock)), mock
}

func TestCreateProgramDuplicateNameIsConflict(t *testing.T) {
	svc, mock := newProgramService(t)

	mock.ExpectQuery(`INSERT INTO programs`).
		WithArgs(int64(10), "Batch 2026", (*string)(nil), true).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.CreateProgram(context.Background(), 10, CreateProgramRequest{Name: "Batch 2026"})

	assert.ErrorIs(t, err, ErrProgramNameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProgramDuplicateNameIsConflict(t *testing.T) {
	svc, mock := newProgramService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, organization_id, name, description, is_active`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "organization_id", "name", "description", "is_active", "created_at", "updated_at"}).
			AddRow(int64(1), int64(10), "Spring Batch", nil, true, now, now))
	mock.ExpectQuery(`UPDATE programs SET`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.UpdateProgram(context.Background(), 10, 1, UpdateProgramRequest{Name: "Batch 2026", IsActive: true})

	assert.ErrorIs(t, err, ErrProgramNameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
