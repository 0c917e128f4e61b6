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

func sampleGuidelines() models.GeneratedGuidelines {
	return models.GeneratedGuidelines{
		Categories: []models.GuidelineCategory{
			{
				Section:  "team_quality",
				Name:     "Team Quality",
				Weight:   0.6,
				Criteria: []string{"Relevant domain experience"},
				RedFlags: []string{"Solo founder with no advisors"},
				ScoringGuide: models.ScoringGuide{
					Range1To3:  "No relevant experience",
					Range4To5:  "Some experience",
					Range6To7:  "Strong experience",
					Range8To10: "Serial founders with exits",
				},
			},
			{
				Section:  "market_opportunity",
				Name:     "Market Opportunity",
				Weight:   0.4,
				Criteria: []string{"Large addressable market"},
				RedFlags: []string{"Shrinking market"},
				ScoringGuide: models.ScoringGuide{
					Range1To3:  "Tiny market",
					Range4To5:  "Moderate market",
					Range6To7:  "Large market",
					Range8To10: "Huge growing market",
				},
			},
		},
	}
}

func TestSaveVersionAssignsNextVersionAndActivates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM programs WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) \+ 1 FROM ai_guidelines`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectExec(`UPDATE ai_guidelines SET is_active = FALSE`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectExec(`INSERT INTO ai_guidelines`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO ai_guidelines`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewGuidelineRepository(mock)
	version, err := repo.SaveVersion(context.Background(), 7, sampleGuidelines(), "prompt text", true)
	require.NoError(t, err)
	assert.Equal(t, 3, version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveVersionRollsBackOnInsertFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM programs WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) \+ 1 FROM ai_guidelines`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO ai_guidelines`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := NewGuidelineRepository(mock)
	_, err = repo.SaveVersion(context.Background(), 7, sampleGuidelines(), "prompt text", false)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateVersionUnknownVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM programs WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7), 9).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	repo := NewGuidelineRepository(mock)
	err = repo.ActivateVersion(context.Background(), 7, 9)
	assert.ErrorIs(t, err, ErrVersionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateVersionClearsThenSets(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM programs WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7), 2).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`UPDATE ai_guidelines SET is_active = FALSE`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 8))
	mock.ExpectExec(`UPDATE ai_guidelines SET is_active = TRUE`).
		WithArgs(int64(7), 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 8))
	mock.ExpectCommit()

	repo := NewGuidelineRepository(mock)
	require.NoError(t, repo.ActivateVersion(context.Background(), 7, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveAssemblesVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	criteria := []byte(`{"name":"Team Quality","criteria":["a"],"red_flags":["b"],"scoring_guide":{"1-3":"w","4-5":"x","6-7":"y","8-10":"z"}}`)

	mock.ExpectQuery(`SELECT id, program_id, section, weight, criteria, prompt_template, is_active, version`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "program_id", "section", "weight", "criteria", "prompt_template", "is_active", "version", "created_at", "updated_at",
		}).AddRow(int64(1), int64(7), "team_quality", 1.0, criteria, "prompt", true, 2, now, now))

	repo := NewGuidelineRepository(mock)
	version, err := repo.GetActive(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, version.Version)
	assert.True(t, version.IsActive)
	require.Len(t, version.Guidelines.Categories, 1)
	assert.Equal(t, "Team Quality", version.Guidelines.Categories[0].Name)
	assert.Equal(t, 1.0, version.Guidelines.Categories[0].Weight)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveNoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, program_id, section, weight, criteria, prompt_template, is_active, version`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "program_id", "section", "weight", "criteria", "prompt_template", "is_active", "version", "created_at", "updated_at",
		}))

	repo := NewGuidelineRepository(mock)
	_, err = repo.GetActive(context.Background(), 7)
	assert.ErrorIs(t, err, ErrVersionNotFound)
}
