package preferences

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_ByUserAndCandidate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT user_id, candidate_id, saved, favourite, downloaded, unlocked, updated_at\s+FROM preferences`).
		WithArgs("u-1", "c-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "candidate_id", "saved", "favourite", "downloaded", "unlocked", "updated_at"}).
			AddRow("u-1", "c-1", true, false, false, true, now))

	got, err := NewPostgresRepository(db).Find(context.Background(), models.PreferenceFilter{UserID: "u-1", CandidateID: "c-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Saved)
	assert.True(t, got[0].Unlocked)
	assert.False(t, got[0].Favourite)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM preferences`).
		WithArgs("u-2", "").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "candidate_id", "saved", "favourite", "downloaded", "unlocked", "updated_at"}))

	got, err := NewPostgresRepository(db).Find(context.Background(), models.PreferenceFilter{UserID: "u-2"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO preferences .* ON CONFLICT \(user_id, candidate_id\)`).
		WithArgs("u-1", "c-1", false, true, false, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPostgresRepository(db).Upsert(context.Background(), &models.Preference{UserID: "u-1", CandidateID: "c-1", Favourite: true})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO preferences`).WillReturnError(errors.New("down"))

	err = NewPostgresRepository(db).Upsert(context.Background(), &models.Preference{UserID: "u-1", CandidateID: "c-1"})
	assert.ErrorContains(t, err, "db error: down")
}
