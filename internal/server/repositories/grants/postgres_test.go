package grants

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"user_id", "candidate_id", "issued_at"}

func TestGet_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	issued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT user_id, candidate_id, issued_at FROM unlock_grants`).
		WithArgs("u-1", "c-9").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u-1", "c-9", issued))

	g, err := NewPostgresRepository(db).Get(context.Background(), "u-1", "c-9")
	require.NoError(t, err)
	assert.Equal(t, issued, g.IssuedAt)
}

func TestGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM unlock_grants`).WithArgs("u-1", "c-9").WillReturnError(sql.ErrNoRows)

	_, err = NewPostgresRepository(db).Get(context.Background(), "u-1", "c-9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPut(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	issued := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO unlock_grants .* ON CONFLICT`).
		WithArgs("u-1", "c-9", issued).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPostgresRepository(db).Put(context.Background(), &models.UnlockGrant{UserID: "u-1", CandidateID: "c-9", IssuedAt: issued})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM unlock_grants\s+WHERE user_id = \$1 ORDER BY issued_at`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("u-1", "c-1", now.Add(-time.Hour)).
			AddRow("u-1", "c-2", now))

	got, err := NewPostgresRepository(db).List(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c-1", got[0].CandidateID)
	assert.Equal(t, "c-2", got[1].CandidateID)
}

func TestList_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM unlock_grants`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u-1", "c-1", "not a time"))

	_, err = NewPostgresRepository(db).List(context.Background(), "u-1")
	assert.ErrorContains(t, err, "failed to scan grant")
}
