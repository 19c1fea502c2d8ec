package candidates

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var candidateColumns = []string{"id", "name", "headline", "email", "phone", "education", "languages", "job_type", "location", "skills", "approved"}

func TestList_SplitsListColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, headline`).
		WillReturnRows(sqlmock.NewRows(candidateColumns).
			AddRow("c-1", "Ananya Rao", "Backend engineer", "a@example.com", "+91 1", "Degree", "English, Hindi", "Full-time", "Pune", "go,sql", true).
			AddRow("c-2", "Bo Chen", "", "", "", "", "", "Contract", "Remote", "", false))

	got, err := NewPostgresRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []string{"English", "Hindi"}, got[0].Languages)
	assert.Equal(t, []string{"go", "sql"}, got[0].Skills)
	assert.True(t, got[0].Approved)
	assert.Nil(t, got[1].Languages)
	assert.False(t, got[1].Approved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, headline`).WillReturnError(errors.New("boom"))

	_, err = NewPostgresRepository(db).List(context.Background())
	assert.ErrorContains(t, err, "failed to select candidates")
}

func TestApprovedIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM candidates WHERE approved`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c-1").AddRow("c-3"))

	ids, err := NewPostgresRepository(db).ApprovedIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c-1", "c-3"}, ids)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,, b ,"))
}
