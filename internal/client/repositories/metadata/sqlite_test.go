package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/talentledger/internal/client/client"
)

// migratedRepo opens an in-memory store with the real client schema.
func migratedRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), db
}

func seed(t *testing.T, r *SQLiteRepository, entries map[string]string) {
	t.Helper()
	for k, v := range entries {
		require.NoError(t, r.Set(context.Background(), k, []byte(v)))
	}
}

func keysOf(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestListPrefix_StopsAtUserBoundary(t *testing.T) {
	r, _ := migratedRepo(t)
	ctx := context.Background()
	seed(t, r, map[string]string{
		"unlock:u1:c1":  "a",
		"unlock:u1:c2":  "b",
		"unlock:u10:c1": "c",
		"unlock:u2:c1":  "d",
		"session":       "s",
	})

	got, err := r.ListPrefix(ctx, "unlock:u1:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"unlock:u1:c1", "unlock:u1:c2"}, keysOf(got))
	assert.Equal(t, []byte("b"), got["unlock:u1:c2"])

	got, err = r.ListPrefix(ctx, "unlock:u10:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"unlock:u10:c1"}, keysOf(got))
}

func TestListPrefix_WildcardsAreLiteral(t *testing.T) {
	r, _ := migratedRepo(t)
	ctx := context.Background()
	seed(t, r, map[string]string{
		"unlock:u%:c1":  "pct",
		"unlock:uX:c1":  "x",
		"unlock:u_1:c1": "under",
		"unlock:uA1:c1": "a",
		"UNLOCK:u%:c2":  "upper",
	})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"unlock:u%:", []string{"unlock:u%:c1"}},
		{"unlock:u_1:", []string{"unlock:u_1:c1"}},
		{"%", nil},
		{"_", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := r.ListPrefix(ctx, tt.prefix)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.want, keysOf(got))
		})
	}
}

func TestListPrefix_NoMatchIsEmptyMap(t *testing.T) {
	r, _ := migratedRepo(t)
	ctx := context.Background()

	got, err := r.ListPrefix(ctx, "unlock:nobody:")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)

	seed(t, r, map[string]string{"unlock:u1:c1": "v"})
	got, err = r.ListPrefix(ctx, "unlock:u1:c1:")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListPrefix_EmptyPrefixListsEverything(t *testing.T) {
	r, _ := migratedRepo(t)
	seed(t, r, map[string]string{"session": "s", "unlock:u1:c1": "v"})

	got, err := r.ListPrefix(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSetGetDelete_Lifecycle(t *testing.T) {
	r, _ := migratedRepo(t)
	ctx := context.Background()

	v, err := r.Get(ctx, "session")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Set(ctx, "session", []byte(`{"v":1}`)))
	require.NoError(t, r.Set(ctx, "session", []byte(`{"v":2}`)))
	v, err = r.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), v)

	require.NoError(t, r.Delete(ctx, "session"))
	require.NoError(t, r.Delete(ctx, "session"))
	v, err = r.Get(ctx, "session")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestClear_LeavesEmptyStore(t *testing.T) {
	r, _ := migratedRepo(t)
	ctx := context.Background()
	seed(t, r, map[string]string{"unlock:u1:c1": "v", "session": "s"})

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, r.Clear(ctx))
	all, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_DriverErrorsCarryKey(t *testing.T) {
	boom := errors.New("disk I/O error")
	ctx := context.Background()

	tests := []struct {
		name   string
		expect func(m sqlmock.Sqlmock)
		call   func(r *SQLiteRepository) error
		msg    string
	}{
		{
			name:   "get",
			expect: func(m sqlmock.Sqlmock) { m.ExpectQuery(`SELECT value FROM metadata`).WillReturnError(boom) },
			call:   func(r *SQLiteRepository) error { _, err := r.Get(ctx, "session"); return err },
			msg:    "failed to get metadata[session]",
		},
		{
			name:   "set",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`INSERT INTO metadata`).WillReturnError(boom) },
			call:   func(r *SQLiteRepository) error { return r.Set(ctx, "unlock:u1:c1", []byte("v")) },
			msg:    "failed to set metadata[unlock:u1:c1]",
		},
		{
			name:   "delete",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`DELETE FROM metadata WHERE key`).WillReturnError(boom) },
			call:   func(r *SQLiteRepository) error { return r.Delete(ctx, "session") },
			msg:    "failed to delete metadata[session]",
		},
		{
			name:   "clear",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`DELETE FROM metadata`).WillReturnError(boom) },
			call:   func(r *SQLiteRepository) error { return r.Clear(ctx) },
			msg:    "failed to clear metadata",
		},
		{
			name:   "list prefix",
			expect: func(m sqlmock.Sqlmock) { m.ExpectQuery(`SELECT key, value FROM metadata WHERE`).WillReturnError(boom) },
			call:   func(r *SQLiteRepository) error { _, err := r.ListPrefix(ctx, "unlock:u1:"); return err },
			msg:    "failed to list metadata[unlock:u1:*]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.expect(mock)

			err = tt.call(NewSQLiteRepository(db))
			require.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tt.msg)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListPrefix_ScanErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key"}).AddRow("unlock:u1:c1")
	mock.ExpectQuery(`SELECT key, value FROM metadata WHERE`).WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).ListPrefix(context.Background(), "unlock:u1:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan metadata row")
}
