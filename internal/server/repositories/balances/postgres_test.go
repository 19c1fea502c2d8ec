package balances

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		want    int64
		wantErr error
		errText string
	}{
		{
			name: "found",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT balance FROM coin_balances`).WithArgs("u-1").
					WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(120)))
			},
			want: 120,
		},
		{
			name: "no row",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT balance FROM coin_balances`).WithArgs("u-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: common.ErrorNotFound,
		},
		{
			name: "db failure",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT balance FROM coin_balances`).WithArgs("u-1").
					WillReturnError(errors.New("conn reset"))
			},
			errText: "db error: conn reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setup(mock)

			got, err := NewPostgresRepository(db).Get(context.Background(), "u-1")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				assert.EqualError(t, err, tt.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO coin_balances .* ON CONFLICT \(user_id\)`).
		WithArgs("u-1", int64(70)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresRepository(db).Set(context.Background(), "u-1", 70))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_Negative(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewPostgresRepository(db).Set(context.Background(), "u-1", -1)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}
