package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectUser = "SELECT user_id, authorized, created_at FROM bot_users WHERE user_id = \\$1"

func TestUserRepo_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	joined := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(selectUser).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "authorized", "created_at"}).AddRow(int64(42), true, joined))

	u, err := NewUserRepo(db).Get(42)

	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(42), u.UserID)
	assert.True(t, u.Authorized)
	assert.True(t, joined.Equal(u.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_IsAuthorized(t *testing.T) {
	tests := []struct {
		name       string
		rows       *sqlmock.Rows
		queryErr   error
		authorized bool
		wantErr    bool
	}{
		{
			name:       "authorized chat",
			rows:       sqlmock.NewRows([]string{"user_id", "authorized", "created_at"}).AddRow(int64(7), true, time.Now()),
			authorized: true,
		},
		{
			name:       "known but locked",
			rows:       sqlmock.NewRows([]string{"user_id", "authorized", "created_at"}).AddRow(int64(7), false, time.Now()),
			authorized: false,
		},
		{
			name:       "never seen",
			queryErr:   sql.ErrNoRows,
			authorized: false,
		},
		{
			name:     "connection lost",
			queryErr: fmt.Errorf("connection reset"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			expect := mock.ExpectQuery(selectUser).WithArgs(int64(7))
			if tt.queryErr != nil {
				expect.WillReturnError(tt.queryErr)
			} else {
				expect.WillReturnRows(tt.rows)
			}

			authorized, err := NewUserRepo(db).IsAuthorized(7)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.authorized, authorized)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_Upserts(t *testing.T) {
	tests := []struct {
		name       string
		call       func(r *UserRepo) error
		pattern    string
		authorized bool
	}{
		{
			name:       "authorize",
			call:       func(r *UserRepo) error { return r.AuthorizeUser(7) },
			pattern:    "INSERT INTO bot_users .* ON CONFLICT \\(user_id\\) DO UPDATE SET authorized = TRUE",
			authorized: true,
		},
		{
			name:       "first contact",
			call:       func(r *UserRepo) error { return r.EnsureUserExists(7) },
			pattern:    "INSERT INTO bot_users .* ON CONFLICT \\(user_id\\) DO NOTHING",
			authorized: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(tt.pattern).
				WithArgs(int64(7), tt.authorized).
				WillReturnResult(sqlmock.NewResult(1, 1))

			assert.NoError(t, tt.call(NewUserRepo(db)))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
