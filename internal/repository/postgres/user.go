package postgres

import (
	"database/sql"
	"errors"

	"wordsheet/internal/domain"
)

// UserRepo implements repository.UserRepository for bot chat users
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Get returns the chat user, or nil before the first contact
func (r *UserRepo) Get(userID int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(
		`SELECT user_id, authorized, created_at FROM bot_users WHERE user_id = $1`,
		userID,
	).Scan(&u.UserID, &u.Authorized, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IsAuthorized reports false for unknown users
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	u, err := r.Get(userID)
	if err != nil || u == nil {
		return false, err
	}
	return u.Authorized, nil
}

// AuthorizeUser grants access, creating the record on the way
func (r *UserRepo) AuthorizeUser(userID int64) error {
	return r.upsert(userID, true, `DO UPDATE SET authorized = TRUE`)
}

// EnsureUserExists records an unauthorized user on first contact
func (r *UserRepo) EnsureUserExists(userID int64) error {
	return r.upsert(userID, false, `DO NOTHING`)
}

func (r *UserRepo) upsert(userID int64, authorized bool, onConflict string) error {
	_, err := r.db.Exec(
		`INSERT INTO bot_users (user_id, authorized) VALUES ($1, $2) ON CONFLICT (user_id) `+onConflict,
		userID, authorized,
	)
	return err
}
