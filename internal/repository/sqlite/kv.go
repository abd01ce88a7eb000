// Package sqlite provides the local durable key-value store the editor saves
// its sheet into.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key      TEXT PRIMARY KEY,
	value    TEXT NOT NULL,
	updated  INTEGER NOT NULL
);
`

// KVRepo implements repository.KVRepository on a SQLite file
type KVRepo struct {
	db *sql.DB
}

// Open creates or opens the store at path
func Open(path string) (*KVRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open kv db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &KVRepo{db: db}, nil
}

// Close closes the database
func (r *KVRepo) Close() error {
	return r.db.Close()
}

// Get returns the value stored under key
func (r *KVRepo) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value stored under key
func (r *KVRepo) Put(key, value string) error {
	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO kv (key, value, updated) VALUES (?, ?, ?)`,
		key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
