package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"wordsheet/internal/domain"
)

// WordRepo implements repository.WordRepository.
// Row order is kept in a dense, zero-based position column.
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// GetAll returns every word in sheet order
func (r *WordRepo) GetAll() ([]domain.WordEntry, error) {
	query := `
		SELECT id, word, meaning, created_at
		FROM words
		ORDER BY position
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []domain.WordEntry{}
	for rows.Next() {
		var w domain.WordEntry
		if err := rows.Scan(&w.ID, &w.Word, &w.Meaning, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// Insert stores entry at index, shifting later rows down, or appends it
// when index is nil
func (r *WordRepo) Insert(entry domain.WordEntry, index *int) error {
	if index == nil {
		query := `
			INSERT INTO words (id, word, meaning, created_at, position)
			VALUES ($1, $2, $3, $4, (SELECT COALESCE(MAX(position) + 1, 0) FROM words))
		`
		_, err := r.db.Exec(query, entry.ID, entry.Word, entry.Meaning, entry.CreatedAt)
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE words SET position = position + 1 WHERE position >= $1`, *index); err != nil {
		return fmt.Errorf("shift positions: %w", err)
	}

	query := `
		INSERT INTO words (id, word, meaning, created_at, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(query, entry.ID, entry.Word, entry.Meaning, entry.CreatedAt, *index); err != nil {
		return fmt.Errorf("insert word: %w", err)
	}

	return tx.Commit()
}

// Update applies the non-nil fields. It returns nil when id is unknown.
func (r *WordRepo) Update(id string, word, meaning *string) (*domain.WordEntry, error) {
	var w domain.WordEntry
	query := `
		UPDATE words
		SET word = COALESCE($2, word), meaning = COALESCE($3, meaning)
		WHERE id = $1
		RETURNING id, word, meaning, created_at
	`
	err := r.db.QueryRow(query, id, word, meaning).Scan(&w.ID, &w.Word, &w.Meaning, &w.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &w, nil
}

// Delete removes one word and closes the gap in positions
func (r *WordRepo) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRow(`DELETE FROM words WHERE id = $1 RETURNING position`, id).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`UPDATE words SET position = position - 1 WHERE position > $1`, position); err != nil {
		return fmt.Errorf("shift positions: %w", err)
	}

	return tx.Commit()
}

// DeleteAll removes every word
func (r *WordRepo) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM words`)
	return err
}

// ReplaceAll swaps the whole list for entries, in order
func (r *WordRepo) ReplaceAll(entries []domain.WordEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM words`); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}

	query := `
		INSERT INTO words (id, word, meaning, created_at, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, e := range entries {
		if _, err := tx.Exec(query, e.ID, e.Word, e.Meaning, e.CreatedAt, i); err != nil {
			return fmt.Errorf("insert word %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}
