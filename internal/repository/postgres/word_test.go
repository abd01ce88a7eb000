package postgres

import (
	"fmt"
	"testing"
	"time"

	"wordsheet/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestWordRepo_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "word", "meaning", "created_at"}).
		AddRow("1", "Experience", "경험", now).
		AddRow("abc1234", "hello", "안녕", now)

	mock.ExpectQuery("SELECT id, word, meaning, created_at FROM words ORDER BY position").
		WillReturnRows(rows)

	words, err := repo.GetAll()

	assert.NoError(t, err)
	assert.Len(t, words, 2)
	assert.Equal(t, "Experience", words[0].Word)
	assert.Equal(t, "안녕", words[1].Meaning)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetAll_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectQuery("SELECT id, word, meaning, created_at FROM words").
		WillReturnRows(sqlmock.NewRows([]string{"id", "word", "meaning", "created_at"}))

	words, err := repo.GetAll()

	assert.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetAll_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	// Create rows with wrong column type to cause scan error
	rows := sqlmock.NewRows([]string{"id", "word", "meaning", "created_at"}).
		AddRow("1", "hello", "안녕", "not a time")

	mock.ExpectQuery("SELECT id, word, meaning, created_at FROM words").
		WillReturnRows(rows)

	words, err := repo.GetAll()

	assert.Error(t, err)
	assert.Nil(t, words)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_InsertAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	entry := domain.NewWordEntry("abc1234", "hello", "안녕")

	mock.ExpectExec("INSERT INTO words .* COALESCE\\(MAX\\(position\\) \\+ 1, 0\\)").
		WithArgs(entry.ID, entry.Word, entry.Meaning, entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Insert(entry, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_InsertAtIndex(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	entry := domain.NewWordEntry("abc1234", "", "")
	index := 2

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE words SET position = position \\+ 1 WHERE position >= \\$1").
		WithArgs(index).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO words").
		WithArgs(entry.ID, entry.Word, entry.Meaning, entry.CreatedAt, index).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = repo.Insert(entry, &index)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_InsertAtIndex_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	entry := domain.NewWordEntry("abc1234", "", "")
	index := 0

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE words SET position").
		WithArgs(index).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO words").
		WillReturnError(fmt.Errorf("duplicate key"))
	mock.ExpectRollback()

	err = repo.Insert(entry, &index)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert word")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_Update(t *testing.T) {
	word := "changed"

	tests := []struct {
		name        string
		mockRows    *sqlmock.Rows
		expectedNil bool
	}{
		{
			name: "word found",
			mockRows: sqlmock.NewRows([]string{"id", "word", "meaning", "created_at"}).
				AddRow("1", "changed", "경험", time.Now()),
			expectedNil: false,
		},
		{
			name:        "word missing",
			mockRows:    sqlmock.NewRows([]string{"id", "word", "meaning", "created_at"}),
			expectedNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewWordRepo(db)

			mock.ExpectQuery("UPDATE words SET word = COALESCE\\(\\$2, word\\), meaning = COALESCE\\(\\$3, meaning\\) WHERE id = \\$1 RETURNING").
				WithArgs("1", word, nil).
				WillReturnRows(tt.mockRows)

			updated, err := repo.Update("1", &word, nil)

			assert.NoError(t, err)
			if tt.expectedNil {
				assert.Nil(t, updated)
			} else {
				assert.NotNil(t, updated)
				assert.Equal(t, "changed", updated.Word)
				assert.Equal(t, "경험", updated.Meaning)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM words WHERE id = \\$1 RETURNING position").
		WithArgs("abc1234").
		WillReturnRows(sqlmock.NewRows([]string{"position"}).AddRow(3))
	mock.ExpectExec("UPDATE words SET position = position - 1 WHERE position > \\$1").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err = repo.Delete("abc1234")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_Delete_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM words WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"position"}))
	mock.ExpectRollback()

	err = repo.Delete("missing")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_DeleteAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectExec("DELETE FROM words").
		WillReturnResult(sqlmock.NewResult(0, 10))

	err = repo.DeleteAll()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_ReplaceAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	entries := []domain.WordEntry{
		domain.NewWordEntry("b", "second", ""),
		domain.NewWordEntry("a", "first", ""),
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM words").
		WillReturnResult(sqlmock.NewResult(0, 2))
	for i, e := range entries {
		mock.ExpectExec("INSERT INTO words").
			WithArgs(e.ID, e.Word, e.Meaning, e.CreatedAt, i).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	err = repo.ReplaceAll(entries)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_ReplaceAll_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectBegin().WillReturnError(fmt.Errorf("connection refused"))

	err = repo.ReplaceAll(nil)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
