package testutil

import (
	"strconv"
	"time"

	"wordsheet/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestWord creates a test word with a fixed creation time
func NewTestWord(id, word, meaning string) domain.WordEntry {
	return domain.WordEntry{
		ID:        id,
		Word:      word,
		Meaning:   meaning,
		CreatedAt: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
	}
}

// NewTestSheet builds rows w0..wN from word-meaning pairs
func NewTestSheet(pairs ...[2]string) []domain.WordEntry {
	rows := make([]domain.WordEntry, 0, len(pairs))
	for i, p := range pairs {
		rows = append(rows, NewTestWord("w"+strconv.Itoa(i), p[0], p[1]))
	}
	return rows
}
