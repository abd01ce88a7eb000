package repository

import (
	"wordsheet/internal/domain"
)

// UserRepository defines bot user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
}

// WordRepository defines the word list operations of the remote API
type WordRepository interface {
	GetAll() ([]domain.WordEntry, error)
	// Insert places entry at index, or appends when index is nil
	Insert(entry domain.WordEntry, index *int) error
	// Update applies the non-nil fields and returns nil when id is unknown
	Update(id string, word, meaning *string) (*domain.WordEntry, error)
	Delete(id string) error
	DeleteAll() error
	ReplaceAll(entries []domain.WordEntry) error
}

// KVRepository is a durable string key-value store
type KVRepository interface {
	// Get returns ok=false when key has never been written
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
}
