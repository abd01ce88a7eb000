package testutil

import (
	"wordsheet/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) GetAll() ([]domain.WordEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordEntry), args.Error(1)
}

func (m *MockWordRepository) Insert(entry domain.WordEntry, index *int) error {
	args := m.Called(entry, index)
	return args.Error(0)
}

func (m *MockWordRepository) Update(id string, word, meaning *string) (*domain.WordEntry, error) {
	args := m.Called(id, word, meaning)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WordEntry), args.Error(1)
}

func (m *MockWordRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockWordRepository) DeleteAll() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockWordRepository) ReplaceAll(entries []domain.WordEntry) error {
	args := m.Called(entries)
	return args.Error(0)
}

// MockKVRepository is a mock for KVRepository
type MockKVRepository struct {
	mock.Mock
}

func (m *MockKVRepository) Get(key string) (string, bool, error) {
	args := m.Called(key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKVRepository) Put(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}
