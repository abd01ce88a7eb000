package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"wordsheet/internal/domain"
	"wordsheet/internal/grid"
	"wordsheet/internal/repository"
)

// ErrInvalidInput is returned for requests that can never succeed
var ErrInvalidInput = errors.New("invalid input")

// WordService handles the word list behind the remote API and the bot
type WordService struct {
	wordRepo repository.WordRepository
	newID    grid.IDFunc
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository) *WordService {
	return &WordService{wordRepo: wordRepo, newID: domain.NewEntryID}
}

// GetAll returns every word in order
func (s *WordService) GetAll() ([]domain.WordEntry, error) {
	return s.wordRepo.GetAll()
}

// Create stores a new word. With an index it is inserted there; negative
// indexes count from the end and out of range ones are clamped.
func (s *WordService) Create(word, meaning string, index *int) (*domain.WordEntry, error) {
	entry := domain.WordEntry{
		ID:        s.newID(),
		Word:      word,
		Meaning:   meaning,
		CreatedAt: time.Now(),
	}

	var at *int
	if index != nil {
		words, err := s.wordRepo.GetAll()
		if err != nil {
			return nil, err
		}
		i := spliceIndex(*index, len(words))
		at = &i
	}

	if err := s.wordRepo.Insert(entry, at); err != nil {
		return nil, fmt.Errorf("failed to create word: %w", err)
	}
	return &entry, nil
}

func spliceIndex(index, length int) int {
	if index < 0 {
		index += length
		if index < 0 {
			index = 0
		}
	}
	if index > length {
		index = length
	}
	return index
}

// AddPair appends a complete word-meaning pair
func (s *WordService) AddPair(word, meaning string) (*domain.WordEntry, error) {
	word = strings.TrimSpace(word)
	meaning = strings.TrimSpace(meaning)
	if word == "" || meaning == "" {
		return nil, fmt.Errorf("%w: word and meaning cannot be empty", ErrInvalidInput)
	}
	return s.Create(word, meaning, nil)
}

// Update changes the given fields of one word. It returns nil when the id
// is unknown.
func (s *WordService) Update(id string, word, meaning *string) (*domain.WordEntry, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.wordRepo.Update(id, word, meaning)
}

// Delete removes one word
func (s *WordService) Delete(id string) error {
	return s.wordRepo.Delete(id)
}

// DeleteAll removes every word
func (s *WordService) DeleteAll() error {
	return s.wordRepo.DeleteAll()
}

// ReorderAll replaces the list, e.g. after a shuffle on the client
func (s *WordService) ReorderAll(entries []domain.WordEntry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("%w: every word needs an id", ErrInvalidInput)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidInput, e.ID)
		}
		seen[e.ID] = true
	}
	return s.wordRepo.ReplaceAll(entries)
}

// ShuffleAll shuffles the whole list in place
func (s *WordService) ShuffleAll() error {
	words, err := s.wordRepo.GetAll()
	if err != nil {
		return err
	}
	if len(words) < 2 {
		return nil
	}

	store := grid.NewStore(nil, nil)
	store.Replace(words)
	store.ShuffleRange(0, store.Len()-1)

	return s.wordRepo.ReplaceAll(store.Rows())
}

// GetRandomPair returns a random word that has text, or nil
func (s *WordService) GetRandomPair() (*domain.WordEntry, error) {
	words, err := s.wordRepo.GetAll()
	if err != nil {
		return nil, err
	}

	var filled []domain.WordEntry
	for _, w := range words {
		if w.Word != "" {
			filled = append(filled, w)
		}
	}
	if len(filled) == 0 {
		return nil, nil
	}

	pick := filled[rand.IntN(len(filled))]
	return &pick, nil
}
