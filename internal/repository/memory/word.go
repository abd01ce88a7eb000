// Package memory holds process-lifetime repositories used when no database
// is configured.
package memory

import (
	"sync"

	"wordsheet/internal/domain"
)

// WordRepo implements repository.WordRepository in memory.
// Callers race freely; the last write wins.
type WordRepo struct {
	mu    sync.Mutex
	words []domain.WordEntry
}

// SeedWords returns the list a fresh in-memory API starts with
func SeedWords() []domain.WordEntry {
	return []domain.WordEntry{domain.NewWordEntry("1", "Experience", "경험")}
}

// NewWordRepo creates a repository holding seed
func NewWordRepo(seed []domain.WordEntry) *WordRepo {
	words := make([]domain.WordEntry, len(seed))
	copy(words, seed)
	return &WordRepo{words: words}
}

// GetAll returns a copy of every word in order
func (r *WordRepo) GetAll() ([]domain.WordEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.WordEntry, len(r.words))
	copy(out, r.words)
	return out, nil
}

// Insert places entry at index, or appends when index is nil or past the end
func (r *WordRepo) Insert(entry domain.WordEntry, index *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index == nil || *index >= len(r.words) {
		r.words = append(r.words, entry)
		return nil
	}

	i := *index
	if i < 0 {
		i = 0
	}
	r.words = append(r.words, domain.WordEntry{})
	copy(r.words[i+1:], r.words[i:])
	r.words[i] = entry
	return nil
}

// Update applies the non-nil fields. It returns nil when id is unknown.
func (r *WordRepo) Update(id string, word, meaning *string) (*domain.WordEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.words {
		if r.words[i].ID != id {
			continue
		}
		if word != nil {
			r.words[i].Word = *word
		}
		if meaning != nil {
			r.words[i].Meaning = *meaning
		}
		updated := r.words[i]
		return &updated, nil
	}
	return nil, nil
}

// Delete removes every word with id
func (r *WordRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.words[:0]
	for _, w := range r.words {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	r.words = kept
	return nil
}

// DeleteAll removes every word
func (r *WordRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.words = nil
	return nil
}

// ReplaceAll swaps the whole list for entries
func (r *WordRepo) ReplaceAll(entries []domain.WordEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.words = make([]domain.WordEntry, len(entries))
	copy(r.words, entries)
	return nil
}
