// Package grid implements the word sheet's interaction engine: the ordered
// row store, the point/range selection model, the single-cell edit state and
// the keyboard and mouse command dispatch that drives them.
package grid

import (
	"math/rand/v2"

	"wordsheet/internal/domain"
)

// IDFunc generates candidate row ids
type IDFunc func() string

// Rand is the source of randomness used by ShuffleRange
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Store is the ordered sequence of rows. Order is display order.
type Store struct {
	rows  []domain.WordEntry
	newID IDFunc
	rng   Rand
}

// NewStore creates an empty store. Nil arguments select nanoid ids and the
// package-level random source.
func NewStore(newID IDFunc, rng Rand) *Store {
	if newID == nil {
		newID = domain.NewEntryID
	}
	if rng == nil {
		rng = globalRand{}
	}
	return &Store{newID: newID, rng: rng}
}

// Len returns the number of rows
func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns a copy of the rows in order
func (s *Store) Rows() []domain.WordEntry {
	out := make([]domain.WordEntry, len(s.rows))
	copy(out, s.rows)
	return out
}

// At returns the row at index i
func (s *Store) At(i int) (domain.WordEntry, bool) {
	if i < 0 || i >= len(s.rows) {
		return domain.WordEntry{}, false
	}
	return s.rows[i], true
}

// IndexOf returns the index of the row with id, or -1
func (s *Store) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.rows {
		if s.rows[i].ID == id {
			return i
		}
	}
	return -1
}

// Replace swaps the whole content for entries. Missing or duplicate ids are
// reassigned so uniqueness holds.
func (s *Store) Replace(entries []domain.WordEntry) {
	s.rows = make([]domain.WordEntry, 0, len(entries))
	for _, e := range entries {
		e.ID = s.uniqueID(e.ID)
		s.rows = append(s.rows, e)
	}
}

// NewEntry returns a blank entry carrying an id unused in the store
func (s *Store) NewEntry() domain.WordEntry {
	return domain.NewWordEntry(s.uniqueID(""), "", "")
}

// InsertBelow inserts entry right after the row with anchorID, or at the end
// when the anchor is not found. It returns the inserted id.
func (s *Store) InsertBelow(anchorID string, entry domain.WordEntry) string {
	entry.ID = s.uniqueID(entry.ID)

	idx := s.IndexOf(anchorID)
	if idx == -1 {
		s.rows = append(s.rows, entry)
		return entry.ID
	}

	s.rows = append(s.rows, domain.WordEntry{})
	copy(s.rows[idx+2:], s.rows[idx+1:])
	s.rows[idx+1] = entry
	return entry.ID
}

// Append inserts entry at the end and returns its id
func (s *Store) Append(entry domain.WordEntry) string {
	entry.ID = s.uniqueID(entry.ID)
	s.rows = append(s.rows, entry)
	return entry.ID
}

// UpdateField replaces one field of the row with id
func (s *Store) UpdateField(id string, field domain.Field, value string) bool {
	idx := s.IndexOf(id)
	if idx == -1 || !field.Valid() {
		return false
	}
	if s.rows[idx].Get(field) == value {
		return false
	}
	s.rows[idx].Set(field, value)
	return true
}

// Delete removes the row with id
func (s *Store) Delete(id string) bool {
	idx := s.IndexOf(id)
	if idx == -1 {
		return false
	}
	s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	return true
}

// DeleteAll empties the store
func (s *Store) DeleteAll() bool {
	if len(s.rows) == 0 {
		return false
	}
	s.rows = nil
	return true
}

// ShuffleRange applies a Fisher-Yates shuffle to rows[minRow..maxRow]
// (inclusive). Rows outside the slice keep their place. The bounds are
// clamped to the current row count.
func (s *Store) ShuffleRange(minRow, maxRow int) bool {
	minRow, maxRow, ok := s.clampRows(minRow, maxRow)
	if !ok || minRow == maxRow {
		return false
	}

	slice := s.rows[minRow : maxRow+1]
	for i := len(slice) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		slice[i], slice[j] = slice[j], slice[i]
	}
	return true
}

// ClearFieldsInRange empties every field with ordinal in [minField, maxField]
// on every row in [minRow, maxRow]. Rows are never removed.
func (s *Store) ClearFieldsInRange(minRow, maxRow int, minField, maxField domain.Field) bool {
	minRow, maxRow, ok := s.clampRows(minRow, maxRow)
	if !ok {
		return false
	}
	if minField > maxField {
		minField, maxField = maxField, minField
	}

	changed := false
	for r := minRow; r <= maxRow; r++ {
		for _, f := range domain.Fields {
			if f < minField || f > maxField {
				continue
			}
			if s.rows[r].Get(f) != "" {
				s.rows[r].Set(f, "")
				changed = true
			}
		}
	}
	return changed
}

func (s *Store) clampRows(minRow, maxRow int) (int, int, bool) {
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow > len(s.rows)-1 {
		maxRow = len(s.rows) - 1
	}
	if minRow > maxRow {
		return 0, 0, false
	}
	return minRow, maxRow, true
}

func (s *Store) uniqueID(id string) string {
	for id == "" || s.IndexOf(id) != -1 {
		id = s.newID()
	}
	return id
}
