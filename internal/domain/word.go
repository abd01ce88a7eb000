package domain

import (
	"encoding/json"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 7
)

// WordEntry represents one word-meaning row of the sheet
type WordEntry struct {
	ID        string
	Word      string
	Meaning   string
	CreatedAt time.Time
}

// NewEntryID returns a fresh opaque entry id
func NewEntryID() string {
	return gonanoid.MustGenerate(idAlphabet, idLength)
}

// NewWordEntry creates an entry stamped with the current time
func NewWordEntry(id, word, meaning string) WordEntry {
	return WordEntry{
		ID:        id,
		Word:      word,
		Meaning:   meaning,
		CreatedAt: time.Now(),
	}
}

// Get returns the text of the given field
func (w WordEntry) Get(f Field) string {
	if f == FieldMeaning {
		return w.Meaning
	}
	return w.Word
}

// Set replaces the text of the given field
func (w *WordEntry) Set(f Field, value string) {
	if f == FieldMeaning {
		w.Meaning = value
		return
	}
	w.Word = value
}

type wordEntryJSON struct {
	ID        string `json:"id"`
	Word      string `json:"word"`
	Meaning   string `json:"meaning"`
	CreatedAt int64  `json:"createdAt"`
}

// MarshalJSON stores createdAt as unix milliseconds
func (w WordEntry) MarshalJSON() ([]byte, error) {
	var created int64
	if !w.CreatedAt.IsZero() {
		created = w.CreatedAt.UnixMilli()
	}
	return json.Marshal(wordEntryJSON{
		ID:        w.ID,
		Word:      w.Word,
		Meaning:   w.Meaning,
		CreatedAt: created,
	})
}

// UnmarshalJSON reads createdAt as unix milliseconds
func (w *WordEntry) UnmarshalJSON(data []byte) error {
	var raw wordEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.ID = raw.ID
	w.Word = raw.Word
	w.Meaning = raw.Meaning
	w.CreatedAt = time.Time{}
	if raw.CreatedAt != 0 {
		w.CreatedAt = time.UnixMilli(raw.CreatedAt)
	}
	return nil
}

// Field is one of the two editable columns of a row
type Field int

const (
	FieldWord Field = iota
	FieldMeaning
)

// Fields lists the columns in ordinal order
var Fields = []Field{FieldWord, FieldMeaning}

// String returns the field name
func (f Field) String() string {
	if f == FieldMeaning {
		return "meaning"
	}
	return "word"
}

// Valid reports whether f is one of the two columns
func (f Field) Valid() bool {
	return f == FieldWord || f == FieldMeaning
}

// Mode controls which column is shown and which is blanked for a quiz
type Mode string

const (
	ModeStudy       Mode = "study"
	ModeQuizWord    Mode = "word"
	ModeQuizMeaning Mode = "meaning"
)

// Hides reports whether the mode blanks the given field
func (m Mode) Hides(f Field) bool {
	switch m {
	case ModeQuizWord:
		return f == FieldWord
	case ModeQuizMeaning:
		return f == FieldMeaning
	default:
		return false
	}
}

// SeedEntries returns the rows a fresh sheet starts with
func SeedEntries() []WordEntry {
	return []WordEntry{NewWordEntry("initial-1", "Experience", "경험")}
}
