package grid

import (
	"unicode"

	"wordsheet/internal/domain"
)

// KeyCode identifies a key the engine understands
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Key is a key press with its modifiers. Shift+Tab is KeyTab with Shift set.
type Key struct {
	Code  KeyCode
	Rune  rune
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// RuneKey returns the key press for a typed character
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

func (k Key) printable() bool {
	return k.Code == KeyRune && !k.Ctrl && !k.Alt && !k.Meta && unicode.IsPrint(k.Rune)
}

// HandleKey runs the command bound to k against the current state. It
// reports whether the key was consumed. Nothing happens while a composition
// is in progress.
func (e *Engine) HandleKey(k Key) bool {
	if e.composing {
		return false
	}

	if e.selection != nil && e.editing == nil && (k.Code == KeyBackspace || k.Code == KeyDelete) {
		e.ClearSelection()
		return true
	}

	if e.editing != nil {
		return e.handleEditingKey(k)
	}

	switch k.Code {
	case KeyRune:
		if !k.printable() {
			return false
		}
		return e.startTyping(k.Rune)
	case KeyEnter:
		if e.selected == nil {
			return false
		}
		e.InsertBelowSelected()
		return true
	case KeyTab:
		e.navigateTab(k.Shift)
		return true
	case KeyEscape:
		e.escape()
		return true
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return e.moveSelection(k.Code)
	}
	return false
}

// handleEditingKey covers both the global commands available while editing
// and the text input of the edited cell
func (e *Engine) handleEditingKey(k Key) bool {
	switch k.Code {
	case KeyEnter:
		e.editing = nil
		return true
	case KeyTab:
		e.navigateTab(k.Shift)
		return true
	case KeyEscape:
		e.escape()
		return true
	case KeyBackspace:
		return e.backspaceEditing()
	case KeyRune:
		if !k.printable() {
			return false
		}
		return e.appendToEditing(k.Rune)
	}
	return false
}

func (e *Engine) escape() {
	e.editing = nil
	e.selection = nil
}

// navigateTab moves the active cell one step in reading order. Moving
// forward past the last row grows the sheet; moving back from the first
// cell does nothing.
func (e *Engine) navigateTab(backward bool) {
	active := e.selected
	if e.editing != nil {
		active = e.editing
	}
	if active == nil {
		return
	}
	idx := e.store.IndexOf(active.RowID)
	if idx == -1 {
		return
	}
	current, _ := e.store.At(idx)

	if !backward {
		if active.Field == domain.FieldWord {
			e.moveTo(current.ID, domain.FieldMeaning)
			return
		}
		if next, ok := e.store.At(idx + 1); ok {
			e.moveTo(next.ID, domain.FieldWord)
			return
		}
		e.insertBelow(current.ID)
		return
	}

	if active.Field == domain.FieldMeaning {
		e.moveTo(current.ID, domain.FieldWord)
		return
	}
	if prev, ok := e.store.At(idx - 1); ok {
		e.moveTo(prev.ID, domain.FieldMeaning)
	}
}

// moveSelection handles the arrow keys outside edit mode
func (e *Engine) moveSelection(code KeyCode) bool {
	if e.selected == nil {
		return false
	}
	idx := e.store.IndexOf(e.selected.RowID)
	if idx == -1 {
		return false
	}

	switch code {
	case KeyDown:
		if next, ok := e.store.At(idx + 1); ok {
			e.moveTo(next.ID, e.selected.Field)
			return true
		}
	case KeyUp:
		if prev, ok := e.store.At(idx - 1); ok {
			e.moveTo(prev.ID, e.selected.Field)
			return true
		}
	case KeyRight:
		if e.selected.Field == domain.FieldWord {
			e.moveTo(e.selected.RowID, domain.FieldMeaning)
			return true
		}
	case KeyLeft:
		if e.selected.Field == domain.FieldMeaning {
			e.moveTo(e.selected.RowID, domain.FieldWord)
			return true
		}
	}
	return false
}
