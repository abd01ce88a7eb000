package grid

import (
	"unicode/utf8"

	"wordsheet/internal/domain"
)

// InsertBelowSelected inserts a blank row under the selected row (or at the
// end when nothing resolves), then selects and edits its word field
func (e *Engine) InsertBelowSelected() string {
	anchor := ""
	if e.selected != nil {
		anchor = e.selected.RowID
	}
	return e.insertBelow(anchor)
}

func (e *Engine) insertBelow(anchorID string) string {
	id := e.store.InsertBelow(anchorID, e.store.NewEntry())
	e.selectCell(id, domain.FieldWord)
	e.editCell(id, domain.FieldWord)
	e.selection = nil
	e.changed()
	return id
}

// AppendEnd adds a blank row at the end without moving the selection
func (e *Engine) AppendEnd() string {
	id := e.store.Append(e.store.NewEntry())
	e.changed()
	return id
}

// UpdateField sets the text of one cell
func (e *Engine) UpdateField(id string, field domain.Field, value string) {
	if e.store.UpdateField(id, field, value) {
		e.changed()
	}
}

// DeleteRow removes the row with id and forgets any cursor pointing at it
func (e *Engine) DeleteRow(id string) {
	if !e.store.Delete(id) {
		return
	}
	if e.selected != nil && e.selected.RowID == id {
		e.selected = nil
	}
	if e.editing != nil && e.editing.RowID == id {
		e.editing = nil
	}
	if e.pendingFocus != nil && e.pendingFocus.RowID == id {
		e.pendingFocus = nil
	}
	e.changed()
}

// DeleteSelectedRow removes the row holding the point selection
func (e *Engine) DeleteSelectedRow() {
	if e.selected == nil {
		return
	}
	e.DeleteRow(e.selected.RowID)
}

// DeleteAll empties the sheet. Callers must have asked the user first.
func (e *Engine) DeleteAll() {
	e.resetTransient()
	if e.store.DeleteAll() {
		e.changed()
	}
}

// ShuffleSelection shuffles the rows covered by the range selection
func (e *Engine) ShuffleSelection() bool {
	if e.selection == nil {
		return false
	}
	minRow, maxRow, _, _ := e.selection.Bounds()
	if !e.store.ShuffleRange(minRow, maxRow) {
		return false
	}
	e.changed()
	return true
}

// ClearSelection empties the text of every cell in the range selection and
// drops the range
func (e *Engine) ClearSelection() {
	if e.selection == nil {
		return
	}
	minRow, maxRow, minField, maxField := e.selection.Bounds()
	e.selection = nil
	if e.store.ClearFieldsInRange(minRow, maxRow, minField, maxField) {
		e.changed()
	}
}

// startTyping enters edit mode on the selected cell seeded with r. A
// column the mode blanks out takes no typing.
func (e *Engine) startTyping(r rune) bool {
	if e.selected == nil || e.store.IndexOf(e.selected.RowID) == -1 {
		return false
	}
	if e.mode.Hides(e.selected.Field) {
		return false
	}
	e.editCell(e.selected.RowID, e.selected.Field)
	e.UpdateField(e.selected.RowID, e.selected.Field, string(r))
	return true
}

func (e *Engine) appendToEditing(r rune) bool {
	idx := e.store.IndexOf(e.editing.RowID)
	if idx == -1 {
		e.editing = nil
		return false
	}
	if e.mode.Hides(e.editing.Field) {
		return false
	}
	entry, _ := e.store.At(idx)
	e.UpdateField(entry.ID, e.editing.Field, entry.Get(e.editing.Field)+string(r))
	return true
}

func (e *Engine) backspaceEditing() bool {
	idx := e.store.IndexOf(e.editing.RowID)
	if idx == -1 {
		e.editing = nil
		return false
	}
	// The quizzed column is not drawn, so it must not change unseen
	if e.mode.Hides(e.editing.Field) {
		return false
	}
	entry, _ := e.store.At(idx)
	text := entry.Get(e.editing.Field)
	if text == "" {
		return true
	}
	_, size := utf8.DecodeLastRuneInString(text)
	e.UpdateField(entry.ID, e.editing.Field, text[:len(text)-size])
	return true
}
