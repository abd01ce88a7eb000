package grid

import (
	"wordsheet/internal/domain"
)

// MouseDown starts a drag selection on (row, field) and leaves edit mode
func (e *Engine) MouseDown(row int, field domain.Field) {
	entry, ok := e.store.At(row)
	if !ok || !field.Valid() {
		return
	}
	r := domain.NewRange(row, field)

	e.dragging = true
	e.editing = nil
	e.selectCell(entry.ID, field)
	e.selection = &r
	e.pendingFocus = &domain.Cursor{RowID: entry.ID, Field: field}
}

// MouseEnter extends the drag selection to (row, field). The start corner
// stays fixed for the whole drag.
func (e *Engine) MouseEnter(row int, field domain.Field) {
	if !e.dragging || e.selection == nil {
		return
	}
	if _, ok := e.store.At(row); !ok || !field.Valid() {
		return
	}
	e.selection.EndRow = row
	e.selection.EndField = field
}

// MouseUp ends the drag wherever the pointer is. A single-cell drag becomes
// a point selection.
func (e *Engine) MouseUp() {
	small := e.selection == nil || e.selection.Degenerate()
	if e.dragging && e.pendingFocus != nil && small {
		e.selectCell(e.pendingFocus.RowID, e.pendingFocus.Field)
		e.selection = nil
	}
	e.dragging = false
	e.pendingFocus = nil
}

// DoubleClick enters edit mode on (row, field). The meaning column is only
// editable this way in study mode.
func (e *Engine) DoubleClick(row int, field domain.Field) bool {
	entry, ok := e.store.At(row)
	if !ok || !field.Valid() {
		return false
	}
	if field == domain.FieldMeaning && e.mode != domain.ModeStudy {
		return false
	}
	e.selectCell(entry.ID, field)
	e.editCell(entry.ID, field)
	e.selection = nil
	return true
}
