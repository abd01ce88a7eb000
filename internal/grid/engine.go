package grid

import (
	"wordsheet/internal/domain"
)

// ChangeFunc receives a snapshot of the rows after a store mutation
type ChangeFunc func(rows []domain.WordEntry)

// Engine owns the row store and the transient selection and edit state.
// It is not safe for concurrent use; every command must come from one
// dispatch goroutine.
type Engine struct {
	store *Store
	mode  domain.Mode

	// point selection, tracked by row id
	selected *domain.Cursor
	// range selection, tracked by row index at creation time
	selection *domain.Range
	editing   *domain.Cursor

	dragging     bool
	pendingFocus *domain.Cursor
	composing    bool

	listeners []ChangeFunc
}

// NewEngine creates an engine in study mode over store
func NewEngine(store *Store) *Engine {
	return &Engine{
		store: store,
		mode:  domain.ModeStudy,
	}
}

// Subscribe registers fn to be called after every row mutation
func (e *Engine) Subscribe(fn ChangeFunc) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) changed() {
	if len(e.listeners) == 0 {
		return
	}
	rows := e.store.Rows()
	for _, fn := range e.listeners {
		fn(rows)
	}
}

// Load replaces every row and resets selection and editing
func (e *Engine) Load(entries []domain.WordEntry) {
	e.store.Replace(entries)
	e.resetTransient()
}

func (e *Engine) resetTransient() {
	e.selected = nil
	e.selection = nil
	e.editing = nil
	e.dragging = false
	e.pendingFocus = nil
}

// Rows returns a copy of the rows in display order
func (e *Engine) Rows() []domain.WordEntry {
	return e.store.Rows()
}

// Len returns the row count
func (e *Engine) Len() int {
	return e.store.Len()
}

// Mode returns the current display mode
func (e *Engine) Mode() domain.Mode {
	return e.mode
}

// SetMode switches the display mode. An edit on a column the new mode blanks
// is closed.
func (e *Engine) SetMode(m domain.Mode) {
	e.mode = m
	if e.editing != nil && m.Hides(e.editing.Field) {
		e.editing = nil
	}
}

// SetComposing marks whether an input-method composition is in progress.
// While it is, HandleKey ignores every key.
func (e *Engine) SetComposing(composing bool) {
	e.composing = composing
}

// Composing reports whether a composition is in progress
func (e *Engine) Composing() bool {
	return e.composing
}

// Dragging reports whether a mouse drag selection is active
func (e *Engine) Dragging() bool {
	return e.dragging
}

// Selected returns the point selection
func (e *Engine) Selected() (domain.Cursor, bool) {
	if e.selected == nil {
		return domain.Cursor{}, false
	}
	return *e.selected, true
}

// SelectedIndex returns the row index of the point selection, or -1
func (e *Engine) SelectedIndex() int {
	if e.selected == nil {
		return -1
	}
	return e.store.IndexOf(e.selected.RowID)
}

// Selection returns the active range selection
func (e *Engine) Selection() (domain.Range, bool) {
	if e.selection == nil {
		return domain.Range{}, false
	}
	return *e.selection, true
}

// Editing returns the cell in edit mode
func (e *Engine) Editing() (domain.Cursor, bool) {
	if e.editing == nil {
		return domain.Cursor{}, false
	}
	return *e.editing, true
}

// IsSelected reports whether the cell at (row, field) is highlighted
func (e *Engine) IsSelected(row int, field domain.Field) bool {
	if e.selection != nil {
		return e.selection.Contains(row, field)
	}
	if e.selected == nil {
		return false
	}
	entry, ok := e.store.At(row)
	return ok && entry.ID == e.selected.RowID && e.selected.Field == field
}

// IsEditing reports whether the cell at (row, field) is in edit mode
func (e *Engine) IsEditing(row int, field domain.Field) bool {
	if e.editing == nil {
		return false
	}
	entry, ok := e.store.At(row)
	return ok && entry.ID == e.editing.RowID && e.editing.Field == field
}

// MultiRowSelected reports whether the range spans more than one row, which
// is when shuffling is offered
func (e *Engine) MultiRowSelected() bool {
	return e.selection != nil && e.selection.MultiRow()
}

func (e *Engine) selectCell(id string, field domain.Field) {
	e.selected = &domain.Cursor{RowID: id, Field: field}
}

func (e *Engine) editCell(id string, field domain.Field) {
	e.editing = &domain.Cursor{RowID: id, Field: field}
}

// moveTo places the point selection, and the edit target when editing, on
// the given cell and drops any range
func (e *Engine) moveTo(id string, field domain.Field) {
	e.selectCell(id, field)
	if e.editing != nil {
		e.editCell(id, field)
	}
	e.selection = nil
}
