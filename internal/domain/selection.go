package domain

// Cursor addresses one cell by row id, stable across inserts and deletes
type Cursor struct {
	RowID string
	Field Field
}

// Range is a rectangular block of cells captured by row index.
// Start and End are unordered; use Bounds before reading them.
type Range struct {
	StartRow   int
	StartField Field
	EndRow     int
	EndField   Field
}

// NewRange returns a single-cell range at (row, field)
func NewRange(row int, field Field) Range {
	return Range{StartRow: row, StartField: field, EndRow: row, EndField: field}
}

// Bounds returns the range normalised on each axis independently
func (r Range) Bounds() (minRow, maxRow int, minField, maxField Field) {
	minRow, maxRow = r.StartRow, r.EndRow
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	minField, maxField = r.StartField, r.EndField
	if minField > maxField {
		minField, maxField = maxField, minField
	}
	return minRow, maxRow, minField, maxField
}

// Contains reports whether the cell lies inside the normalised rectangle
func (r Range) Contains(row int, field Field) bool {
	minRow, maxRow, minField, maxField := r.Bounds()
	return row >= minRow && row <= maxRow && field >= minField && field <= maxField
}

// Degenerate reports whether the range covers exactly one cell
func (r Range) Degenerate() bool {
	return r.StartRow == r.EndRow && r.StartField == r.EndField
}

// MultiRow reports whether the range spans more than one row
func (r Range) MultiRow() bool {
	return r.StartRow != r.EndRow
}
