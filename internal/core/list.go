package core

// list.go implements the list engine: it owns the column schema and the row
// store and keeps them structurally synchronized.
//
// Invariant: after every operation returns, each row holds exactly one cell
// per column and row.cells[i] belongs to columns[i]. Operations validate and
// coerce all input before touching either structure, so a failed call leaves
// the list as it was.

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultPageSize is the page size of new lists.
var DefaultPageSize = 25

// Defaults applied to blank lists.
const (
	DefaultColor = "White"
	DefaultIcon  = "🌟"
)

// List is an ad-hoc table: a typed column schema plus rows of cells.
//
// A List is not safe for concurrent use. Callers that share a list across
// goroutines must serialize access (Service.Update does this).
type List struct {
	ID          uuid.UUID
	Name        string
	Description string
	Color       string
	Icon        string
	IsFavorited bool
	IsGridView  bool
	IsShared    bool
	IsExported  bool
	Undo        bool
	Redo        bool
	Owner       User
	CreatedAt   time.Time

	columns     []*Column
	rows        []*Row
	pageSize    int
	currentPage int
	access      []User
}

// NewList creates an empty list with default color, icon and paging.
func NewList(name, description string) *List {
	return &List{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Color:       DefaultColor,
		Icon:        DefaultIcon,
		CreatedAt:   time.Now().UTC(),
		pageSize:    DefaultPageSize,
		currentPage: 1,
	}
}

// ----------------------------------------------------------------------------
// Schema
// ----------------------------------------------------------------------------

// Columns returns the list's columns in display order.
// The slice is a copy; the columns themselves are shared.
func (l *List) Columns() []*Column { return append([]*Column(nil), l.columns...) }

// ColumnCount returns the number of columns.
func (l *List) ColumnCount() int { return len(l.columns) }

// ColumnIndex returns the position of the column with the given id, or -1.
func (l *List) ColumnIndex(id uuid.UUID) int {
	for i, c := range l.columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Column returns the column with the given id.
func (l *List) Column(id uuid.UUID) (*Column, bool) {
	if i := l.ColumnIndex(id); i >= 0 {
		return l.columns[i], true
	}
	return nil, false
}

// ColumnByName returns the first column whose name matches exactly, and its index.
func (l *List) ColumnByName(name string) (*Column, int, error) {
	for i, c := range l.columns {
		if c.Name == name {
			return c, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// AddColumn appends a column and gives every existing row a default cell
// for it, returning the column the list now holds. A column owned by
// another list is copied rather than moved. Adding a column this list
// already holds does nothing.
func (l *List) AddColumn(c *Column) *Column {
	if c == nil {
		return nil
	}
	if c.listID != uuid.Nil && c.listID != l.ID {
		c = c.clone()
		c.values = nil
	}
	if i := l.ColumnIndex(c.ID); i >= 0 {
		return l.columns[i]
	}

	c.listID = l.ID
	for _, r := range l.rows {
		cell := defaultCell(c)
		r.cells = append(r.cells, cell)
		c.values = append(c.values, cell.value)
	}
	l.columns = append(l.columns, c)
	return c
}

// MoveColumnLeft swaps the column at index with its left neighbour,
// moving the matching cell of every row with it.
// Index 0 and out-of-range indexes are no-ops.
func (l *List) MoveColumnLeft(index int) {
	if index <= 0 || index >= len(l.columns) {
		return
	}
	l.swapColumns(index, index-1)
}

// MoveColumnRight swaps the column at index with its right neighbour.
// The last index and out-of-range indexes are no-ops.
func (l *List) MoveColumnRight(index int) {
	if index < 0 || index >= len(l.columns)-1 {
		return
	}
	l.swapColumns(index, index+1)
}

func (l *List) swapColumns(i, j int) {
	l.columns[i], l.columns[j] = l.columns[j], l.columns[i]
	for _, r := range l.rows {
		r.cells[i], r.cells[j] = r.cells[j], r.cells[i]
	}
}

// ----------------------------------------------------------------------------
// Rows
// ----------------------------------------------------------------------------

// Rows returns the rows in insertion order.
func (l *List) Rows() []*Row { return append([]*Row(nil), l.rows...) }

// RowCount returns the number of rows.
func (l *List) RowCount() int { return len(l.rows) }

func (l *List) rowIndex(id uuid.UUID) int {
	for i, r := range l.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Row returns the row with the given id.
func (l *List) Row(id uuid.UUID) (*Row, error) {
	i := l.rowIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("row %s: %w", id, ErrNotFound)
	}
	return l.rows[i], nil
}

// coerceRow builds one cell per column from positional values.
func (l *List) coerceRow(values []any) ([]Cell, error) {
	if len(values) != len(l.columns) {
		return nil, fmt.Errorf("%w: got %d values for %d columns", ErrArityMismatch, len(values), len(l.columns))
	}

	cells := make([]Cell, len(values))
	for i, raw := range values {
		cell, err := NewCell(l.columns[i].typ, raw)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", l.columns[i].Name, err)
		}
		cells[i] = cell
	}
	return cells, nil
}

// AddRow appends a row built from one value per column, in column order.
// Fails with ErrArityMismatch or ErrInvalidValue; rows are unchanged then.
func (l *List) AddRow(values ...any) (*Row, error) {
	cells, err := l.coerceRow(values)
	if err != nil {
		return nil, err
	}
	return l.appendRow(cells), nil
}

// AddBlankRow appends a row holding each column's default value.
func (l *List) AddBlankRow() *Row {
	cells := make([]Cell, len(l.columns))
	for i, c := range l.columns {
		cells[i] = defaultCell(c)
	}
	return l.appendRow(cells)
}

func (l *List) appendRow(cells []Cell) *Row {
	for i, c := range l.columns {
		c.values = append(c.values, cells[i].value)
	}
	r := &Row{ID: uuid.New(), cells: cells}
	l.rows = append(l.rows, r)
	return r
}

// EditRow replaces every cell of a row. Values are coerced like AddRow.
// Fails with ErrNotFound, ErrArityMismatch or ErrInvalidValue.
func (l *List) EditRow(id uuid.UUID, values ...any) error {
	idx := l.rowIndex(id)
	if idx < 0 {
		return fmt.Errorf("row %s: %w", id, ErrNotFound)
	}
	if len(values) != len(l.rows[idx].cells) {
		return fmt.Errorf("%w: got %d values for %d cells", ErrArityMismatch, len(values), len(l.rows[idx].cells))
	}

	cells, err := l.coerceRow(values)
	if err != nil {
		return err
	}

	l.rows[idx].cells = cells
	for i, c := range l.columns {
		if idx < len(c.values) {
			c.values[idx] = cells[i].value
		}
	}
	return nil
}

// SetCell coerces raw into the cell at column index col of a row.
func (l *List) SetCell(rowID uuid.UUID, col int, raw any) error {
	idx := l.rowIndex(rowID)
	if idx < 0 {
		return fmt.Errorf("row %s: %w", rowID, ErrNotFound)
	}
	if col < 0 || col >= len(l.columns) {
		return fmt.Errorf("%w: index %d", ErrUnknownColumn, col)
	}

	cell := &l.rows[idx].cells[col]
	if err := cell.SetValue(raw); err != nil {
		return fmt.Errorf("column %q: %w", l.columns[col].Name, err)
	}
	if c := l.columns[col]; idx < len(c.values) {
		c.values[idx] = cell.value
	}
	return nil
}

// DeleteRow removes a row. Fails with ErrNotFound if the id is unknown.
func (l *List) DeleteRow(id uuid.UUID) error {
	idx := l.rowIndex(id)
	if idx < 0 {
		return fmt.Errorf("row %s: %w", id, ErrNotFound)
	}

	l.rows = append(l.rows[:idx], l.rows[idx+1:]...)
	for _, c := range l.columns {
		if idx < len(c.values) {
			c.values = append(c.values[:idx], c.values[idx+1:]...)
		}
	}
	return nil
}

// AddComment attaches a comment to a row.
func (l *List) AddComment(rowID uuid.UUID, content string) (Comment, error) {
	idx := l.rowIndex(rowID)
	if idx < 0 {
		return Comment{}, fmt.Errorf("row %s: %w", rowID, ErrNotFound)
	}
	c := Comment{ID: uuid.New(), Content: content, Time: time.Now().UTC()}
	l.rows[idx].comments = append(l.rows[idx].comments, c)
	return c, nil
}

// Clone returns a deep copy of l under a new id. Columns and rows keep
// their ids; nothing is shared with l.
func (l *List) Clone() *List {
	cp := *l
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now().UTC()
	cp.access = append([]User(nil), l.access...)

	cp.columns = make([]*Column, len(l.columns))
	for i, c := range l.columns {
		cc := c.clone()
		cc.listID = cp.ID
		cp.columns[i] = cc
	}
	cp.rows = make([]*Row, len(l.rows))
	for i, r := range l.rows {
		cp.rows[i] = r.clone()
	}
	return &cp
}
