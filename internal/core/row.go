package core

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Row is one record of a list: one cell per column, index-aligned with
// the list's columns. Cells are only changed through List operations.
type Row struct {
	ID       uuid.UUID
	cells    []Cell
	comments []Comment
}

// Cells returns a copy of the row's cells in column order.
func (r *Row) Cells() []Cell { return append([]Cell(nil), r.cells...) }

// Len returns the number of cells.
func (r *Row) Len() int { return len(r.cells) }

// Cell returns the cell at column index i.
func (r *Row) Cell(i int) (Cell, bool) {
	if i < 0 || i >= len(r.cells) {
		return Cell{}, false
	}
	return r.cells[i], true
}

// Values returns the row's values in column order.
func (r *Row) Values() []Value {
	out := make([]Value, len(r.cells))
	for i, c := range r.cells {
		out[i] = c.value
	}
	return out
}

// Strings returns the string form of each cell in column order.
func (r *Row) Strings() []string {
	out := make([]string, len(r.cells))
	for i, c := range r.cells {
		out[i] = c.String()
	}
	return out
}

// Comments returns a copy of the row's comments, oldest first.
func (r *Row) Comments() []Comment { return append([]Comment(nil), r.comments...) }

func (r *Row) clone() *Row {
	return &Row{
		ID:       r.ID,
		cells:    append([]Cell(nil), r.cells...),
		comments: append([]Comment(nil), r.comments...),
	}
}

type rowJSON struct {
	ID       uuid.UUID `json:"id"`
	Cells    []Cell    `json:"cells"`
	Comments []Comment `json:"comments,omitempty"`
}

func (r *Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(rowJSON{ID: r.ID, Cells: r.cells, Comments: r.comments})
}

func (r *Row) UnmarshalJSON(data []byte) error {
	var in rowJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	r.ID, r.cells, r.comments = in.ID, in.Cells, in.Comments
	return nil
}
