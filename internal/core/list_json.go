package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// listJSON is the interchange form of a List, used by templates, the
// persistence layer and JSON export.
type listJSON struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Columns     []*Column `json:"columns"`
	Rows        []*Row    `json:"rows"`
	IsFavorited bool      `json:"isFavorited"`
	IsGridView  bool      `json:"isGridView,omitempty"`
	IsShared    bool      `json:"isShared,omitempty"`
	IsExported  bool      `json:"isExported,omitempty"`
	Undo        bool      `json:"undo,omitempty"`
	Redo        bool      `json:"redo,omitempty"`
	PageSize    int       `json:"pageSize,omitempty"`
	CurrentPage int       `json:"currentPage,omitempty"`
	AccessList  []User    `json:"accessList,omitempty"`
	Owner       User      `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (l *List) MarshalJSON() ([]byte, error) {
	columns := l.columns
	if columns == nil {
		columns = []*Column{}
	}
	rows := l.rows
	if rows == nil {
		rows = []*Row{}
	}
	return json.Marshal(listJSON{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Color:       l.Color,
		Icon:        l.Icon,
		Columns:     columns,
		Rows:        rows,
		IsFavorited: l.IsFavorited,
		IsGridView:  l.IsGridView,
		IsShared:    l.IsShared,
		IsExported:  l.IsExported,
		Undo:        l.Undo,
		Redo:        l.Redo,
		PageSize:    l.pageSize,
		CurrentPage: l.currentPage,
		AccessList:  l.access,
		Owner:       l.Owner,
		CreatedAt:   l.CreatedAt,
	})
}

// UnmarshalJSON decodes a list and checks that every row has one cell per
// column of the matching type. Templates may leave out ids, rows and paging.
func (l *List) UnmarshalJSON(data []byte) error {
	var in listJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	out := List{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		IsFavorited: in.IsFavorited,
		IsGridView:  in.IsGridView,
		IsShared:    in.IsShared,
		IsExported:  in.IsExported,
		Undo:        in.Undo,
		Redo:        in.Redo,
		Owner:       in.Owner,
		CreatedAt:   in.CreatedAt,
		columns:     in.Columns,
		rows:        in.Rows,
		pageSize:    in.PageSize,
		currentPage: in.CurrentPage,
		access:      in.AccessList,
	}
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.pageSize < 1 {
		out.pageSize = DefaultPageSize
	}
	if out.currentPage < 1 {
		out.currentPage = 1
	}

	for _, c := range out.columns {
		if c == nil {
			return fmt.Errorf("list %q: null column", out.Name)
		}
		c.listID = out.ID
	}
	for _, r := range out.rows {
		if r == nil {
			return fmt.Errorf("list %q: null row", out.Name)
		}
		if len(r.cells) != len(out.columns) {
			return fmt.Errorf("list %q row %s: %w: %d cells for %d columns",
				out.Name, r.ID, ErrArityMismatch, len(r.cells), len(out.columns))
		}
		for i, cell := range r.cells {
			if cell.columnType != out.columns[i].typ {
				return fmt.Errorf("list %q row %s column %q: %w: cell type %s",
					out.Name, r.ID, out.columns[i].Name, ErrInvalidValue, cell.columnType)
			}
		}
	}

	// Hand-written templates carry rows without a value cache.
	for i, c := range out.columns {
		if len(c.values) == 0 {
			for _, r := range out.rows {
				c.values = append(c.values, r.cells[i].value)
			}
		}
	}

	*l = out
	return nil
}
