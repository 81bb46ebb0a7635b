package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/google/uuid"
)

type addColumnRequest struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Width       int         `json:"width"`
	Hidden      bool        `json:"hidden"`
	Default     any         `json:"default"`
	Choices     []string    `json:"choices"`
	Ratings     []float64   `json:"ratings"`
	Lookup      *lookupBody `json:"lookup"`
}

type lookupBody struct {
	ListID   uuid.UUID `json:"listId"`
	ColumnID uuid.UUID `json:"columnId"`
}

// column builds the requested column. The type is resolved by display name
// or alias; unknown types fail with ErrUnsupportedColumnType.
func (req addColumnRequest) column() (*core.Column, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: column name is required", core.ErrInvalidValue)
	}
	typ, err := core.ParseColumnType(req.Type)
	if err != nil {
		return nil, err
	}

	var opts []core.ColumnOption
	if req.Description != "" {
		opts = append(opts, core.WithDescription(req.Description))
	}
	if req.Width > 0 {
		opts = append(opts, core.WithWidth(req.Width))
	}
	if req.Default != nil {
		opts = append(opts, core.WithDefault(req.Default))
	}
	if len(req.Choices) > 0 {
		choices := make([]core.Choice, len(req.Choices))
		for i, c := range req.Choices {
			choices[i] = core.NewChoice(c, "")
		}
		opts = append(opts, core.WithChoices(choices...))
	}
	if len(req.Ratings) > 0 {
		opts = append(opts, core.WithRatings(req.Ratings...))
	}
	if req.Lookup != nil {
		opts = append(opts, core.WithLookup(req.Lookup.ListID, req.Lookup.ColumnID))
	}

	c, err := core.NewColumn(name, typ, opts...)
	if err != nil {
		return nil, err
	}
	if req.Hidden {
		c.Hide()
	}
	return c, nil
}

func (s *Server) handleAddColumn(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req addColumnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	col, err := req.column()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.updateJSON(w, r, id, http.StatusCreated, func(l *core.List) (any, error) {
		l.AddColumn(col)
		return col, nil
	})
}

// columnAction resolves the list and column URL parameters and applies fn
// to the column under the list's write lock. The response is the column.
func (s *Server) columnAction(w http.ResponseWriter, r *http.Request, fn func(l *core.List, c *core.Column, index int) error) {
	listID, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	columnID, err := uuidParam(r, "columnID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.updateJSON(w, r, listID, http.StatusOK, func(l *core.List) (any, error) {
		c, i, err := columnInList(l, columnID)
		if err != nil {
			return nil, err
		}
		if err := fn(l, c, i); err != nil {
			return nil, err
		}
		return c, nil
	})
}

func (s *Server) handleMoveColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.columnAction(w, r, func(l *core.List, c *core.Column, index int) error {
		switch strings.ToLower(req.Direction) {
		case "left":
			l.MoveColumnLeft(index)
		case "right":
			l.MoveColumnRight(index)
		default:
			return fmt.Errorf("%w: direction must be left or right", errBadRequest)
		}
		return nil
	})
}

func (s *Server) handleRenameColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.respondError(w, r, fmt.Errorf("%w: column name is required", core.ErrInvalidValue))
		return
	}

	s.columnAction(w, r, func(l *core.List, c *core.Column, index int) error {
		c.Rename(name)
		return nil
	})
}

func (s *Server) handleColumnVisibility(hide bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.columnAction(w, r, func(l *core.List, c *core.Column, index int) error {
			if hide {
				c.Hide()
			} else {
				c.Show()
			}
			return nil
		})
	}
}

func (s *Server) handleColumnWidth(widen bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.columnAction(w, r, func(l *core.List, c *core.Column, index int) error {
			if widen {
				c.Widen()
			} else {
				c.Narrow()
			}
			return nil
		})
	}
}

func (s *Server) handleAddRating(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating json.Number `json:"rating"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	rating, err := req.Rating.Float64()
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: rating %q", core.ErrInvalidValue, req.Rating))
		return
	}

	s.columnAction(w, r, func(l *core.List, c *core.Column, index int) error {
		if c.Type() != core.ColumnAverageRating {
			return fmt.Errorf("%w: ratings need an %s column", core.ErrInvalidValue, core.ColumnAverageRating)
		}
		c.AddRating(rating)
		return nil
	})
}

// handleSortColumn sorts the column's value cache. Only text entries move;
// rows keep their order.
func (s *Server) handleSortColumn(w http.ResponseWriter, r *http.Request) {
	desc := strings.EqualFold(r.URL.Query().Get("dir"), "desc")

	s.columnAction(w, r, func(l *core.List, c *core.Column, index int) error {
		if desc {
			return l.SortColumnDescending(c.ID)
		}
		return l.SortColumnAscending(c.ID)
	})
}
