package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/go-chi/chi/v5"
)

type rowValuesRequest struct {
	Values []any `json:"values"`
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req rowValuesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.updateJSON(w, r, id, http.StatusCreated, func(l *core.List) (any, error) {
		return l.AddRow(req.Values...)
	})
}

func (s *Server) handleAddBlankRow(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.updateJSON(w, r, id, http.StatusCreated, func(l *core.List) (any, error) {
		return l.AddBlankRow(), nil
	})
}

func (s *Server) handleEditRow(w http.ResponseWriter, r *http.Request) {
	listID, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	rowID, err := uuidParam(r, "rowID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req rowValuesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.updateJSON(w, r, listID, http.StatusOK, func(l *core.List) (any, error) {
		if err := l.EditRow(rowID, req.Values...); err != nil {
			return nil, err
		}
		return l.Row(rowID)
	})
}

func (s *Server) handleSetCell(w http.ResponseWriter, r *http.Request) {
	listID, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	rowID, err := uuidParam(r, "rowID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: invalid cell index", errBadRequest))
		return
	}
	var req struct {
		Value any `json:"value"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.updateJSON(w, r, listID, http.StatusOK, func(l *core.List) (any, error) {
		if err := l.SetCell(rowID, index, req.Value); err != nil {
			return nil, err
		}
		return l.Row(rowID)
	})
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	listID, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	rowID, err := uuidParam(r, "rowID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	err = s.service.Update(r.Context(), listID, func(l *core.List) error {
		return l.DeleteRow(rowID)
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	listID, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	rowID, err := uuidParam(r, "rowID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.respondError(w, r, fmt.Errorf("%w: comment is empty", errBadRequest))
		return
	}

	s.updateJSON(w, r, listID, http.StatusCreated, func(l *core.List) (any, error) {
		return l.AddComment(rowID, req.Content)
	})
}

// ----------------------------------------------------------------------------
// Query
// ----------------------------------------------------------------------------

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	q := r.URL.Query().Get("q")
	s.viewJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) {
		return rowsOf(l.Search(q)), nil
	})
}

// handleFilter keeps rows whose cell in column matches op and value.
// Ops are the filter operators: contains, eq, starts, ends, gt, gte, lt,
// lte and in.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	q := r.URL.Query()
	column := q.Get("column")
	if column == "" {
		s.respondError(w, r, fmt.Errorf("%w: column is required", errBadRequest))
		return
	}
	op := core.FilterOperator(q.Get("op"))
	if op == "" {
		op = core.OpContains
	}
	pred, err := core.CompilePredicate(op, q.Get("value"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	s.viewJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) {
		rows, err := l.FilterByColumn(column, pred)
		if err != nil {
			return nil, err
		}
		return rowsOf(rows), nil
	})
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) {
		return currentPage(l), nil
	})
}

// handleSetPage changes paging state. The body may set a page size, jump to
// a page, or step with action "next" or "previous", applied in that order.
func (s *Server) handleSetPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req struct {
		PageSize int    `json:"pageSize"`
		Page     int    `json:"page"`
		Action   string `json:"action"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.updateJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) {
		if req.PageSize > 0 {
			l.SetPageSize(req.PageSize)
		}
		if req.Page > 0 {
			l.SetCurrentPage(req.Page)
		}
		switch strings.ToLower(req.Action) {
		case "":
		case "next":
			l.NextPage()
		case "prev", "previous":
			l.PreviousPage()
		default:
			return nil, fmt.Errorf("%w: unknown page action %q", errBadRequest, req.Action)
		}
		return currentPage(l), nil
	})
}
