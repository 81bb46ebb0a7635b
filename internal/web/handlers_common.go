package web

// handlers_common.go holds request parsing and response helpers shared by
// the handlers.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxBodySize bounds JSON request bodies other than imports.
const maxBodySize = 1 << 20

// uuidParam parses a UUID URL parameter.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return id, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// decodeJSON reads a JSON body into v. Numbers decode as json.Number so
// coercion sees the client's digits.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	return nil
}

// viewJSON encodes the result of fn under the list's read lock and writes
// it once the lock is released.
func (s *Server) viewJSON(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int, fn func(l *core.List) (any, error)) {
	var body []byte
	err := s.service.View(id, func(l *core.List) error {
		v, err := fn(l)
		if err != nil {
			return err
		}
		body, err = json.Marshal(v)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeRawJSON(w, status, body)
}

// updateJSON applies fn under the list's write lock and writes its result.
func (s *Server) updateJSON(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int, fn func(l *core.List) (any, error)) {
	var body []byte
	err := s.service.Update(r.Context(), id, func(l *core.List) error {
		v, err := fn(l)
		if err != nil {
			return err
		}
		body, err = json.Marshal(v)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeRawJSON(w, status, body)
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes.TrimSpace(body))
	w.Write([]byte("\n"))
}

// listSummary is the compact form of a list used in collections.
type listSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	IsFavorited bool      `json:"isFavorited"`
	Columns     int       `json:"columns"`
	Rows        int       `json:"rows"`
	Owner       core.User `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
}

func summarize(l *core.List) listSummary {
	return listSummary{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Color:       l.Color,
		Icon:        l.Icon,
		IsFavorited: l.IsFavorited,
		Columns:     l.ColumnCount(),
		Rows:        l.RowCount(),
		Owner:       l.Owner,
		CreatedAt:   l.CreatedAt,
	}
}

// pageResponse is one page of rows with paging state.
type pageResponse struct {
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
	TotalRows  int         `json:"totalRows"`
	Rows       []*core.Row `json:"rows"`
}

func currentPage(l *core.List) pageResponse {
	rows := l.CurrentPageRows()
	if rows == nil {
		rows = []*core.Row{}
	}
	return pageResponse{
		Page:       l.CurrentPage(),
		PageSize:   l.PageSize(),
		TotalPages: l.TotalPages(),
		TotalRows:  l.RowCount(),
		Rows:       rows,
	}
}

// rowsResponse wraps a row collection.
type rowsResponse struct {
	Count int         `json:"count"`
	Rows  []*core.Row `json:"rows"`
}

func rowsOf(rows []*core.Row) rowsResponse {
	if rows == nil {
		rows = []*core.Row{}
	}
	return rowsResponse{Count: len(rows), Rows: rows}
}

// columnInList resolves a column URL parameter against l.
func columnInList(l *core.List, columnID uuid.UUID) (*core.Column, int, error) {
	i := l.ColumnIndex(columnID)
	if i < 0 {
		return nil, -1, fmt.Errorf("%w: %s", core.ErrUnknownColumn, columnID)
	}
	c, _ := l.Column(columnID)
	return c, i, nil
}
