package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/JonMunkholm/lists/internal/export"
	"github.com/go-chi/chi/v5"
)

// exportFormat describes one download format.
type exportFormat struct {
	contentType string
	ext         string
	write       func(io.Writer, *core.List) error
}

var exportFormats = map[string]exportFormat{
	"csv":     {"text/csv; charset=utf-8", "csv", export.WriteCSV},
	"json":    {"application/json", "json", export.WriteJSON},
	"arrow":   {"application/vnd.apache.arrow.stream", "arrows", export.WriteArrowIPC},
	"parquet": {"application/vnd.apache.parquet", "parquet", export.WriteParquet},
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// exportFilename turns a list name into a safe download file name.
func exportFilename(name, ext string) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(name, "_"), "_")
	if base == "" {
		base = "list"
	}
	return base + "." + ext
}

// handleExport writes the list in the format named by the URL. The list is
// encoded under its read lock into a buffer, so a failed encode still
// produces a proper error response.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	format, ok := exportFormats[strings.ToLower(chi.URLParam(r, "format"))]
	if !ok {
		s.respondError(w, r, fmt.Errorf("%w: unknown export format %q", errBadRequest, chi.URLParam(r, "format")))
		return
	}

	var (
		buf  bytes.Buffer
		name string
	)
	err = s.service.View(id, func(l *core.List) error {
		name = l.Name
		return format.write(&buf, l)
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(name, format.ext)))
	w.Write(buf.Bytes())
}

// importBody reads at most MaxImportSize bytes of the request body.
func (s *Server) importBody(w http.ResponseWriter, r *http.Request) io.Reader {
	return http.MaxBytesReader(w, r.Body, s.cfg.Lists.MaxImportSize)
}

// handleImportCSV creates a list from a CSV body. The list name comes from
// the name query parameter; infer=true detects column types.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	if err := s.imports.acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.imports.release()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = "Imported list"
	}
	opts := export.CSVOptions{InferTypes: r.URL.Query().Get("infer") == "true"}

	l, err := export.ReadCSV(s.importBody(w, r), name, opts)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("import csv: %w: %w", errBadRequest, err))
		return
	}
	l.SetPageSize(s.cfg.Lists.DefaultPageSize)
	s.importList(w, r, l)
}

// handleImportJSON creates a list from a list document as written by the
// JSON export.
func (s *Server) handleImportJSON(w http.ResponseWriter, r *http.Request) {
	if err := s.imports.acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.imports.release()

	l, err := export.ReadJSON(s.importBody(w, r))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("import json: %w: %w", errBadRequest, err))
		return
	}
	s.importList(w, r, l)
}

func (s *Server) importList(w http.ResponseWriter, r *http.Request, l *core.List) {
	l, err := s.service.Import(r.Context(), l)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewCreated(w, r, l.ID)
}
