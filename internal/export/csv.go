// Package export converts lists to and from interchange formats: CSV, the
// JSON list document, Arrow IPC streams and Parquet files.
package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/lists/internal/core"
)

// utf8BOM is the byte order mark Excel and other Windows tools prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyFile means an import had no header row.
var ErrEmptyFile = errors.New("empty file")

// WriteCSV writes one header row of column names followed by one row per
// list row with each cell stringified.
func WriteCSV(w io.Writer, l *core.List) error {
	cw := csv.NewWriter(w)

	cols := l.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, r := range l.Rows() {
		if err := cw.Write(r.Strings()); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVOptions controls ReadCSV.
type CSVOptions struct {
	// InferTypes turns a column into Number, Date and time or Yes/No when
	// every non-empty cell parses as that type. Otherwise all columns are Text.
	InferTypes bool
}

// ReadCSV builds a new list named name from a CSV document whose first row
// holds the column names. A leading UTF-8 BOM is skipped, cells are cleaned
// of spreadsheet artifacts and invalid UTF-8 is replaced. Short rows are
// padded and long rows truncated to the header width.
func ReadCSV(r io.Reader, name string, opts CSVOptions) (*core.List, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	for i, h := range header {
		header[i] = cleanCSVCell(h)
		if header[i] == "" {
			header[i] = fmt.Sprintf("Column%d", i+1)
		}
	}

	data := records[1:]
	for i, rec := range data {
		row := make([]string, len(header))
		for j := range row {
			if j < len(rec) {
				row[j] = cleanCSVCell(rec[j])
			}
		}
		data[i] = row
	}

	l := core.NewList(name, "")
	for i, h := range header {
		typ := core.ColumnText
		if opts.InferTypes {
			typ = inferColumnType(data, i)
		}
		col, err := core.NewColumn(h, typ)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", h, err)
		}
		l.AddColumn(col)
	}

	for lineNum, rec := range data {
		if isEmptyRecord(rec) {
			continue
		}
		values := make([]any, len(rec))
		for i, v := range rec {
			values[i] = v
		}
		if _, err := l.AddRow(values...); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum+2, err)
		}
	}
	return l, nil
}

func cleanCSVCell(s string) string {
	return strings.ToValidUTF8(core.CleanCell(s), "?")
}

func isEmptyRecord(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}

// inferColumnType picks the narrowest type every non-empty cell of column
// col parses as. Columns with empty cells stay Text, since Text is the only
// type that accepts an empty string.
func inferColumnType(data [][]string, col int) core.ColumnType {
	candidates := []struct {
		typ   core.ColumnType
		parse func(string) bool
	}{
		{core.ColumnNumber, func(s string) bool { _, ok := core.ParseNumber(s); return ok }},
		{core.ColumnYesNo, func(s string) bool { _, ok := core.ParseBool(s); return ok }},
		{core.ColumnDateTime, func(s string) bool { _, ok := core.ParseDateTime(s); return ok }},
	}

	seen := false
	for _, rec := range data {
		if isEmptyRecord(rec) {
			continue
		}
		if rec[col] == "" {
			return core.ColumnText
		}
		seen = true
	}
	if !seen {
		return core.ColumnText
	}

outer:
	for _, c := range candidates {
		for _, rec := range data {
			if isEmptyRecord(rec) {
				continue
			}
			if !c.parse(rec[col]) {
				continue outer
			}
		}
		return c.typ
	}
	return core.ColumnText
}
