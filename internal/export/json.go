package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonMunkholm/lists/internal/core"
)

// WriteJSON writes the full list document: metadata, columns and rows.
func WriteJSON(w io.Writer, l *core.List) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode list: %w", err)
	}
	return nil
}

// ReadJSON decodes a list document written by WriteJSON. Rows that do not
// match the column schema are rejected.
func ReadJSON(r io.Reader) (*core.List, error) {
	l := new(core.List)
	if err := json.NewDecoder(r).Decode(l); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return l, nil
}
