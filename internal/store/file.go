package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/pierrec/lz4/v4"
)

// lz4Magic is the frame header of lz4-compressed documents.
var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

// File stores all lists in one JSON document.
//
// Saves write a temporary file next to the document and rename it over the
// old one. With Compress set the document is written as an lz4 frame; loads
// detect the format from the header, so the flag can be switched freely.
type File struct {
	path          string
	templatesPath string
	compress      bool

	mu sync.Mutex
}

// NewFile creates a file store writing to path.
func NewFile(path, templatesPath string, compress bool) *File {
	return &File{path: path, templatesPath: templatesPath, compress: compress}
}

// LoadTemplates reads the templates document, or returns the built-in templates.
func (f *File) LoadTemplates(ctx context.Context) ([]*core.List, error) {
	return LoadTemplatesFile(f.templatesPath)
}

// LoadLists reads all saved lists. A missing document means no lists yet.
func (f *File) LoadLists(ctx context.Context) ([]*core.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lists %s: %w", f.path, err)
	}

	if bytes.HasPrefix(data, lz4Magic) {
		data, err = io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("decompress lists %s: %w: %w", f.path, ErrCorrupt, err)
		}
	}

	var lists []*core.List
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("decode lists %s: %w: %w", f.path, ErrCorrupt, err)
	}

	slog.Debug("lists loaded", "path", f.path, "count", len(lists))
	return lists, nil
}

// SaveLists replaces the document with lists.
func (f *File) SaveLists(ctx context.Context, lists []*core.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if lists == nil {
		lists = []*core.List{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := f.encode(tmp, lists); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}

	slog.Debug("lists written", "path", f.path, "count", len(lists), "compressed", f.compress)
	return nil
}

func (f *File) encode(w io.Writer, lists []*core.List) error {
	if !f.compress {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lists); err != nil {
			return fmt.Errorf("encode lists: %w", err)
		}
		return nil
	}

	zw := lz4.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(lists); err != nil {
		return fmt.Errorf("encode lists: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("lz4 close: %w", err)
	}
	return nil
}
