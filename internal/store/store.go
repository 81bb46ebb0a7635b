// Package store persists lists for the core service.
//
// Two drivers are provided: File keeps every list in one JSON document on
// disk, optionally lz4-compressed, and Postgres keeps one JSONB row per list.
// Both implement core.Store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/lists/internal/core"
)

var (
	_ core.Store = (*File)(nil)
	_ core.Store = (*Postgres)(nil)
)

// ErrCorrupt means a stored document could not be decoded.
var ErrCorrupt = errors.New("corrupt list data")

// LoadTemplatesFile reads a templates document: a JSON array of lists.
// An empty path yields the built-in templates.
func LoadTemplatesFile(path string) ([]*core.List, error) {
	if path == "" {
		return core.DefaultTemplates(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", path, err)
	}

	var templates []*core.List
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("decode templates %s: %w: %w", path, ErrCorrupt, err)
	}
	return templates, nil
}

// Open returns the store selected by driver ("file" or "postgres").
func Open(ctx context.Context, opts Options) (core.Store, func(), error) {
	switch opts.Driver {
	case "", "file":
		return NewFile(opts.DataPath, opts.TemplatesPath, opts.Compress), func() {}, nil
	case "postgres":
		pg, err := NewPostgres(ctx, opts.DatabaseURL, opts.TemplatesPath, opts.Pool)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
}

// Options selects and configures a store.
type Options struct {
	Driver        string
	DataPath      string
	TemplatesPath string
	Compress      bool
	DatabaseURL   string
	Pool          PoolOptions
}
