package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions sizes the Postgres connection pool.
type PoolOptions struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lists (
	id         uuid PRIMARY KEY,
	position   integer NOT NULL,
	name       text NOT NULL,
	document   jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// Postgres stores each list as one JSONB document row.
type Postgres struct {
	pool          *pgxpool.Pool
	templatesPath string
}

// NewPostgres connects, verifies the connection and creates the lists table.
func NewPostgres(ctx context.Context, databaseURL, templatesPath string, opts PoolOptions) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		poolConfig.MinConns = int32(opts.MinConns)
	}
	if opts.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create lists table: %w", err)
	}

	if u, err := url.Parse(databaseURL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	return &Postgres{pool: pool, templatesPath: templatesPath}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() { p.pool.Close() }

// LoadTemplates reads the templates document, or returns the built-in templates.
func (p *Postgres) LoadTemplates(ctx context.Context) ([]*core.List, error) {
	return LoadTemplatesFile(p.templatesPath)
}

// LoadLists reads every list in saved order.
func (p *Postgres) LoadLists(ctx context.Context) ([]*core.List, error) {
	rows, err := p.pool.Query(ctx, `SELECT document FROM lists ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	var lists []*core.List
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		l := new(core.List)
		if err := json.Unmarshal(doc, l); err != nil {
			return nil, fmt.Errorf("decode list: %w: %w", ErrCorrupt, err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}
	return lists, nil
}

// SaveLists replaces the stored lists with lists in one transaction.
// Rows for lists no longer present are deleted.
func (p *Postgres) SaveLists(ctx context.Context, lists []*core.List) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]string, len(lists))
	for i, l := range lists {
		ids[i] = l.ID.String()
	}
	if _, err := tx.Exec(ctx, `DELETE FROM lists WHERE NOT (id = ANY($1::uuid[]))`, ids); err != nil {
		return fmt.Errorf("delete removed lists: %w", err)
	}

	batch := &pgx.Batch{}
	for i, l := range lists {
		doc, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("encode list %s: %w", l.ID, err)
		}
		batch.Queue(`
			INSERT INTO lists (id, position, name, document, updated_at)
			VALUES ($1::uuid, $2, $3, $4, now())
			ON CONFLICT (id) DO UPDATE
			SET position = EXCLUDED.position,
			    name = EXCLUDED.name,
			    document = EXCLUDED.document,
			    updated_at = now()`,
			l.ID.String(), i, l.Name, doc)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert lists: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
