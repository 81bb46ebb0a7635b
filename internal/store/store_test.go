package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/lists/internal/core"
)

func sampleLists(t *testing.T) []*core.List {
	t.Helper()
	l := core.NewList("Players", "squad")
	name, err := core.NewColumn("Name", core.ColumnText)
	if err != nil {
		t.Fatal(err)
	}
	goals, err := core.NewColumn("Goals", core.ColumnNumber)
	if err != nil {
		t.Fatal(err)
	}
	l.AddColumn(name)
	l.AddColumn(goals)
	if _, err := l.AddRow("Harry Kane", 21); err != nil {
		t.Fatal(err)
	}
	return []*core.List{l, core.NewList("Empty", "")}
}

// ----------------------------------------------------------------------------
// File Store Tests
// ----------------------------------------------------------------------------

func TestFile_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		compress bool
	}{
		{name: "plain json", compress: false},
		{name: "lz4 compressed", compress: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "nested", "lists.json")
			st := NewFile(path, "", tt.compress)
			want := sampleLists(t)

			if err := st.SaveLists(ctx, want); err != nil {
				t.Fatalf("SaveLists error: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if got := bytes.HasPrefix(raw, lz4Magic); got != tt.compress {
				t.Errorf("lz4 header present = %v, want %v", got, tt.compress)
			}

			got, err := st.LoadLists(ctx)
			if err != nil {
				t.Fatalf("LoadLists error: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("loaded %d lists, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i].ID != want[i].ID || got[i].Name != want[i].Name {
					t.Errorf("list %d = %s %q, want %s %q", i, got[i].ID, got[i].Name, want[i].ID, want[i].Name)
				}
				if got[i].ColumnCount() != want[i].ColumnCount() || got[i].RowCount() != want[i].RowCount() {
					t.Errorf("list %d shape = %dx%d", i, got[i].ColumnCount(), got[i].RowCount())
				}
			}
		})
	}
}

func TestFile_SwitchCompression(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lists.json")

	if err := NewFile(path, "", true).SaveLists(ctx, sampleLists(t)); err != nil {
		t.Fatal(err)
	}

	got, err := NewFile(path, "", false).LoadLists(ctx)
	if err != nil {
		t.Fatalf("LoadLists error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("loaded %d lists, want 2", len(got))
	}
}

func TestFile_MissingDocument(t *testing.T) {
	st := NewFile(filepath.Join(t.TempDir(), "none.json"), "", false)

	got, err := st.LoadLists(context.Background())
	if err != nil {
		t.Fatalf("LoadLists error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("loaded %d lists, want 0", len(got))
	}
}

func TestFile_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFile(path, "", false).LoadLists(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("LoadLists error = %v, want ErrCorrupt", err)
	}
	if core.MapError(err).Code != "STO003" {
		t.Errorf("MapError code = %q, want STO003", core.MapError(err).Code)
	}
}

func TestFile_SaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "lists.json")
	if err := NewFile(path, "", false).SaveLists(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("SaveLists error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("document written despite cancelled context")
	}
}

func TestFile_ServiceIntegration(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lists.json")

	svc, err := core.NewService(ctx, NewFile(path, "", true), core.ServiceOptions{SaveOnWrite: true})
	if err != nil {
		t.Fatal(err)
	}
	l, err := svc.CreateFromTemplate(ctx, svc.Templates()[0].ID)
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := core.NewService(ctx, NewFile(path, "", true), core.ServiceOptions{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := reopened.Get(l.ID)
	if err != nil {
		t.Fatalf("list not persisted: %v", err)
	}
	if got.ColumnCount() != 2 {
		t.Errorf("ColumnCount = %d, want 2", got.ColumnCount())
	}
}

// ----------------------------------------------------------------------------
// Templates Tests
// ----------------------------------------------------------------------------

func TestLoadTemplatesFile(t *testing.T) {
	t.Run("empty path uses built-in templates", func(t *testing.T) {
		got, err := LoadTemplatesFile("")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("templates = %d, want 2", len(got))
		}
	})

	t.Run("reads document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "templates.json")
		doc := `[{"name":"Tasks","columns":[{"name":"Title","type":"Text"},{"name":"Due","type":"Date and time"}]}]`
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := LoadTemplatesFile(path)
		if err != nil {
			t.Fatalf("LoadTemplatesFile error: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Tasks" || got[0].ColumnCount() != 2 {
			t.Errorf("templates = %+v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadTemplatesFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected error for missing templates file")
		}
	})
}

// ----------------------------------------------------------------------------
// Postgres Store Tests
// ----------------------------------------------------------------------------

func TestPostgres_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pg, err := NewPostgres(ctx, url, "", PoolOptions{MaxConns: 2})
	if err != nil {
		t.Fatalf("NewPostgres error: %v", err)
	}
	defer pg.Close()

	want := sampleLists(t)
	if err := pg.SaveLists(ctx, want); err != nil {
		t.Fatalf("SaveLists error: %v", err)
	}
	if err := pg.SaveLists(ctx, want[:1]); err != nil {
		t.Fatalf("second SaveLists error: %v", err)
	}

	got, err := pg.LoadLists(ctx)
	if err != nil {
		t.Fatalf("LoadLists error: %v", err)
	}
	if len(got) != 1 || got[0].ID != want[0].ID || got[0].RowCount() != 1 {
		t.Errorf("loaded %d lists after removal", len(got))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, _, err := Open(context.Background(), Options{Driver: "s3"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
