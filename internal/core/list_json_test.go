package core

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestListJSON_RoundTrip(t *testing.T) {
	l := NewList("Players", "squad")
	l.Color = "Blue"
	l.IsFavorited = true
	l.AddColumn(mustColumn(t, "Name", ColumnText))
	l.AddColumn(mustColumn(t, "Goals", ColumnNumber))
	l.AddColumn(mustColumn(t, "Active", ColumnYesNo))
	l.AddColumn(mustColumn(t, "Joined", ColumnDateTime))
	l.AddColumn(mustColumn(t, "Position", ColumnChoice))
	l.SetPageSize(10)
	l.AddAccess(User{Name: "Alice", IsOwner: true})

	joined := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)
	r, err := l.AddRow("Harry Kane", 21, true, joined, "Choice 1")
	if err != nil {
		t.Fatal(err)
	}
	l.AddComment(r.ID, "captain")

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var got List
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if got.ID != l.ID || got.Name != l.Name || got.Color != "Blue" || !got.IsFavorited {
		t.Errorf("header = %+v", got)
	}
	if got.ColumnCount() != l.ColumnCount() {
		t.Fatalf("ColumnCount = %d, want %d", got.ColumnCount(), l.ColumnCount())
	}
	for i, c := range got.Columns() {
		want := l.Columns()[i]
		if c.Name != want.Name || c.Type() != want.Type() || c.ID != want.ID {
			t.Errorf("column %d = %s/%s, want %s/%s", i, c.Name, c.Type(), want.Name, want.Type())
		}
		if c.ListID() != got.ID {
			t.Errorf("column %d ListID not restored", i)
		}
	}
	if got.PageSize() != 10 {
		t.Errorf("PageSize = %d, want 10", got.PageSize())
	}
	if !got.HasAccess(User{Name: "alice"}) {
		t.Error("access set lost")
	}

	gotRow := got.Rows()[0]
	if !slices.Equal(gotRow.Strings(), r.Strings()) {
		t.Errorf("row = %v, want %v", gotRow.Strings(), r.Strings())
	}
	if tm, _ := gotRow.Values()[3].Time(); !tm.Equal(joined) {
		t.Errorf("joined = %v, want %v", tm, joined)
	}
	if len(gotRow.Comments()) != 1 {
		t.Errorf("comments = %v", gotRow.Comments())
	}
	if got.Columns()[4].ChoiceNames()[0] != "Choice 1" {
		t.Error("choices lost")
	}
}

func TestListJSON_TemplateDocument(t *testing.T) {
	doc := `{
		"name": "Tasks",
		"description": "todo",
		"color": "Red",
		"icon": "Check",
		"columns": [
			{"name": "Title", "type": "Text"},
			{"name": "Done", "type": "Yes/No"}
		],
		"rows": [
			{"cells": [{"type": "Text", "value": "write"}, {"type": "Yes/No", "value": false}]}
		]
	}`

	var l List
	if err := json.Unmarshal([]byte(doc), &l); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if l.PageSize() != DefaultPageSize || l.CurrentPage() != 1 {
		t.Errorf("paging = %d/%d", l.PageSize(), l.CurrentPage())
	}
	for _, c := range l.Columns() {
		if c.Width != DefaultColumnWidth {
			t.Errorf("column %q width = %d", c.Name, c.Width)
		}
	}
	if got := textValues(l.Columns()[0].Values()); !slices.Equal(got, []string{"write"}) {
		t.Errorf("value cache = %v, want rebuilt from rows", got)
	}
}

func TestListJSON_RejectsMisalignedRows(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "too few cells",
			doc: `{"name":"L","columns":[{"name":"A","type":"Text"},{"name":"B","type":"Number"}],
				"rows":[{"cells":[{"type":"Text","value":"x"}]}]}`,
			wantErr: ErrArityMismatch,
		},
		{
			name: "cell type differs from column",
			doc: `{"name":"L","columns":[{"name":"A","type":"Text"}],
				"rows":[{"cells":[{"type":"Number","value":1}]}]}`,
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown column type",
			doc:     `{"name":"L","columns":[{"name":"A","type":"Blob"}]}`,
			wantErr: ErrUnsupportedColumnType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l List
			err := json.Unmarshal([]byte(tt.doc), &l)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestToForm(t *testing.T) {
	l := NewList("Signup", "event")
	l.AddColumn(mustColumn(t, "Name", ColumnText))
	secret := mustColumn(t, "Internal", ColumnText)
	secret.Hide()
	l.AddColumn(secret)
	l.AddColumn(mustColumn(t, "Size", ColumnChoice))

	f := ToForm(l)

	if f.ListID != l.ID || f.Name != "Signup" {
		t.Errorf("form header = %+v", f)
	}
	if len(f.Fields) != 2 {
		t.Fatalf("fields = %d, want 2 (hidden column skipped)", len(f.Fields))
	}
	if f.Fields[1].Name != "Size" || len(f.Fields[1].Choices) != 3 {
		t.Errorf("choice field = %+v", f.Fields[1])
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal form error: %v", err)
	}
	if !strings.Contains(string(data), `"type":"Choice"`) {
		t.Errorf("form JSON missing type name: %s", data)
	}
}

func TestDefaultTemplates(t *testing.T) {
	a := DefaultTemplates()
	b := DefaultTemplates()

	if len(a) != 2 {
		t.Fatalf("DefaultTemplates returned %d templates, want 2", len(a))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("template %q id is not stable", a[i].Name)
		}
		if a[i].ColumnCount() != 2 {
			t.Errorf("template %q has %d columns", a[i].Name, a[i].ColumnCount())
		}
	}
	if a[1].Columns()[1].Type() != ColumnDateTime {
		t.Errorf("Template2 second column = %s, want Date and time", a[1].Columns()[1].Type())
	}
}
