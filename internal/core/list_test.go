package core

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/uuid"
)

// newTestList builds a list with the given columns or fails the test.
func newTestList(t *testing.T, cols ...*Column) *List {
	t.Helper()
	l := NewList("Test", "test list")
	for _, c := range cols {
		l.AddColumn(c)
	}
	return l
}

func mustColumn(t *testing.T, name string, typ ColumnType, opts ...ColumnOption) *Column {
	t.Helper()
	c, err := NewColumn(name, typ, opts...)
	if err != nil {
		t.Fatalf("NewColumn(%q) error: %v", name, err)
	}
	return c
}

// assertAligned checks that every row has one cell per column of the column's type.
func assertAligned(t *testing.T, l *List) {
	t.Helper()
	cols := l.Columns()
	for _, r := range l.Rows() {
		if r.Len() != len(cols) {
			t.Fatalf("row %s has %d cells, want %d", r.ID, r.Len(), len(cols))
		}
		for i, cell := range r.Cells() {
			if cell.ColumnType() != cols[i].Type() {
				t.Fatalf("row %s cell %d type = %s, want %s", r.ID, i, cell.ColumnType(), cols[i].Type())
			}
		}
	}
}

func textValues(vals []Value) []string {
	var out []string
	for _, v := range vals {
		if s, ok := v.Text(); ok {
			out = append(out, s)
		}
	}
	return out
}

// ----------------------------------------------------------------------------
// NewList Tests
// ----------------------------------------------------------------------------

func TestNewList_Defaults(t *testing.T) {
	l := NewList("Groceries", "weekly")

	if l.ID == uuid.Nil {
		t.Error("ID is nil")
	}
	if l.Color != DefaultColor || l.Icon != DefaultIcon {
		t.Errorf("color/icon = %q/%q, want %q/%q", l.Color, l.Icon, DefaultColor, DefaultIcon)
	}
	if l.PageSize() != DefaultPageSize || l.CurrentPage() != 1 {
		t.Errorf("paging = %d/%d, want %d/1", l.PageSize(), l.CurrentPage(), DefaultPageSize)
	}
	if l.ColumnCount() != 0 || l.RowCount() != 0 {
		t.Errorf("new list has %d columns and %d rows", l.ColumnCount(), l.RowCount())
	}
}

// ----------------------------------------------------------------------------
// AddColumn Tests
// ----------------------------------------------------------------------------

func TestAddColumn_ExtendsExistingRows(t *testing.T) {
	l := newTestList(t, mustColumn(t, "Name", ColumnText))
	if _, err := l.AddRow("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddRow("b"); err != nil {
		t.Fatal(err)
	}

	num := mustColumn(t, "Score", ColumnNumber, WithDefault(7))
	l.AddColumn(num)

	assertAligned(t, l)
	for _, r := range l.Rows() {
		cell, _ := r.Cell(1)
		if n, ok := cell.Value().Number(); !ok || n != 7 {
			t.Errorf("row %s new cell = %v, want 7", r.ID, cell.Value())
		}
	}
	if num.ListID() != l.ID {
		t.Errorf("ListID = %s, want %s", num.ListID(), l.ID)
	}
	if got := len(num.Values()); got != 2 {
		t.Errorf("new column cache has %d values, want 2", got)
	}
}

func TestAddColumn_TypeDefaults(t *testing.T) {
	tests := []struct {
		typ  ColumnType
		kind ValueKind
	}{
		{ColumnText, KindText},
		{ColumnNumber, KindNumber},
		{ColumnChoice, KindText},
		{ColumnDateTime, KindDateTime},
		{ColumnPerson, KindText},
		{ColumnYesNo, KindBool},
		{ColumnHyperlink, KindText},
		{ColumnImage, KindText},
		{ColumnLookup, KindLookup},
		{ColumnMultipleLinesOfText, KindText},
		{ColumnAverageRating, KindNumber},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			l := NewList("L", "")
			l.AddBlankRow()
			l.AddColumn(mustColumn(t, "C", tt.typ))

			assertAligned(t, l)
			cell, _ := l.Rows()[0].Cell(0)
			if cell.Value().Kind() != tt.kind {
				t.Errorf("default kind = %v, want %v", cell.Value().Kind(), tt.kind)
			}
		})
	}
}

func TestAddColumn_DuplicateAndNilIgnored(t *testing.T) {
	c := mustColumn(t, "Name", ColumnText)
	l := newTestList(t, c)

	l.AddColumn(c)
	l.AddColumn(nil)

	if l.ColumnCount() != 1 {
		t.Errorf("ColumnCount = %d, want 1", l.ColumnCount())
	}
}

func TestAddColumn_ForeignColumnIsCopied(t *testing.T) {
	name := mustColumn(t, "Name", ColumnText)
	a := newTestList(t, name)
	for _, v := range []string{"b", "a"} {
		if _, err := a.AddRow(v); err != nil {
			t.Fatal(err)
		}
	}

	b := NewList("Other", "")
	b.AddBlankRow()
	got := b.AddColumn(name)

	if got == name {
		t.Fatal("AddColumn attached the other list's column")
	}
	if name.ListID() != a.ID {
		t.Errorf("original ListID = %s, want %s", name.ListID(), a.ID)
	}
	if got.ListID() != b.ID {
		t.Errorf("copy ListID = %s, want %s", got.ListID(), b.ID)
	}
	if n := len(got.Values()); n != 1 {
		t.Errorf("copy cache has %d values, want 1", n)
	}
	assertAligned(t, b)

	got.Rename("Title")
	if name.Name != "Name" {
		t.Errorf("renaming the copy changed the original to %q", name.Name)
	}

	if err := a.SortColumnAscending(name.ID); err != nil {
		t.Fatalf("SortColumnAscending error: %v", err)
	}
	if vals := textValues(name.Values()); !slices.Equal(vals, []string{"a", "b"}) {
		t.Errorf("original values = %v, want [a b]", vals)
	}
	if n := len(got.Values()); n != 1 {
		t.Errorf("sorting the original changed the copy cache to %d values", n)
	}
}

// ----------------------------------------------------------------------------
// Column Move Tests
// ----------------------------------------------------------------------------

func TestMoveColumn(t *testing.T) {
	a := mustColumn(t, "A", ColumnText)
	b := mustColumn(t, "B", ColumnNumber)
	c := mustColumn(t, "C", ColumnYesNo)

	names := func(l *List) []string {
		var out []string
		for _, col := range l.Columns() {
			out = append(out, col.Name)
		}
		return out
	}

	tests := []struct {
		name string
		move func(l *List)
		want []string
	}{
		{name: "left on first is no-op", move: func(l *List) { l.MoveColumnLeft(0) }, want: []string{"A", "B", "C"}},
		{name: "right on last is no-op", move: func(l *List) { l.MoveColumnRight(2) }, want: []string{"A", "B", "C"}},
		{name: "out of range is no-op", move: func(l *List) { l.MoveColumnLeft(9); l.MoveColumnRight(-1) }, want: []string{"A", "B", "C"}},
		{name: "left swaps with neighbour", move: func(l *List) { l.MoveColumnLeft(1) }, want: []string{"B", "A", "C"}},
		{name: "right swaps with neighbour", move: func(l *List) { l.MoveColumnRight(1) }, want: []string{"A", "C", "B"}},
		{name: "column move right", move: func(l *List) { a.MoveRight(l) }, want: []string{"B", "A", "C"}},
		{name: "column move left on first", move: func(l *List) { a.MoveLeft(l) }, want: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList("L", "")
			// Clones keep their ids, so a.MoveRight finds its copy.
			for _, col := range []*Column{a, b, c} {
				l.AddColumn(col.clone())
			}
			if _, err := l.AddRow("x", 1, true); err != nil {
				t.Fatal(err)
			}

			tt.move(l)

			if got := names(l); !slices.Equal(got, tt.want) {
				t.Errorf("columns = %v, want %v", got, tt.want)
			}
			assertAligned(t, l)
		})
	}
}

// ----------------------------------------------------------------------------
// AddRow / EditRow / DeleteRow Tests
// ----------------------------------------------------------------------------

func TestAddRow_ArityMismatch(t *testing.T) {
	l := newTestList(t,
		mustColumn(t, "Name", ColumnText),
		mustColumn(t, "Age", ColumnNumber),
	)
	if _, err := l.AddRow("Harry", 21); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		values []any
	}{
		{name: "too few values", values: []any{"only"}},
		{name: "too many values", values: []any{"a", 1, "extra"}},
		{name: "no values", values: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.AddRow(tt.values...)
			if !errors.Is(err, ErrArityMismatch) {
				t.Fatalf("AddRow error = %v, want ErrArityMismatch", err)
			}
			if l.RowCount() != 1 {
				t.Errorf("RowCount = %d, want 1", l.RowCount())
			}
		})
	}
}

func TestAddRow_InvalidValueLeavesListUnchanged(t *testing.T) {
	name := mustColumn(t, "Name", ColumnText)
	age := mustColumn(t, "Age", ColumnNumber)
	l := newTestList(t, name, age)

	_, err := l.AddRow("Harry", "twenty")
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("AddRow error = %v, want ErrInvalidValue", err)
	}
	if l.RowCount() != 0 {
		t.Errorf("RowCount = %d, want 0", l.RowCount())
	}
	if len(name.Values()) != 0 || len(age.Values()) != 0 {
		t.Error("column caches changed after failed AddRow")
	}
}

func TestAddRow_NonFiniteNumberRejected(t *testing.T) {
	l := newTestList(t, mustColumn(t, "Score", ColumnNumber))
	if _, err := l.AddRow(1.5); err != nil {
		t.Fatal(err)
	}

	for _, raw := range []any{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := l.AddRow(raw); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("AddRow(%v) error = %v, want ErrInvalidValue", raw, err)
		}
	}
	if l.RowCount() != 1 {
		t.Errorf("RowCount = %d, want 1", l.RowCount())
	}
	if _, err := json.Marshal(l); err != nil {
		t.Errorf("list no longer marshals: %v", err)
	}
}

func TestAddRow_CoercesValues(t *testing.T) {
	l := newTestList(t,
		mustColumn(t, "Name", ColumnText),
		mustColumn(t, "Amount", ColumnNumber),
		mustColumn(t, "Done", ColumnYesNo),
		mustColumn(t, "Due", ColumnDateTime),
	)

	r, err := l.AddRow(nil, "$1,200.50", "yes", "2024-01-15")
	if err != nil {
		t.Fatalf("AddRow error: %v", err)
	}

	vals := r.Values()
	if s, _ := vals[0].Text(); s != "" {
		t.Errorf("nil text = %q, want empty", s)
	}
	if n, _ := vals[1].Number(); n != 1200.50 {
		t.Errorf("amount = %v, want 1200.5", n)
	}
	if b, _ := vals[2].Bool(); !b {
		t.Error("done = false, want true")
	}
	if d, ok := vals[3].Time(); !ok || d.Year() != 2024 {
		t.Errorf("due = %v, want 2024-01-15", vals[3])
	}
}

func TestAddBlankRow(t *testing.T) {
	l := newTestList(t,
		mustColumn(t, "Name", ColumnText, WithDefault("n/a")),
		mustColumn(t, "Count", ColumnNumber),
	)

	r := l.AddBlankRow()

	assertAligned(t, l)
	if got := r.Strings(); !slices.Equal(got, []string{"n/a", "0"}) {
		t.Errorf("blank row = %v, want [n/a 0]", got)
	}
}

func TestEditRow(t *testing.T) {
	name := mustColumn(t, "Name", ColumnText)
	age := mustColumn(t, "Age", ColumnNumber)
	l := newTestList(t, name, age)
	r, _ := l.AddRow("Harry", 21)

	t.Run("replaces and coerces values", func(t *testing.T) {
		if err := l.EditRow(r.ID, "Harry Kane", "31"); err != nil {
			t.Fatalf("EditRow error: %v", err)
		}
		if got := r.Strings(); !slices.Equal(got, []string{"Harry Kane", "31"}) {
			t.Errorf("row = %v", got)
		}
		if n, _ := age.Values()[0].Number(); n != 31 {
			t.Errorf("cache = %v, want 31", n)
		}
	})

	t.Run("invalid value leaves row unchanged", func(t *testing.T) {
		err := l.EditRow(r.ID, "Nobody", "old")
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("EditRow error = %v, want ErrInvalidValue", err)
		}
		if got := r.Strings(); !slices.Equal(got, []string{"Harry Kane", "31"}) {
			t.Errorf("row changed to %v", got)
		}
	})

	t.Run("arity mismatch", func(t *testing.T) {
		if err := l.EditRow(r.ID, "x"); !errors.Is(err, ErrArityMismatch) {
			t.Errorf("EditRow error = %v, want ErrArityMismatch", err)
		}
	})

	t.Run("unknown row", func(t *testing.T) {
		if err := l.EditRow(uuid.New(), "x", 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("EditRow error = %v, want ErrNotFound", err)
		}
	})
}

func TestSetCell(t *testing.T) {
	l := newTestList(t, mustColumn(t, "Done", ColumnYesNo))
	r, _ := l.AddRow(false)

	if err := l.SetCell(r.ID, 0, "y"); err != nil {
		t.Fatalf("SetCell error: %v", err)
	}
	if b, _ := r.Values()[0].Bool(); !b {
		t.Error("cell = false, want true")
	}

	if err := l.SetCell(r.ID, 0, "perhaps"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("SetCell error = %v, want ErrInvalidValue", err)
	}
	if b, _ := r.Values()[0].Bool(); !b {
		t.Error("failed SetCell changed the cell")
	}
	if err := l.SetCell(r.ID, 3, true); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("SetCell error = %v, want ErrUnknownColumn", err)
	}
}

func TestDeleteRow(t *testing.T) {
	col := mustColumn(t, "Name", ColumnText)
	l := newTestList(t, col)
	a, _ := l.AddRow("a")
	l.AddRow("b")

	if err := l.DeleteRow(a.ID); err != nil {
		t.Fatalf("DeleteRow error: %v", err)
	}
	if l.RowCount() != 1 {
		t.Errorf("RowCount = %d, want 1", l.RowCount())
	}
	if got := textValues(col.Values()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("cache = %v, want [b]", got)
	}
	if err := l.DeleteRow(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRow error = %v, want ErrNotFound", err)
	}
}

func TestAddComment(t *testing.T) {
	l := newTestList(t, mustColumn(t, "Name", ColumnText))
	r, _ := l.AddRow("a")

	c, err := l.AddComment(r.ID, "looks good")
	if err != nil {
		t.Fatalf("AddComment error: %v", err)
	}
	if got := r.Comments(); len(got) != 1 || got[0].ID != c.ID {
		t.Errorf("comments = %v", got)
	}
	if _, err := l.AddComment(uuid.New(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddComment error = %v, want ErrNotFound", err)
	}
}

// ----------------------------------------------------------------------------
// Query Tests
// ----------------------------------------------------------------------------

func TestSearchAndFilter(t *testing.T) {
	l := newTestList(t,
		mustColumn(t, "Text Column", ColumnText),
		mustColumn(t, "Number Column", ColumnNumber),
	)
	first, _ := l.AddRow("Harry Kane", 21)
	l.AddRow("Lebron James", 23)

	t.Run("search matches one row", func(t *testing.T) {
		got := l.Search("Harry")
		if len(got) != 1 || got[0].ID != first.ID {
			t.Errorf("Search(Harry) = %v, want first row", got)
		}
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		if got := l.Search("lebron"); len(got) != 1 {
			t.Errorf("Search(lebron) returned %d rows, want 1", len(got))
		}
	})

	t.Run("search does not mutate", func(t *testing.T) {
		l.Search("a")
		if l.RowCount() != 2 {
			t.Errorf("RowCount = %d, want 2", l.RowCount())
		}
	})

	t.Run("filter by number column", func(t *testing.T) {
		rows, err := l.FilterByColumn("Number Column", func(v Value) bool {
			n, ok := v.Number()
			return ok && n > 20
		})
		if err != nil {
			t.Fatalf("FilterByColumn error: %v", err)
		}
		var got []float64
		for _, r := range rows {
			n, _ := r.Values()[1].Number()
			got = append(got, n)
		}
		if !slices.Equal(got, []float64{21, 23}) {
			t.Errorf("filtered values = %v, want [21 23]", got)
		}
	})

	t.Run("filter unknown column", func(t *testing.T) {
		_, err := l.FilterByColumn("number column", func(Value) bool { return true })
		if !errors.Is(err, ErrUnknownColumn) {
			t.Errorf("FilterByColumn error = %v, want ErrUnknownColumn", err)
		}
	})
}

func TestSortColumn(t *testing.T) {
	col := mustColumn(t, "Letters", ColumnText)
	l := newTestList(t, col)
	for _, s := range []string{"b", "a", "d", "e", "c"} {
		if _, err := l.AddRow(s); err != nil {
			t.Fatal(err)
		}
	}

	if err := l.SortColumnAscending(col.ID); err != nil {
		t.Fatalf("SortColumnAscending error: %v", err)
	}
	if got := textValues(col.Values()); !slices.Equal(got, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("ascending = %v", got)
	}

	if err := l.SortColumnDescending(col.ID); err != nil {
		t.Fatalf("SortColumnDescending error: %v", err)
	}
	if got := textValues(col.Values()); !slices.Equal(got, []string{"e", "d", "c", "b", "a"}) {
		t.Errorf("descending = %v", got)
	}

	// Rows keep their insertion order.
	var rows []string
	for _, r := range l.Rows() {
		rows = append(rows, r.Strings()[0])
	}
	if !slices.Equal(rows, []string{"b", "a", "d", "e", "c"}) {
		t.Errorf("rows reordered to %v", rows)
	}

	if err := l.SortColumnAscending(uuid.New()); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("sort unknown column error = %v, want ErrUnknownColumn", err)
	}
}

func TestSortColumn_OnlyTextEntriesMove(t *testing.T) {
	col := mustColumn(t, "Mixed", ColumnText)
	col.values = []Value{TextValue("c"), NumberValue(1), TextValue("a"), NullValue(), TextValue("b")}
	l := NewList("L", "")
	l.columns = []*Column{col}

	if err := l.SortColumnAscending(col.ID); err != nil {
		t.Fatal(err)
	}

	want := []Value{TextValue("a"), NumberValue(1), TextValue("b"), NullValue(), TextValue("c")}
	for i, v := range col.Values() {
		if !v.Equal(want[i]) {
			t.Errorf("values[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestSortColumn_OrdinalComparison(t *testing.T) {
	col := mustColumn(t, "Case", ColumnText)
	l := newTestList(t, col)
	for _, s := range []string{"b", "B", "a", "A"} {
		l.AddRow(s)
	}

	l.SortColumnAscending(col.ID)

	if got := textValues(col.Values()); !slices.Equal(got, []string{"A", "B", "a", "b"}) {
		t.Errorf("ascending = %v, want ordinal order", got)
	}
}

func TestCompilePredicate(t *testing.T) {
	tests := []struct {
		name    string
		op      FilterOperator
		operand string
		value   Value
		want    bool
	}{
		{name: "contains", op: OpContains, operand: "ARR", value: TextValue("Harry"), want: true},
		{name: "starts with", op: OpStartsWith, operand: "ha", value: TextValue("Harry"), want: true},
		{name: "ends with", op: OpEndsWith, operand: "ha", value: TextValue("Harry"), want: false},
		{name: "equals text", op: OpEquals, operand: "harry", value: TextValue("Harry"), want: true},
		{name: "equals number", op: OpEquals, operand: "21", value: NumberValue(21), want: true},
		{name: "greater number", op: OpGreater, operand: "20", value: NumberValue(21), want: true},
		{name: "less or equal number", op: OpLessEq, operand: "20", value: NumberValue(21), want: false},
		{name: "greater or equal bool", op: OpGreaterEq, operand: "no", value: BoolValue(true), want: true},
		{name: "in set", op: OpIn, operand: "a, b ,c", value: TextValue("B"), want: true},
		{name: "not in set", op: OpIn, operand: "a,b", value: TextValue("z"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := CompilePredicate(tt.op, tt.operand)
			if err != nil {
				t.Fatalf("CompilePredicate error: %v", err)
			}
			if got := pred(tt.value); got != tt.want {
				t.Errorf("pred(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}

	if _, err := CompilePredicate("like", "x"); err == nil {
		t.Error("expected error for unknown operator")
	}
}

// ----------------------------------------------------------------------------
// Paging Tests
// ----------------------------------------------------------------------------

func TestPaging(t *testing.T) {
	l := newTestList(t, mustColumn(t, "Name", ColumnText))
	l.SetPageSize(2)
	for _, s := range []string{"Row1", "Row2", "Row3", "Row4"} {
		l.AddRow(s)
	}

	page := func() []string {
		var out []string
		for _, r := range l.CurrentPageRows() {
			out = append(out, r.Strings()[0])
		}
		return out
	}

	if l.TotalPages() != 2 {
		t.Fatalf("TotalPages = %d, want 2", l.TotalPages())
	}
	if got := page(); !slices.Equal(got, []string{"Row1", "Row2"}) {
		t.Errorf("first page = %v", got)
	}

	l.NextPage()
	if got := page(); !slices.Equal(got, []string{"Row3", "Row4"}) {
		t.Errorf("after NextPage = %v", got)
	}

	l.NextPage()
	if l.CurrentPage() != 2 {
		t.Errorf("NextPage past end moved to page %d", l.CurrentPage())
	}

	l.PreviousPage()
	if got := page(); !slices.Equal(got, []string{"Row1", "Row2"}) {
		t.Errorf("after PreviousPage = %v", got)
	}

	l.PreviousPage()
	if l.CurrentPage() != 1 {
		t.Errorf("PreviousPage before start moved to page %d", l.CurrentPage())
	}
}

func TestPaging_Empty(t *testing.T) {
	l := NewList("L", "")

	if l.TotalPages() != 0 {
		t.Errorf("TotalPages = %d, want 0", l.TotalPages())
	}
	l.NextPage()
	if l.CurrentPage() != 1 {
		t.Errorf("CurrentPage = %d, want 1", l.CurrentPage())
	}
	if rows := l.CurrentPageRows(); len(rows) != 0 {
		t.Errorf("CurrentPageRows = %v, want empty", rows)
	}
}

// ----------------------------------------------------------------------------
// Access Tests
// ----------------------------------------------------------------------------

func TestAccess(t *testing.T) {
	l := NewList("L", "")
	alice := User{ID: uuid.New(), Name: "Alice"}
	bob := User{Name: "Bob"}

	l.AddAccess(alice)
	l.AddAccess(alice)
	l.AddAccess(bob)
	l.AddAccess(User{Name: "bob"})

	if got := len(l.Users()); got != 2 {
		t.Fatalf("Users() has %d members, want 2", got)
	}
	if !l.HasAccess(alice) {
		t.Error("HasAccess(alice) = false")
	}
	if !l.RemoveAccess(bob) {
		t.Error("RemoveAccess(bob) = false")
	}
	if l.HasAccess(bob) {
		t.Error("bob still has access")
	}
	if l.RemoveAccess(bob) {
		t.Error("second RemoveAccess(bob) = true")
	}
}

// ----------------------------------------------------------------------------
// Clone Tests
// ----------------------------------------------------------------------------

func TestClone_IsDeep(t *testing.T) {
	col := mustColumn(t, "Name", ColumnText)
	l := newTestList(t, col)
	r, _ := l.AddRow("a")

	cp := l.Clone()
	if cp.ID == l.ID {
		t.Error("clone kept the source id")
	}

	cpRow := cp.Rows()[0]
	if cpRow.ID != r.ID || cp.Columns()[0].ID != col.ID {
		t.Error("clone re-keyed its columns or rows")
	}
	if cpRow == r || cp.Columns()[0] == col {
		t.Error("clone shares a column or row with the source")
	}
	if err := cp.EditRow(cpRow.ID, "changed"); err != nil {
		t.Fatal(err)
	}
	cp.Columns()[0].Rename("Other")

	if got := r.Strings()[0]; got != "a" {
		t.Errorf("source row changed to %q", got)
	}
	if col.Name != "Name" {
		t.Errorf("source column renamed to %q", col.Name)
	}
	if cp.Columns()[0].ListID() != cp.ID {
		t.Error("cloned column points at the wrong list")
	}
}
