package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Search returns the rows where any cell's string form contains query,
// ignoring case. The list is not modified.
func (l *List) Search(query string) []*Row {
	q := strings.ToLower(query)

	var out []*Row
	for _, r := range l.rows {
		for _, c := range r.cells {
			if strings.Contains(strings.ToLower(c.String()), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FilterByColumn returns the rows whose cell in the named column satisfies
// pred. The name must match exactly; otherwise ErrUnknownColumn.
func (l *List) FilterByColumn(name string, pred Predicate) ([]*Row, error) {
	_, idx, err := l.ColumnByName(name)
	if err != nil {
		return nil, err
	}

	var out []*Row
	for _, r := range l.rows {
		if pred(r.cells[idx].value) {
			out = append(out, r)
		}
	}
	return out, nil
}

// SortColumnAscending orders the text values of the column's value cache
// A to Z. Non-text entries keep their positions and rows are untouched, so
// the cache need not stay aligned with rows afterwards.
func (l *List) SortColumnAscending(columnID uuid.UUID) error {
	return l.sortColumn(columnID, false)
}

// SortColumnDescending orders the text values of the column's value cache
// Z to A. See SortColumnAscending.
func (l *List) SortColumnDescending(columnID uuid.UUID) error {
	return l.sortColumn(columnID, true)
}

func (l *List) sortColumn(columnID uuid.UUID, desc bool) error {
	c, ok := l.Column(columnID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}

	var (
		slots []int
		texts []string
	)
	for i, v := range c.values {
		if s, ok := v.Text(); ok {
			slots = append(slots, i)
			texts = append(texts, s)
		}
	}

	slices.SortStableFunc(texts, func(a, b string) int {
		if desc {
			return strings.Compare(b, a)
		}
		return strings.Compare(a, b)
	})

	for k, i := range slots {
		c.values[i] = TextValue(texts[k])
	}
	return nil
}

// CompilePredicate builds a Predicate from a transport-level filter.
// Text operators compare string forms case-insensitively; ordering
// operators compare numbers, dates or, failing both, strings.
func CompilePredicate(op FilterOperator, operand string) (Predicate, error) {
	lower := strings.ToLower(operand)

	switch op {
	case OpContains:
		return func(v Value) bool { return strings.Contains(strings.ToLower(v.String()), lower) }, nil
	case OpStartsWith:
		return func(v Value) bool { return strings.HasPrefix(strings.ToLower(v.String()), lower) }, nil
	case OpEndsWith:
		return func(v Value) bool { return strings.HasSuffix(strings.ToLower(v.String()), lower) }, nil
	case OpEquals:
		return func(v Value) bool { return compareToOperand(v, operand) == 0 }, nil
	case OpIn:
		var set []string
		for _, part := range strings.Split(operand, ",") {
			set = append(set, strings.ToLower(strings.TrimSpace(part)))
		}
		return func(v Value) bool { return slices.Contains(set, strings.ToLower(v.String())) }, nil
	case OpGreater:
		return func(v Value) bool { return compareToOperand(v, operand) > 0 }, nil
	case OpGreaterEq:
		return func(v Value) bool { return compareToOperand(v, operand) >= 0 }, nil
	case OpLess:
		return func(v Value) bool { return compareToOperand(v, operand) < 0 }, nil
	case OpLessEq:
		return func(v Value) bool { return compareToOperand(v, operand) <= 0 }, nil
	}
	return nil, fmt.Errorf("unknown filter operator %q", op)
}

// compareToOperand compares a cell value with a filter operand in the
// value's own domain.
func compareToOperand(v Value, operand string) int {
	switch v.Kind() {
	case KindNumber:
		if f, ok := ParseNumber(operand); ok {
			n, _ := v.Number()
			switch {
			case n < f:
				return -1
			case n > f:
				return 1
			}
			return 0
		}
	case KindDateTime:
		if t, ok := ParseDateTime(operand); ok {
			vt, _ := v.Time()
			return vt.Compare(t)
		}
	case KindBool:
		if b, ok := ParseBool(operand); ok {
			vb, _ := v.Bool()
			switch {
			case vb == b:
				return 0
			case !vb:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(strings.ToLower(v.String()), strings.ToLower(operand))
}
