package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Column width limits, in pixels.
const (
	DefaultColumnWidth = 150
	ColumnWidthStep    = 25
	MinColumnWidth     = 50
)

// Column is a typed column definition. Type-specific fields are only
// meaningful for their column type:
//   - Choices, AddValuesManually: Choice
//   - Lookup: Lookup
//   - Ratings: AverageRating
//   - ShowProfilePic: Person
//   - CalculatedValue: Text
type Column struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsHidden    bool
	Width       int

	Choices           []Choice
	AddValuesManually bool
	Lookup            LookupRef
	Ratings           []float64
	ShowProfilePic    bool
	CalculatedValue   bool

	typ          ColumnType
	listID       uuid.UUID // owning list, set by List.AddColumn
	defaultValue Value
	hasDefault   bool
	values       []Value // denormalized cell values, appended per row
}

// ColumnOption configures a column at creation.
type ColumnOption func(*Column) error

// WithDefault sets the default cell value, coerced to the column type.
func WithDefault(raw any) ColumnOption {
	return func(c *Column) error {
		v, err := Coerce(c.typ, raw)
		if err != nil {
			return fmt.Errorf("default for %q: %w", c.Name, err)
		}
		c.defaultValue = v
		c.hasDefault = true
		return nil
	}
}

// WithDescription sets the column description.
func WithDescription(d string) ColumnOption {
	return func(c *Column) error {
		c.Description = d
		return nil
	}
}

// WithWidth sets the initial width, clamped to MinColumnWidth.
func WithWidth(w int) ColumnOption {
	return func(c *Column) error {
		c.Width = max(w, MinColumnWidth)
		return nil
	}
}

// WithChoices sets the options of a Choice column.
func WithChoices(choices ...Choice) ColumnOption {
	return func(c *Column) error {
		c.Choices = append([]Choice(nil), choices...)
		return nil
	}
}

// WithLookup points a Lookup column at another list's column.
func WithLookup(listID, columnID uuid.UUID) ColumnOption {
	return func(c *Column) error {
		c.Lookup = LookupRef{ListID: listID, ColumnID: columnID}
		return nil
	}
}

// WithRatings seeds the ratings of an AverageRating column.
func WithRatings(ratings ...float64) ColumnOption {
	return func(c *Column) error {
		c.Ratings = append([]float64(nil), ratings...)
		return nil
	}
}

// NewColumn creates a column of the given type.
// Fails with ErrUnsupportedColumnType for unknown types and ErrInvalidValue
// when a default cannot be coerced.
func NewColumn(name string, typ ColumnType, opts ...ColumnOption) (*Column, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("column %q: %w: %d", name, ErrUnsupportedColumnType, int(typ))
	}

	c := &Column{
		ID:    uuid.New(),
		Name:  name,
		Width: DefaultColumnWidth,
		typ:   typ,
	}
	if typ == ColumnChoice {
		c.Choices = []Choice{
			NewChoice("Choice 1", "Blue"),
			NewChoice("Choice 2", "Green"),
			NewChoice("Choice 3", "Yellow"),
		}
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Type returns the column type. It never changes after creation.
func (c *Column) Type() ColumnType { return c.typ }

// ListID returns the id of the list holding the column, or uuid.Nil.
func (c *Column) ListID() uuid.UUID { return c.listID }

// DefaultValue returns the value given to new cells in this column.
func (c *Column) DefaultValue() Value {
	if c.hasDefault {
		return c.defaultValue
	}
	switch c.typ {
	case ColumnNumber:
		return NumberValue(0)
	case ColumnAverageRating:
		return NumberValue(c.Average())
	case ColumnYesNo:
		return BoolValue(false)
	case ColumnDateTime:
		return DateTimeValue(time.Now().UTC().Truncate(time.Second))
	case ColumnLookup:
		return LookupValue(c.Lookup)
	default:
		return TextValue("")
	}
}

// Values returns a copy of the column's cached cell values.
func (c *Column) Values() []Value {
	return append([]Value(nil), c.values...)
}

// Rename changes the column name.
func (c *Column) Rename(name string) { c.Name = name }

// Hide marks the column hidden.
func (c *Column) Hide() { c.IsHidden = true }

// Show marks the column visible.
func (c *Column) Show() { c.IsHidden = false }

// Widen grows the column by ColumnWidthStep.
func (c *Column) Widen() { c.Width += ColumnWidthStep }

// Narrow shrinks the column by ColumnWidthStep.
// Does nothing when the result would be below MinColumnWidth.
func (c *Column) Narrow() {
	if c.Width-ColumnWidthStep < MinColumnWidth {
		return
	}
	c.Width -= ColumnWidthStep
}

// MoveLeft swaps the column with its left neighbour in l.
// Does nothing if the column is first or not part of l.
func (c *Column) MoveLeft(l *List) {
	if i := l.ColumnIndex(c.ID); i >= 0 {
		l.MoveColumnLeft(i)
	}
}

// MoveRight swaps the column with its right neighbour in l.
// Does nothing if the column is last or not part of l.
func (c *Column) MoveRight(l *List) {
	if i := l.ColumnIndex(c.ID); i >= 0 {
		l.MoveColumnRight(i)
	}
}

// AddRating records a rating on an AverageRating column.
func (c *Column) AddRating(r float64) {
	c.Ratings = append(c.Ratings, r)
}

// Average returns the mean of the column's ratings, or 0 without ratings.
func (c *Column) Average() float64 {
	return average(c.Ratings)
}

// ChoiceNames returns the names of a Choice column's options in order.
func (c *Column) ChoiceNames() []string {
	names := make([]string, len(c.Choices))
	for i, ch := range c.Choices {
		names[i] = ch.Name
	}
	return names
}

// clone returns a deep copy of c detached from any list.
func (c *Column) clone() *Column {
	cp := *c
	cp.listID = uuid.Nil
	cp.Choices = append([]Choice(nil), c.Choices...)
	cp.Ratings = append([]float64(nil), c.Ratings...)
	cp.values = append([]Value(nil), c.values...)
	return &cp
}

// columnJSON is the wire form of a Column.
type columnJSON struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Type              ColumnType        `json:"type"`
	Description       string            `json:"description,omitempty"`
	IsHidden          bool              `json:"isHidden"`
	Width             int               `json:"width,omitempty"`
	DefaultValue      json.RawMessage   `json:"defaultValue,omitempty"`
	Choices           []Choice          `json:"choices,omitempty"`
	AddValuesManually bool              `json:"addValuesManually,omitempty"`
	Lookup            *LookupRef        `json:"lookup,omitempty"`
	Ratings           []float64         `json:"ratings,omitempty"`
	ShowProfilePic    bool              `json:"showProfilePic,omitempty"`
	CalculatedValue   bool              `json:"calculatedValue,omitempty"`
	Values            []json.RawMessage `json:"values,omitempty"`
}

// MarshalJSON encodes the column including its value cache.
func (c *Column) MarshalJSON() ([]byte, error) {
	out := columnJSON{
		ID:                c.ID,
		Name:              c.Name,
		Type:              c.typ,
		Description:       c.Description,
		IsHidden:          c.IsHidden,
		Width:             c.Width,
		Choices:           c.Choices,
		AddValuesManually: c.AddValuesManually,
		Ratings:           c.Ratings,
		ShowProfilePic:    c.ShowProfilePic,
		CalculatedValue:   c.CalculatedValue,
	}
	if c.typ == ColumnLookup {
		ref := c.Lookup
		out.Lookup = &ref
	}
	if c.hasDefault {
		b, err := c.defaultValue.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal default: %w", err)
		}
		out.DefaultValue = b
	}
	for _, v := range c.values {
		b, err := v.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal column value: %w", err)
		}
		out.Values = append(out.Values, b)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a column written by MarshalJSON. Templates may omit
// the id and width; both get defaults.
func (c *Column) UnmarshalJSON(data []byte) error {
	var in columnJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	col := Column{
		ID:                in.ID,
		Name:              in.Name,
		Description:       in.Description,
		IsHidden:          in.IsHidden,
		Width:             in.Width,
		Choices:           in.Choices,
		AddValuesManually: in.AddValuesManually,
		Ratings:           in.Ratings,
		ShowProfilePic:    in.ShowProfilePic,
		CalculatedValue:   in.CalculatedValue,
		typ:               in.Type,
	}
	if col.ID == uuid.Nil {
		col.ID = uuid.New()
	}
	if col.Width == 0 {
		col.Width = DefaultColumnWidth
	}
	if in.Lookup != nil {
		col.Lookup = *in.Lookup
	}
	if len(in.DefaultValue) > 0 {
		v, err := decodeValue(col.typ, in.DefaultValue)
		if err != nil {
			return fmt.Errorf("column %q default: %w", col.Name, err)
		}
		col.defaultValue = v
		col.hasDefault = true
	}
	for _, raw := range in.Values {
		v, err := decodeValue(col.typ, raw)
		if err != nil {
			return fmt.Errorf("column %q value: %w", col.Name, err)
		}
		col.values = append(col.values, v)
	}

	*c = col
	return nil
}
