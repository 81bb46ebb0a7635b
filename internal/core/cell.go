package core

import (
	"encoding/json"
	"fmt"
)

// Cell holds one value typed by its column.
type Cell struct {
	columnType ColumnType
	value      Value
}

// NewCell creates a cell of the given type holding raw, coerced.
func NewCell(t ColumnType, raw any) (Cell, error) {
	c := Cell{columnType: t}
	if err := c.SetValue(raw); err != nil {
		return Cell{}, err
	}
	return c, nil
}

// defaultCell creates a cell carrying the column's default value.
func defaultCell(col *Column) Cell {
	return Cell{columnType: col.typ, value: col.DefaultValue()}
}

// SetValue coerces raw by the cell's column type and stores it.
// On error the cell keeps its previous value.
func (c *Cell) SetValue(raw any) error {
	v, err := Coerce(c.columnType, raw)
	if err != nil {
		return err
	}
	c.value = v
	return nil
}

// Value returns the cell's value.
func (c Cell) Value() Value { return c.value }

// ColumnType returns the type the cell was created for.
func (c Cell) ColumnType() ColumnType { return c.columnType }

func (c Cell) String() string { return c.value.String() }

type cellJSON struct {
	Type  ColumnType      `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (c Cell) MarshalJSON() ([]byte, error) {
	v, err := c.value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal cell: %w", err)
	}
	return json.Marshal(cellJSON{Type: c.columnType, Value: v})
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var in cellJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	v, err := decodeValue(in.Type, in.Value)
	if err != nil {
		return err
	}
	c.columnType = in.Type
	c.value = v
	return nil
}
