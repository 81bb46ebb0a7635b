package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the representation held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindText
	KindNumber
	KindBool
	KindDateTime
	KindRatings
	KindLookup
	KindRaw // opaque pass-through, only produced for Lookup cells
)

// Value is the tagged union stored in a cell. The zero Value is null.
type Value struct {
	kind    ValueKind
	text    string
	num     float64
	boolean bool
	time    time.Time
	ratings []float64
	lookup  LookupRef
	raw     any
}

// NullValue returns the empty value.
func NullValue() Value { return Value{} }

// TextValue wraps a string.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// NumberValue wraps a float64.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, boolean: b} }

// DateTimeValue wraps a time.
func DateTimeValue(t time.Time) Value { return Value{kind: KindDateTime, time: t} }

// RatingsValue wraps a list of ratings. The slice is copied.
func RatingsValue(r []float64) Value {
	return Value{kind: KindRatings, ratings: append([]float64(nil), r...)}
}

// LookupValue wraps a reference to another list's column.
func LookupValue(ref LookupRef) Value { return Value{kind: KindLookup, lookup: ref} }

// RawValue wraps an arbitrary value without interpretation.
func RawValue(v any) Value { return Value{kind: KindRaw, raw: v} }

// Kind returns the value's tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v holds nothing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the string held by a text value.
func (v Value) Text() (string, bool) { return v.text, v.kind == KindText }

// Number returns the float held by a number value.
func (v Value) Number() (float64, bool) { return v.num, v.kind == KindNumber }

// Bool returns the bool held by a yes/no value.
func (v Value) Bool() (bool, bool) { return v.boolean, v.kind == KindBool }

// Time returns the time held by a date value.
func (v Value) Time() (time.Time, bool) { return v.time, v.kind == KindDateTime }

// Ratings returns a copy of the ratings held by a ratings value.
func (v Value) Ratings() ([]float64, bool) {
	if v.kind != KindRatings {
		return nil, false
	}
	return append([]float64(nil), v.ratings...), true
}

// Lookup returns the reference held by a lookup value.
func (v Value) Lookup() (LookupRef, bool) { return v.lookup, v.kind == KindLookup }

// Raw returns the pass-through payload of a raw value.
func (v Value) Raw() (any, bool) { return v.raw, v.kind == KindRaw }

// Interface returns the value as a plain Go value (string, float64, bool,
// time.Time, []float64, LookupRef, the raw payload, or nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num
	case KindBool:
		return v.boolean
	case KindDateTime:
		return v.time
	case KindRatings:
		return append([]float64(nil), v.ratings...)
	case KindLookup:
		return v.lookup
	case KindRaw:
		return v.raw
	default:
		return nil
	}
}

// String renders the value the way it appears in search and CSV export.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindDateTime:
		return v.time.Format(time.RFC3339)
	case KindRatings:
		parts := make([]string, len(v.ratings))
		for i, r := range v.ratings {
			parts[i] = strconv.FormatFloat(r, 'f', -1, 64)
		}
		return strings.Join(parts, ",")
	case KindLookup:
		return v.lookup.ListID.String() + "/" + v.lookup.ColumnID.String()
	case KindRaw:
		if v.raw == nil {
			return ""
		}
		return fmt.Sprint(v.raw)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.boolean == o.boolean
	case KindDateTime:
		return v.time.Equal(o.time)
	case KindRatings:
		if len(v.ratings) != len(o.ratings) {
			return false
		}
		for i := range v.ratings {
			if v.ratings[i] != o.ratings[i] {
				return false
			}
		}
		return true
	case KindLookup:
		return v.lookup == o.lookup
	default:
		return fmt.Sprint(v.raw) == fmt.Sprint(o.raw)
	}
}

// MarshalJSON encodes the plain payload of the value.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindDateTime {
		return json.Marshal(v.time.Format(time.RFC3339Nano))
	}
	return json.Marshal(v.Interface())
}

// decodeValue decodes a JSON payload written by Value.MarshalJSON back into a
// Value, using the column type to pick the representation.
func decodeValue(t ColumnType, data json.RawMessage) (Value, error) {
	if len(data) == 0 || string(data) == "null" {
		return NullValue(), nil
	}

	switch {
	case t.IsTextual():
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Value{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, t, err)
		}
		return TextValue(s), nil
	case t == ColumnNumber || t == ColumnAverageRating:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return Value{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, t, err)
		}
		return NumberValue(f), nil
	case t == ColumnYesNo:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return Value{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, t, err)
		}
		return BoolValue(b), nil
	case t == ColumnDateTime:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Value{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, t, err)
		}
		parsed, ok := ParseDateTime(s)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s: %q", ErrInvalidValue, t, s)
		}
		return DateTimeValue(parsed), nil
	case t == ColumnLookup:
		var ref struct {
			ListID   *string `json:"listId"`
			ColumnID *string `json:"columnId"`
		}
		if err := json.Unmarshal(data, &ref); err == nil && ref.ListID != nil && ref.ColumnID != nil {
			var out LookupRef
			if err := json.Unmarshal(data, &out); err == nil {
				return LookupValue(out), nil
			}
		}
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return Value{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, t, err)
		}
		return RawValue(raw), nil
	}

	return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedColumnType, t)
}
