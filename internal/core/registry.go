package core

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"
)

// CoerceFunc turns a raw input into a value accepted by one column type.
type CoerceFunc func(raw any) (Value, error)

var (
	coercions   = make(map[ColumnType]CoerceFunc)
	coercionsMu sync.RWMutex
)

func init() {
	for _, t := range []ColumnType{
		ColumnText, ColumnChoice, ColumnPerson, ColumnHyperlink, ColumnImage, ColumnMultipleLinesOfText,
	} {
		RegisterCoercion(t, coerceText)
	}
	RegisterCoercion(ColumnNumber, coerceNumber)
	RegisterCoercion(ColumnAverageRating, coerceRating)
	RegisterCoercion(ColumnDateTime, coerceDateTime)
	RegisterCoercion(ColumnYesNo, coerceBool)
	RegisterCoercion(ColumnLookup, coerceLookup)
}

// RegisterCoercion installs the coercion rule for a column type.
// Panics if a rule for the type is already registered.
func RegisterCoercion(t ColumnType, fn CoerceFunc) {
	coercionsMu.Lock()
	defer coercionsMu.Unlock()

	if _, exists := coercions[t]; exists {
		panic(fmt.Sprintf("coercion already registered: %s", t))
	}
	coercions[t] = fn
}

// HasCoercion reports whether a rule is registered for t.
func HasCoercion(t ColumnType) bool {
	coercionsMu.RLock()
	defer coercionsMu.RUnlock()
	_, ok := coercions[t]
	return ok
}

// Coerce converts raw into a value for column type t.
// It is the single entry gate for every value stored in a list.
func Coerce(t ColumnType, raw any) (Value, error) {
	coercionsMu.RLock()
	fn, ok := coercions[t]
	coercionsMu.RUnlock()

	if !ok {
		return Value{}, fmt.Errorf("%w: %w: %s", ErrInvalidValue, ErrUnsupportedColumnType, t)
	}
	return fn(raw)
}

func invalid(t ColumnType, raw any) error {
	return fmt.Errorf("%w for %s column: %v", ErrInvalidValue, t, raw)
}

func coerceText(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return TextValue(""), nil
	case string:
		return TextValue(v), nil
	case Value:
		return TextValue(v.String()), nil
	case time.Time:
		return TextValue(v.Format(time.RFC3339)), nil
	case fmt.Stringer:
		return TextValue(v.String()), nil
	default:
		return TextValue(fmt.Sprint(v)), nil
	}
}

// toFloat extracts a finite float64 from numeric Go values and parseable
// strings. NaN and infinities have no JSON form and are refused.
func toFloat(raw any) (float64, bool) {
	f, ok := anyFloat(raw)
	return f, ok && isFinite(f)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func anyFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		return ParseNumber(v)
	case Value:
		switch v.Kind() {
		case KindNumber:
			return v.num, true
		case KindText:
			return ParseNumber(v.text)
		}
	}
	return 0, false
}

func coerceNumber(raw any) (Value, error) {
	f, ok := toFloat(raw)
	if !ok {
		return Value{}, invalid(ColumnNumber, raw)
	}
	return NumberValue(f), nil
}

// coerceRating accepts a single rating, or a list of ratings which is
// stored as its average.
func coerceRating(raw any) (Value, error) {
	switch v := raw.(type) {
	case []float64:
		return ratingAverage(v, raw)
	case Value:
		if r, ok := v.Ratings(); ok {
			return ratingAverage(r, raw)
		}
	}
	f, ok := toFloat(raw)
	if !ok {
		return Value{}, invalid(ColumnAverageRating, raw)
	}
	return NumberValue(f), nil
}

func ratingAverage(ratings []float64, raw any) (Value, error) {
	avg := average(ratings)
	if !isFinite(avg) {
		return Value{}, invalid(ColumnAverageRating, raw)
	}
	return NumberValue(avg), nil
}

func coerceDateTime(raw any) (Value, error) {
	switch v := raw.(type) {
	case time.Time:
		return DateTimeValue(v), nil
	case *time.Time:
		if v != nil {
			return DateTimeValue(*v), nil
		}
	case string:
		if t, ok := ParseDateTime(v); ok {
			return DateTimeValue(t), nil
		}
	case Value:
		if v.Kind() == KindDateTime {
			return v, nil
		}
		if s, ok := v.Text(); ok {
			if t, ok := ParseDateTime(s); ok {
				return DateTimeValue(t), nil
			}
		}
	}
	return Value{}, invalid(ColumnDateTime, raw)
}

func coerceBool(raw any) (Value, error) {
	switch v := raw.(type) {
	case bool:
		return BoolValue(v), nil
	case string:
		if b, ok := ParseBool(v); ok {
			return BoolValue(b), nil
		}
	case Value:
		if _, ok := v.Bool(); ok {
			return v, nil
		}
		if s, ok := v.Text(); ok {
			if b, ok := ParseBool(s); ok {
				return BoolValue(b), nil
			}
		}
	}
	return Value{}, invalid(ColumnYesNo, raw)
}

// coerceLookup passes input through without validation.
func coerceLookup(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case LookupRef:
		return LookupValue(v), nil
	default:
		return RawValue(v), nil
	}
}

func average(r []float64) float64 {
	if len(r) == 0 {
		return 0
	}
	var sum float64
	for _, x := range r {
		sum += x
	}
	return sum / float64(len(r))
}
