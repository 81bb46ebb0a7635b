package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ColumnType is the closed set of column kinds a list can hold.
// The type of a column is fixed when the column is created.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnNumber
	ColumnChoice
	ColumnDateTime
	ColumnPerson
	ColumnYesNo
	ColumnHyperlink
	ColumnImage
	ColumnLookup
	ColumnMultipleLinesOfText
	ColumnAverageRating
)

// columnTypeNames holds the display name of each column type.
// These names are also the wire format used in JSON documents.
var columnTypeNames = map[ColumnType]string{
	ColumnText:                "Text",
	ColumnNumber:              "Number",
	ColumnChoice:              "Choice",
	ColumnDateTime:            "Date and time",
	ColumnPerson:              "Person",
	ColumnYesNo:               "Yes/No",
	ColumnHyperlink:           "Hyperlink",
	ColumnImage:               "Image",
	ColumnLookup:              "Lookup",
	ColumnMultipleLinesOfText: "Multiple lines of text",
	ColumnAverageRating:       "Average Rating",
}

// columnTypeAliases maps lowercase spellings seen in templates and requests
// to their column type.
var columnTypeAliases = map[string]ColumnType{
	"date":                ColumnDateTime,
	"datetime":            ColumnDateTime,
	"dateandtime":         ColumnDateTime,
	"yesno":               ColumnYesNo,
	"bool":                ColumnYesNo,
	"multiplelinesoftext": ColumnMultipleLinesOfText,
	"multiline":           ColumnMultipleLinesOfText,
	"averagerating":       ColumnAverageRating,
	"rating":              ColumnAverageRating,
}

// String returns the display name of the column type.
func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	_, ok := columnTypeNames[t]
	return ok
}

// IsTextual reports whether values of this type are stored as strings.
func (t ColumnType) IsTextual() bool {
	switch t {
	case ColumnText, ColumnChoice, ColumnPerson, ColumnHyperlink, ColumnImage, ColumnMultipleLinesOfText:
		return true
	}
	return false
}

// ParseColumnType resolves a column type from its display name or a common alias.
// Matching is case-insensitive.
func ParseColumnType(s string) (ColumnType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range columnTypeNames {
		if strings.ToLower(name) == key {
			return t, nil
		}
	}
	compact := strings.NewReplacer(" ", "", "_", "", "-", "", "/", "").Replace(key)
	if t, ok := columnTypeAliases[compact]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedColumnType, s)
}

// MarshalText encodes the column type by display name.
func (t ColumnType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedColumnType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a column type from its display name or alias.
func (t *ColumnType) UnmarshalText(b []byte) error {
	parsed, err := ParseColumnType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Choice is one selectable option of a Choice column.
type Choice struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// NewChoice creates a choice with a fresh ID.
func NewChoice(name, color string) Choice {
	return Choice{ID: uuid.New(), Name: name, Color: color}
}

// LookupRef points a Lookup column at a column of another list.
type LookupRef struct {
	ListID   uuid.UUID `json:"listId"`
	ColumnID uuid.UUID `json:"columnId"`
}

// User is a member of a list's access set.
type User struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	IsOwner bool      `json:"isOwner"`
}

// sameUser reports whether a and b refer to the same person.
// Users match by ID when both carry one, otherwise by name.
func sameUser(a, b User) bool {
	if a.ID != uuid.Nil && b.ID != uuid.Nil {
		return a.ID == b.ID
	}
	return strings.EqualFold(a.Name, b.Name)
}

// Comment is a note attached to a row.
type Comment struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// FilterOperator represents a comparison operator for column filters.
type FilterOperator string

const (
	OpContains   FilterOperator = "contains"
	OpEquals     FilterOperator = "eq"
	OpStartsWith FilterOperator = "starts"
	OpEndsWith   FilterOperator = "ends"
	OpGreaterEq  FilterOperator = "gte"
	OpLessEq     FilterOperator = "lte"
	OpGreater    FilterOperator = "gt"
	OpLess       FilterOperator = "lt"
	OpIn         FilterOperator = "in"
)

// Predicate decides whether a cell value passes a filter.
type Predicate func(Value) bool
