package core

import "github.com/google/uuid"

// FormField describes one input of a list's entry form.
type FormField struct {
	ColumnID     uuid.UUID  `json:"columnId"`
	Name         string     `json:"name"`
	Type         ColumnType `json:"type"`
	Description  string     `json:"description,omitempty"`
	DefaultValue Value      `json:"defaultValue"`
	Choices      []string   `json:"choices,omitempty"`
}

// Form is the entry-form view of a list: its visible columns as fields.
type Form struct {
	ID          uuid.UUID   `json:"id"`
	ListID      uuid.UUID   `json:"listId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	Fields      []FormField `json:"fields"`
	RowCount    int         `json:"rowCount"`
}

// ToForm projects a list into an entry form. Hidden columns are left out.
func ToForm(l *List) Form {
	f := Form{
		ID:          uuid.New(),
		ListID:      l.ID,
		Name:        l.Name,
		Description: l.Description,
		Color:       l.Color,
		Fields:      []FormField{},
		RowCount:    len(l.rows),
	}
	for _, c := range l.columns {
		if c.IsHidden {
			continue
		}
		field := FormField{
			ColumnID:     c.ID,
			Name:         c.Name,
			Type:         c.typ,
			Description:  c.Description,
			DefaultValue: c.DefaultValue(),
		}
		if c.typ == ColumnChoice {
			field.Choices = c.ChoiceNames()
		}
		f.Fields = append(f.Fields, field)
	}
	return f
}
