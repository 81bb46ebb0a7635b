package core

import (
	"github.com/google/uuid"
)

// templateNamespace derives stable ids for the built-in templates so that
// clients can reference them across restarts.
var templateNamespace = uuid.MustParse("6f1c3f9e-2d4b-4c8a-9a51-0c1e7b9d2a40")

// DefaultTemplates returns the built-in templates served when no templates
// document is configured.
func DefaultTemplates() []*List {
	t1 := newTemplate("Template1", "Template Description 1", "LightBlue", "TemplateIcon1",
		templateColumn("Column1", ColumnText),
		templateColumn("Column2", ColumnNumber),
	)
	t2 := newTemplate("Template2", "Template Description 2", "LightGreen", "TemplateIcon2",
		templateColumn("ColumnA", ColumnChoice),
		templateColumn("ColumnB", ColumnDateTime),
	)
	return []*List{t1, t2}
}

func newTemplate(name, description, color, icon string, cols ...*Column) *List {
	l := NewList(name, description)
	l.ID = uuid.NewSHA1(templateNamespace, []byte(name))
	l.Color = color
	l.Icon = icon
	for _, c := range cols {
		c.ID = uuid.NewSHA1(l.ID, []byte(c.Name))
		l.AddColumn(c)
	}
	return l
}

// templateColumn builds a column with type defaults; built-in types cannot fail.
func templateColumn(name string, t ColumnType) *Column {
	c, err := NewColumn(name, t)
	if err != nil {
		panic(err)
	}
	return c
}
