// Package views renders the HTML pages of the lists UI as templ components.
//
// Components take plain view data rather than core lists. Handlers build
// that data while holding the list's lock and render after releasing it.
package views

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/a-h/templ"
)

// ListCard is one entry of the dashboard.
type ListCard struct {
	ID       string
	Name     string
	Color    string
	Icon     string
	Favorite bool
	Columns  int
	Rows     int
}

// NewListCard captures the dashboard fields of l.
func NewListCard(l *core.List) ListCard {
	return ListCard{
		ID:       l.ID.String(),
		Name:     l.Name,
		Color:    l.Color,
		Icon:     l.Icon,
		Favorite: l.IsFavorited,
		Columns:  l.ColumnCount(),
		Rows:     l.RowCount(),
	}
}

// URL is the page of the list.
func (c ListCard) URL() templ.SafeURL {
	return templ.URL("/lists/" + c.ID)
}

// Size describes the column and row counts.
func (c ListCard) Size() string {
	return fmt.Sprintf("%d columns, %d rows", c.Columns, c.Rows)
}

// TemplateCard is a template listed on the dashboard.
type TemplateCard struct {
	Name        string
	Description string
}

func NewTemplateCard(l *core.List) TemplateCard {
	return TemplateCard{Name: l.Name, Description: l.Description}
}

// PageColumn is a visible column header.
type PageColumn struct {
	Name  string
	Type  string
	Width int
}

// Style sets the rendered width of the column.
func (c PageColumn) Style() string {
	return "width: " + strconv.Itoa(c.Width) + "px"
}

// PageRow is one rendered row: its id and the string form of each visible
// cell.
type PageRow struct {
	ID    string
	Cells []string
}

// DOMID is the element id of the row.
func (r PageRow) DOMID() string {
	return "row-" + r.ID
}

// ListPageData is the current page of a list, restricted to visible
// columns.
type ListPageData struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Columns     []PageColumn
	Rows        []PageRow
	Page        int
	TotalPages  int
}

// NewListPageData captures the current page of l.
func NewListPageData(l *core.List) ListPageData {
	p := ListPageData{
		ID:          l.ID.String(),
		Name:        l.Name,
		Icon:        l.Icon,
		Description: l.Description,
		Page:        l.CurrentPage(),
		TotalPages:  max(l.TotalPages(), 1),
	}

	var visible []int
	for i, c := range l.Columns() {
		if c.IsHidden {
			continue
		}
		visible = append(visible, i)
		p.Columns = append(p.Columns, PageColumn{Name: c.Name, Type: c.Type().String(), Width: c.Width})
	}
	for _, r := range l.CurrentPageRows() {
		values := r.Strings()
		row := PageRow{ID: r.ID.String(), Cells: make([]string, len(visible))}
		for j, i := range visible {
			row.Cells[j] = values[i]
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

func (p ListPageData) HasPrevious() bool { return p.Page > 1 }

func (p ListPageData) HasNext() bool { return p.Page < p.TotalPages }

// PageURL links to page n of the list.
func (p ListPageData) PageURL(n int) templ.SafeURL {
	return templ.URL(fmt.Sprintf("/lists/%s?page=%d", p.ID, n))
}

// PageLabel reads "Page n of m".
func (p ListPageData) PageLabel() string {
	return fmt.Sprintf("Page %d of %d", p.Page, p.TotalPages)
}
