package core

// PageSize returns the number of rows per page.
func (l *List) PageSize() int { return l.pageSize }

// CurrentPage returns the 1-based current page.
func (l *List) CurrentPage() int { return l.currentPage }

// SetPageSize changes the page size (minimum 1) and returns to page 1.
func (l *List) SetPageSize(n int) {
	l.pageSize = max(n, 1)
	l.currentPage = 1
}

// SetCurrentPage jumps to page n, clamped to [1, TotalPages].
func (l *List) SetCurrentPage(n int) {
	l.currentPage = min(max(n, 1), max(l.TotalPages(), 1))
}

// TotalPages returns ceil(rows / pageSize).
func (l *List) TotalPages() int {
	if l.pageSize <= 0 {
		return 0
	}
	return (len(l.rows) + l.pageSize - 1) / l.pageSize
}

// CurrentPageRows returns the rows of the current page.
func (l *List) CurrentPageRows() []*Row {
	start := (l.currentPage - 1) * l.pageSize
	if start < 0 || start >= len(l.rows) {
		return nil
	}
	end := min(start+l.pageSize, len(l.rows))
	return append([]*Row(nil), l.rows[start:end]...)
}

// NextPage advances one page, stopping at the last page.
func (l *List) NextPage() {
	l.SetCurrentPage(l.currentPage + 1)
}

// PreviousPage goes back one page, stopping at page 1.
func (l *List) PreviousPage() {
	l.SetCurrentPage(l.currentPage - 1)
}
