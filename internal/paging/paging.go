// Package paging derives the visible slice and the page-button row of a
// list from its length, a page size and a 1-based current page.
package paging

// DefaultMaxVisible is the number of page-number buttons in the window.
const DefaultMaxVisible = 5

// PageCount returns max(1, ceil(total/pageSize)). A non-positive pageSize
// is treated as 1.
func PageCount(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Slice returns the items of page (1-based), clipped to what is available.
func Slice[T any](items []T, page, pageSize int) []T {
	if len(items) == 0 || page < 1 || pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[start:end]...)
}

// Clamp bounds page to [1, count].
func Clamp(page, count int) int {
	if count < 1 {
		count = 1
	}
	if page < 1 {
		return 1
	}
	if page > count {
		return count
	}
	return page
}

// Cursor is the current page plus the page size.
type Cursor struct {
	Page     int
	PageSize int
}

// NewCursor starts at page 1.
func NewCursor(pageSize int) Cursor {
	if pageSize < 1 {
		pageSize = 1
	}
	return Cursor{Page: 1, PageSize: pageSize}
}

// Reset moves back to page 1.
func (c *Cursor) Reset() { c.Page = 1 }

// Pages is the page count for total items.
func (c Cursor) Pages(total int) int { return PageCount(total, c.PageSize) }

// Clamp pulls Page back into range after total changed.
func (c *Cursor) Clamp(total int) { c.Page = Clamp(c.Page, c.Pages(total)) }
