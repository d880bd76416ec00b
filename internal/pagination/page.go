// Package pagination provides the page value type shared by resource listings.
package pagination

// Page is one page of an ordered result set. Pages are 1-indexed; page 1 is
// valid even when TotalRecords is 0.
type Page[T any] struct {
	Data         []T
	CurrentPage  int
	PageSize     int
	TotalRecords int64
}

// Empty returns a page with no data for the given page and pageSize.
func Empty[T any](page, pageSize int) Page[T] {
	return Page[T]{
		Data:         []T{},
		CurrentPage:  page,
		PageSize:     pageSize,
		TotalRecords: 0,
	}
}

// TotalPages derives the page count from TotalRecords and PageSize. It is
// never stored, so it cannot drift from TotalRecords. A zero-record result
// still has one (empty) page.
func (p Page[T]) TotalPages() int {
	if p.PageSize < 1 {
		return 1
	}
	pages := int((p.TotalRecords + int64(p.PageSize) - 1) / int64(p.PageSize))
	if pages < 1 {
		return 1
	}
	return pages
}
