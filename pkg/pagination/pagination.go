package pagination

// TotalPages returns ceil(total/pageSize), or 0 when there is nothing to page.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// Clamp returns the effective page for a request against total records.
// Pages below one become one; pages past the end become the last page.
// A non-positive pageSize means "everything on one page".
func Clamp(page, pageSize, total int) int {
	if page < 1 || pageSize <= 0 {
		return 1
	}
	if last := TotalPages(total, pageSize); last > 0 && page > last {
		return last
	}
	return page
}

// Offset returns the number of records preceding page.
func Offset(page, pageSize int) int {
	if page < 1 || pageSize <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}

// Paginate slices one page out of items and reports the page actually used.
// The returned slice shares the backing array of items.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		return items, 1
	}

	effective := Clamp(page, pageSize, len(items))
	offset := Offset(effective, pageSize)
	if offset >= len(items) {
		return items[:0], effective
	}

	end := min(offset+pageSize, len(items))
	return items[offset:end], effective
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
// A non-positive pageSize reports every record on a single page.
func NewPageResult[T any](items []T, total, page, pageSize int) PageResult[T] {
	totalPages := TotalPages(total, pageSize)
	if pageSize <= 0 && total > 0 {
		totalPages = 1
	}

	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
