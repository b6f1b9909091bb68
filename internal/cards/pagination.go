package cards

// DefaultPageSize is the number of cards shown per page.
const DefaultPageSize = 10

// TotalPages returns ceil(n/size). A non-positive size falls back to
// DefaultPageSize.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage maps page into [1, max(total, 1)].
func ClampPage(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageSlice returns the 1-based page of list, i.e. list[(page-1)*size :
// min(len, page*size)]. Out-of-range pages yield an empty slice. The returned
// slice aliases list.
func PageSlice(list []Card, page, size int) []Card {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return []Card{}
	}
	start := (page - 1) * size
	if start >= len(list) {
		return []Card{}
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// Pager describes the page selector for a list.
type Pager struct {
	Page  int // current page, clamped
	Total int // total pages
}

// NewPager clamps page against the list length.
func NewPager(n, page, size int) Pager {
	total := TotalPages(n, size)
	return Pager{Page: ClampPage(page, total), Total: total}
}

// Visible reports whether the selector is shown at all.
func (p Pager) Visible() bool { return p.Total > 1 }

// HasPrev reports whether Previous is enabled.
func (p Pager) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether Next is enabled.
func (p Pager) HasNext() bool { return p.Total > 1 && p.Page < p.Total }

// Prev returns the previous page, stopping at 1.
func (p Pager) Prev() int { return ClampPage(p.Page-1, p.Total) }

// Next returns the next page, stopping at Total.
func (p Pager) Next() int { return ClampPage(p.Page+1, p.Total) }
