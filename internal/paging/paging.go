// Package paging holds the page arithmetic shared by the history endpoints and views.
package paging

// PageSize is the number of history rows per page.
const PageSize = 78

// MaxWindow is how many page numbers the navigation shows at once.
const MaxWindow = 5

// TotalPages is never below 1, so an empty listing still has a first page.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Valid reports whether page can be navigated to.
func Valid(page, totalPages int) bool {
	return page >= 1 && page <= totalPages
}

// Clamp forces page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Offset is the first row index of page.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// Window returns up to MaxWindow consecutive page numbers around current.
func Window(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	current = Clamp(current, totalPages)

	start := max(1, current-MaxWindow/2)
	end := min(totalPages, start+MaxWindow-1)
	if end-start+1 < MaxWindow {
		start = max(1, end-MaxWindow+1)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Controls describes a full navigation bar: the window plus the jump links
// to the first and last page and whether an ellipsis separates them.
type Controls struct {
	Pages       []int
	First       bool
	LeadingGap  bool
	Last        bool
	TrailingGap bool
	TotalPages  int
}

// NewControls returns nothing to render when there is a single page.
func NewControls(current, totalPages int) (Controls, bool) {
	if totalPages <= 1 {
		return Controls{}, false
	}
	pages := Window(current, totalPages)
	start, end := pages[0], pages[len(pages)-1]
	return Controls{
		Pages:       pages,
		First:       start > 1,
		LeadingGap:  start > 2,
		Last:        end < totalPages,
		TrailingGap: end < totalPages-1,
		TotalPages:  totalPages,
	}, true
}
