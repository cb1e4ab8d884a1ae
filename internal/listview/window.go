package listview

// MaxVisiblePages is how many consecutive page numbers the pager shows.
const MaxVisiblePages = 5

// PageWindow describes the page numbers rendered around the current page.
type PageWindow struct {
	Pages            []int
	ShowFirst        bool
	LeadingEllipsis  bool
	TrailingEllipsis bool
	ShowLast         bool
}

// Window centres up to MaxVisiblePages numbers on page, shifting the range so
// it stays inside [1, totalPages] and always holds min(MaxVisiblePages,
// totalPages) numbers.
func Window(page, totalPages int) PageWindow {
	if totalPages < 1 {
		return PageWindow{}
	}
	page = min(max(page, 1), totalPages)

	start := max(1, page-MaxVisiblePages/2)
	end := min(totalPages, start+MaxVisiblePages-1)
	if end-start < MaxVisiblePages-1 {
		start = max(1, end-MaxVisiblePages+1)
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	return PageWindow{
		Pages:            pages,
		ShowFirst:        start > 1,
		LeadingEllipsis:  start > 2,
		TrailingEllipsis: end < totalPages-1,
		ShowLast:         end < totalPages,
	}
}
