// Package pagination holds the page state for a directory listing and the
// clamping rules around it. The state is recomputed wholesale from each
// listing response; out-of-range page requests are rejected before any
// network call is made.
package pagination

const windowWidth = 5

// State describes the current page against a backend-reported total.
// Invariant: 1 <= CurrentPage <= max(TotalPages, 1).
type State struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
}

// New computes fresh state from a listing response. perPage below 1 is
// normalized to 1, currentPage is clamped into range.
func New(currentPage int, totalItems int, perPage int) State {
	if perPage < 1 {
		perPage = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	return State{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
	}
}

// CanGoTo reports whether page n is a valid navigation target. A request
// outside [1, TotalPages] must cause no state change and no fetch.
func (s State) CanGoTo(n int) bool {
	return n >= 1 && n <= s.TotalPages
}

func (s State) HasPrevious() bool {
	return s.CanGoTo(s.CurrentPage - 1)
}

func (s State) HasNext() bool {
	return s.CanGoTo(s.CurrentPage + 1)
}

// Visible reports whether a pagination control should be rendered at all.
func (s State) Visible() bool {
	return s.TotalPages > 1
}

// Window returns the page numbers to display: a sliding window of width 5
// clamped at both ends. All pages are shown when five or fewer exist.
func (s State) Window() []int {
	width := windowWidth
	if s.TotalPages < width {
		width = s.TotalPages
	}

	start := 1
	switch {
	case s.TotalPages <= windowWidth:
	case s.CurrentPage <= 3:
	case s.CurrentPage >= s.TotalPages-2:
		start = s.TotalPages - windowWidth + 1
	default:
		start = s.CurrentPage - 2
	}

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}

	return pages
}

// RangeStart is the 1-based index of the first item on the current page.
func (s State) RangeStart() int {
	return (s.CurrentPage-1)*s.PerPage + 1
}

// RangeEnd is the 1-based index of the last item on the current page.
func (s State) RangeEnd() int {
	end := s.CurrentPage * s.PerPage
	if end > s.TotalItems {
		end = s.TotalItems
	}

	return end
}
