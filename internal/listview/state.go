// Package listview holds the client-side state of the paginated project list:
// the search box and its debounced value, the current page and page size,
// and the outcome of the latest page request.
package listview

import (
	"fmt"

	"catalog/internal/models"
)

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Request is one page fetch. Seq orders requests; only the response to the
// latest one is applied.
type Request struct {
	Seq    uint64
	Page   int
	Limit  int
	Search string
}

// State is not safe for concurrent use; the UI loop owns it.
type State struct {
	page            int
	limit           int
	search          string
	debouncedSearch string

	status     Status
	err        error
	projects   []models.Project
	pagination models.PageMeta

	seq uint64
}

func New(limit int) *State {
	if limit < 1 {
		limit = models.DefaultLimit
	}
	return &State{page: 1, limit: limit}
}

func (s *State) Page() int { return s.page }
func (s *State) Limit() int { return s.limit }
func (s *State) Search() string { return s.search }
func (s *State) DebouncedSearch() string { return s.debouncedSearch }
func (s *State) Status() Status { return s.status }
func (s *State) Err() error { return s.err }
func (s *State) Projects() []models.Project { return s.projects }
func (s *State) Pagination() models.PageMeta { return s.pagination }
func (s *State) TotalPages() int { return s.pagination.TotalPages }

// Begin issues a request for the current page, limit and debounced search
// and enters Loading.
func (s *State) Begin() Request {
	s.seq++
	s.status = Loading
	s.err = nil
	return Request{
		Seq:    s.seq,
		Page:   s.page,
		Limit:  s.limit,
		Search: s.debouncedSearch,
	}
}

// Complete applies the outcome of req. Responses to anything but the latest
// request are dropped and Complete reports false.
func (s *State) Complete(req Request, resp models.PaginatedList[models.Project], err error) bool {
	if req.Seq != s.seq {
		return false
	}
	if err != nil {
		s.status = Failed
		s.err = err
		s.projects = nil
		return true
	}
	s.status = Success
	s.projects = resp.Data
	s.pagination = resp.Pagination
	// the server may have coerced page or limit; follow what it served
	if resp.Pagination.Limit > 0 {
		s.limit = resp.Pagination.Limit
	}
	if resp.Pagination.Page > 0 {
		s.page = resp.Pagination.Page
	}
	return true
}

// SetSearch echoes raw input. The value takes effect only through CommitSearch.
func (s *State) SetSearch(search string) {
	s.search = search
}

// CommitSearch adopts a settled search value, returning to page 1. It reports
// false, issuing nothing, when the value is unchanged.
func (s *State) CommitSearch(search string) (Request, bool) {
	if search == s.debouncedSearch {
		return Request{}, false
	}
	s.debouncedSearch = search
	s.page = 1
	return s.Begin(), true
}

// GoTo moves to page p when it lies in [1, TotalPages] and differs from the
// current page.
func (s *State) GoTo(p int) (Request, bool) {
	if p < 1 || p > s.pagination.TotalPages || p == s.page {
		return Request{}, false
	}
	s.page = p
	return s.Begin(), true
}

func (s *State) Prev() (Request, bool) {
	return s.GoTo(s.page - 1)
}

func (s *State) Next() (Request, bool) {
	return s.GoTo(s.page + 1)
}

func (s *State) HasPrev() bool { return s.page > 1 }
func (s *State) HasNext() bool { return s.page < s.pagination.TotalPages }

// SetLimit changes the page size and returns to page 1.
func (s *State) SetLimit(limit int) (Request, bool) {
	if limit < 1 || limit == s.limit {
		return Request{}, false
	}
	s.limit = limit
	s.page = 1
	return s.Begin(), true
}

func (s *State) Window() PageWindow {
	return Window(s.page, s.pagination.TotalPages)
}

// Summary renders "Showing a - b of total" for a successful, non-empty page.
func (s *State) Summary() string {
	total := s.pagination.Total
	if total == 0 || len(s.projects) == 0 {
		return ""
	}
	first := (s.page-1)*s.limit + 1
	last := min(s.page*s.limit, total)
	return fmt.Sprintf("Showing %d - %d of %d", first, last, total)
}
