// Package listing holds the per-browser dashboard state: the current path,
// the page within it, and the entries last fetched for that pair. Fetches
// are stamped with a generation number so a late response for a superseded
// path or page is discarded instead of clobbering newer state.
package listing

import (
	"context"
	"sync"

	"easyimg-web/internal/model"
	"easyimg-web/internal/nav"
	"easyimg-web/internal/pagination"
)

// Fetcher is the slice of the backend client a session needs.
type Fetcher interface {
	FileList(ctx context.Context, token string, path string, page int) (model.ListResult, error)
}

// DeleteTarget holds the pending two-phase delete confirmation.
type DeleteTarget struct {
	Name  string
	IsDir bool
}

type Session struct {
	mu      sync.Mutex
	fetcher Fetcher
	token   string
	perPage int

	path          nav.Path
	page          pagination.State
	entries       []model.FileEntry
	pendingDelete *DeleteTarget
	lastErr       error
	generation    uint64
	loaded        bool
}

func NewSession(fetcher Fetcher, token string, perPage int) *Session {
	return &Session{
		fetcher: fetcher,
		token:   token,
		perPage: perPage,
		path:    nav.NewPath(),
		page:    pagination.New(1, 0, perPage),
	}
}

// Snapshot is a copy of the state a view renders from.
type Snapshot struct {
	Path          string
	Crumbs        []nav.Crumb
	Entries       []model.FileEntry
	Page          pagination.State
	PendingDelete *DeleteTarget
	Err           error
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]model.FileEntry, len(s.entries))
	copy(entries, s.entries)

	var pending *DeleteTarget
	if s.pendingDelete != nil {
		target := *s.pendingDelete
		pending = &target
	}

	return Snapshot{
		Path:          s.path.String(),
		Crumbs:        s.path.Breadcrumbs(),
		Entries:       entries,
		Page:          s.page,
		PendingDelete: pending,
		Err:           s.lastErr,
	}
}

// Path returns the current browsing location.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path.String()
}

// CurrentPage returns the 1-based page within the current path.
func (s *Session) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.CurrentPage
}

// Token returns the bearer token this session was opened with.
func (s *Session) Token() string {
	return s.token
}

// Refresh re-fetches the current path at the current page.
func (s *Session) Refresh(ctx context.Context) {
	s.mu.Lock()
	path := s.path.String()
	page := s.page.CurrentPage
	gen := s.issueLocked()
	s.mu.Unlock()

	s.fetch(ctx, gen, path, page)
}

// NavigateInto enters a child directory. The page resets to 1 before the
// fetch is issued.
func (s *Session) NavigateInto(ctx context.Context, name string) {
	s.navigate(ctx, func(p nav.Path) nav.Path { return p.Into(name) })
}

// NavigateUp moves one level toward the root; at the root it is a no-op.
func (s *Session) NavigateUp(ctx context.Context) {
	s.navigate(ctx, nav.Path.Up)
}

// NavigateRoot jumps to the root.
func (s *Session) NavigateRoot(ctx context.Context) {
	s.navigate(ctx, func(nav.Path) nav.Path { return nav.NewPath() })
}

// NavigateBreadcrumb truncates the path at the given breadcrumb index.
func (s *Session) NavigateBreadcrumb(ctx context.Context, index int) {
	s.navigate(ctx, func(p nav.Path) nav.Path { return p.ToBreadcrumb(index) })
}

func (s *Session) navigate(ctx context.Context, step func(nav.Path) nav.Path) {
	s.mu.Lock()
	next := step(s.path)
	if next.String() == s.path.String() {
		s.mu.Unlock()
		return
	}
	s.path = next
	s.page = pagination.New(1, s.page.TotalItems, s.perPage)
	gen := s.issueLocked()
	path := next.String()
	s.mu.Unlock()

	s.fetch(ctx, gen, path, 1)
}

// GoToPage moves to page n within the current path. Requests outside the
// valid range change nothing and issue no fetch.
func (s *Session) GoToPage(ctx context.Context, n int) {
	s.mu.Lock()
	if !s.page.CanGoTo(n) {
		s.mu.Unlock()
		return
	}
	path := s.path.String()
	gen := s.issueLocked()
	s.mu.Unlock()

	s.fetch(ctx, gen, path, n)
}

func (s *Session) GoToPrevious(ctx context.Context) {
	s.GoToPage(ctx, s.CurrentPage()-1)
}

func (s *Session) GoToNext(ctx context.Context) {
	s.GoToPage(ctx, s.CurrentPage()+1)
}

// RequestDelete stages the two-phase delete prompt.
func (s *Session) RequestDelete(name string, isDir bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = &DeleteTarget{Name: name, IsDir: isDir}
}

// PendingDelete returns the staged target, if any.
func (s *Session) PendingDelete() *DeleteTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingDelete == nil {
		return nil
	}
	target := *s.pendingDelete
	return &target
}

// CancelDelete discards the staged target.
func (s *Session) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = nil
}

// RemoveEntry applies the confirmed-delete patch: the named entry leaves the
// in-memory list while the pagination summary stays as the backend last
// reported it. The other mutating operations re-fetch instead; the totals
// self-correct on the next navigation.
func (s *Session) RemoveEntry(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, entry := range s.entries {
		if entry.Name != name {
			kept = append(kept, entry)
		}
	}
	s.entries = kept
	s.pendingDelete = nil
}

// Loaded reports whether any fetch has been issued yet.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// issueLocked stamps a new fetch generation; callers must hold the lock.
func (s *Session) issueLocked() uint64 {
	s.generation++
	s.loaded = true
	return s.generation
}

func (s *Session) fetch(ctx context.Context, gen uint64, path string, page int) {
	result, err := s.fetcher.FileList(ctx, s.token, path, page)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer fetch was issued while this one was in flight.
	if gen != s.generation {
		return
	}

	if err != nil {
		// Prior entries and pagination stay in place; the error is
		// surfaced to the view instead of being swallowed.
		s.lastErr = err
		return
	}

	perPage := result.PerPage
	if perPage < 1 {
		perPage = s.perPage
	}
	resultPage := result.Page
	if resultPage < 1 {
		resultPage = page
	}

	s.entries = result.Files
	s.page = pagination.New(resultPage, result.TotalFiles, perPage)
	s.lastErr = nil
}
