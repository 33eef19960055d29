// Package pager implements a page selector over a bounded number of pages.
package pager

import "github.com/jmylchreest/rhythmui/internal/bindable"

// Selector tracks the current page (1-based) out of MaxPages.
// Changing the page count resets the selection to the first page.
type Selector struct {
	maxPages    *bindable.Bindable[int]
	currentPage *bindable.Bindable[int]
}

// New creates a Selector with a single page.
func New() *Selector {
	return &Selector{
		maxPages:    bindable.New(1),
		currentPage: bindable.New(1),
	}
}

// MaxPages returns the observable page count.
func (s *Selector) MaxPages() bindable.Observable[int] {
	return s.maxPages
}

// CurrentPage returns the observable selected page.
func (s *Selector) CurrentPage() bindable.Observable[int] {
	return s.currentPage
}

// SetMaxPages sets the page count. Values below 1 become 1. The selection
// returns to the first page only when the count actually changes.
func (s *Selector) SetMaxPages(n int) {
	n = max(1, n)
	if n == s.maxPages.Value() {
		return
	}
	s.maxPages.Set(n)
	s.currentPage.Set(1)
}

// SetCurrentPage selects page p, clamped into [1, MaxPages].
func (s *Selector) SetCurrentPage(p int) {
	s.currentPage.Set(min(max(1, p), s.maxPages.Value()))
}

// Next selects the following page if there is one.
func (s *Selector) Next() {
	s.SetCurrentPage(s.currentPage.Value() + 1)
}

// Prev selects the preceding page if there is one.
func (s *Selector) Prev() {
	s.SetCurrentPage(s.currentPage.Value() - 1)
}

// PagesFor returns how many pages are needed for total items.
func PagesFor(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Bounds returns the [start, end) slice indices of the current page.
func (s *Selector) Bounds(total, pageSize int) (int, int) {
	if pageSize <= 0 || total <= 0 {
		return 0, 0
	}
	start := (s.currentPage.Value() - 1) * pageSize
	if start >= total {
		return total, total
	}
	return start, min(total, start+pageSize)
}
