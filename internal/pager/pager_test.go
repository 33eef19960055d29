package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelector_ResetCurrentPage(t *testing.T) {
	s := New()

	s.SetMaxPages(10)
	s.SetCurrentPage(5)
	assert.Equal(t, 5, s.CurrentPage().Value())

	s.SetMaxPages(11)
	assert.Equal(t, 1, s.CurrentPage().Value())
}

func TestSelector_SameMaxPagesKeepsCurrentPage(t *testing.T) {
	s := New()

	s.SetMaxPages(10)
	s.SetCurrentPage(5)
	s.SetMaxPages(10)
	assert.Equal(t, 5, s.CurrentPage().Value())

	s.SetMaxPages(0)
	s.SetMaxPages(-3)
	assert.Equal(t, 1, s.MaxPages().Value())
	assert.Equal(t, 1, s.CurrentPage().Value())
}

func TestSelector_OutOfBoundsSelection(t *testing.T) {
	s := New()
	s.SetMaxPages(10)

	s.SetCurrentPage(11)
	assert.Equal(t, s.MaxPages().Value(), s.CurrentPage().Value())

	s.SetCurrentPage(-1)
	assert.Equal(t, 1, s.CurrentPage().Value())
}

func TestSelector_NegativeMaxPages(t *testing.T) {
	s := New()

	s.SetMaxPages(-10)
	assert.Equal(t, 1, s.CurrentPage().Value())
	assert.Equal(t, 1, s.MaxPages().Value())
}

func TestSelector_NextPrev(t *testing.T) {
	s := New()
	s.SetMaxPages(3)

	s.Next()
	s.Next()
	s.Next()
	assert.Equal(t, 3, s.CurrentPage().Value())

	s.Prev()
	assert.Equal(t, 2, s.CurrentPage().Value())

	s.Prev()
	s.Prev()
	assert.Equal(t, 1, s.CurrentPage().Value())
}

func TestSelector_NotifiesOnPageChange(t *testing.T) {
	s := New()
	s.SetMaxPages(5)

	var pages []int
	s.CurrentPage().Subscribe(func(_, p int) { pages = append(pages, p) })

	s.SetCurrentPage(4)
	s.SetCurrentPage(4)
	s.SetMaxPages(2)

	assert.Equal(t, []int{4, 1}, pages)
}

func TestSelector_Bounds(t *testing.T) {
	s := New()
	s.SetMaxPages(PagesFor(25, 10))
	assert.Equal(t, 3, s.MaxPages().Value())

	tests := []struct {
		page       int
		start, end int
	}{
		{1, 0, 10},
		{2, 10, 20},
		{3, 20, 25},
	}
	for _, tt := range tests {
		s.SetCurrentPage(tt.page)
		start, end := s.Bounds(25, 10)
		assert.Equal(t, tt.start, start, "page %d", tt.page)
		assert.Equal(t, tt.end, end, "page %d", tt.page)
	}

	start, end := s.Bounds(0, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)

	// Selection beyond the data after it shrank
	start, end = s.Bounds(5, 10)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestPagesFor(t *testing.T) {
	assert.Equal(t, 1, PagesFor(0, 8))
	assert.Equal(t, 1, PagesFor(8, 8))
	assert.Equal(t, 2, PagesFor(9, 8))
	assert.Equal(t, 1, PagesFor(9, 0))
}
