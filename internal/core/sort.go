package core

import (
	"sort"
	"strings"

	"github.com/jmylchreest/rhythmui/internal/overlay"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByPosted   SortField = "posted"
	SortByKind     SortField = "kind"
	SortByText     SortField = "text"
	SortByProgress SortField = "progress"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns default sort options (newest first).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByPosted,
		Order: SortDesc,
	}
}

// Sort sorts views in place. The sort is stable.
func Sort(views []overlay.NotificationView, opts SortOptions) {
	if len(views) == 0 {
		return
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]

		var less, equal bool
		switch opts.Field {
		case SortByKind:
			less, equal = a.Kind < b.Kind, a.Kind == b.Kind
		case SortByText:
			ta, tb := strings.ToLower(a.Text), strings.ToLower(b.Text)
			less, equal = ta < tb, ta == tb
		case SortByProgress:
			less, equal = a.Progress < b.Progress, a.Progress == b.Progress
		default:
			less, equal = a.PostedAt.Before(b.PostedAt), a.PostedAt.Equal(b.PostedAt)
		}

		if opts.Order == SortDesc {
			return !less && !equal
		}
		return less
	})
}

// ParseSortField parses a sort field string. Unknown fields sort by posted time.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kind", "k":
		return SortByKind
	case "text", "t":
		return SortByText
	case "progress", "p":
		return SortByProgress
	default:
		return SortByPosted
	}
}

// ParseSortOrder parses a sort order string. Unknown orders sort descending.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "a":
		return SortAsc
	default:
		return SortDesc
	}
}
