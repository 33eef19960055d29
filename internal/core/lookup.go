package core

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/rhythmui/internal/overlay"
)

// LookupByID finds a view by notification ID. Returns nil if not found.
func LookupByID(views []overlay.NotificationView, id string) *overlay.NotificationView {
	for i := range views {
		if views[i].ID == id {
			return &views[i]
		}
	}
	return nil
}

// LookupByIndex finds a view by its 1-based index. Returns nil if out of bounds.
func LookupByIndex(views []overlay.NotificationView, index int) *overlay.NotificationView {
	idx := index - 1
	if idx < 0 || idx >= len(views) {
		return nil
	}
	return &views[idx]
}

// Lookup resolves ref as a 1-based index, falling back to an ID.
func Lookup(views []overlay.NotificationView, ref string) *overlay.NotificationView {
	if idx, err := strconv.Atoi(ref); err == nil && idx > 0 {
		return LookupByIndex(views, idx)
	}
	return LookupByID(views, ref)
}

// Search finds views whose text contains term, case-insensitively.
func Search(views []overlay.NotificationView, term string) []overlay.NotificationView {
	if term == "" {
		return views
	}

	term = strings.ToLower(term)
	var result []overlay.NotificationView
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Text), term) {
			result = append(result, v)
		}
	}
	return result
}
