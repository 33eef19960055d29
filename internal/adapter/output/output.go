// Package output provides output formatters for overlay reports.
package output

import (
	"io"

	"github.com/jmylchreest/rhythmui/internal/overlay"
)

// Report is the overlay's final counts together with the notifications
// selected for output.
type Report struct {
	Visibility    string                     `json:"visibility" yaml:"visibility"`
	UnreadCount   int                        `json:"unread_count" yaml:"unread_count"`
	ToastCount    int                        `json:"toast_count" yaml:"toast_count"`
	ActiveCount   int                        `json:"active_count" yaml:"active_count"`
	Notifications []overlay.NotificationView `json:"notifications" yaml:"notifications"`
}

// NewReport builds a report from a snapshot and the selected views.
func NewReport(s overlay.Snapshot, views []overlay.NotificationView) Report {
	if views == nil {
		views = []overlay.NotificationView{}
	}
	return Report{
		Visibility:    s.Visibility,
		UnreadCount:   s.UnreadCount,
		ToastCount:    s.ToastCount,
		ActiveCount:   s.ActiveCount,
		Notifications: views,
	}
}

// Formatter formats a report for output.
type Formatter interface {
	// Format writes the formatted report to the writer.
	Format(w io.Writer, r Report) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom template for dmenu/plain format
	ShowIndex  bool   // Show 1-based index prefix
	ShowTime   bool   // Show relative time
	TextMaxLen int    // Maximum text length (0 = unlimited)
	Separator  string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:  true,
		ShowTime:   true,
		TextMaxLen: 80,
		Separator:  " | ",
	}
}
