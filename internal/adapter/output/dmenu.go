package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/rhythmui/internal/overlay"
)

// DmenuFormatter formats notifications for dmenu/rofi/fuzzel, one per line.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes the report's notifications in dmenu format.
func (f *DmenuFormatter) Format(w io.Writer, r Report) error {
	for i := range r.Notifications {
		line := f.formatLine(i+1, &r.Notifications[i])
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single notification line.
func (f *DmenuFormatter) formatLine(index int, v *overlay.NotificationView) string {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, newTemplateData(index, v)); err == nil {
			return buf.String()
		}
	}

	// Default format: index | time | kind | text [progress]
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	var parts []string
	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}
	if f.opts.ShowTime {
		parts = append(parts, relativeTime(v.PostedAt))
	}
	parts = append(parts, v.Kind)

	content := sanitize(v.Text, f.opts.TextMaxLen)
	if v.State != "" {
		content += fmt.Sprintf(" [%s %s]", v.State, percent(v.Progress))
	}
	parts = append(parts, content)

	return strings.Join(parts, sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Index        int
	Notification *overlay.NotificationView
	RelativeTime string
}

func newTemplateData(index int, v *overlay.NotificationView) templateData {
	return templateData{
		Index:        index,
		Notification: v,
		RelativeTime: relativeTime(v.PostedAt),
	}
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": truncate,
		"reltime":  relativeTime,
		"percent":  percent,
		"kindIcon": func(kind string) string {
			switch kind {
			case "error":
				return "!"
			case "background":
				return "."
			default:
				return "-"
			}
		},
	}
}

// relativeTime returns a human-readable relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// sanitize cleans up text for single-line display.
func sanitize(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return truncate(strings.TrimSpace(s), maxLen)
}
