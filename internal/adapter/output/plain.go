package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/rhythmui/internal/overlay"
)

// PlainFormatter formats reports as human-readable text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes the counts followed by one block per notification.
func (f *PlainFormatter) Format(w io.Writer, r Report) error {
	_, err := fmt.Fprintf(w, "overlay: %s  unread: %d  toasts: %d  active tasks: %d\n",
		r.Visibility, r.UnreadCount, r.ToastCount, r.ActiveCount)
	if err != nil {
		return err
	}

	for i := range r.Notifications {
		if err := f.formatNotification(w, i+1, &r.Notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatNotification(w io.Writer, index int, v *overlay.NotificationView) error {
	if f.template != nil {
		return f.template.Execute(w, newTemplateData(index, v))
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	sb.WriteString(fmt.Sprintf("<%s> ", v.Kind))
	if !v.Read {
		sb.WriteString("* ")
	}
	sb.WriteString(truncate(v.Text, f.opts.TextMaxLen))

	if f.opts.ShowTime {
		sb.WriteString(fmt.Sprintf(" (%s)", relativeTime(v.PostedAt)))
	}
	sb.WriteString("\n")

	if v.State != "" {
		sb.WriteString(fmt.Sprintf("    %s %s\n", v.State, percent(v.Progress)))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatField outputs a specific field from a notification view.
func FormatField(v *overlay.NotificationView, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return v.ID
	case "kind":
		return v.Kind
	case "state":
		return v.State
	case "progress":
		return percent(v.Progress)
	case "read":
		return fmt.Sprintf("%t", v.Read)
	case "all", "full":
		return fmt.Sprintf("%s\n%s", v.Kind, v.Text)
	default:
		return v.Text
	}
}
