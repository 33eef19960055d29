package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/rhythmui/internal/model"
	"github.com/jmylchreest/rhythmui/internal/overlay"
	"github.com/jmylchreest/rhythmui/internal/settings"
)

const progressWidth = 20

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	unreadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	kindStyles = map[model.Kind]lipgloss.Style{
		model.KindSimple:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		model.KindError:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		model.KindBackground: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// View renders the scene.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	if m.overlay.Visibility().Value() == overlay.Visible {
		b.WriteString(m.viewTray())
	} else {
		b.WriteString(m.viewToasts())
	}

	if len(m.activity.lines) > 0 {
		b.WriteString("\n" + labelStyle.Render("Activity") + "\n")
		for _, line := range m.activity.lines {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		b.WriteString(statusStyle.Render(m.statusMsg))
	} else if m.cfg.Scene.ShowHelp {
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

func (m Model) viewHeader() string {
	roomLabel := m.roomColour.Render(fmt.Sprintf("%s [%s]", m.room.Name, m.room.Status().Value()))

	counts := fmt.Sprintf("unread %d  toasts %d  tasks %d/%d active",
		m.overlay.UnreadCount().Value(),
		m.overlay.ToastCount().Value(),
		m.overlay.ActiveCount(),
		m.cfg.Overlay.MaxActiveProgress,
	)

	return titleStyle.Render("rhythmui") + "  " + roomLabel + "\n" + labelStyle.Render(counts)
}

func (m Model) viewToasts() string {
	toasts := m.items()
	s := titleStyle.Render("Toasts") + "\n"
	if len(toasts) == 0 {
		return s + labelStyle.Render("  nothing to show, press tab to open the tray") + "\n"
	}
	for i, n := range toasts {
		s += m.renderNotification(n, i == m.selected) + "\n"
	}
	return s
}

func (m Model) viewTray() string {
	tray := m.overlay.Tray()
	page := m.items()

	s := titleStyle.Render("Notifications") + labelStyle.Render(fmt.Sprintf("  page %d/%d  (%d total)",
		m.pager.CurrentPage().Value(), m.pager.MaxPages().Value(), len(tray))) + "\n"
	if len(page) == 0 {
		return s + labelStyle.Render("  no notifications") + "\n"
	}
	for i, n := range page {
		s += m.renderNotification(n, i == m.selected) + "\n"
	}
	return s
}

func (m Model) renderNotification(n *model.Notification, selected bool) string {
	marker := "  "
	if selected {
		marker = "▸ "
	}
	if !m.overlay.IsRead(n) {
		marker += unreadStyle.Render("•") + " "
	} else {
		marker += "  "
	}

	style, ok := kindStyles[n.Kind]
	if !ok {
		style = lipgloss.NewStyle()
	}
	kind := style.Render(fmt.Sprintf("%-10s", n.Kind))

	text := n.Text
	if selected {
		text = selectedStyle.Render(text)
	}

	line := marker + kind + " " + text
	if n.IsProgress() {
		line += "  " + progressBar(n.Progress.Value, progressWidth) + " " + labelStyle.Render(n.Progress.State.String())
	}
	return line + "  " + labelStyle.Render(m.postedLabel(n))
}

// postedLabel shows when n was posted, honouring the 24-hour clock setting.
func (m Model) postedLabel(n *model.Notification) string {
	layout := "3:04:05 PM"
	if m.settings != nil && m.settings.Bool(settings.Prefer24HourTime) {
		layout = "15:04:05"
	}
	return n.PostedAt.Format(layout) + " (" + humanize.Time(n.PostedAt) + ")"
}

func progressBar(value float64, width int) string {
	filled := int(value * float64(width))
	filled = max(0, min(width, filled))
	return barStyle.Render(strings.Repeat("█", filled)) +
		labelStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f%%", value*100)
}
