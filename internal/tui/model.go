// Package tui provides the BubbleTea-based visual test scene for the
// notification overlay.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/dbus"
	"github.com/jmylchreest/rhythmui/internal/model"
	"github.com/jmylchreest/rhythmui/internal/overlay"
	"github.com/jmylchreest/rhythmui/internal/pager"
	"github.com/jmylchreest/rhythmui/internal/room"
	"github.com/jmylchreest/rhythmui/internal/scenario"
	"github.com/jmylchreest/rhythmui/internal/settings"
)

// Forwarder mirrors toasts to the desktop and reports desktop interaction.
type Forwarder interface {
	Forward(n *model.Notification) (uint32, error)
	Close(n *model.Notification) error
	Events() <-chan dbus.Event
}

// Options are the optional collaborators of the scene.
type Options struct {
	Settings  *settings.Manager
	Forwarder Forwarder
	Logger    *slog.Logger
}

// Model is the scene TUI model.
type Model struct {
	// Configuration
	cfg       *config.Config
	overlay   *overlay.Manager
	settings  *settings.Manager
	forwarder Forwarder
	logger    *slog.Logger

	// Scene state
	room       *room.Room
	roomColour *room.StatusColoured
	pager      *pager.Selector
	activity   *activityLog
	generator  *scenario.Generator
	selected   int

	// Components
	keys KeyMap
	help help.Model

	width    int
	height   int
	ready    bool
	lastTick time.Time

	// Status message
	statusMsg string
	statusErr bool
}

// New creates a scene driving ov.
func New(cfg *config.Config, ov *overlay.Manager, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := room.New("osu! lounge", room.CategoryNormal)

	m := Model{
		cfg:       cfg,
		overlay:   ov,
		settings:  opts.Settings,
		forwarder: opts.Forwarder,
		logger:    logger,
		room:      r,
		roomColour: room.NewStatusColoured(r, room.DefaultPalette(),
			lipgloss.NewStyle().Bold(true)),
		pager:     pager.New(),
		activity:  newActivityLog(6),
		generator: scenario.NewGenerator(cfg.Overlay.TimeToComplete.Duration()),
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}

	activity := m.activity
	ov.OnClosed(func(n *model.Notification) {
		activity.add("closed: " + n.Text)
	})

	if fwd := opts.Forwarder; fwd != nil {
		ov.OnToast(func(n *model.Notification) {
			if _, err := fwd.Forward(n); err != nil {
				logger.Warn("failed to forward toast", "id", n.ID, "error", err)
			}
		})
		ov.OnClosed(func(n *model.Notification) {
			if err := fwd.Close(n); err != nil {
				logger.Warn("failed to close desktop notification", "id", n.ID, "error", err)
			}
		})
	}

	return m
}

// Init starts the frame tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForDesktopEvent())
}

type tickMsg time.Time

type desktopEventMsg dbus.Event

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Scene.TickInterval.Duration(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForDesktopEvent waits for the next desktop interaction.
func (m Model) waitForDesktopEvent() tea.Cmd {
	if m.forwarder == nil {
		return nil
	}
	events := m.forwarder.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return desktopEventMsg(ev)
	}
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		dt := m.cfg.Scene.TickInterval.Duration()
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.overlay.Advance(dt)
		m.sync()
		return m, m.tick()

	case desktopEventMsg:
		m.handleDesktopEvent(dbus.Event(msg))
		return m, m.waitForDesktopEvent()

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.roomColour.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.PostSimple):
		cmd = m.post(m.newSimple())

	case key.Matches(msg, m.keys.PostBackground):
		cmd = m.post(m.generator.Background())

	case key.Matches(msg, m.keys.PostError):
		cmd = m.post(m.generator.Error())

	case key.Matches(msg, m.keys.PostProgress):
		cmd = m.post(m.generator.Progress(false))

	case key.Matches(msg, m.keys.PostBackgroundProgress):
		cmd = m.post(m.generator.Progress(true))

	case key.Matches(msg, m.keys.Barrage):
		cmd = m.barrage()

	case key.Matches(msg, m.keys.Many):
		for range 10 {
			if c := m.post(m.newSimple()); c != nil {
				cmd = c
			}
		}

	case key.Matches(msg, m.keys.Toggle):
		m.overlay.Toggle()
		m.selected = 0

	case key.Matches(msg, m.keys.Up):
		m.selected--

	case key.Matches(msg, m.keys.Down):
		m.selected++

	case key.Matches(msg, m.keys.PrevPage):
		m.pager.Prev()
		m.selected = 0

	case key.Matches(msg, m.keys.NextPage):
		m.pager.Next()
		m.selected = 0

	case key.Matches(msg, m.keys.Activate):
		if n := m.selectedNotification(); n != nil {
			if err := m.overlay.Dismiss(n, true); err != nil {
				cmd = status(err.Error(), true)
			}
		}

	case key.Matches(msg, m.keys.Dismiss):
		if n := m.selectedNotification(); n != nil {
			if err := m.overlay.Dismiss(n, false); err != nil {
				cmd = status(err.Error(), true)
			}
		}

	case key.Matches(msg, m.keys.Cancel):
		if n := m.selectedNotification(); n != nil {
			if err := m.overlay.SetState(n, model.ProgressCancelled); err != nil {
				cmd = status("Cannot cancel: "+err.Error(), true)
			} else {
				m.activity.add("cancelled: " + n.Text)
			}
		}

	case key.Matches(msg, m.keys.ClearTray):
		cleared := m.overlay.ClearTray()
		cmd = status(fmt.Sprintf("Cleared %d notifications", cleared), false)

	case key.Matches(msg, m.keys.CycleRoom):
		m.room.SetStatus(m.room.Status().Value().Next())
	}

	m.sync()
	return m, cmd
}

func (m *Model) handleDesktopEvent(ev dbus.Event) {
	n, ok := m.overlay.Find(ev.NotificationID)
	if !ok {
		return
	}

	switch ev.Type {
	case dbus.EventActivated:
		if err := m.overlay.Dismiss(n, true); err != nil {
			m.logger.Warn("failed to activate notification", "id", n.ID, "error", err)
		}
	case dbus.EventClosed:
		m.activity.add(fmt.Sprintf("desktop %s: %s", ev.Reason, n.Text))
	}
}

// post hands n to the overlay, returning a status command on failure.
func (m *Model) post(n *model.Notification) tea.Cmd {
	if err := m.overlay.Post(n); err != nil {
		m.logger.Debug("post rejected", "id", n.ID, "error", err)
		return status("Post failed: "+err.Error(), true)
	}
	return nil
}

func (m *Model) newSimple() *model.Notification {
	return m.withActivation(m.generator.Simple())
}

// withActivation records activation of plain simple notifications in the
// activity log.
func (m *Model) withActivation(n *model.Notification) *model.Notification {
	if n.Kind != model.KindSimple || n.IsProgress() {
		return n
	}
	activity, text := m.activity, n.Text
	n.Activated = func() {
		activity.add("activated: " + text)
	}
	return n
}

// barrage posts a mix of every kind at once.
func (m *Model) barrage() tea.Cmd {
	var cmd tea.Cmd
	for _, n := range m.generator.Barrage() {
		if c := m.post(m.withActivation(n)); c != nil {
			cmd = c
		}
	}
	return cmd
}

// items returns the notifications currently listed: toasts while the
// overlay is hidden, the current tray page while it is open.
func (m Model) items() []*model.Notification {
	if m.overlay.Visibility().Value() == overlay.Hidden {
		return m.overlay.Toasts()
	}
	tray := m.overlay.Tray()
	start, end := m.pager.Bounds(len(tray), m.cfg.Scene.PageSize)
	return tray[start:end]
}

func (m Model) selectedNotification() *model.Notification {
	items := m.items()
	if m.selected < 0 || m.selected >= len(items) {
		return nil
	}
	return items[m.selected]
}

// sync updates the page count and keeps the selection in range.
func (m *Model) sync() {
	m.pager.SetMaxPages(pager.PagesFor(len(m.overlay.Tray()), m.cfg.Scene.PageSize))

	n := len(m.items())
	m.selected = max(0, min(m.selected, n-1))
}

// activityLog keeps the most recent scene events.
type activityLog struct {
	lines []string
	limit int
}

func newActivityLog(limit int) *activityLog {
	return &activityLog{limit: limit}
}

func (a *activityLog) add(line string) {
	a.lines = append(a.lines, line)
	if len(a.lines) > a.limit {
		a.lines = a.lines[len(a.lines)-a.limit:]
	}
}
