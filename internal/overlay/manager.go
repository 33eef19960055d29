package overlay

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jmylchreest/rhythmui/internal/bindable"
	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/model"
)

// Errors returned by rejected operations. State is left unchanged.
var (
	ErrInvalidTransition   = errors.New("invalid progress state transition")
	ErrDuplicatePost       = errors.New("notification already posted")
	ErrUnknownNotification = errors.New("notification is not tracked by this overlay")
)

// entry is the overlay's bookkeeping for one tracked notification.
type entry struct {
	notification *model.Notification
	placement    Placement
	read         bool
	activated    bool // activation callback already ran
}

// Manager tracks posted notifications, decides between toast and tray, runs
// progress notifications with bounded concurrency and keeps the derived counts.
//
// Manager is not safe for concurrent use. Post, Dismiss, SetState and Advance
// must all be called from the same goroutine that drives the frame tick.
type Manager struct {
	config *config.OverlayConfig
	logger *slog.Logger

	visibility  *bindable.Bindable[Visibility]
	unreadCount *bindable.Bindable[int]
	toastCount  *bindable.Bindable[int]

	entries  map[string]*entry
	tray     []*model.Notification // Arrival order, oldest first
	toasts   *toastTray
	progress *progressQueue

	onToast  bindable.Event[*model.Notification]
	onClosed bindable.Event[*model.Notification]

	now func() time.Time
}

// NewManager creates a new overlay in the Hidden state.
func NewManager(cfg *config.OverlayConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = &config.DefaultConfig().Overlay
	}

	return &Manager{
		config:      cfg,
		logger:      logger,
		visibility:  bindable.New(Hidden),
		unreadCount: bindable.New(0),
		toastCount:  bindable.New(0),
		entries:     make(map[string]*entry),
		toasts:      newToastTray(cfg.ToastDuration.Duration()),
		progress:    newProgressQueue(cfg.MaxActiveProgress),
		now:         time.Now,
	}
}

// Visibility returns the observable overlay state.
func (m *Manager) Visibility() bindable.Observable[Visibility] {
	return m.visibility
}

// UnreadCount returns the observable number of notifications not yet seen.
func (m *Manager) UnreadCount() bindable.Observable[int] {
	return m.unreadCount
}

// ToastCount returns the observable number of notifications shown as toasts.
func (m *Manager) ToastCount() bindable.Observable[int] {
	return m.toastCount
}

// OnToast registers fn to be called whenever a notification is shown as a toast.
func (m *Manager) OnToast(fn func(*model.Notification)) func() {
	return m.onToast.Subscribe(fn)
}

// OnClosed registers fn to be called whenever a notification is closed.
func (m *Manager) OnClosed(fn func(*model.Notification)) func() {
	return m.onClosed.Subscribe(fn)
}

// Post starts tracking n. While the overlay is visible it goes straight into
// the tray. While hidden, important notifications show as a toast (if the
// toast cap allows) and the rest are delivered silently to the tray.
func (m *Manager) Post(n *model.Notification) error {
	if n == nil {
		return fmt.Errorf("%w: nil notification", ErrUnknownNotification)
	}
	if err := n.Validate(); err != nil {
		return err
	}
	if _, exists := m.entries[n.ID]; exists || n.Closed() {
		return fmt.Errorf("%w: %s", ErrDuplicatePost, n.ID)
	}
	if n.IsProgress() && n.Progress.State.Terminal() {
		return fmt.Errorf("%w: cannot post a %s task", ErrInvalidTransition, n.Progress.State)
	}

	n.PostedAt = m.now()
	visible := m.visibility.Value() == Visible

	e := &entry{notification: n, placement: PlacementTray, read: visible}
	switch {
	case visible:
	case !n.Important:
	case m.toasts.len() >= m.config.MaxToasts:
		m.logger.Debug("toast cap reached, delivering to tray", "id", n.ID, "max_toasts", m.config.MaxToasts)
	default:
		e.placement = PlacementToast
	}

	m.entries[n.ID] = e
	if e.placement == PlacementToast {
		m.toasts.push(n)
	} else {
		m.tray = append(m.tray, n)
	}
	if n.IsProgress() {
		m.progress.enqueue(n)
	}

	m.logger.Debug("posted notification",
		"id", n.ID,
		"kind", n.Kind.String(),
		"important", n.Important,
		"placement", e.placement.String(),
	)

	if e.placement == PlacementToast {
		m.onToast.Emit(n)
	}
	m.refresh()
	return nil
}

// Dismiss closes n. When viaActivation is true the activation callback runs
// first, exactly once. Dismissing a closed notification is a no-op; a
// running task is cancelled.
func (m *Manager) Dismiss(n *model.Notification, viaActivation bool) error {
	if n == nil {
		return fmt.Errorf("%w: nil notification", ErrUnknownNotification)
	}
	if n.Closed() {
		return nil
	}
	e, exists := m.entries[n.ID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownNotification, n.ID)
	}

	if viaActivation && n.Activated != nil && !e.activated {
		e.activated = true
		n.Activated()
		// The callback may have closed it already
		if n.Closed() {
			return nil
		}
	}

	if n.IsProgress() && !n.Progress.State.Terminal() {
		m.logger.Debug("cancelling dismissed task", "id", n.ID, "state", n.Progress.State.String())
		n.Progress.State = model.ProgressCancelled
	}

	m.close(e)
	m.refresh()
	return nil
}

// SetState applies an external transition to a progress notification.
// Only cancellation of a queued or active task is allowed; the task leaves
// the progressing set on the next Advance.
func (m *Manager) SetState(n *model.Notification, state model.ProgressState) error {
	e, err := m.lookup(n)
	if err != nil {
		return err
	}
	n = e.notification
	if !n.IsProgress() {
		return fmt.Errorf("%w: %s is not a progress notification", ErrInvalidTransition, n.ID)
	}

	current := n.Progress.State
	if state != model.ProgressCancelled || current.Terminal() {
		m.logger.Debug("rejected state transition", "id", n.ID, "from", current.String(), "to", state.String())
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, state)
	}

	n.Progress.State = model.ProgressCancelled
	m.logger.Debug("cancelled task", "id", n.ID, "from", current.String())
	return nil
}

// SetProgress moves an externally driven task forward. Values are clamped
// to 1; going backwards is rejected. Completion happens on the next Advance.
func (m *Manager) SetProgress(n *model.Notification, value float64) error {
	e, err := m.lookup(n)
	if err != nil {
		return err
	}
	n = e.notification
	if !n.IsProgress() || n.Progress.State != model.ProgressActive {
		return fmt.Errorf("%w: progress can only be set on an active task", ErrInvalidTransition)
	}
	if math.IsNaN(value) || value < n.Progress.Value {
		return fmt.Errorf("%w: progress cannot go from %.3f to %.3f", ErrInvalidTransition, n.Progress.Value, value)
	}

	n.Progress.Value = min(1, value)
	return nil
}

// Advance runs one frame of dt: expired toasts move into the tray, queued
// tasks are admitted, active tasks progress and completed tasks are replaced
// by their completion notification.
func (m *Manager) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}

	for _, n := range m.toasts.tick(dt) {
		e := m.entries[n.ID]
		if e == nil {
			continue
		}
		e.placement = PlacementTray
		m.tray = append(m.tray, n)
		m.logger.Debug("forwarded toast to tray", "id", n.ID)
	}

	for _, n := range m.progress.advance(dt) {
		m.logger.Debug("task completed", "id", n.ID, "text", n.Text)
		if e, exists := m.entries[n.ID]; exists {
			m.close(e)
		}
		if err := m.Post(n.CompletionNotification()); err != nil {
			m.logger.Warn("failed to post completion notification", "id", n.ID, "error", err)
		}
	}

	m.refresh()
}

// SetVisibility opens or closes the overlay. Opening moves every toast into
// the tray and marks everything tracked as seen.
func (m *Manager) SetVisibility(v Visibility) {
	if v == m.visibility.Value() {
		return
	}

	if v == Visible {
		for _, n := range m.toasts.drain() {
			if e := m.entries[n.ID]; e != nil {
				e.placement = PlacementTray
				m.tray = append(m.tray, n)
			}
		}
		for _, e := range m.entries {
			e.read = true
		}
	}

	m.logger.Debug("overlay visibility changed", "visibility", v.String())
	m.visibility.Set(v)
	m.refresh()
}

// Show opens the overlay.
func (m *Manager) Show() { m.SetVisibility(Visible) }

// Hide closes the overlay.
func (m *Manager) Hide() { m.SetVisibility(Hidden) }

// Toggle flips the overlay visibility.
func (m *Manager) Toggle() {
	if m.visibility.Value() == Visible {
		m.Hide()
	} else {
		m.Show()
	}
}

// ClearTray dismisses every tray notification without activating it.
// Toasts are left alone. Returns the number closed.
func (m *Manager) ClearTray() int {
	tray := make([]*model.Notification, len(m.tray))
	copy(tray, m.tray)

	closed := 0
	for _, n := range tray {
		if err := m.Dismiss(n, false); err == nil {
			closed++
		}
	}
	return closed
}

// Toasts returns the notifications shown as toasts, oldest first.
func (m *Manager) Toasts() []*model.Notification {
	return m.toasts.notifications()
}

// Tray returns the tray notifications, newest first.
func (m *Manager) Tray() []*model.Notification {
	out := make([]*model.Notification, len(m.tray))
	for i, n := range m.tray {
		out[len(m.tray)-1-i] = n
	}
	return out
}

// Progressing returns the queued and active tasks in queue order.
func (m *Manager) Progressing() []*model.Notification {
	return m.progress.notifications()
}

// ActiveCount returns the number of active tasks.
func (m *Manager) ActiveCount() int {
	return m.progress.activeCount()
}

// Tracked returns true if n is currently shown as a toast or in the tray.
func (m *Manager) Tracked(n *model.Notification) bool {
	if n == nil {
		return false
	}
	_, exists := m.entries[n.ID]
	return exists
}

// Find returns the tracked notification with the given ID.
func (m *Manager) Find(id string) (*model.Notification, bool) {
	e, exists := m.entries[id]
	if !exists {
		return nil, false
	}
	return e.notification, true
}

// PlacementOf returns where n currently lives.
func (m *Manager) PlacementOf(n *model.Notification) (Placement, bool) {
	if n == nil {
		return 0, false
	}
	e, exists := m.entries[n.ID]
	if !exists {
		return 0, false
	}
	return e.placement, true
}

// IsRead returns true if n has been seen (posted while open, or open since).
func (m *Manager) IsRead(n *model.Notification) bool {
	if n == nil {
		return false
	}
	e, exists := m.entries[n.ID]
	return exists && e.read
}

func (m *Manager) lookup(n *model.Notification) (*entry, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil notification", ErrUnknownNotification)
	}
	e, exists := m.entries[n.ID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNotification, n.ID)
	}
	return e, nil
}

// close removes e from every collection and marks its notification closed.
func (m *Manager) close(e *entry) {
	n := e.notification
	switch e.placement {
	case PlacementToast:
		m.toasts.remove(n.ID)
	case PlacementTray:
		m.removeFromTray(n.ID)
	}
	delete(m.entries, n.ID)

	if n.MarkClosed() {
		m.logger.Debug("closed notification", "id", n.ID, "placement", e.placement.String())
		m.onClosed.Emit(n)
	}
}

func (m *Manager) removeFromTray(id string) {
	for i, n := range m.tray {
		if n.ID == id {
			m.tray = append(m.tray[:i], m.tray[i+1:]...)
			return
		}
	}
}

// refresh recomputes the derived counts.
func (m *Manager) refresh() {
	unread := 0
	for _, e := range m.entries {
		if !e.read {
			unread++
		}
	}
	m.unreadCount.Set(unread)
	m.toastCount.Set(m.toasts.len())
}
