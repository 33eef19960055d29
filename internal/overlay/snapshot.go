package overlay

import (
	"time"

	"github.com/jmylchreest/rhythmui/internal/model"
)

// NotificationView is a serialisable view of a tracked notification.
type NotificationView struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Kind      string    `json:"kind" yaml:"kind"`
	Important bool      `json:"important" yaml:"important"`
	Read      bool      `json:"read" yaml:"read"`
	PostedAt  time.Time `json:"posted_at" yaml:"posted_at"`
	State     string    `json:"state,omitempty" yaml:"state,omitempty"`
	Progress  float64   `json:"progress,omitempty" yaml:"progress,omitempty"`

	// ToastRemaining is the display time left while shown as a toast.
	ToastRemaining time.Duration `json:"toast_remaining,omitempty" yaml:"toast_remaining,omitempty"`
}

// Snapshot is a point-in-time view of the overlay.
type Snapshot struct {
	Visibility  string             `json:"visibility" yaml:"visibility"`
	UnreadCount int                `json:"unread_count" yaml:"unread_count"`
	ToastCount  int                `json:"toast_count" yaml:"toast_count"`
	ActiveCount int                `json:"active_count" yaml:"active_count"`
	Toasts      []NotificationView `json:"toasts" yaml:"toasts"`
	Tray        []NotificationView `json:"tray" yaml:"tray"`
	Progressing []NotificationView `json:"progressing" yaml:"progressing"`
}

// Snapshot captures the current state of the overlay.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Visibility:  m.visibility.Value().String(),
		UnreadCount: m.unreadCount.Value(),
		ToastCount:  m.toastCount.Value(),
		ActiveCount: m.ActiveCount(),
		Toasts:      m.views(m.Toasts()),
		Tray:        m.views(m.Tray()),
		Progressing: m.views(m.Progressing()),
	}
}

func (m *Manager) views(ns []*model.Notification) []NotificationView {
	out := make([]NotificationView, 0, len(ns))
	for _, n := range ns {
		v := NotificationView{
			ID:        n.ID,
			Text:      n.Text,
			Kind:      n.Kind.String(),
			Important: n.Important,
			Read:      m.IsRead(n),
			PostedAt:  n.PostedAt,
		}
		if remaining, ok := m.toasts.remainingFor(n.ID); ok {
			v.ToastRemaining = remaining
		}
		if n.IsProgress() {
			v.State = n.Progress.State.String()
			v.Progress = n.Progress.Value
		}
		out = append(out, v)
	}
	return out
}
