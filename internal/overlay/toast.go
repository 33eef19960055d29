package overlay

import (
	"time"

	"github.com/jmylchreest/rhythmui/internal/model"
)

type toast struct {
	notification *model.Notification
	remaining    time.Duration
}

// toastTray holds the transient toasts in arrival order and counts down
// their display time.
type toastTray struct {
	toasts []toast
	ttl    time.Duration
}

func newToastTray(ttl time.Duration) *toastTray {
	return &toastTray{ttl: ttl}
}

// push adds a toast with a full display duration.
func (t *toastTray) push(n *model.Notification) {
	t.toasts = append(t.toasts, toast{notification: n, remaining: t.ttl})
}

// remove drops the toast for id. Returns false if it was not shown.
func (t *toastTray) remove(id string) bool {
	for i, ts := range t.toasts {
		if ts.notification.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// tick decrements the remaining time on all toasts by d and returns the
// ones that expired, oldest first.
func (t *toastTray) tick(d time.Duration) []*model.Notification {
	var expired []*model.Notification
	alive := t.toasts[:0]
	for _, ts := range t.toasts {
		ts.remaining -= d
		if ts.remaining > 0 {
			alive = append(alive, ts)
		} else {
			expired = append(expired, ts.notification)
		}
	}
	t.toasts = alive
	return expired
}

// drain removes and returns every toast, oldest first.
func (t *toastTray) drain() []*model.Notification {
	out := t.notifications()
	t.toasts = t.toasts[:0]
	return out
}

// notifications returns the shown toasts, oldest first.
func (t *toastTray) notifications() []*model.Notification {
	out := make([]*model.Notification, len(t.toasts))
	for i, ts := range t.toasts {
		out[i] = ts.notification
	}
	return out
}

// remainingFor returns the display time left for id.
func (t *toastTray) remainingFor(id string) (time.Duration, bool) {
	for _, ts := range t.toasts {
		if ts.notification.ID == id {
			return ts.remaining, true
		}
	}
	return 0, false
}

func (t *toastTray) len() int {
	return len(t.toasts)
}
