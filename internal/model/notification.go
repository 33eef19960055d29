// Package model defines the core data structures for rhythmui notifications.
package model

import (
	"errors"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind identifies the notification variant.
type Kind int

const (
	// KindSimple is a plain text notification. Always important.
	KindSimple Kind = iota
	// KindError reports a failure to the user. Always important.
	KindError
	// KindBackground is informational and never toasts while the overlay is hidden.
	KindBackground
)

// KindNames maps kinds to human-readable names.
var KindNames = map[Kind]string{
	KindSimple:     "simple",
	KindError:      "error",
	KindBackground: "background",
}

// String returns the string representation of Kind.
func (k Kind) String() string {
	if name, ok := KindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Important reports whether notifications of this kind force a toast.
func (k Kind) Important() bool {
	return k != KindBackground
}

// ProgressState is the lifecycle state of a progress notification.
type ProgressState int

const (
	// ProgressQueued means the task is waiting for an active slot.
	ProgressQueued ProgressState = iota
	// ProgressActive means the task is running and its value may advance.
	ProgressActive
	// ProgressCompleted means the task reached a value of 1.
	ProgressCompleted
	// ProgressCancelled means the task was cancelled before completing.
	ProgressCancelled
)

// String returns the string representation of ProgressState.
func (s ProgressState) String() string {
	switch s {
	case ProgressQueued:
		return "queued"
	case ProgressActive:
		return "active"
	case ProgressCompleted:
		return "completed"
	case ProgressCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal returns true for states that never transition again.
func (s ProgressState) Terminal() bool {
	return s == ProgressCompleted || s == ProgressCancelled
}

// Progress holds the lifecycle of a long-running task attached to a notification.
type Progress struct {
	Value          float64       // 0.0-1.0
	State          ProgressState // Current lifecycle state
	CompletionText string        // Text of the notification posted on completion

	// TimeToComplete is how long an active task takes to go from 0 to 1.
	// Zero means the value is driven externally.
	TimeToComplete time.Duration

	// Elapsed is how long the task has been active.
	Elapsed time.Duration
}

// Notification is a single entry shown as a toast or in the tray.
type Notification struct {
	ID        string
	Text      string
	Kind      Kind
	Important bool      // Fixed at construction from Kind
	PostedAt  time.Time // Set when posted to an overlay

	// Activated is invoked when the user activates (left-clicks) the notification.
	Activated func()

	// Progress is non-nil for progress notifications.
	Progress *Progress

	closed   bool
	closedAt time.Time
}

// Validation errors.
var (
	ErrEmptyText           = errors.New("notification text cannot be empty")
	ErrEmptyCompletionText = errors.New("completion text cannot be empty")
	ErrInvalidKind         = errors.New("kind must be simple, error, or background")
	ErrInvalidProgress     = errors.New("progress must be between 0 and 1")
)

// NewID returns a new sortable notification identifier.
func NewID() string {
	return ulid.Make().String()
}

func newNotification(kind Kind, text string) *Notification {
	return &Notification{
		ID:        NewID(),
		Text:      text,
		Kind:      kind,
		Important: kind.Important(),
	}
}

// NewSimple creates an important text notification.
func NewSimple(text string) *Notification {
	return newNotification(KindSimple, text)
}

// NewError creates an important error notification.
func NewError(text string) *Notification {
	return newNotification(KindError, text)
}

// NewBackground creates an unimportant notification that never forces a toast.
func NewBackground(text string) *Notification {
	return newNotification(KindBackground, text)
}

// NewProgress creates a queued progress notification.
func NewProgress(text, completionText string, timeToComplete time.Duration) *Notification {
	n := newNotification(KindSimple, text)
	n.Progress = &Progress{
		State:          ProgressQueued,
		CompletionText: completionText,
		TimeToComplete: timeToComplete,
	}
	return n
}

// NewBackgroundProgress creates a queued progress notification that is not important.
func NewBackgroundProgress(text, completionText string, timeToComplete time.Duration) *Notification {
	n := NewProgress(text, completionText, timeToComplete)
	n.Kind = KindBackground
	n.Important = false
	return n
}

// Validate checks that the notification has all required fields.
func (n *Notification) Validate() error {
	if n.Text == "" {
		return ErrEmptyText
	}
	if _, ok := KindNames[n.Kind]; !ok {
		return ErrInvalidKind
	}
	if n.Progress != nil {
		if n.Progress.CompletionText == "" {
			return ErrEmptyCompletionText
		}
		if v := n.Progress.Value; math.IsNaN(v) || v < 0 || v > 1 {
			return ErrInvalidProgress
		}
		if n.Progress.TimeToComplete < 0 || n.Progress.Elapsed < 0 {
			return ErrInvalidProgress
		}
	}
	return nil
}

// IsProgress returns true if the notification tracks a task.
func (n *Notification) IsProgress() bool {
	return n.Progress != nil
}

// State returns the progress state, or ProgressCompleted for plain notifications.
func (n *Notification) State() ProgressState {
	if n.Progress == nil {
		return ProgressCompleted
	}
	return n.Progress.State
}

// Closed returns true once the notification has been closed.
func (n *Notification) Closed() bool {
	return n.closed
}

// ClosedAt returns when the notification was closed (zero if still open).
func (n *Notification) ClosedAt() time.Time {
	return n.closedAt
}

// MarkClosed closes the notification. Returns false if it was already closed.
func (n *Notification) MarkClosed() bool {
	if n.closed {
		return false
	}
	n.closed = true
	n.closedAt = time.Now()
	return true
}

// CompletionNotification builds the notification that replaces a completed task.
// It inherits the importance of the task. Returns nil for plain notifications.
func (n *Notification) CompletionNotification() *Notification {
	if n.Progress == nil {
		return nil
	}
	kind := KindSimple
	if !n.Important {
		kind = KindBackground
	}
	return newNotification(kind, n.Progress.CompletionText)
}

// PostedTime returns the post time, or the ULID timestamp if never posted.
func (n *Notification) PostedTime() time.Time {
	if !n.PostedAt.IsZero() {
		return n.PostedAt
	}
	if id, err := ulid.ParseStrict(n.ID); err == nil {
		return ulid.Time(id.Time())
	}
	return time.Time{}
}
