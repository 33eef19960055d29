package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		n         *Notification
		kind      Kind
		important bool
		progress  bool
	}{
		{"simple", NewSimple("hello"), KindSimple, true, false},
		{"error", NewError("rut roh"), KindError, true, false},
		{"background", NewBackground("quiet"), KindBackground, false, false},
		{"progress", NewProgress("uploading", "uploaded", 2*time.Second), KindSimple, true, true},
		{"background progress", NewBackgroundProgress("uploading", "uploaded", time.Second), KindBackground, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.n.ID)
			assert.Equal(t, tt.kind, tt.n.Kind)
			assert.Equal(t, tt.important, tt.n.Important)
			assert.Equal(t, tt.progress, tt.n.IsProgress())
			assert.False(t, tt.n.Closed())
			require.NoError(t, tt.n.Validate())
		})
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewProgress_StartsQueued(t *testing.T) {
	n := NewProgress("Uploading to BSS...", "Uploaded to BSS!", 2000*time.Millisecond)

	require.NotNil(t, n.Progress)
	assert.Equal(t, ProgressQueued, n.State())
	assert.Equal(t, 0.0, n.Progress.Value)
	assert.Equal(t, 2*time.Second, n.Progress.TimeToComplete)
	assert.Equal(t, "Uploaded to BSS!", n.Progress.CompletionText)
}

func withValue(v float64) *Notification {
	n := NewProgress("Uploading", "Uploaded", time.Second)
	n.Progress.Value = v
	return n
}

func TestNotification_Validate(t *testing.T) {
	tests := []struct {
		name    string
		n       *Notification
		wantErr error
	}{
		{"valid", NewSimple("ok"), nil},
		{"empty text", NewSimple(""), ErrEmptyText},
		{"bad kind", &Notification{Text: "x", Kind: Kind(42)}, ErrInvalidKind},
		{"missing completion text", NewProgress("x", "", time.Second), ErrEmptyCompletionText},
		{"progress below zero", withValue(-1), ErrInvalidProgress},
		{"progress above one", withValue(1.5), ErrInvalidProgress},
		{"progress NaN", withValue(math.NaN()), ErrInvalidProgress},
		{"progress at one", withValue(1), nil},
		{"negative time to complete", NewProgress("x", "y", -time.Second), ErrInvalidProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.n.Validate(), tt.wantErr)
		})
	}
}

func TestNotification_MarkClosed(t *testing.T) {
	n := NewSimple("bye")
	assert.True(t, n.ClosedAt().IsZero())

	assert.True(t, n.MarkClosed())
	assert.True(t, n.Closed())
	closedAt := n.ClosedAt()
	assert.False(t, closedAt.IsZero())

	// Closing is monotonic
	assert.False(t, n.MarkClosed())
	assert.True(t, n.Closed())
	assert.Equal(t, closedAt, n.ClosedAt())
}

func TestNotification_State(t *testing.T) {
	assert.Equal(t, ProgressCompleted, NewSimple("plain").State())

	n := NewProgress("x", "y", time.Second)
	n.Progress.State = ProgressCancelled
	assert.Equal(t, ProgressCancelled, n.State())
}

func TestProgressState_Terminal(t *testing.T) {
	assert.False(t, ProgressQueued.Terminal())
	assert.False(t, ProgressActive.Terminal())
	assert.True(t, ProgressCompleted.Terminal())
	assert.True(t, ProgressCancelled.Terminal())
	assert.Equal(t, "unknown", ProgressState(9).String())
	assert.Equal(t, "active", ProgressActive.String())
}

func TestCompletionNotification(t *testing.T) {
	t.Run("important task", func(t *testing.T) {
		n := NewProgress("Downloading Haitai...", "Downloaded Haitai!", time.Second)
		c := n.CompletionNotification()
		require.NotNil(t, c)
		assert.NotEqual(t, n.ID, c.ID)
		assert.Equal(t, "Downloaded Haitai!", c.Text)
		assert.True(t, c.Important)
		assert.False(t, c.IsProgress())
	})

	t.Run("background task", func(t *testing.T) {
		n := NewBackgroundProgress("Uploading", "Uploaded", time.Second)
		c := n.CompletionNotification()
		require.NotNil(t, c)
		assert.Equal(t, KindBackground, c.Kind)
		assert.False(t, c.Important)
	})

	t.Run("plain notification", func(t *testing.T) {
		assert.Nil(t, NewSimple("x").CompletionNotification())
	})
}

func TestNotification_PostedTime(t *testing.T) {
	n := NewSimple("x")
	assert.WithinDuration(t, time.Now(), n.PostedTime(), time.Minute)

	posted := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	n.PostedAt = posted
	assert.Equal(t, posted, n.PostedTime())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "simple", KindSimple.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "background", KindBackground.String())
	assert.Equal(t, "unknown", Kind(7).String())
}
