package overlay

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/model"
)

const (
	timeToComplete = 2000 * time.Millisecond
	frame          = 250 * time.Millisecond
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(&config.DefaultConfig().Overlay, nil)
}

// advanceFor runs frames until total has elapsed.
func advanceFor(m *Manager, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += frame {
		m.Advance(frame)
	}
}

// advanceUntil runs frames until cond holds, failing after limit.
func advanceUntil(t *testing.T, m *Manager, limit time.Duration, cond func() bool) {
	t.Helper()
	for elapsed := time.Duration(0); !cond(); elapsed += frame {
		require.Less(t, elapsed, limit, "condition not met within %s", limit)
		m.Advance(frame)
	}
}

func upload() *model.Notification {
	return model.NewProgress("Uploading to BSS...", "Uploaded to BSS!", timeToComplete)
}

func download() *model.Notification {
	return model.NewProgress("Downloading Haitai...", "Downloaded Haitai!", timeToComplete)
}

func hello() *model.Notification {
	return model.NewSimple("Welcome to osu!. Enjoy your stay!")
}

func TestNewManager(t *testing.T) {
	m := NewManager(nil, nil)

	assert.Equal(t, Hidden, m.Visibility().Value())
	assert.Equal(t, 0, m.UnreadCount().Value())
	assert.Equal(t, 0, m.ToastCount().Value())
	assert.Empty(t, m.Tray())
	assert.Empty(t, m.Toasts())
}

func TestManager_DismissWithoutActivation(t *testing.T) {
	m := newTestManager(t)

	activated := false
	n := hello()
	n.Activated = func() { activated = true }
	require.NoError(t, m.Post(n))

	require.NoError(t, m.Dismiss(n, false))

	assert.True(t, n.Closed())
	assert.False(t, activated)
	assert.False(t, m.Tracked(n))
	assert.Equal(t, 0, m.ToastCount().Value())
	assert.Equal(t, 0, m.UnreadCount().Value())
}

func TestManager_Activate(t *testing.T) {
	m := newTestManager(t)

	activations := 0
	n := hello()
	n.Activated = func() { activations++ }
	require.NoError(t, m.Post(n))

	require.NoError(t, m.Dismiss(n, true))
	// Second dismissal is a no-op
	require.NoError(t, m.Dismiss(n, true))

	assert.True(t, n.Closed())
	assert.Equal(t, 1, activations)
}

func TestManager_ActivationCallbackMayDismiss(t *testing.T) {
	m := newTestManager(t)

	closedEvents := 0
	m.OnClosed(func(*model.Notification) { closedEvents++ })

	n := hello()
	n.Activated = func() { require.NoError(t, m.Dismiss(n, false)) }
	require.NoError(t, m.Post(n))

	require.NoError(t, m.Dismiss(n, true))
	assert.True(t, n.Closed())
	assert.Equal(t, 1, closedEvents)
}

func TestManager_ActivationCallbackRunsOnceWhenReactivated(t *testing.T) {
	m := newTestManager(t)

	calls := 0
	n := hello()
	n.Activated = func() {
		calls++
		require.NoError(t, m.Dismiss(n, true))
	}
	require.NoError(t, m.Post(n))

	require.NoError(t, m.Dismiss(n, true))
	assert.Equal(t, 1, calls)
	assert.True(t, n.Closed())
	assert.Empty(t, m.Toasts())
}

func TestManager_DismissUnknown(t *testing.T) {
	m := newTestManager(t)

	err := m.Dismiss(hello(), false)
	assert.ErrorIs(t, err, ErrUnknownNotification)

	err = m.Dismiss(nil, true)
	assert.ErrorIs(t, err, ErrUnknownNotification)
}

func TestManager_PostDuplicate(t *testing.T) {
	m := newTestManager(t)

	n := hello()
	require.NoError(t, m.Post(n))
	assert.ErrorIs(t, m.Post(n), ErrDuplicatePost)
	assert.Equal(t, 1, m.UnreadCount().Value())

	// A closed notification is never shown again
	require.NoError(t, m.Dismiss(n, false))
	assert.ErrorIs(t, m.Post(n), ErrDuplicatePost)
	assert.False(t, m.Tracked(n))
}

func TestManager_PostInvalid(t *testing.T) {
	m := newTestManager(t)

	assert.ErrorIs(t, m.Post(model.NewSimple("")), model.ErrEmptyText)
	assert.ErrorIs(t, m.Post(nil), ErrUnknownNotification)

	done := upload()
	done.Progress.State = model.ProgressCompleted
	assert.ErrorIs(t, m.Post(done), ErrInvalidTransition)

	negative := upload()
	negative.Progress.Value = -1
	assert.ErrorIs(t, m.Post(negative), model.ErrInvalidProgress)
	assert.False(t, m.Tracked(negative))
	assert.Equal(t, 0, m.UnreadCount().Value())
}

func TestManager_PresenceOfBackgroundNotification(t *testing.T) {
	m := newTestManager(t)

	toasted := 0
	m.OnToast(func(*model.Notification) { toasted++ })

	n := model.NewBackground("Welcome to osu!. Enjoy your stay!")
	require.NoError(t, m.Post(n))

	placement, ok := m.PlacementOf(n)
	require.True(t, ok)
	assert.Equal(t, PlacementTray, placement)
	assert.Equal(t, 0, m.ToastCount().Value())
	assert.Equal(t, 0, toasted)
	assert.Equal(t, Hidden, m.Visibility().Value())
	assert.Equal(t, 1, m.UnreadCount().Value())

	// Activating it closes it without opening anything
	require.NoError(t, m.Dismiss(n, true))
	assert.Equal(t, Hidden, m.Visibility().Value())
	assert.Equal(t, 0, m.UnreadCount().Value())
}

func TestManager_CompleteProgress(t *testing.T) {
	m := newTestManager(t)

	n := upload()
	require.NoError(t, m.Post(n))
	assert.Equal(t, 1, m.ToastCount().Value())

	advanceUntil(t, m, 10*time.Second, func() bool { return n.State() == model.ProgressCompleted })

	assert.True(t, n.Closed())
	assert.Equal(t, 1, m.ToastCount().Value(), "completion toast shown")
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Uploaded to BSS!", toasts[0].Text)
	assert.NotEqual(t, n.ID, toasts[0].ID)

	advanceUntil(t, m, 10*time.Second, func() bool { return m.ToastCount().Value() == 0 })
	require.Len(t, m.Tray(), 1)
	assert.Equal(t, "Uploaded to BSS!", m.Tray()[0].Text)
}

func TestManager_CompleteProgressSlow(t *testing.T) {
	m := newTestManager(t)

	n := model.NewProgress("Uploading to BSS...", "Uploaded to BSS!", 2*timeToComplete)
	require.NoError(t, m.Post(n))

	advanceUntil(t, m, 20*time.Second, func() bool { return n.State() == model.ProgressCompleted })

	// The task toast was forwarded long ago; only the completion toast remains
	assert.Equal(t, 1, m.ToastCount().Value())
}

func TestManager_TwoTasksCompleteTogether(t *testing.T) {
	m := newTestManager(t)

	var completionToasts []string
	m.OnToast(func(n *model.Notification) {
		if !n.IsProgress() {
			completionToasts = append(completionToasts, n.Text)
		}
	})

	up, down := upload(), download()
	require.NoError(t, m.Post(up))
	require.NoError(t, m.Post(down))
	assert.Equal(t, 2, m.ToastCount().Value())

	advanceFor(m, timeToComplete)

	assert.Equal(t, model.ProgressCompleted, up.State())
	assert.Equal(t, model.ProgressCompleted, down.State())
	assert.Equal(t, []string{"Uploaded to BSS!", "Downloaded Haitai!"}, completionToasts)
	assert.Equal(t, 2, m.ToastCount().Value())
	assert.Empty(t, m.Progressing())

	advanceFor(m, config.DefaultToastDuration)
	assert.Equal(t, 0, m.ToastCount().Value())
	assert.Len(t, m.Tray(), 2)
	assert.Equal(t, 2, m.UnreadCount().Value())
}

func TestManager_TasksCompleteOnTimeAtAnyTickRate(t *testing.T) {
	for _, tick := range []time.Duration{time.Millisecond, 16 * time.Millisecond, 7 * time.Millisecond} {
		t.Run(tick.String(), func(t *testing.T) {
			m := newTestManager(t)
			up, down := upload(), download()
			require.NoError(t, m.Post(up))
			require.NoError(t, m.Post(down))

			// Stop one tick short of the deadline
			var elapsed time.Duration
			for elapsed+tick < timeToComplete {
				m.Advance(tick)
				elapsed += tick
			}
			assert.Equal(t, model.ProgressActive, up.State())
			assert.Less(t, up.Progress.Value, 1.0)

			m.Advance(tick)
			assert.Equal(t, model.ProgressCompleted, up.State())
			assert.Equal(t, model.ProgressCompleted, down.State())
			assert.Equal(t, 1.0, up.Progress.Value)
			assert.Empty(t, m.Progressing())
			assert.Equal(t, 2, m.ToastCount().Value(), "one completion toast each")
		})
	}
}

func TestManager_ProgressMonotonicAndReachesOne(t *testing.T) {
	m := newTestManager(t)

	n := model.NewProgress("Uploading", "Uploaded", 1700*time.Millisecond)
	require.NoError(t, m.Post(n))

	last := 0.0
	for i := 0; i < 1000 && n.State() != model.ProgressCompleted; i++ {
		m.Advance(16 * time.Millisecond)
		assert.GreaterOrEqual(t, n.Progress.Value, last)
		assert.LessOrEqual(t, n.Progress.Value, 1.0)
		last = n.Progress.Value
	}

	require.Equal(t, model.ProgressCompleted, n.State())
	assert.Equal(t, 1.0, n.Progress.Value)
}

func TestManager_AtMostThreeActive(t *testing.T) {
	m := newTestManager(t)

	var tasks []*model.Notification
	for i := 0; i < 7; i++ {
		n := upload()
		tasks = append(tasks, n)
		require.NoError(t, m.Post(n))
	}

	for i := 0; i < 40; i++ {
		m.Advance(frame)
		assert.LessOrEqual(t, m.ActiveCount(), 3)
	}

	for _, n := range tasks {
		assert.Equal(t, model.ProgressCompleted, n.State())
	}
}

func TestManager_AdmissionIsFIFO(t *testing.T) {
	m := newTestManager(t)

	var tasks []*model.Notification
	for i := 0; i < 5; i++ {
		n := upload()
		tasks = append(tasks, n)
		require.NoError(t, m.Post(n))
	}

	m.Advance(frame)
	for i, n := range tasks {
		if i < 3 {
			assert.Equal(t, model.ProgressActive, n.State(), "task %d", i)
		} else {
			assert.Equal(t, model.ProgressQueued, n.State(), "task %d", i)
		}
	}

	// Cancelling the first frees a slot for the fourth, not the fifth
	require.NoError(t, m.SetState(tasks[0], model.ProgressCancelled))
	m.Advance(frame)
	assert.Equal(t, model.ProgressActive, tasks[3].State())
	assert.Equal(t, model.ProgressQueued, tasks[4].State())
}

func TestManager_CancelProgress(t *testing.T) {
	m := newTestManager(t)

	n := upload()
	require.NoError(t, m.Post(n))
	advanceFor(m, 3*frame)
	require.Equal(t, model.ProgressActive, n.State())
	progress := n.Progress.Value

	require.NoError(t, m.SetState(n, model.ProgressCancelled))
	assert.Equal(t, model.ProgressCancelled, n.State())
	assert.Len(t, m.Progressing(), 1, "removal happens on the next tick")

	m.Advance(frame)
	assert.Empty(t, m.Progressing())
	assert.Equal(t, 0, m.ActiveCount())
	assert.Equal(t, progress, n.Progress.Value)

	// Still visible until the user dismisses it
	assert.True(t, m.Tracked(n))
	assert.False(t, n.Closed())
}

func TestManager_CancelQueued(t *testing.T) {
	m := newTestManager(t)

	n := upload()
	require.NoError(t, m.Post(n))
	require.NoError(t, m.SetState(n, model.ProgressCancelled))

	m.Advance(frame)
	assert.Equal(t, model.ProgressCancelled, n.State())
	assert.Empty(t, m.Progressing())
}

func TestManager_SetStateRejected(t *testing.T) {
	m := newTestManager(t)

	n := upload()
	require.NoError(t, m.Post(n))

	tests := []struct {
		name  string
		state model.ProgressState
	}{
		{"to active", model.ProgressActive},
		{"to completed", model.ProgressCompleted},
		{"to queued", model.ProgressQueued},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.SetState(n, tt.state)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, model.ProgressQueued, n.State())
		})
	}

	require.NoError(t, m.SetState(n, model.ProgressCancelled))
	assert.ErrorIs(t, m.SetState(n, model.ProgressCancelled), ErrInvalidTransition)

	assert.ErrorIs(t, m.SetState(upload(), model.ProgressCancelled), ErrUnknownNotification)

	plain := hello()
	require.NoError(t, m.Post(plain))
	assert.ErrorIs(t, m.SetState(plain, model.ProgressCancelled), ErrInvalidTransition)
}

func TestManager_DismissCancelsRunningTask(t *testing.T) {
	m := newTestManager(t)

	n := upload()
	require.NoError(t, m.Post(n))
	m.Advance(frame)

	require.NoError(t, m.Dismiss(n, false))
	assert.Equal(t, model.ProgressCancelled, n.State())

	m.Advance(frame)
	assert.Empty(t, m.Progressing())
	assert.Equal(t, 0, m.ToastCount().Value())
}

func TestManager_ExternallyDrivenProgress(t *testing.T) {
	m := newTestManager(t)

	n := model.NewProgress("Importing", "Imported", 0)
	require.NoError(t, m.Post(n))

	assert.ErrorIs(t, m.SetProgress(n, 0.5), ErrInvalidTransition, "queued tasks cannot be driven")

	m.Advance(frame)
	require.Equal(t, model.ProgressActive, n.State())
	assert.Equal(t, 0.0, n.Progress.Value, "no automatic advance without a duration")

	require.NoError(t, m.SetProgress(n, 0.4))
	assert.ErrorIs(t, m.SetProgress(n, 0.3), ErrInvalidTransition)
	assert.Equal(t, 0.4, n.Progress.Value)

	require.NoError(t, m.SetProgress(n, 1.5))
	assert.Equal(t, 1.0, n.Progress.Value)
	assert.Equal(t, model.ProgressActive, n.State())

	m.Advance(frame)
	assert.Equal(t, model.ProgressCompleted, n.State())
	assert.True(t, n.Closed())
}

func TestManager_BasicFlow(t *testing.T) {
	m := newTestManager(t)

	m.Show()
	require.NoError(t, m.Post(hello()))
	require.NoError(t, m.Post(model.NewSimple("You are amazing")))
	require.NoError(t, m.Post(upload()))
	require.NoError(t, m.Post(download()))

	assert.Len(t, m.Progressing(), 2)
	assert.Equal(t, 0, m.UnreadCount().Value(), "posted while open, never unread")
	assert.Equal(t, 0, m.ToastCount().Value())

	m.Hide()

	for i := 0; i < 30; i++ {
		require.NoError(t, m.Post(model.NewSimple("Spam incoming!!")))
	}

	advanceUntil(t, m, 10*time.Second, func() bool { return len(m.Progressing()) == 0 })

	require.NoError(t, m.Post(upload()))
	assert.Len(t, m.Progressing(), 1)

	assert.Equal(t, 33, m.UnreadCount().Value())

	advanceUntil(t, m, 10*time.Second, func() bool { return len(m.Progressing()) == 0 })
}

func TestManager_ImportantWhileClosed(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Post(hello()))

	assert.Equal(t, 1, m.ToastCount().Value())
	assert.Equal(t, Hidden, m.Visibility().Value())
	assert.Equal(t, 1, m.UnreadCount().Value())

	require.NoError(t, m.Post(upload()))
	require.NoError(t, m.Post(download()))

	assert.Len(t, m.Progressing(), 2)
	assert.Equal(t, 3, m.UnreadCount().Value())
}

func TestManager_ImportantAndUnimportantWhileClosed(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Post(hello()))
	require.NoError(t, m.Post(model.NewBackground("quiet")))

	assert.Equal(t, 2, m.UnreadCount().Value())
	assert.Equal(t, 1, m.ToastCount().Value())
	assert.Equal(t, Hidden, m.Visibility().Value())
}

func TestManager_UnimportantWhileClosed(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Post(model.NewBackground("Welcome to osu!. Enjoy your stay!")))
	assert.Equal(t, Hidden, m.Visibility().Value())
	assert.Equal(t, 1, m.UnreadCount().Value())

	task := model.NewBackgroundProgress("Uploading to BSS...", "Uploaded to BSS!", timeToComplete)
	require.NoError(t, m.Post(task))
	assert.Len(t, m.Progressing(), 1)
	assert.Equal(t, 0, m.ToastCount().Value())

	advanceUntil(t, m, 10*time.Second, func() bool { return len(m.Progressing()) == 0 })

	assert.Equal(t, 2, m.UnreadCount().Value())
	assert.Equal(t, 0, m.ToastCount().Value(), "background completion stays silent")

	require.NoError(t, m.Post(hello()))
	assert.Equal(t, 3, m.UnreadCount().Value())
}

func TestManager_UnreadEqualsTrackedWhileHidden(t *testing.T) {
	m := newTestManager(t)
	rng := rand.New(rand.NewSource(42))

	var posted []*model.Notification
	for i := 0; i < 50; i++ {
		var n *model.Notification
		switch rng.Intn(3) {
		case 0:
			n = hello()
		case 1:
			n = model.NewBackground("bg")
		case 2:
			n = model.NewError("err")
		}
		require.NoError(t, m.Post(n))
		posted = append(posted, n)

		if rng.Intn(4) == 0 {
			victim := posted[rng.Intn(len(posted))]
			require.NoError(t, m.Dismiss(victim, rng.Intn(2) == 0))
		}
		if rng.Intn(3) == 0 {
			m.Advance(time.Second)
		}

		open := 0
		for _, p := range posted {
			if !p.Closed() {
				open++
			}
		}
		assert.Equal(t, open, m.UnreadCount().Value())
		assert.Equal(t, open, len(m.Tray())+len(m.Toasts()))
	}
}

func TestManager_Error(t *testing.T) {
	m := newTestManager(t)

	m.Show()
	require.NoError(t, m.Post(model.NewError("Rut roh!. Something went wrong!")))

	assert.Equal(t, Visible, m.Visibility().Value())
	assert.Equal(t, 0, m.ToastCount().Value())
	require.Len(t, m.Tray(), 1)
	assert.Equal(t, model.KindError, m.Tray()[0].Kind)
}

func TestManager_ErrorWhileClosedCountsUnread(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Post(model.NewError("Rut roh!. Something went wrong!")))
	assert.Equal(t, 1, m.UnreadCount().Value())
	assert.Equal(t, 1, m.ToastCount().Value())
}

func TestManager_ToastCap(t *testing.T) {
	m := newTestManager(t)

	var notifications []*model.Notification
	for i := 0; i < 11; i++ {
		n := hello()
		notifications = append(notifications, n)
		require.NoError(t, m.Post(n))
	}

	assert.Equal(t, config.DefaultMaxToasts, m.ToastCount().Value())
	assert.Equal(t, 11, m.UnreadCount().Value())

	placement, ok := m.PlacementOf(notifications[10])
	require.True(t, ok)
	assert.Equal(t, PlacementTray, placement)
}

func TestManager_ToastForwardKeepsUnread(t *testing.T) {
	m := newTestManager(t)

	n := hello()
	require.NoError(t, m.Post(n))

	advanceFor(m, config.DefaultToastDuration-frame)
	placement, _ := m.PlacementOf(n)
	assert.Equal(t, PlacementToast, placement)

	m.Advance(frame)
	placement, _ = m.PlacementOf(n)
	assert.Equal(t, PlacementTray, placement)
	assert.Equal(t, 0, m.ToastCount().Value())
	assert.Equal(t, 1, m.UnreadCount().Value())
}

func TestManager_OpeningMarksSeen(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Post(hello()))
	require.NoError(t, m.Post(model.NewBackground("bg")))
	require.Equal(t, 1, m.ToastCount().Value())

	m.Show()
	assert.Equal(t, 0, m.UnreadCount().Value())
	assert.Equal(t, 0, m.ToastCount().Value(), "toasts move into the open tray")
	assert.Len(t, m.Tray(), 2)

	m.Hide()
	require.NoError(t, m.Post(hello()))
	assert.Equal(t, 1, m.UnreadCount().Value(), "only the new one is unread")

	m.Toggle()
	assert.Equal(t, Visible, m.Visibility().Value())
	assert.Equal(t, 0, m.UnreadCount().Value())
}

func TestManager_ObservableCounts(t *testing.T) {
	m := newTestManager(t)

	var unread, toasts []int
	var visibility []Visibility
	m.UnreadCount().Subscribe(func(_, v int) { unread = append(unread, v) })
	m.ToastCount().Subscribe(func(_, v int) { toasts = append(toasts, v) })
	unsubscribe := m.Visibility().Subscribe(func(_, v Visibility) { visibility = append(visibility, v) })

	n := hello()
	require.NoError(t, m.Post(n))
	require.NoError(t, m.Dismiss(n, false))
	m.Show()
	unsubscribe()
	m.Hide()

	assert.Equal(t, []int{1, 0}, unread)
	assert.Equal(t, []int{1, 0}, toasts)
	assert.Equal(t, []Visibility{Visible}, visibility)
}

func TestManager_ClearTray(t *testing.T) {
	m := newTestManager(t)

	activated := false
	for i := 0; i < 3; i++ {
		n := model.NewBackground("bg")
		n.Activated = func() { activated = true }
		require.NoError(t, m.Post(n))
	}
	require.NoError(t, m.Post(hello()))

	assert.Equal(t, 3, m.ClearTray())
	assert.Empty(t, m.Tray())
	assert.Equal(t, 1, m.ToastCount().Value())
	assert.False(t, activated)
}

func TestManager_Spam(t *testing.T) {
	m := newTestManager(t)
	rng := rand.New(rand.NewSource(7))

	m.Show()
	for i := 0; i < 10; i++ {
		var n *model.Notification
		switch rng.Intn(5) {
		case 0:
			n = hello()
		case 1:
			n = model.NewSimple("You are amazing")
		case 2:
			n = upload()
		case 3:
			n = download()
		case 4:
			n = model.NewError("Rut roh!. Something went wrong!")
		}
		require.NoError(t, m.Post(n))
		m.Advance(frame)
		assert.LessOrEqual(t, m.ActiveCount(), 3)
	}

	assert.Equal(t, 0, m.ToastCount().Value())
	assert.Equal(t, 0, m.UnreadCount().Value())
}

func TestManager_TrayNewestFirst(t *testing.T) {
	m := newTestManager(t)
	m.Show()

	first, second := hello(), model.NewSimple("second")
	require.NoError(t, m.Post(first))
	require.NoError(t, m.Post(second))

	tray := m.Tray()
	require.Len(t, tray, 2)
	assert.Equal(t, second.ID, tray[0].ID)
	assert.Equal(t, first.ID, tray[1].ID)
}

func TestManager_Snapshot(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Post(hello()))
	require.NoError(t, m.Post(model.NewBackground("bg")))
	task := upload()
	require.NoError(t, m.Post(task))
	m.Advance(frame)

	snap := m.Snapshot()
	assert.Equal(t, "hidden", snap.Visibility)
	assert.Equal(t, 3, snap.UnreadCount)
	assert.Equal(t, 2, snap.ToastCount)
	assert.Equal(t, 1, snap.ActiveCount)
	require.Len(t, snap.Toasts, 2)
	assert.Equal(t, config.DefaultToastDuration-frame, snap.Toasts[0].ToastRemaining)
	require.Len(t, snap.Tray, 1)
	assert.Equal(t, "background", snap.Tray[0].Kind)
	assert.Zero(t, snap.Tray[0].ToastRemaining)
	require.Len(t, snap.Progressing, 1)
	assert.Equal(t, "active", snap.Progressing[0].State)
	assert.InDelta(t, 0.125, snap.Progressing[0].Progress, 1e-9)
	assert.False(t, snap.Progressing[0].Read)
}

func TestManager_NegativeDeltaIgnored(t *testing.T) {
	m := newTestManager(t)

	n := upload()
	require.NoError(t, m.Post(n))
	m.Advance(frame)
	value := n.Progress.Value

	m.Advance(-time.Second)
	assert.Equal(t, value, n.Progress.Value)
	assert.Equal(t, 1, m.ToastCount().Value())
}

func TestManager_Find(t *testing.T) {
	m := newTestManager(t)
	n := hello()
	require.NoError(t, m.Post(n))

	found, ok := m.Find(n.ID)
	require.True(t, ok)
	assert.Same(t, n, found)

	require.NoError(t, m.Dismiss(n, false))
	_, ok = m.Find(n.ID)
	assert.False(t, ok)
}
