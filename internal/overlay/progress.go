package overlay

import (
	"time"

	"github.com/jmylchreest/rhythmui/internal/model"
)

// progressQueue is the FIFO set of progress notifications that have not
// finished yet. It admits at most maxActive of them at a time.
type progressQueue struct {
	items     []*model.Notification
	maxActive int
}

func newProgressQueue(maxActive int) *progressQueue {
	return &progressQueue{maxActive: maxActive}
}

func (q *progressQueue) enqueue(n *model.Notification) {
	q.items = append(q.items, n)
}

// advance runs one tick: drops finished tasks, promotes queued ones into free
// slots in FIFO order and moves active ones forward by dt. Returns the
// tasks that completed during this tick.
func (q *progressQueue) advance(dt time.Duration) []*model.Notification {
	q.prune()

	active := q.activeCount()
	for _, n := range q.items {
		if active >= q.maxActive {
			break
		}
		if n.Progress.State == model.ProgressQueued {
			n.Progress.State = model.ProgressActive
			active++
		}
	}

	var completed []*model.Notification
	for _, n := range q.items {
		p := n.Progress
		if p.State != model.ProgressActive {
			continue
		}
		if p.TimeToComplete > 0 {
			// Derived from the total active time so completion lands on
			// TimeToComplete exactly, whatever the tick size.
			p.Elapsed += dt
			p.Value = max(p.Value, min(1, float64(p.Elapsed)/float64(p.TimeToComplete)))
		}
		if p.Value >= 1 || (p.TimeToComplete > 0 && p.Elapsed >= p.TimeToComplete) {
			p.Value = 1
			p.State = model.ProgressCompleted
			completed = append(completed, n)
		}
	}

	if len(completed) > 0 {
		q.prune()
	}
	return completed
}

// prune removes completed and cancelled tasks.
func (q *progressQueue) prune() {
	alive := q.items[:0]
	for _, n := range q.items {
		if !n.Progress.State.Terminal() {
			alive = append(alive, n)
		}
	}
	// Clear the tail so dropped notifications can be collected
	for i := len(alive); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = alive
}

func (q *progressQueue) activeCount() int {
	count := 0
	for _, n := range q.items {
		if n.Progress.State == model.ProgressActive {
			count++
		}
	}
	return count
}

// notifications returns the tracked tasks in queue order.
func (q *progressQueue) notifications() []*model.Notification {
	out := make([]*model.Notification, len(q.items))
	copy(out, q.items)
	return out
}
