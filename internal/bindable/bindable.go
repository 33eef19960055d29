// Package bindable provides observable values and events with explicit
// subscription handles.
//
// Values are not safe for concurrent use. They are meant to be driven from a
// single update loop, the same way the overlay and the terminal scene are.
package bindable

// ChangeFunc is called with the previous and the new value.
type ChangeFunc[T any] func(old, new T)

// Observable is a read-only view of a Bindable.
type Observable[T comparable] interface {
	Value() T
	Subscribe(fn ChangeFunc[T]) (unsubscribe func())
	BindValueChanged(fn ChangeFunc[T], runOnceImmediately bool) (unsubscribe func())
}

type subscription[T any] struct {
	id int
	fn T
}

// subscribers keeps callbacks in registration order.
type subscribers[T any] struct {
	nextID int
	subs   []subscription[T]
}

func (s *subscribers[T]) add(fn T) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription[T]{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				// Copy so an in-flight dispatch keeps its own slice
				next := make([]subscription[T], 0, len(s.subs)-1)
				next = append(next, s.subs[:i]...)
				s.subs = append(next, s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *subscribers[T]) snapshot() []subscription[T] {
	return s.subs
}

func (s *subscribers[T]) len() int {
	return len(s.subs)
}

// Bindable holds a value and notifies subscribers when it changes.
type Bindable[T comparable] struct {
	value T
	subs  subscribers[ChangeFunc[T]]
}

// New creates a Bindable with an initial value.
func New[T comparable](initial T) *Bindable[T] {
	return &Bindable[T]{value: initial}
}

// Value returns the current value.
func (b *Bindable[T]) Value() T {
	return b.value
}

// Set updates the value. Subscribers are only notified if it changed.
func (b *Bindable[T]) Set(v T) {
	if v == b.value {
		return
	}
	old := b.value
	b.value = v
	for _, sub := range b.subs.snapshot() {
		sub.fn(old, v)
	}
}

// Subscribe registers fn for future changes.
func (b *Bindable[T]) Subscribe(fn ChangeFunc[T]) func() {
	return b.subs.add(fn)
}

// BindValueChanged registers fn and optionally calls it once with the current value.
func (b *Bindable[T]) BindValueChanged(fn ChangeFunc[T], runOnceImmediately bool) func() {
	unsubscribe := b.subs.add(fn)
	if runOnceImmediately {
		fn(b.value, b.value)
	}
	return unsubscribe
}

// Subscribers returns the number of registered callbacks.
func (b *Bindable[T]) Subscribers() int {
	return b.subs.len()
}

// Event dispatches values to subscribers without retaining state.
type Event[T any] struct {
	subs subscribers[func(T)]
}

// Subscribe registers fn for future emissions.
func (e *Event[T]) Subscribe(fn func(T)) func() {
	return e.subs.add(fn)
}

// Emit calls every subscriber with v.
func (e *Event[T]) Emit(v T) {
	for _, sub := range e.subs.snapshot() {
		sub.fn(v)
	}
}

// Subscribers returns the number of registered callbacks.
func (e *Event[T]) Subscribers() int {
	return e.subs.len()
}
