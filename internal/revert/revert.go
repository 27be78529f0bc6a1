// Package revert provides a value that returns to its initial state after
// a delay, such as a "Copied!" or "New item!" status that clears itself.
package revert

import (
	"sync"
	"time"
)

// Value holds a current value that reverts to its initial value once the
// configured delay has passed without another Set.
type Value[T comparable] struct {
	mu       sync.Mutex
	initial  T
	current  T
	delay    time.Duration
	timer    *time.Timer
	onRevert func(T)
}

// Option configures a Value.
type Option[T comparable] func(*Value[T])

// WithOnRevert registers a callback invoked after the value has reverted.
// It runs on the timer goroutine.
func WithOnRevert[T comparable](fn func(T)) Option[T] {
	return func(v *Value[T]) {
		v.onRevert = fn
	}
}

// New creates a Value that starts at initial.
func New[T comparable](initial T, delay time.Duration, opts ...Option[T]) *Value[T] {
	v := &Value[T]{
		initial: initial,
		current: initial,
		delay:   delay,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set stores x. Any pending revert is cancelled; if x differs from the
// initial value a new revert is scheduled.
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopLocked()
	v.current = x
	if x == v.initial {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(v.delay, func() {
		v.mu.Lock()
		if v.timer != t {
			v.mu.Unlock()
			return
		}
		v.current = v.initial
		v.timer = nil
		cb := v.onRevert
		initial := v.initial
		v.mu.Unlock()

		if cb != nil {
			cb(initial)
		}
	})
	v.timer = t
}

// Pending reports whether a revert is scheduled.
func (v *Value[T]) Pending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.timer != nil
}

// Stop cancels a pending revert and keeps the current value.
func (v *Value[T]) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLocked()
}

func (v *Value[T]) stopLocked() {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}
