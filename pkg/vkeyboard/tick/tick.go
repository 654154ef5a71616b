// Package tick runs timed callbacks on a single goroutine.
//
// Every callback scheduled through a Runner executes on the runner's goroutine,
// one at a time. Cancelling a Task from that goroutine guarantees its callback
// will not run afterwards, even if the underlying timer already fired.
package tick

import (
	"time"

	"go.uber.org/atomic"
)

// Task is a handle to a scheduled callback.
// Cancelling a task that already ran or was already cancelled is a no-op.
type Task interface {
	Cancel()
}

// Runner schedules callbacks.
type Runner interface {
	// After runs fn once after d.
	After(d time.Duration, fn func()) Task
	// Every runs fn every d until the task is cancelled.
	Every(d time.Duration, fn func()) Task
	// Defer runs fn on the next turn of the runner.
	Defer(fn func()) Task
}

const (
	signalPending int32 = iota
	signalFired
	signalCancelled
)

// Signal is a one-shot completion guard. Hosts call Fire when an asynchronous
// operation completes; the wrapped callback runs only if the signal has not been
// cancelled first.
type Signal struct {
	fn    func()
	state *atomic.Int32
}

// NewSignal wraps fn.
func NewSignal(fn func()) *Signal {
	return &Signal{fn: fn, state: atomic.NewInt32(signalPending)}
}

// Fire runs the callback if the signal is still pending and reports whether it ran.
func (s *Signal) Fire() bool {
	if !s.state.CompareAndSwap(signalPending, signalFired) {
		return false
	}
	if s.fn != nil {
		s.fn()
	}
	return true
}

// Cancel prevents the callback from ever running.
func (s *Signal) Cancel() {
	s.state.CompareAndSwap(signalPending, signalCancelled)
}

// Stop is Cancel that reports whether the signal was still pending.
func (s *Signal) Stop() bool {
	return s.state.CompareAndSwap(signalPending, signalCancelled)
}

// Pending reports whether the signal has neither fired nor been cancelled.
func (s *Signal) Pending() bool {
	return s.state.Load() == signalPending
}
