package tick

import (
	"slices"
	"time"
)

// Manual is a deterministic Runner driven by Advance. Nothing runs until the
// caller advances virtual time, which makes it the runner of choice for tests
// and for hosts that already own a frame loop.
type Manual struct {
	now     time.Duration
	seq     uint64
	entries []*manualEntry
}

type manualEntry struct {
	at        time.Duration
	seq       uint64
	every     time.Duration
	fn        func()
	cancelled bool
}

func (e *manualEntry) Cancel() {
	e.cancelled = true
}

// NewManual creates a manual runner at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) schedule(d, every time.Duration, fn func()) *manualEntry {
	if d < 0 {
		d = 0
	}
	m.seq++
	e := &manualEntry{at: m.now + d, seq: m.seq, every: every, fn: fn}
	m.entries = append(m.entries, e)
	return e
}

func (m *Manual) After(d time.Duration, fn func()) Task {
	return m.schedule(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Task {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.schedule(d, d, fn)
}

func (m *Manual) Defer(fn func()) Task {
	return m.schedule(0, 0, fn)
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of scheduled callbacks that have not run or been cancelled.
func (m *Manual) Pending() int {
	n := 0
	for _, e := range m.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// Flush runs everything due at the current virtual time.
func (m *Manual) Flush() int {
	return m.Advance(0)
}

// Advance moves virtual time forward by d, running due callbacks in order.
// Callbacks scheduled while advancing run too if they fall due before the
// new time. It returns the number of callbacks executed.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	ran := 0

	for {
		m.entries = slices.DeleteFunc(m.entries, func(e *manualEntry) bool { return e.cancelled })

		next := m.next(target)
		if next == nil {
			break
		}

		m.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			next.cancelled = true
		}

		next.fn()
		ran++
	}

	m.now = target
	return ran
}

func (m *Manual) next(target time.Duration) *manualEntry {
	var best *manualEntry
	for _, e := range m.entries {
		if e.cancelled || e.at > target {
			continue
		}
		if best == nil || e.at < best.at || (e.at == best.at && e.seq < best.seq) {
			best = e
		}
	}
	return best
}
