package tick

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Loop is the production Runner. Timers fire on their own goroutines but only
// enqueue work; Run executes the queue serially.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Dispatch enqueues fn. It is safe to call from any goroutine.
// Work dispatched after Run has returned is dropped.
func (l *Loop) Dispatch(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Run executes queued work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.doneOnce.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// RunPending executes the work already queued without waiting for more and
// returns how many callbacks ran. Hosts that own a frame loop, such as SDL
// which must render from the main thread, call it once per frame instead of Run.
func (l *Loop) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close marks the loop finished so pending and future Dispatch calls return.
func (l *Loop) Close() {
	l.doneOnce.Do(func() { close(l.done) })
}

type loopTask struct {
	cancelled *atomic.Bool
	mu        sync.Mutex
	timer     *time.Timer
}

func newLoopTask() *loopTask {
	return &loopTask{cancelled: atomic.NewBool(false)}
}

func (t *loopTask) setTimer(timer *time.Timer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = timer
}

func (t *loopTask) Cancel() {
	t.cancelled.Store(true)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (l *Loop) After(d time.Duration, fn func()) Task {
	t := newLoopTask()
	t.setTimer(time.AfterFunc(d, func() {
		l.Dispatch(func() {
			if t.cancelled.Load() {
				return
			}
			t.cancelled.Store(true)
			fn()
		})
	}))
	return t
}

func (l *Loop) Every(d time.Duration, fn func()) Task {
	t := newLoopTask()

	var arm func()
	arm = func() {
		t.setTimer(time.AfterFunc(d, func() {
			l.Dispatch(func() {
				if t.cancelled.Load() {
					return
				}
				fn()
				if !t.cancelled.Load() {
					arm()
				}
			})
		}))
	}
	arm()

	return t
}

func (l *Loop) Defer(fn func()) Task {
	return l.After(0, fn)
}
