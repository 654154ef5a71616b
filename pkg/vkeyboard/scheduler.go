package vkeyboard

import (
	"log/slog"
	"math"
	"time"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/internal"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
)

const (
	DefaultScrollInterval  = 25 * time.Millisecond
	DefaultScrollStep      = 0.3
	DefaultScrollThreshold = 5.0
	DefaultHideDelay       = 100 * time.Millisecond
)

// AnimationOptions tunes the scroll and hide timings.
type AnimationOptions struct {
	ScrollInterval time.Duration
	// ScrollStep is the fraction of the remaining distance covered per tick.
	ScrollStep float64
	// ScrollThreshold is the distance in pixels at which scrolling stops.
	ScrollThreshold float64
	HideDelay       time.Duration
}

func DefaultAnimationOptions() AnimationOptions {
	return AnimationOptions{
		ScrollInterval:  DefaultScrollInterval,
		ScrollStep:      DefaultScrollStep,
		ScrollThreshold: DefaultScrollThreshold,
		HideDelay:       DefaultHideDelay,
	}
}

func (o AnimationOptions) withDefaults() AnimationOptions {
	d := DefaultAnimationOptions()
	if o.ScrollInterval <= 0 {
		o.ScrollInterval = d.ScrollInterval
	}
	if o.ScrollStep <= 0 || o.ScrollStep > 1 {
		o.ScrollStep = d.ScrollStep
	}
	if o.ScrollThreshold <= 0 {
		o.ScrollThreshold = d.ScrollThreshold
	}
	if o.HideDelay < 0 {
		o.HideDelay = d.HideDelay
	}
	return o
}

// Lifecycle receives the overlay transitions as they complete.
type Lifecycle struct {
	// Shown runs once the overlay finished mounting for sess.
	Shown func(sess *Session)
	// Removed runs once the overlay finished unmounting.
	Removed func()
}

type phase int

const (
	phaseRemoved phase = iota
	phaseEntering
	phaseMounted
	phaseLeaving
)

// slot holds at most one pending task.
type slot struct {
	task tick.Task
}

func (s *slot) stop() {
	if s.task != nil {
		s.task.Cancel()
		s.task = nil
	}
}

func (s *slot) set(t tick.Task) {
	s.stop()
	s.task = t
}

// transitionTask ties a host transition to its completion signal.
//
// Cancelling it does not drop the completion: the host jumps the animation to
// its end state and settleAtEnd then records that state, so a cancelled mount
// still leaves the overlay shown and a cancelled unmount still removes it.
// The host's own done callback is never run after a cancel.
type transitionTask struct {
	transition  Transition
	signal      *tick.Signal
	settleAtEnd func()
}

func (t *transitionTask) Cancel() {
	if !t.signal.Stop() {
		return
	}
	if t.transition != nil {
		t.transition.Cancel()
	}
	t.settleAtEnd()
}

// AnimationScheduler serializes mounting, unmounting and scrolling of the
// overlay. It has three slots, scroll, hide delay and show/hide, and keeps
// at most one pending task in each. It must only be used from the runner
// goroutine.
type AnimationScheduler struct {
	runner    tick.Runner
	host      OverlayHost
	opts      AnimationOptions
	lifecycle Lifecycle
	logger    *slog.Logger

	scroll    slot
	hideDelay slot
	showHide  slot

	overlay *Overlay
	phase   phase
}

func NewAnimationScheduler(runner tick.Runner, host OverlayHost, opts AnimationOptions, lifecycle Lifecycle, logger *slog.Logger) *AnimationScheduler {
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	return &AnimationScheduler{
		runner:    runner,
		host:      host,
		opts:      opts.withDefaults(),
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Overlay returns the overlay while it is mounting, mounted or unmounting.
func (s *AnimationScheduler) Overlay() *Overlay {
	return s.overlay
}

// StopAll cancels every slot.
func (s *AnimationScheduler) StopAll() {
	s.scroll.stop()
	s.hideDelay.stop()
	s.showHide.stop()
}

// ScrollTo starts scrolling the nearest scrollable ancestor of node until node
// sits in the middle of its visible region. A running scroll is replaced.
// Nodes without a scrollable ancestor are ignored.
func (s *AnimationScheduler) ScrollTo(node ScrollNode) {
	s.scroll.stop()

	ancestor, dest, ok := scrollDestination(node)
	if !ok {
		return
	}

	current := ancestor.ScrollPosition()
	s.scroll.set(s.runner.Every(s.opts.ScrollInterval, func() {
		delta := dest - current
		if math.Abs(delta) <= s.opts.ScrollThreshold {
			s.scroll.stop()
		}
		current += delta * s.opts.ScrollStep
		ancestor.SetScrollPosition(current)
	}))
}

// ScheduleScroll runs ScrollTo on the next runner turn, after the host had a
// chance to lay out a freshly mounted overlay.
func (s *AnimationScheduler) ScheduleScroll(node ScrollNode) {
	if node == nil {
		return
	}
	s.scroll.set(s.runner.Defer(func() {
		s.scroll.task = nil
		s.ScrollTo(node)
	}))
}

// ScheduleHide cancels everything and unmounts the overlay after the hide delay.
func (s *AnimationScheduler) ScheduleHide() {
	s.StopAll()
	s.hideDelay.set(s.runner.After(s.opts.HideDelay, func() {
		s.hideDelay.task = nil
		s.unmount()
	}))
}

// HideNow cancels everything and unmounts the overlay immediately.
func (s *AnimationScheduler) HideNow() {
	s.StopAll()
	s.unmount()
}

// ShowOrSwitch cancels everything, then mounts an overlay for sess or, when
// one already exists, hands it sess and its layout. Either way the target is
// scrolled into view if it is a ScrollNode.
func (s *AnimationScheduler) ShowOrSwitch(sess *Session) {
	s.StopAll()

	if s.overlay == nil {
		s.mount(sess)
	} else {
		s.overlay.Session = sess
		s.host.ApplyLayout(s.overlay, sess.Layout)
	}

	if node, ok := sess.Target.(ScrollNode); ok {
		s.ScheduleScroll(node)
	}
}

// ApplyLayout re-renders the overlay, if any, with the session's layout.
func (s *AnimationScheduler) ApplyLayout(sess *Session) {
	if s.overlay == nil {
		return
	}
	s.overlay.Session = sess
	s.host.ApplyLayout(s.overlay, sess.Layout)
}

func (s *AnimationScheduler) mount(sess *Session) {
	ov := &Overlay{Session: sess}
	s.overlay = ov
	s.phase = phaseEntering

	mounted := func() {
		s.showHide.task = nil
		s.phase = phaseMounted
		s.logger.Debug("Keyboard shown", "session", ov.Session.ID, "layout", ov.Session.LayoutName())
		if s.lifecycle.Shown != nil {
			s.lifecycle.Shown(ov.Session)
		}
	}

	s.startTransition(mounted, func(done func()) Transition {
		return s.host.Mount(ov, done)
	})
}

func (s *AnimationScheduler) unmount() {
	ov := s.overlay
	if ov == nil || s.phase == phaseLeaving {
		return
	}
	s.phase = phaseLeaving

	removed := func() {
		s.showHide.task = nil
		if s.overlay == ov {
			s.overlay = nil
			s.phase = phaseRemoved
		}
		s.logger.Debug("Keyboard hidden")
		if s.lifecycle.Removed != nil {
			s.lifecycle.Removed()
		}
	}

	s.startTransition(removed, func(done func()) Transition {
		return s.host.Unmount(ov, done)
	})
}

func (s *AnimationScheduler) startTransition(complete func(), start func(done func()) Transition) {
	signal := tick.NewSignal(complete)
	task := &transitionTask{signal: signal, settleAtEnd: complete}
	s.showHide.set(task)

	task.transition = start(func() { signal.Fire() })
}
