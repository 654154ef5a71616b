package vkeyboard

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(host OverlayHost) (*AnimationScheduler, *tick.Manual) {
	m := tick.NewManual()
	return NewAnimationScheduler(m, host, DefaultAnimationOptions(), Lifecycle{}, discardLogger()), m
}

// scrollTree builds a field nested in a box inside a scrollable page.
func scrollTree() (page, box, field *fakeNode) {
	page = &fakeNode{extent: 1000, visible: 100}
	box = &fakeNode{parent: page, offset: 400, extent: 50, visible: 50}
	field = &fakeNode{parent: box, offset: 100, extent: 20, visible: 20}
	return page, box, field
}

func TestFindAncestor(t *testing.T) {
	page, box, field := scrollTree()

	ancestor, path, ok := FindAncestor[ScrollNode](field, scrollParent, scrollable)
	require.True(t, ok)
	assert.Same(t, page, ancestor)
	assert.Equal(t, []ScrollNode{field, box}, path)

	_, _, ok = FindAncestor[ScrollNode](page, scrollParent, scrollable)
	assert.False(t, ok)
}

func TestScrollDestination(t *testing.T) {
	page, _, field := scrollTree()

	ancestor, dest, ok := scrollDestination(field)
	require.True(t, ok)
	assert.Same(t, page, ancestor)
	assert.InDelta(t, 450, dest, 0.001)

	near := &fakeNode{parent: page, offset: 10}
	_, dest, _ = scrollDestination(near)
	assert.Zero(t, dest)

	far := &fakeNode{parent: page, offset: 5000}
	_, dest, _ = scrollDestination(far)
	assert.InDelta(t, 1000, dest, 0.001)
}

func TestScrollTo_Converges(t *testing.T) {
	s, m := newTestScheduler(&fakeHost{})
	page, _, field := scrollTree()

	s.ScrollTo(field)

	for i := 0; i < 100 && m.Pending() > 0; i++ {
		m.Advance(DefaultScrollInterval)
	}

	assert.Zero(t, m.Pending())
	assert.InDelta(t, 450, page.pos, DefaultScrollThreshold)
	assert.LessOrEqual(t, page.sets, 20)

	ticks := page.sets
	m.Advance(time.Second)
	assert.Equal(t, ticks, page.sets)
}

func TestScrollTo_RestartCancelsPrevious(t *testing.T) {
	s, m := newTestScheduler(&fakeHost{})
	page, _, field := scrollTree()
	other := &fakeNode{parent: page, offset: 50}

	s.ScrollTo(field)
	m.Advance(DefaultScrollInterval)
	s.ScrollTo(other)
	assert.Equal(t, 1, m.Pending())

	m.Advance(5 * time.Second)
	assert.InDelta(t, 0, page.pos, DefaultScrollThreshold)
}

func TestScrollTo_NoScrollableAncestor(t *testing.T) {
	s, m := newTestScheduler(&fakeHost{})
	root := &fakeNode{extent: 10, visible: 10}

	s.ScrollTo(&fakeNode{parent: root, offset: 5})
	s.ScrollTo(nil)

	assert.Zero(t, m.Pending())
}

func TestScheduleScroll_StartsOnNextTick(t *testing.T) {
	s, m := newTestScheduler(&fakeHost{})
	page, _, field := scrollTree()

	s.ScheduleScroll(field)
	assert.Zero(t, page.sets)

	m.Flush()
	m.Advance(DefaultScrollInterval)
	assert.Equal(t, 1, page.sets)

	s.StopAll()
	m.Advance(time.Second)
	assert.Equal(t, 1, page.sets)
}

func TestStopAll_EmptySlots(t *testing.T) {
	s, _ := newTestScheduler(&fakeHost{})
	assert.NotPanics(t, func() {
		s.StopAll()
		s.StopAll()
	})
}

func TestShowOrSwitch_MountsOnce(t *testing.T) {
	host := &fakeHost{}
	var shown []*Session
	m := tick.NewManual()
	s := NewAnimationScheduler(m, host, DefaultAnimationOptions(), Lifecycle{
		Shown: func(sess *Session) { shown = append(shown, sess) },
	}, discardLogger())

	first := NewSession(newFakeTarget("", 0, 0), &Layout{Name: "A"})
	s.ShowOrSwitch(first)
	assert.Equal(t, 1, host.mounts)
	assert.Empty(t, shown)

	host.finish()
	assert.Equal(t, []*Session{first}, shown)

	second := first.Rebind(newFakeTarget("", 0, 0))
	s.ShowOrSwitch(second)
	assert.Equal(t, 1, host.mounts)
	assert.Equal(t, []string{"A"}, host.applied)
	assert.Same(t, second, s.Overlay().Session)
}

func TestScheduleHide_UnmountsAfterDelay(t *testing.T) {
	host := &fakeHost{}
	removed := 0
	m := tick.NewManual()
	s := NewAnimationScheduler(m, host, DefaultAnimationOptions(), Lifecycle{
		Removed: func() { removed++ },
	}, discardLogger())

	s.ShowOrSwitch(NewSession(newFakeTarget("", 0, 0), nil))
	host.finish()

	s.ScheduleHide()
	m.Advance(DefaultHideDelay - time.Millisecond)
	assert.Zero(t, host.unmounts)

	m.Advance(time.Millisecond)
	assert.Equal(t, 1, host.unmounts)
	assert.NotNil(t, s.Overlay())

	host.finish()
	assert.Equal(t, 1, removed)
	assert.Nil(t, s.Overlay())
}

func TestCancelledTransitionSettles(t *testing.T) {
	host := &fakeHost{}
	shown, removed := 0, 0
	m := tick.NewManual()
	s := NewAnimationScheduler(m, host, DefaultAnimationOptions(), Lifecycle{
		Shown:   func(*Session) { shown++ },
		Removed: func() { removed++ },
	}, discardLogger())

	s.ShowOrSwitch(NewSession(newFakeTarget("", 0, 0), nil))
	s.HideNow()

	assert.Equal(t, 1, host.cancelled)
	assert.Equal(t, 1, shown)
	assert.Equal(t, 1, host.unmounts)

	// completing the cancelled mount must not run its callback again
	host.finish()
	assert.Equal(t, 1, shown)
	assert.Equal(t, 1, removed)
	assert.Nil(t, s.Overlay())
}
