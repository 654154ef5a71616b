package vkeyboard

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controllerFixture struct {
	registry   *LayoutRegistry
	host       *fakeHost
	runner     *tick.Manual
	controller *VisibilityController
}

func newControllerFixture(t *testing.T, opts ...ControllerOption) *controllerFixture {
	t.Helper()
	f := &controllerFixture{
		registry: newTestRegistry(t),
		host:     &fakeHost{},
		runner:   tick.NewManual(),
	}
	opts = append([]ControllerOption{WithLogger(discardLogger())}, opts...)
	f.controller = NewVisibilityController(f.registry, f.host, f.runner, opts...)
	return f
}

func TestShow_WhileHiddenThenWithDifferentTarget(t *testing.T) {
	f := newControllerFixture(t)
	c := f.controller
	first := newFakeTarget("", 0, 0)
	second := newFakeTarget("", 0, 0)

	c.Show(first, "")
	assert.Equal(t, 1, f.host.mounts)
	assert.False(t, c.IsVisible(), "visible before the mount completed")

	f.host.finish()
	require.True(t, c.IsVisible())
	firstSession := c.Session()
	assert.Same(t, first, firstSession.Target)
	assert.Equal(t, DefaultLayoutName, firstSession.LayoutName())

	c.Show(second, "Deutsch")
	assert.Equal(t, 1, f.host.mounts)
	assert.True(t, c.IsVisible())

	sess := c.Session()
	assert.Same(t, second, sess.Target)
	assert.Equal(t, "Deutsch", sess.LayoutName())
	assert.NotEqual(t, firstSession.ID, sess.ID)
	assert.Same(t, first, firstSession.Target, "previous session is replaced, not mutated")
	assert.Contains(t, f.host.applied, "Deutsch")
	assert.Same(t, sess, c.Overlay().Session)
}

func TestShow_RebindKeepsModifiers(t *testing.T) {
	f := newControllerFixture(t)
	c := f.controller

	c.Show(newFakeTarget("", 0, 0), "")
	f.host.finish()
	c.Press(Key{Base: "Caps", Kind: KindCapsLock})

	second := newFakeTarget("", 0, 0)
	c.Show(second, "")
	c.Press(Key{Base: "a", Shifted: "A"})

	assert.Equal(t, "A", second.value)
}

func TestShow_UsesRequestedLayoutWhenHidden(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.Show(newFakeTarget("", 0, 0), "Numpad")
	f.host.finish()

	assert.Equal(t, "Numpad", f.controller.Session().LayoutName())
	assert.Equal(t, "Numpad", f.registry.CurrentLayout())
}

func TestShow_UnknownLayoutKeepsCurrent(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.Show(newFakeTarget("", 0, 0), "Klingon")
	f.host.finish()

	assert.Equal(t, DefaultLayoutName, f.controller.Session().LayoutName())
}

func TestShow_NilTarget(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.Show(nil, "")

	assert.Zero(t, f.host.mounts)
	assert.Nil(t, f.controller.Session())
}

func TestHide_CancelledByShow(t *testing.T) {
	f := newControllerFixture(t)
	c := f.controller

	c.Show(newFakeTarget("", 0, 0), "")
	f.host.finish()

	c.Hide()
	f.runner.Advance(DefaultHideDelay / 2)
	c.Show(newFakeTarget("", 0, 0), "")
	f.runner.Advance(time.Second)

	assert.Zero(t, f.host.unmounts)
	assert.True(t, c.IsVisible())
}

func TestHide_RemovesAfterDelay(t *testing.T) {
	f := newControllerFixture(t)
	c := f.controller

	c.Show(newFakeTarget("", 0, 0), "")
	f.host.finish()
	c.Hide()
	f.runner.Advance(DefaultHideDelay)

	assert.Equal(t, 1, f.host.unmounts)
	assert.True(t, c.IsVisible(), "visible until the unmount completed")

	f.host.finish()
	assert.False(t, c.IsVisible())
	assert.Nil(t, c.Session())
	assert.Nil(t, c.Overlay())
}

func TestShow_DuringUnmountMountsFresh(t *testing.T) {
	f := newControllerFixture(t)
	c := f.controller

	c.Show(newFakeTarget("", 0, 0), "")
	f.host.finish()
	c.Hide()
	f.runner.Advance(DefaultHideDelay)
	require.Equal(t, 1, f.host.unmounts)

	target := newFakeTarget("", 0, 0)
	c.Show(target, "")
	assert.Equal(t, 2, f.host.mounts)

	f.host.finish()
	assert.True(t, c.IsVisible())
	assert.Same(t, target, c.Session().Target)
}

func TestDestroy_SkipsDelay(t *testing.T) {
	f := newControllerFixture(t)
	c := f.controller

	c.Show(newFakeTarget("", 0, 0), "")
	f.host.finish()
	c.Destroy()

	assert.Equal(t, 1, f.host.unmounts)
	f.host.finish()
	assert.False(t, c.IsVisible())
}

func TestShow_ScrollsTargetIntoView(t *testing.T) {
	f := newControllerFixture(t)
	page, box, _ := scrollTree()
	target := scrollTarget{
		fakeTarget: newFakeTarget("", 0, 0),
		fakeNode:   &fakeNode{parent: box, offset: 100},
	}

	f.controller.Show(target, "")
	f.host.finish()
	f.runner.Advance(time.Second)

	assert.InDelta(t, 450, page.pos, DefaultScrollThreshold)
}

func TestLayoutChange_AppliedToOverlay(t *testing.T) {
	var changes []LayoutChange
	f := newControllerFixture(t, WithLayoutChangeHook(func(c LayoutChange) { changes = append(changes, c) }))
	c := f.controller

	c.Show(newFakeTarget("", 0, 0), "")
	f.host.finish()

	f.registry.UseLayout("Français")
	assert.Equal(t, "Français", c.Session().LayoutName())
	assert.Equal(t, []string{"Français"}, f.host.applied)

	f.registry.UseLayout("nonexistent")
	assert.Equal(t, "Français", c.Session().LayoutName())
	assert.Equal(t, []LayoutChange{{Name: "Français", Known: true}, {Name: "Français", Known: false}}, changes)

	c.Close()
	f.registry.UseLayout("Deutsch")
	assert.Len(t, changes, 2)
}

func TestPressAt(t *testing.T) {
	f := newControllerFixture(t)
	target := newFakeTarget("", 0, 0)

	f.controller.Show(target, "Numpad")
	f.controller.PressAt(1, 1)

	assert.Equal(t, "5", target.value)
}

func TestBind(t *testing.T) {
	f := newControllerFixture(t)
	target := newFakeTarget("", 0, 0)

	b, ok := f.controller.Bind(target, "Numpad", BindOptions{})
	require.True(t, ok)

	b.Focus()
	f.host.finish()
	assert.True(t, f.controller.IsVisible())
	assert.Equal(t, "Numpad", f.controller.Session().LayoutName())

	b.Blur()
	f.runner.Advance(DefaultHideDelay)
	f.host.finish()
	assert.False(t, f.controller.IsVisible())

	_, ok = f.controller.Bind(nil, "", BindOptions{})
	assert.False(t, ok)
}

func TestBind_Close(t *testing.T) {
	f := newControllerFixture(t)
	target := newFakeTarget("", 0, 0)

	b, _ := f.controller.Bind(target, "", BindOptions{})
	b.Focus()
	f.host.finish()

	b.Close()
	b.Focus()
	f.runner.Advance(DefaultHideDelay)
	f.host.finish()

	assert.Equal(t, 1, f.host.mounts)
	assert.False(t, f.controller.IsVisible())
}

func TestBind_TouchPrimary(t *testing.T) {
	f := newControllerFixture(t, WithTouchPrimary(true))
	target := newFakeTarget("", 0, 0)

	_, ok := f.controller.Bind(target, "", BindOptions{})
	assert.False(t, ok)

	_, ok = f.controller.Bind(target, "", BindOptions{ShowOnTouch: "yes"})
	assert.False(t, ok)

	_, ok = f.controller.Bind(target, "", BindOptions{ShowOnTouch: "true"})
	assert.True(t, ok)
}
