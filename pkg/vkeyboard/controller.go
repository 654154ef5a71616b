package vkeyboard

import (
	"log/slog"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/device"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/internal"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
	"go.uber.org/atomic"
)

type controllerConfig struct {
	animation    AnimationOptions
	logger       *slog.Logger
	touchPrimary bool
	onChange     func(LayoutChange)
}

type ControllerOption func(*controllerConfig)

func WithAnimationOptions(opts AnimationOptions) ControllerOption {
	return func(c *controllerConfig) {
		c.animation = opts
	}
}

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *controllerConfig) {
		c.logger = logger
	}
}

// WithTouchPrimary tells the controller the device is driven by touch, which
// suppresses bindings that do not opt in.
func WithTouchPrimary(touchPrimary bool) ControllerOption {
	return func(c *controllerConfig) {
		c.touchPrimary = touchPrimary
	}
}

// WithLayoutChangeHook is called after the controller applied a layout change.
func WithLayoutChangeHook(fn func(LayoutChange)) ControllerOption {
	return func(c *controllerConfig) {
		c.onChange = fn
	}
}

// VisibilityController owns the keyboard overlay: whether it is shown, which
// target it edits and with which layout. Create one per process and share it.
//
// Apart from IsVisible, methods must be called on the runner goroutine.
type VisibilityController struct {
	registry  *LayoutRegistry
	runner    tick.Runner
	engine    *KeyPressEngine
	scheduler *AnimationScheduler
	sub       *Subscription
	config    controllerConfig

	visible *atomic.Bool
	session *Session
}

func NewVisibilityController(registry *LayoutRegistry, host OverlayHost, runner tick.Runner, opts ...ControllerOption) *VisibilityController {
	config := controllerConfig{animation: DefaultAnimationOptions()}
	for _, opt := range opts {
		opt(&config)
	}
	if config.logger == nil {
		config.logger = internal.GetInternalLogger()
	}

	c := &VisibilityController{
		registry: registry,
		runner:   runner,
		engine:   NewKeyPressEngine(runner, config.logger),
		config:   config,
		visible:  atomic.NewBool(false),
	}
	c.scheduler = NewAnimationScheduler(runner, host, config.animation, Lifecycle{
		Shown:   c.shown,
		Removed: c.removed,
	}, config.logger)
	c.sub = registry.Subscribe(c.layoutChanged)

	return c
}

// IsVisible reports whether the overlay is mounted. It is safe to call from any goroutine.
func (c *VisibilityController) IsVisible() bool {
	return c.visible.Load()
}

// Session returns the session keys are applied to, or nil.
func (c *VisibilityController) Session() *Session {
	return c.session
}

// Overlay returns the overlay while it is mounting, mounted or unmounting.
func (c *VisibilityController) Overlay() *Overlay {
	return c.scheduler.Overlay()
}

// Show brings up the keyboard for target. If the overlay is already up it is
// moved over to target and switched to layoutName, otherwise a new overlay is
// mounted with layoutName or the registry's current layout.
func (c *VisibilityController) Show(target EditableTarget, layoutName string) {
	if target == nil {
		return
	}
	c.scheduler.StopAll()

	if c.scheduler.Overlay() == nil || c.session == nil {
		if layoutName != "" {
			c.registry.UseLayout(layoutName)
		}
		layout, _ := c.registry.Layout(c.registry.CurrentLayout())
		c.session = NewSession(target, layout)
	} else {
		c.session = c.session.Rebind(target)
		if layoutName != "" {
			c.registry.UseLayout(layoutName)
		}
	}

	c.scheduler.ShowOrSwitch(c.session)
}

// Hide removes the keyboard after the hide delay unless Show runs first.
func (c *VisibilityController) Hide() {
	c.scheduler.StopAll()
	c.scheduler.ScheduleHide()
}

// Destroy removes the keyboard without waiting for the hide delay.
func (c *VisibilityController) Destroy() {
	c.scheduler.HideNow()
}

// Close destroys the overlay and stops following layout changes.
func (c *VisibilityController) Close() {
	c.Destroy()
	c.sub.Unsubscribe()
}

// Press applies key to the bound target.
func (c *VisibilityController) Press(key Key) {
	c.engine.Apply(c.session, key)
}

// PressAt applies the key at row, col of the active layout.
func (c *VisibilityController) PressAt(row, col int) {
	c.engine.ApplyAt(c.session, row, col)
}

func (c *VisibilityController) shown(sess *Session) {
	c.session = sess
	c.visible.Store(true)
}

func (c *VisibilityController) removed() {
	c.visible.Store(false)
	c.session = nil
}

func (c *VisibilityController) layoutChanged(change LayoutChange) {
	if c.session != nil && change.Known && change.Name != c.session.LayoutName() {
		if layout, ok := c.registry.Layout(change.Name); ok {
			c.session.Layout = layout
			c.scheduler.ApplyLayout(c.session)
		}
	}
	if c.config.onChange != nil {
		c.config.onChange(change)
	}
}

// BindOptions configures a binding.
type BindOptions struct {
	// ShowOnTouch is the host's explicit override for touch-primary devices.
	// Only a value that parses as true enables the keyboard there.
	ShowOnTouch string
}

// Binding connects one target's focus and blur events to the controller.
type Binding struct {
	controller *VisibilityController
	target     EditableTarget
	layoutName string
	closed     bool
}

// Bind prepares target for the keyboard. It returns false when the target is
// nil or the keyboard is suppressed on this device.
func (c *VisibilityController) Bind(target EditableTarget, layoutName string, opts BindOptions) (*Binding, bool) {
	if target == nil {
		return nil, false
	}
	if !device.ShouldAttach(c.config.touchPrimary, opts.ShowOnTouch) {
		c.config.logger.Debug("Keyboard suppressed on touch device", "layout", layoutName)
		return nil, false
	}
	return &Binding{controller: c, target: target, layoutName: layoutName}, true
}

// Focus shows the keyboard for the bound target.
func (b *Binding) Focus() {
	if b.closed {
		return
	}
	b.controller.Show(b.target, b.layoutName)
}

// Blur hides the keyboard after the hide delay.
func (b *Binding) Blur() {
	if b.closed {
		return
	}
	b.controller.Hide()
}

// Close detaches the binding. The keyboard is hidden if it was editing this target.
func (b *Binding) Close() {
	if b.closed {
		return
	}
	b.closed = true

	if sess := b.controller.Session(); sess != nil && sess.Target == b.target {
		b.controller.Hide()
	}
}
