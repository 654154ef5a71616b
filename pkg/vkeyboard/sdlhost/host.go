// Package sdlhost renders the keyboard overlay with SDL2, for handhelds and
// other framebuffer devices without a system keyboard.
package sdlhost

import (
	"time"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

const (
	DefaultFrame     = 16 * time.Millisecond
	DefaultSlideStep = 40
	DefaultSpacing   = 5
	DefaultRadius    = 8
)

// Host implements vkeyboard.OverlayHost for an SDL window. The panel covers
// the lower part of the window and slides in from the bottom edge.
type Host struct {
	runner   tick.Runner
	registry *vkeyboard.LayoutRegistry
	theme    Theme

	width, height int32
	panelHeight   int32
	frame         time.Duration
	step          int32
	spacing       int32
	radius        int32

	overlay *vkeyboard.Overlay
	layout  *vkeyboard.Layout
	offset  int32 // Visible panel pixels
	boxes   []vkeyboard.KeyBox
	cursor  int // Index into boxes of the key selected for gamepad input
}

type Option func(*Host)

func WithTheme(t Theme) Option {
	return func(h *Host) {
		h.theme = t
	}
}

// WithFrame sets the slide animation frame interval.
func WithFrame(d time.Duration) Option {
	return func(h *Host) {
		h.frame = d
	}
}

// WithSlideStep sets how many pixels the panel moves per frame.
func WithSlideStep(px int32) Option {
	return func(h *Host) {
		h.step = max(px, 1)
	}
}

// NewHost returns a host for a width by height window. The panel takes the
// bottom half of the window.
func NewHost(runner tick.Runner, registry *vkeyboard.LayoutRegistry, width, height int32, opts ...Option) *Host {
	h := &Host{
		runner:      runner,
		registry:    registry,
		theme:       DefaultTheme(),
		width:       width,
		height:      height,
		panelHeight: height / 2,
		frame:       DefaultFrame,
		step:        DefaultSlideStep,
		spacing:     DefaultSpacing,
		radius:      DefaultRadius,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PanelTop is the y coordinate of the panel's top edge in its current position.
func (h *Host) PanelTop() int32 {
	return h.height - h.offset
}

// Revealed reports how many pixels of the panel are on screen.
func (h *Host) Revealed() int32 {
	return h.offset
}

func (h *Host) Mount(ov *vkeyboard.Overlay, done func()) vkeyboard.Transition {
	h.overlay = ov
	h.setLayout(ov.Layout())
	h.offset = 0

	return h.slide(func() bool {
		h.offset = min(h.offset+h.step, h.panelHeight)
		return h.offset >= h.panelHeight
	}, func() {
		h.offset = h.panelHeight
	}, done)
}

func (h *Host) Unmount(_ *vkeyboard.Overlay, done func()) vkeyboard.Transition {
	return h.slide(func() bool {
		h.offset = max(h.offset-h.step, 0)
		if h.offset == 0 {
			h.clear()
			return true
		}
		return false
	}, h.clear, done)
}

func (h *Host) ApplyLayout(ov *vkeyboard.Overlay, layout *vkeyboard.Layout) {
	h.overlay = ov
	h.setLayout(layout)
}

func (h *Host) setLayout(layout *vkeyboard.Layout) {
	h.layout = layout
	h.boxes = vkeyboard.Arrange(layout, h.width, h.panelHeight, h.spacing)
	h.cursor = 0
}

func (h *Host) clear() {
	h.overlay = nil
	h.layout = nil
	h.boxes = nil
	h.offset = 0
	h.cursor = 0
}

type slideTransition struct {
	task     tick.Task
	settle   func()
	finished bool
}

func (t *slideTransition) Cancel() {
	if t.finished {
		return
	}
	t.finished = true
	t.task.Cancel()
	t.settle()
}

func (h *Host) slide(step func() bool, settle func(), done func()) vkeyboard.Transition {
	t := &slideTransition{settle: settle}
	t.task = h.runner.Every(h.frame, func() {
		if step() {
			t.finished = true
			t.task.Cancel()
			done()
		}
	})
	return t
}

// KeyAt returns the layout position of the key under window coordinates x, y.
func (h *Host) KeyAt(x, y int32) (row, col int, ok bool) {
	if h.layout == nil || h.offset == 0 {
		return 0, 0, false
	}
	return vkeyboard.HitTest(h.boxes, x, y-h.PanelTop())
}

// Cursor returns the layout position of the key under the navigation cursor.
func (h *Host) Cursor() (row, col int, ok bool) {
	if h.offset == 0 || h.cursor >= len(h.boxes) {
		return 0, 0, false
	}
	b := h.boxes[h.cursor]
	return b.Row, b.Col, true
}

// MoveCursor moves the cursor one key along its row or one row up or down,
// wrapping at the edges. Vertical moves land on the key whose center is
// closest to the current one.
func (h *Host) MoveCursor(dRow, dCol int) {
	if len(h.boxes) == 0 {
		return
	}
	cur := h.boxes[h.cursor]

	if dCol != 0 {
		var row []int
		pos := 0
		for i, b := range h.boxes {
			if b.Row != cur.Row {
				continue
			}
			if i == h.cursor {
				pos = len(row)
			}
			row = append(row, i)
		}
		n := len(row)
		h.cursor = row[((pos+dCol)%n+n)%n]
		return
	}

	if dRow == 0 {
		return
	}
	rows := len(h.layout.Rows)
	center := cur.X + cur.W/2
	for step := 1; step <= rows; step++ {
		target := ((cur.Row+dRow*step)%rows + rows) % rows
		best, bestDist := -1, int32(0)
		for i, b := range h.boxes {
			if b.Row != target {
				continue
			}
			d := b.X + b.W/2 - center
			if d < 0 {
				d = -d
			}
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
		if best >= 0 {
			h.cursor = best
			return
		}
	}
}

// Render draws the panel in its current position.
func (h *Host) Render(renderer *sdl.Renderer, font *ttf.Font) {
	if h.layout == nil || h.offset == 0 {
		return
	}

	top := h.PanelTop()
	panel := sdl.Rect{X: 0, Y: top, W: h.width, H: h.panelHeight}
	c := h.theme.PanelColor
	renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	renderer.FillRect(&panel)

	var mods vkeyboard.ModifierState
	if h.overlay != nil && h.overlay.Session != nil {
		mods = h.overlay.Session.Modifiers
	}

	for i, box := range h.boxes {
		key := h.layout.Rows[box.Row][box.Col]
		rect := sdl.Rect{X: box.X, Y: top + box.Y, W: box.W, H: box.H}
		h.renderKey(renderer, font, key, mods, rect, i == h.cursor)
	}
}

func (h *Host) renderKey(renderer *sdl.Renderer, font *ttf.Font, key vkeyboard.Key, mods vkeyboard.ModifierState, rect sdl.Rect, selected bool) {
	border := sdl.Rect{X: rect.X - 1, Y: rect.Y - 1, W: rect.W + 2, H: rect.H + 2}
	borderColor := h.theme.KeyBorderColor
	if selected {
		border = sdl.Rect{X: rect.X - 3, Y: rect.Y - 3, W: rect.W + 6, H: rect.H + 6}
		borderColor = h.theme.AccentColor
	}
	drawRoundedRect(renderer, &border, h.radius, borderColor)
	drawRoundedRect(renderer, &rect, h.radius, h.keyColor(key, mods))

	drawCenteredText(renderer, font, h.registry.Caption(key, mods), rect, h.theme.TextColor)
}

func (h *Host) keyColor(key vkeyboard.Key, mods vkeyboard.ModifierState) sdl.Color {
	switch key.Class() {
	case "key-char", "key-space":
		return h.theme.KeyColor
	case "key-shift":
		if mods.ShiftActive {
			return h.theme.ActiveColor
		}
	case "key-caps":
		if mods.CapsLocked {
			return h.theme.ActiveColor
		}
	}
	return h.theme.ControlColor
}
