// Package termhost shows the keyboard overlay in a terminal using tcell.
package termhost

import (
	"strings"
	"time"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const DefaultFrame = 16 * time.Millisecond

// Styles are the colors the host draws with.
type Styles struct {
	Border       tcell.Style
	Key          tcell.Style
	ControlKey   tcell.Style
	ActiveKey    tcell.Style
	Field        tcell.Style
	FocusedField tcell.Style
}

func DefaultStyles() Styles {
	base := tcell.StyleDefault
	return Styles{
		Border:       base.Foreground(tcell.ColorGray),
		Key:          base.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite),
		ControlKey:   base.Background(tcell.ColorDimGray).Foreground(tcell.ColorWhite),
		ActiveKey:    base.Background(tcell.ColorTeal).Foreground(tcell.ColorWhite).Bold(true),
		Field:        base,
		FocusedField: base.Underline(true),
	}
}

type keyHit struct {
	x, y, width int
	row, col    int
}

// Host implements vkeyboard.OverlayHost on a tcell screen. The overlay
// slides up from the bottom edge one line per frame.
type Host struct {
	screen   tcell.Screen
	runner   tick.Runner
	registry *vkeyboard.LayoutRegistry
	frame    time.Duration
	styles   Styles

	overlay  *vkeyboard.Overlay
	layout   *vkeyboard.Layout
	revealed int
	hits     []keyHit

	redraw func()
}

type Option func(*Host)

// WithFrame sets the slide animation frame interval.
func WithFrame(d time.Duration) Option {
	return func(h *Host) {
		h.frame = d
	}
}

func WithStyles(s Styles) Option {
	return func(h *Host) {
		h.styles = s
	}
}

// WithRedraw sets the function called whenever the overlay changes.
func WithRedraw(fn func()) Option {
	return func(h *Host) {
		h.redraw = fn
	}
}

func NewHost(screen tcell.Screen, runner tick.Runner, registry *vkeyboard.LayoutRegistry, opts ...Option) *Host {
	h := &Host{
		screen:   screen,
		runner:   runner,
		registry: registry,
		frame:    DefaultFrame,
		styles:   DefaultStyles(),
		redraw:   func() {},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Height is the number of lines the fully shown overlay occupies.
func (h *Host) Height() int {
	if h.layout == nil {
		return 0
	}
	return len(h.layout.Rows) + 2
}

// Revealed is the number of overlay lines currently on screen.
func (h *Host) Revealed() int {
	return h.revealed
}

func (h *Host) Mount(ov *vkeyboard.Overlay, done func()) vkeyboard.Transition {
	h.overlay = ov
	h.layout = ov.Layout()
	h.revealed = 0

	return h.slide(func() bool {
		h.revealed++
		return h.revealed >= h.Height()
	}, func() {
		h.revealed = h.Height()
	}, done)
}

func (h *Host) Unmount(_ *vkeyboard.Overlay, done func()) vkeyboard.Transition {
	return h.slide(func() bool {
		h.revealed--
		if h.revealed <= 0 {
			h.clear()
			return true
		}
		return false
	}, h.clear, done)
}

func (h *Host) ApplyLayout(ov *vkeyboard.Overlay, layout *vkeyboard.Layout) {
	h.overlay = ov
	h.layout = layout
	h.revealed = min(h.revealed, h.Height())
	h.redraw()
}

func (h *Host) clear() {
	h.overlay = nil
	h.layout = nil
	h.revealed = 0
	h.hits = nil
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
		finished := step()
		h.redraw()
		if finished {
			t.finished = true
			t.task.Cancel()
			done()
		}
	})
	return t
}

// KeyAt returns the layout position of the key drawn at x, y.
func (h *Host) KeyAt(x, y int) (row, col int, ok bool) {
	for _, hit := range h.hits {
		if y == hit.y && x >= hit.x && x < hit.x+hit.width {
			return hit.row, hit.col, true
		}
	}
	return 0, 0, false
}

// Caption returns the text drawn on key for the given modifiers.
func (h *Host) Caption(key vkeyboard.Key, mods vkeyboard.ModifierState) string {
	return h.registry.Caption(key, mods)
}

// Draw paints the revealed part of the overlay along the bottom of the screen.
func (h *Host) Draw() {
	h.hits = h.hits[:0]
	if h.layout == nil || h.revealed <= 0 {
		return
	}

	width, height := h.screen.Size()
	top := height - h.revealed

	var mods vkeyboard.ModifierState
	if h.overlay != nil && h.overlay.Session != nil {
		mods = h.overlay.Session.Modifiers
	}

	h.drawBorder(top, width)
	for r, row := range h.layout.Rows {
		y := top + 1 + r
		if y >= height {
			break
		}
		x := 1
		for c, key := range row {
			if key.Kind == vkeyboard.KindSpacer {
				x += 4
				continue
			}

			label := h.Caption(key, mods)
			cell := " " + label + " "
			if key.Kind == vkeyboard.KindSpace {
				cell += strings.Repeat(" ", 12)
			}
			w := uniseg.StringWidth(cell)

			if y >= 0 {
				drawText(h.screen, x, y, cell, h.keyStyle(key, mods))
				h.hits = append(h.hits, keyHit{x: x, y: y, width: w, row: r, col: c})
			}
			x += w + 1
		}
	}
	h.drawBorder(top+len(h.layout.Rows)+1, width)
}

func (h *Host) keyStyle(key vkeyboard.Key, mods vkeyboard.ModifierState) tcell.Style {
	switch key.Class() {
	case "key-char", "key-space":
		return h.styles.Key
	case "key-shift":
		if mods.ShiftActive {
			return h.styles.ActiveKey
		}
	case "key-caps":
		if mods.CapsLocked {
			return h.styles.ActiveKey
		}
	}
	return h.styles.ControlKey
}

func (h *Host) drawBorder(y, width int) {
	_, height := h.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for x := 0; x < width; x++ {
		h.screen.SetContent(x, y, tcell.RuneHLine, nil, h.styles.Border)
	}
}

// drawText writes s starting at x, advancing by each grapheme's width.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		runes := []rune(cluster)
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += max(width, 1)
	}
	return x
}
