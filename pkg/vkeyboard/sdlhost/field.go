package sdlhost

import (
	"unicode/utf8"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// TextField is a single text input drawn at a fixed rectangle.
type TextField struct {
	Rect     sdl.Rect
	OnSubmit func(value string)

	multiline  bool
	value      string
	start, end int
}

var _ vkeyboard.EditableTarget = (*TextField)(nil)

func NewTextField(rect sdl.Rect, multiline bool) *TextField {
	return &TextField{Rect: rect, multiline: multiline}
}

func (f *TextField) Value() string {
	return f.value
}

func (f *TextField) SetValue(value string) {
	f.value = value
	n := utf8.RuneCountInString(value)
	f.start, f.end = min(f.start, n), min(f.end, n)
}

func (f *TextField) Selection() (start, end int) {
	return f.start, f.end
}

func (f *TextField) SetSelection(start, end int) {
	f.start, f.end = start, end
}

func (f *TextField) Multiline() bool {
	return f.multiline
}

func (f *TextField) Submit() {
	if f.OnSubmit != nil {
		f.OnSubmit(f.value)
	}
}

// Contains reports whether x, y is inside the field.
func (f *TextField) Contains(x, y int32) bool {
	p := sdl.Point{X: x, Y: y}
	return p.InRect(&f.Rect)
}

// Render draws the field with its value and, when focused, a caret after the text.
func (f *TextField) Render(renderer *sdl.Renderer, font *ttf.Font, theme Theme, focused bool) {
	if focused {
		outline := sdl.Rect{X: f.Rect.X - 2, Y: f.Rect.Y - 2, W: f.Rect.W + 4, H: f.Rect.H + 4}
		drawRoundedRect(renderer, &outline, DefaultRadius, theme.AccentColor)
	}
	drawRoundedRect(renderer, &f.Rect, DefaultRadius, theme.FieldColor)

	inner := sdl.Rect{X: f.Rect.X + 10, Y: f.Rect.Y, W: f.Rect.W - 20, H: f.Rect.H}
	x := drawText(renderer, font, f.value, inner, theme.TextColor)

	if focused {
		c := theme.AccentColor
		renderer.SetDrawColor(c.R, c.G, c.B, c.A)
		renderer.FillRect(&sdl.Rect{X: x + 2, Y: inner.Y + 8, W: 2, H: inner.H - 16})
	}
}
