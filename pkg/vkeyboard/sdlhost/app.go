package sdlhost

import (
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// App routes SDL input between text fields and the keyboard. HandleEvent and
// Render must run on the thread that owns the renderer, which is also the
// runner's thread.
type App struct {
	host       *Host
	controller *vkeyboard.VisibilityController
	theme      Theme
	mapping    *InputMapping

	fields   []*TextField
	bindings map[*TextField]*vkeyboard.Binding
	focused  *TextField
}

// NewApp returns an app. A nil mapping uses DefaultInputMapping.
func NewApp(host *Host, controller *vkeyboard.VisibilityController, theme Theme, mapping *InputMapping) *App {
	if mapping == nil {
		mapping = DefaultInputMapping()
	}
	return &App{
		host:       host,
		controller: controller,
		theme:      theme,
		mapping:    mapping,
		bindings:   make(map[*TextField]*vkeyboard.Binding),
	}
}

// AddField places a field and binds the keyboard to it. It reports whether
// the keyboard is enabled for the field on this device.
func (a *App) AddField(field *TextField, layoutName string, opts vkeyboard.BindOptions) bool {
	a.fields = append(a.fields, field)

	binding, ok := a.controller.Bind(field, layoutName, opts)
	if !ok {
		return false
	}
	a.bindings[field] = binding
	return true
}

func (a *App) Focused() *TextField {
	return a.focused
}

// HandleEvent processes one event and reports whether the app should quit.
func (a *App) HandleEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
			a.pointerDown(e.X, e.Y)
		}
	default:
		a.navigate(a.mapping.Translate(event))
	}
	return false
}

func (a *App) navigate(button Button) {
	switch button {
	case ButtonUp:
		a.host.MoveCursor(-1, 0)
	case ButtonDown:
		a.host.MoveCursor(1, 0)
	case ButtonLeft:
		a.host.MoveCursor(0, -1)
	case ButtonRight:
		a.host.MoveCursor(0, 1)
	case ButtonPress:
		if row, col, ok := a.host.Cursor(); ok {
			a.controller.PressAt(row, col)
		}
	case ButtonClose:
		a.focus(nil)
	case ButtonNext:
		a.focusNext()
	}
}

// pointerDown presses the key under the pointer, or focuses the field there.
func (a *App) pointerDown(x, y int32) {
	if row, col, ok := a.host.KeyAt(x, y); ok {
		a.controller.PressAt(row, col)
		return
	}

	for _, field := range a.fields {
		if field.Contains(x, y) {
			a.focus(field)
			return
		}
	}
	a.focus(nil)
}

func (a *App) focus(field *TextField) {
	if field == a.focused {
		return
	}
	if binding, ok := a.bindings[a.focused]; ok {
		binding.Blur()
	}
	a.focused = field
	if binding, ok := a.bindings[field]; ok {
		binding.Focus()
	}
}

func (a *App) focusNext() {
	if len(a.fields) == 0 {
		return
	}
	next := 0
	for i, field := range a.fields {
		if field == a.focused {
			next = (i + 1) % len(a.fields)
			break
		}
	}
	a.focus(a.fields[next])
}

// Render draws the fields and then the keyboard over them.
func (a *App) Render(renderer *sdl.Renderer, font *ttf.Font) {
	for _, field := range a.fields {
		field.Render(renderer, font, a.theme, field == a.focused)
	}
	a.host.Render(renderer, font)
}

// Close detaches every binding.
func (a *App) Close() {
	for field, binding := range a.bindings {
		binding.Close()
		delete(a.bindings, field)
	}
}
