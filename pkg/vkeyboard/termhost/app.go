package termhost

import (
	"fmt"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard"
	"github.com/gdamore/tcell/v2"
)

// App routes terminal events between a pane of fields and the keyboard.
// HandleEvent and Draw must run on the runner goroutine.
type App struct {
	screen     tcell.Screen
	pane       *Pane
	host       *Host
	controller *vkeyboard.VisibilityController

	bindings    map[*Field]*vkeyboard.Binding
	focused     *Field
	lastButtons tcell.ButtonMask
}

func NewApp(screen tcell.Screen, pane *Pane, host *Host, controller *vkeyboard.VisibilityController) *App {
	return &App{
		screen:     screen,
		pane:       pane,
		host:       host,
		controller: controller,
		bindings:   make(map[*Field]*vkeyboard.Binding),
	}
}

// Bind attaches the keyboard to field and reports whether it is enabled on this device.
func (a *App) Bind(field *Field, layoutName string, opts vkeyboard.BindOptions) bool {
	binding, ok := a.controller.Bind(field, layoutName, opts)
	if !ok {
		return false
	}
	a.bindings[field] = binding
	return true
}

// Focused returns the focused field, or nil.
func (a *App) Focused() *Field {
	return a.focused
}

// HandleEvent processes one event and reports whether the app should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return true
		case tcell.KeyEscape:
			a.focus(nil)
		case tcell.KeyTab:
			a.focusNext()
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		clicked := buttons&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0
		a.lastButtons = buttons
		if !clicked {
			return false
		}

		x, y := ev.Position()
		if row, col, ok := a.host.KeyAt(x, y); ok {
			a.controller.PressAt(row, col)
			return false
		}
		field, _ := a.pane.FieldAt(y)
		a.focus(field)
	}
	return false
}

func (a *App) focus(field *Field) {
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
	fields := a.pane.Fields()
	if len(fields) == 0 {
		return
	}
	next := 0
	if a.focused != nil {
		next = (a.focused.line + 1) % len(fields)
	}
	a.focus(fields[next])
}

// Close detaches every binding.
func (a *App) Close() {
	for field, binding := range a.bindings {
		binding.Close()
		delete(a.bindings, field)
	}
}

// Draw repaints the fields and the overlay.
func (a *App) Draw() {
	a.screen.Clear()
	a.screen.HideCursor()

	width, _ := a.screen.Size()
	first := a.pane.FirstLine()
	for y := 0; y < a.pane.Height(); y++ {
		idx := first + y
		if idx >= len(a.pane.fields) {
			break
		}
		field := a.pane.fields[idx]

		style := a.host.styles.Field
		if field == a.focused {
			style = a.host.styles.FocusedField
		}
		line := fmt.Sprintf("%s: %s", field.Label, displayValue(field.value))
		end := drawText(a.screen, 0, y, line, style)
		if field == a.focused && end < width {
			a.screen.ShowCursor(end, y)
		}
	}

	a.host.Draw()
	a.screen.Show()
}

func displayValue(v string) string {
	out := make([]rune, 0, len(v))
	for _, r := range v {
		switch r {
		case '\n':
			out = append(out, '⏎')
		case '\t':
			out = append(out, '→')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
