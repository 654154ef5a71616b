package vkeyboard

import (
	"log/slog"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/internal"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
)

// KeyPressEngine turns key presses into edits of a session's target.
type KeyPressEngine struct {
	runner tick.Runner
	logger *slog.Logger
}

// NewKeyPressEngine returns an engine that defers form submission through runner.
func NewKeyPressEngine(runner tick.Runner, logger *slog.Logger) *KeyPressEngine {
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	return &KeyPressEngine{runner: runner, logger: logger}
}

// ApplyAt presses the key at row, col of the session's layout.
func (e *KeyPressEngine) ApplyAt(sess *Session, row, col int) {
	if sess == nil {
		return
	}
	key, ok := sess.Layout.KeyAt(row, col)
	if !ok {
		return
	}
	e.Apply(sess, key)
}

// Apply presses key against the session's target.
func (e *KeyPressEngine) Apply(sess *Session, key Key) {
	if sess == nil || sess.Target == nil {
		return
	}
	mods := &sess.Modifiers
	target := sess.Target

	e.logger.Debug("Key pressed", "kind", key.Kind.String(), "session", sess.ID)

	switch key.Kind {
	case KindCapsLock:
		mods.CapsLocked = !mods.CapsLocked
		mods.ShiftActive = false
	case KindShift:
		mods.ShiftActive = !mods.ShiftActive
	case KindAlt, KindSpacer:
	case KindTab:
		insert(target, "\t")
	case KindEnter:
		if target.Multiline() {
			insert(target, "\n")
			return
		}
		e.runner.Defer(target.Submit)
	case KindBackspace:
		backspace(target)
	default:
		insert(target, ResolveGlyph(key, mods.CapsLocked, mods.ShiftActive))
		mods.ShiftActive = false
	}
}

// insert appends glyph to the end of the text regardless of the caret and
// leaves the caret after it.
func insert(target EditableTarget, glyph string) {
	value := target.Value() + glyph
	target.SetValue(value)

	end := len([]rune(value))
	target.SetSelection(end, end)
}

func backspace(target EditableTarget) {
	runes := []rune(target.Value())
	start, end := clampSelection(target.Selection())
	start, end = min(start, len(runes)), min(end, len(runes))

	switch {
	case start == end && start == 0:
		return
	case start == end:
		start--
	}

	value := string(runes[:start]) + string(runes[end:])
	target.SetValue(value)
	target.SetSelection(start, start)
}

func clampSelection(start, end int) (int, int) {
	start, end = max(start, 0), max(end, 0)
	if start > end {
		start, end = end, start
	}
	return start, end
}
