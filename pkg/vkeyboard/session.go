package vkeyboard

import "github.com/google/uuid"

// ModifierState is the shift and caps lock state of a session.
// Shift is momentary and clears after the next inserted glyph; caps lock
// stays until toggled.
type ModifierState struct {
	CapsLocked  bool
	ShiftActive bool
}

// Session binds the overlay to the target it edits.
type Session struct {
	ID        uuid.UUID
	Target    EditableTarget
	Layout    *Layout
	Modifiers ModifierState
}

// NewSession creates a session for target with fresh modifiers.
func NewSession(target EditableTarget, layout *Layout) *Session {
	return &Session{
		ID:     uuid.New(),
		Target: target,
		Layout: layout,
	}
}

// Rebind returns a new session for target that keeps this session's layout
// and modifiers. The receiver is left untouched.
func (s *Session) Rebind(target EditableTarget) *Session {
	return &Session{
		ID:        uuid.New(),
		Target:    target,
		Layout:    s.Layout,
		Modifiers: s.Modifiers,
	}
}

// LayoutName returns the name of the session's layout, or "" when it has none.
func (s *Session) LayoutName() string {
	if s == nil || s.Layout == nil {
		return ""
	}
	return s.Layout.Name
}
