package vkeyboard

// EditableTarget is the text field a session edits.
//
// Selection offsets count runes, not bytes. Hosts keep start <= end <= the
// rune length of Value; the engine clamps out of range offsets rather than
// validating them.
type EditableTarget interface {
	Value() string
	// SetValue replaces the text and re-renders the field.
	SetValue(value string)
	Selection() (start, end int)
	SetSelection(start, end int)
	// Multiline reports whether Enter inserts a newline instead of submitting.
	Multiline() bool
	// Submit triggers the action of the form or dialog enclosing the field.
	Submit()
}

// ScrollNode is a node of the host's layout tree. Targets that implement it
// are scrolled into view when the keyboard is shown for them.
type ScrollNode interface {
	// ParentNode returns the parent, or nil at the root.
	ParentNode() ScrollNode
	// OffsetTop is the node's vertical offset within its parent's content.
	OffsetTop() float64
	// ScrollExtent is the full height of the node's content.
	ScrollExtent() float64
	// VisibleExtent is the height of the node's visible region.
	VisibleExtent() float64
	ScrollPosition() float64
	SetScrollPosition(pos float64)
}

// Overlay is the mounted keyboard. Hosts render Session.Layout and route key
// presses back through the controller.
type Overlay struct {
	Session *Session
}

// Layout returns the layout the overlay should display.
func (o *Overlay) Layout() *Layout {
	if o == nil || o.Session == nil {
		return nil
	}
	return o.Session.Layout
}

// Transition is an in-flight mount or unmount animation.
type Transition interface {
	// Cancel jumps the animation to its end state without calling done.
	Cancel()
}

// OverlayHost mounts and unmounts the keyboard overlay.
//
// Mount and Unmount start a transition and call done once it completes. done
// must be called on the runner goroutine and at most once.
type OverlayHost interface {
	Mount(ov *Overlay, done func()) Transition
	Unmount(ov *Overlay, done func()) Transition
	// ApplyLayout re-renders a mounted overlay with a different layout.
	ApplyLayout(ov *Overlay, layout *Layout)
}
