package vkeyboard

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})), &buf
}

func newTestRegistry(t *testing.T, opts ...RegistryOption) *LayoutRegistry {
	t.Helper()
	r := NewLayoutRegistry(append([]RegistryOption{WithRegistryLogger(discardLogger())}, opts...)...)
	require.NoError(t, r.LoadBuiltins())
	return r
}

type fakeTarget struct {
	value      string
	start, end int
	multiline  bool
	submits    int
}

func newFakeTarget(value string, start, end int) *fakeTarget {
	return &fakeTarget{value: value, start: start, end: end}
}

func (f *fakeTarget) Value() string               { return f.value }
func (f *fakeTarget) SetValue(value string)       { f.value = value }
func (f *fakeTarget) Selection() (int, int)       { return f.start, f.end }
func (f *fakeTarget) SetSelection(start, end int) { f.start, f.end = start, end }
func (f *fakeTarget) Multiline() bool             { return f.multiline }
func (f *fakeTarget) Submit()                     { f.submits++ }

type fakeNode struct {
	parent  *fakeNode
	offset  float64
	extent  float64
	visible float64
	pos     float64
	sets    int
}

func (n *fakeNode) ParentNode() ScrollNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}
func (n *fakeNode) OffsetTop() float64      { return n.offset }
func (n *fakeNode) ScrollExtent() float64   { return n.extent }
func (n *fakeNode) VisibleExtent() float64  { return n.visible }
func (n *fakeNode) ScrollPosition() float64 { return n.pos }
func (n *fakeNode) SetScrollPosition(p float64) {
	n.pos = p
	n.sets++
}

// scrollTarget is an editable field that also sits in a scrollable tree.
type scrollTarget struct {
	*fakeTarget
	*fakeNode
}

type fakeTransition struct {
	host *fakeHost
}

func (t *fakeTransition) Cancel() {
	t.host.cancelled++
}

type fakeHost struct {
	mounts    int
	unmounts  int
	cancelled int
	applied   []string
	pending   []func()
}

func (h *fakeHost) Mount(ov *Overlay, done func()) Transition {
	h.mounts++
	h.pending = append(h.pending, done)
	return &fakeTransition{host: h}
}

func (h *fakeHost) Unmount(ov *Overlay, done func()) Transition {
	h.unmounts++
	h.pending = append(h.pending, done)
	return &fakeTransition{host: h}
}

func (h *fakeHost) ApplyLayout(ov *Overlay, layout *Layout) {
	h.applied = append(h.applied, layout.Name)
}

// finish completes every transition the host started.
func (h *fakeHost) finish() {
	pending := h.pending
	h.pending = nil
	for _, done := range pending {
		done()
	}
}
