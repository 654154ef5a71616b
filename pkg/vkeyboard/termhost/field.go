package termhost

import (
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard"
)

// Pane is a scrollable column of fields, one field per line.
type Pane struct {
	fields []*Field
	height int
	scroll float64
}

// NewPane returns a pane showing height lines.
func NewPane(height int) *Pane {
	return &Pane{height: max(height, 1)}
}

// AddField appends a field below the existing ones.
func (p *Pane) AddField(label string, multiline bool) *Field {
	f := &Field{Label: label, multiline: multiline, pane: p, line: len(p.fields)}
	p.fields = append(p.fields, f)
	return f
}

func (p *Pane) Fields() []*Field {
	return p.fields
}

// Height returns the number of visible lines.
func (p *Pane) Height() int {
	return p.height
}

// FirstLine is the index of the topmost visible field.
func (p *Pane) FirstLine() int {
	return int(p.scroll + 0.5)
}

// FieldAt returns the field drawn on screen line y.
func (p *Pane) FieldAt(y int) (*Field, bool) {
	if y < 0 || y >= p.height {
		return nil, false
	}
	idx := y + p.FirstLine()
	if idx < 0 || idx >= len(p.fields) {
		return nil, false
	}
	return p.fields[idx], true
}

func (p *Pane) ParentNode() vkeyboard.ScrollNode { return nil }
func (p *Pane) OffsetTop() float64               { return 0 }
func (p *Pane) ScrollExtent() float64            { return float64(len(p.fields)) }
func (p *Pane) VisibleExtent() float64           { return float64(p.height) }
func (p *Pane) ScrollPosition() float64          { return p.scroll }

func (p *Pane) SetScrollPosition(pos float64) {
	p.scroll = pos
}

// Field is a single text field. It is edited only through the keyboard.
type Field struct {
	Label string
	// OnSubmit runs when Enter is pressed on a single line field.
	OnSubmit func(value string)

	multiline  bool
	pane       *Pane
	line       int
	value      string
	start, end int
}

func (f *Field) Value() string {
	return f.value
}

func (f *Field) SetValue(value string) {
	f.value = value
}

func (f *Field) Selection() (int, int) {
	return f.start, f.end
}

func (f *Field) SetSelection(start, end int) {
	f.start, f.end = start, end
}

func (f *Field) Multiline() bool {
	return f.multiline
}

func (f *Field) Submit() {
	if f.OnSubmit != nil {
		f.OnSubmit(f.value)
	}
}

func (f *Field) ParentNode() vkeyboard.ScrollNode {
	if f.pane == nil {
		return nil
	}
	return f.pane
}

func (f *Field) OffsetTop() float64      { return float64(f.line) }
func (f *Field) ScrollExtent() float64   { return 1 }
func (f *Field) VisibleExtent() float64  { return 1 }
func (f *Field) ScrollPosition() float64 { return 0 }
func (f *Field) SetScrollPosition(_ float64) {}
