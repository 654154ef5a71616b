package vkeyboard

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// KeyKind tags what a key does when pressed.
type KeyKind int

const (
	// KindCharacter inserts its resolved glyph.
	KindCharacter KeyKind = iota
	// KindSpace inserts its glyph like a character key.
	KindSpace
	KindBackspace
	KindTab
	KindCapsLock
	KindShift
	// KindAlt covers Alt, AltGr and AltLk. Reserved, pressing it does nothing.
	KindAlt
	KindEnter
	// KindSpacer is a presentational gap between keys.
	KindSpacer
)

var keyKindNames = map[KeyKind]string{
	KindCharacter: "character",
	KindSpace:     "space",
	KindBackspace: "backspace",
	KindTab:       "tab",
	KindCapsLock:  "capsLock",
	KindShift:     "shift",
	KindAlt:       "alt",
	KindEnter:     "enter",
	KindSpacer:    "spacer",
}

func (k KeyKind) String() string {
	if name, ok := keyKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKeyKind parses the canonical kind names used in layout files.
func ParseKeyKind(s string) (KeyKind, error) {
	for kind, name := range keyKindNames {
		if strings.EqualFold(name, s) {
			return kind, nil
		}
	}
	return KindCharacter, fmt.Errorf("unknown key kind %q", s)
}

// InferKeyKind maps the short labels used by the classic layout tables
// ("Bksp", "Caps", "AltGr", ...) to a kind. Anything else is a character.
func InferKeyKind(label string) KeyKind {
	switch strings.ToLower(label) {
	case " ":
		return KindSpace
	case "bksp":
		return KindBackspace
	case "tab":
		return KindTab
	case "caps":
		return KindCapsLock
	case "shift":
		return KindShift
	case "alt", "altgr", "altlk":
		return KindAlt
	case "enter":
		return KindEnter
	case "spacer":
		return KindSpacer
	}
	return KindCharacter
}

// Key is a single logical button of a layout.
type Key struct {
	Base    string
	Shifted string
	Kind    KeyKind
}

// HasShifted reports whether the key has a shifted form.
func (k Key) HasShifted() bool {
	return k.Shifted != ""
}

// Class returns the style class a renderer uses for the key.
func (k Key) Class() string {
	switch k.Kind {
	case KindSpacer:
		return "spacer"
	case KindSpace:
		return "key-space"
	case KindCharacter:
		return "key-char"
	case KindBackspace:
		return "key-bksp"
	case KindCapsLock:
		return "key-caps"
	case KindAlt:
		return "key-" + strings.ToLower(k.Base)
	}
	return "key-" + k.Kind.String()
}

// Layout is a named keyboard arrangement.
type Layout struct {
	Name string
	Lang []language.Tag
	Rows [][]Key
}

// KeyAt returns the key at row, col.
func (l *Layout) KeyAt(row, col int) (Key, bool) {
	if l == nil || row < 0 || row >= len(l.Rows) {
		return Key{}, false
	}
	if col < 0 || col >= len(l.Rows[row]) {
		return Key{}, false
	}
	return l.Rows[row][col], true
}

// KeyCount returns the number of keys across all rows.
func (l *Layout) KeyCount() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}

func cloneRows(rows [][]Key) [][]Key {
	out := make([][]Key, len(rows))
	for i, row := range rows {
		out[i] = append([]Key(nil), row...)
	}
	return out
}

func (l *Layout) clone() *Layout {
	return &Layout{
		Name: l.Name,
		Lang: append([]language.Tag(nil), l.Lang...),
		Rows: cloneRows(l.Rows),
	}
}

// Units is the key's width relative to a character key.
func (k Key) Units() float64 {
	switch k.Kind {
	case KindBackspace, KindEnter:
		return 2
	case KindTab:
		return 1.5
	case KindCapsLock:
		return 1.75
	case KindShift:
		return 2.25
	case KindSpace:
		return 6
	}
	return 1
}
