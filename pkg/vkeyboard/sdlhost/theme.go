package sdlhost

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

type Theme struct {
	PanelColor     sdl.Color
	KeyColor       sdl.Color
	KeyBorderColor sdl.Color
	ControlColor   sdl.Color
	ActiveColor    sdl.Color // Latched shift and caps lock
	TextColor      sdl.Color
	FieldColor     sdl.Color
	AccentColor    sdl.Color // Caret and focused field outline
}

func HexToColor(hex uint32) sdl.Color {
	r := uint8((hex >> 16) & 0xFF)
	g := uint8((hex >> 8) & 0xFF)
	b := uint8(hex & 0xFF)

	return sdl.Color{R: r, G: g, B: b, A: 255}
}

func DefaultTheme() Theme {
	return Theme{
		PanelColor:     HexToColor(0x1E2329),
		KeyColor:       HexToColor(0x32323C),
		KeyBorderColor: HexToColor(0x464650),
		ControlColor:   HexToColor(0x50507A),
		ActiveColor:    HexToColor(0x6464F0),
		TextColor:      HexToColor(0xFFFFFF),
		FieldColor:     HexToColor(0x2A2F36),
		AccentColor:    HexToColor(0x008080),
	}
}

func CannoliTheme() Theme {
	t := DefaultTheme()
	t.PanelColor = HexToColor(0xFFFFFF)
	t.KeyColor = HexToColor(0x000000)
	t.ControlColor = HexToColor(0x1E1E1E)
	t.ActiveColor = HexToColor(0x008080)
	t.FieldColor = HexToColor(0xE6E6E6)
	return t
}

func NextUITheme() Theme {
	t := DefaultTheme()
	t.PanelColor = HexToColor(0x000000)
	t.ActiveColor = HexToColor(0x9B2257)
	t.AccentColor = HexToColor(0x9B2257)
	return t
}

// ThemeByName returns a named theme, falling back to the default.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "cannoli":
		return CannoliTheme()
	case "nextui":
		return NextUITheme()
	}
	return DefaultTheme()
}
