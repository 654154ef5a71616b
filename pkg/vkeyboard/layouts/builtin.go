package layouts

import (
	"embed"
	"fmt"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
)

//go:embed data/*.toml data/layout.schema.json
var dataFS embed.FS

var builtinLayoutFiles = []string{
	"data/standard.toml",
	"data/numpad.toml",
}

// Set is the collection of tables shipped with the module.
type Set struct {
	Layouts []Table
	// Deadkeys maps an accent glyph to the combining mark it applies.
	Deadkeys map[string]string
	// Symbols maps invisible glyphs to the caption shown on their key.
	Symbols map[string]string
}

// Schema returns the JSON schema layout files are validated against.
func Schema() []byte {
	data, err := dataFS.ReadFile("data/layout.schema.json")
	if err != nil {
		panic("layout schema missing from embedded data: " + err.Error())
	}
	return data
}

// Builtin decodes the embedded layout, deadkey and symbol tables.
func Builtin() (*Set, error) {
	set := &Set{}

	for _, name := range builtinLayoutFiles {
		data, err := dataFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		tables, err := Decode(data, FormatTOML)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		set.Layouts = append(set.Layouts, tables...)
	}

	var deadkeys struct {
		Deadkeys map[string]string `toml:"deadkeys"`
	}
	if err := decodeEmbedded("data/deadkeys.toml", &deadkeys); err != nil {
		return nil, err
	}
	set.Deadkeys = deadkeys.Deadkeys

	var symbols struct {
		Symbols map[string]string `toml:"symbols"`
	}
	if err := decodeEmbedded("data/symbols.toml", &symbols); err != nil {
		return nil, err
	}
	set.Symbols = symbols.Symbols

	return set, nil
}

func decodeEmbedded(name string, v any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return err
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Compose applies a combining mark to base and returns the precomposed glyph.
// It fails when Unicode has no single code point for the combination.
func Compose(mark, base string) (string, bool) {
	if mark == "" || utf8.RuneCountInString(base) != 1 {
		return "", false
	}
	out := norm.NFC.String(base + mark)
	if utf8.RuneCountInString(out) != 1 {
		return "", false
	}
	return out, true
}

// Deadkey composes base with the accent of a dead key.
func (s *Set) Deadkey(accent, base string) (string, bool) {
	mark, ok := s.Deadkeys[accent]
	if !ok {
		return "", false
	}
	return Compose(mark, base)
}
