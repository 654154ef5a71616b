// Package layouts loads keyboard layout tables from the embedded defaults and
// from user supplied TOML, YAML or JSON files.
package layouts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat = errors.New("unknown layout file format")
	ErrInvalidLayout = errors.New("invalid layout file")
)

// Format is a layout file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	}
	return "unknown"
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(path))
}

// KeySpec is a key as written in a layout file. It is either the compact
// [base, shifted] array or a {base, shifted, kind} object.
type KeySpec struct {
	Base    string `json:"base"`
	Shifted string `json:"shifted,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func (k *KeySpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pair []string
		if err := json.Unmarshal(trimmed, &pair); err != nil {
			return err
		}
		if len(pair) == 0 {
			return fmt.Errorf("%w: empty key", ErrInvalidLayout)
		}
		k.Base = pair[0]
		if len(pair) > 1 {
			k.Shifted = pair[1]
		}
		return nil
	}

	type plain KeySpec
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*k = KeySpec(p)
	return nil
}

// Table is one layout as written in a file.
type Table struct {
	Name string      `json:"name"`
	Lang []string    `json:"lang,omitempty"`
	Rows [][]KeySpec `json:"rows"`
}

type file struct {
	Layouts []Table `json:"layout"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func layoutSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("layout.schema.json", string(Schema()))
	})
	return schema, schemaErr
}

// Decode parses and validates a layout file.
func Decode(data []byte, format Format) ([]Table, error) {
	var raw map[string]any

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}

	// round trip through JSON so the validator and the typed decode see the
	// same value shapes regardless of the source encoding
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", format, err)
	}

	var instance any
	if err := json.Unmarshal(normalized, &instance); err != nil {
		return nil, fmt.Errorf("normalize %s: %w", format, err)
	}

	sch, err := layoutSchema()
	if err != nil {
		return nil, fmt.Errorf("compile layout schema: %w", err)
	}
	if err := sch.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	var f file
	if err := json.Unmarshal(normalized, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	return f.Layouts, nil
}

// LoadFile reads and decodes a layout file, choosing the format by extension.
func LoadFile(path string) ([]Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tables, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return tables, nil
}

// LoadDir decodes every supported file directly inside dir.
// Files that fail to decode are reported in the joined error but do not stop the scan.
func LoadDir(dir string) ([]Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var tables []Table
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := FormatFromPath(path); err != nil {
			continue
		}
		loaded, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tables = append(tables, loaded...)
	}

	return tables, errors.Join(errs...)
}
