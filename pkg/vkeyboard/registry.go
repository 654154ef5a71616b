package vkeyboard

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"sync"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/i18n"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/internal"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/layouts"
	"golang.org/x/text/language"
)

// DefaultLayoutName is the layout selected until SetDefaultLayout or UseLayout picks another.
const DefaultLayoutName = "US International"

// LayoutChange is broadcast every time UseLayout runs. Name is the layout in
// use afterwards and Known reports whether the requested name was registered.
type LayoutChange struct {
	Name  string
	Known bool
}

type subscriber struct {
	id uint64
	fn func(LayoutChange)
}

// Subscription is a registered layout change listener.
type Subscription struct {
	id       uint64
	registry *LayoutRegistry
}

// Unsubscribe stops delivery to the listener. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.registry == nil {
		return
	}
	s.registry.unsubscribe(s.id)
	s.registry = nil
}

// LayoutRegistry holds the named layouts and the auxiliary glyph tables.
// Layouts are append-only: nothing replaces or removes a registered layout.
type LayoutRegistry struct {
	mu       sync.RWMutex
	layouts  map[string]*Layout
	order    []string
	current  string
	deadkeys map[string]string
	symbols  map[string]string

	subs   []subscriber
	nextID uint64

	logger *slog.Logger
}

type RegistryOption func(*LayoutRegistry)

// WithRegistryLogger sets the logger configuration warnings are written to.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *LayoutRegistry) {
		r.logger = logger
	}
}

// NewLayoutRegistry returns an empty registry. Call LoadBuiltins to add the
// shipped layouts.
func NewLayoutRegistry(opts ...RegistryOption) *LayoutRegistry {
	r := &LayoutRegistry{
		layouts:  make(map[string]*Layout),
		current:  DefaultLayoutName,
		deadkeys: make(map[string]string),
		symbols:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = internal.GetInternalLogger()
	}
	return r
}

// LoadBuiltins registers the embedded layouts and glyph tables.
func (r *LayoutRegistry) LoadBuiltins() error {
	set, err := layouts.Builtin()
	if err != nil {
		return fmt.Errorf("load builtin layouts: %w", err)
	}

	r.mu.Lock()
	maps.Copy(r.deadkeys, set.Deadkeys)
	maps.Copy(r.symbols, set.Symbols)
	r.mu.Unlock()

	return r.AddTables(set.Layouts)
}

// AddTables converts decoded layout tables and registers them. Tables that
// fail to convert are skipped and reported in the joined error; duplicates
// are skipped with a warning like AddLayout.
func (r *LayoutRegistry) AddTables(tables []layouts.Table) error {
	var errs []error
	for _, table := range tables {
		layout, err := layoutFromTable(table)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if r.add(layout) {
			r.logger.Debug("Registered keyboard layout", "layout", layout.Name, "keys", layout.KeyCount())
		}
	}
	return errors.Join(errs...)
}

func layoutFromTable(table layouts.Table) (*Layout, error) {
	layout := &Layout{Name: table.Name}

	for _, code := range table.Lang {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("layout %q: %w", table.Name, err)
		}
		layout.Lang = append(layout.Lang, tag)
	}

	layout.Rows = make([][]Key, 0, len(table.Rows))
	for _, row := range table.Rows {
		keys := make([]Key, 0, len(row))
		for _, spec := range row {
			kind := InferKeyKind(spec.Base)
			if spec.Kind != "" {
				parsed, err := ParseKeyKind(spec.Kind)
				if err != nil {
					return nil, fmt.Errorf("layout %q: %w", table.Name, err)
				}
				kind = parsed
			}
			keys = append(keys, Key{Base: spec.Base, Shifted: spec.Shifted, Kind: kind})
		}
		layout.Rows = append(layout.Rows, keys)
	}

	return layout, nil
}

// AddLayout registers a layout under name and reports whether it was added.
// Empty and already registered names are rejected with a warning.
func (r *LayoutRegistry) AddLayout(name string, rows [][]Key) bool {
	return r.add(&Layout{Name: name, Rows: cloneRows(rows)})
}

func (r *LayoutRegistry) add(layout *Layout) bool {
	if layout.Name == "" {
		r.logger.Warn(i18n.GetString("layout_unnamed"))
		return false
	}

	r.mu.Lock()
	if _, exists := r.layouts[layout.Name]; exists {
		r.mu.Unlock()
		r.logger.Warn(i18n.GetStringWithData("layout_duplicate", map[string]any{"Name": layout.Name}),
			"layout", layout.Name)
		return false
	}
	r.layouts[layout.Name] = layout
	r.order = append(r.order, layout.Name)
	r.mu.Unlock()

	return true
}

// Layout returns a copy of the named layout.
func (r *LayoutRegistry) Layout(name string) (*Layout, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	layout, ok := r.layouts[name]
	if !ok {
		return nil, false
	}
	return layout.clone(), true
}

// LayoutNames returns the registered names in sorted order.
func (r *LayoutRegistry) LayoutNames() []string {
	r.mu.RLock()
	names := append([]string(nil), r.order...)
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// CurrentLayout returns the name of the layout new sessions start with.
func (r *LayoutRegistry) CurrentLayout() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetDefaultLayout points the registry at name. Unknown names are logged and ignored.
func (r *LayoutRegistry) SetDefaultLayout(name string) {
	r.selectLayout(name)
}

// UseLayout selects name like SetDefaultLayout and then notifies subscribers,
// even when the name was rejected.
func (r *LayoutRegistry) UseLayout(name string) {
	known, current := r.selectLayout(name)
	r.notify(LayoutChange{Name: current, Known: known})
}

func (r *LayoutRegistry) selectLayout(name string) (bool, string) {
	r.mu.Lock()
	_, known := r.layouts[name]
	if known {
		r.current = name
	}
	current := r.current
	r.mu.Unlock()

	if !known && name != "" {
		r.warnUnknown(name, current)
	}
	return known, current
}

func (r *LayoutRegistry) warnUnknown(name, current string) {
	msg := i18n.GetStringWithData("layout_unknown", map[string]any{"Name": name, "Current": current})

	if suggestion, ok := internal.Suggest(name, r.LayoutNames()); ok {
		msg += " " + i18n.GetStringWithData("layout_suggestion", map[string]any{"Suggestion": suggestion})
		r.logger.Warn(msg, "layout", name, "current", current, "suggestion", suggestion)
		return
	}
	r.logger.Warn(msg, "layout", name, "current", current)
}

// Subscribe registers fn for layout change notifications. Notifications are
// delivered synchronously on the goroutine that called UseLayout.
func (r *LayoutRegistry) Subscribe(fn func(LayoutChange)) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.subs = append(r.subs, subscriber{id: r.nextID, fn: fn})
	return &Subscription{id: r.nextID, registry: r}
}

func (r *LayoutRegistry) unsubscribe(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, sub := range r.subs {
		if sub.id == id {
			r.subs = append(r.subs[:idx], r.subs[idx+1:]...)
			return
		}
	}
}

func (r *LayoutRegistry) notify(change LayoutChange) {
	r.mu.RLock()
	subs := append([]subscriber(nil), r.subs...)
	r.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(change)
	}
}

// Deadkey composes base with the accent of a dead key, e.g. "´" and "e" give "é".
func (r *LayoutRegistry) Deadkey(accent, base string) (string, bool) {
	r.mu.RLock()
	mark, ok := r.deadkeys[accent]
	r.mu.RUnlock()

	if !ok {
		return "", false
	}
	return layouts.Compose(mark, base)
}

// SymbolCaption returns the caption renderers show for an invisible glyph.
func (r *LayoutRegistry) SymbolCaption(glyph string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caption, ok := r.symbols[glyph]
	return caption, ok
}

// Symbols returns a copy of the invisible glyph caption table.
func (r *LayoutRegistry) Symbols() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.symbols)
}

// LayoutForLanguage returns the registered layout that best fits tag.
func (r *LayoutRegistry) LayoutForLanguage(tag language.Tag) (string, bool) {
	r.mu.RLock()
	var tags []language.Tag
	var names []string
	for _, name := range r.order {
		for _, lang := range r.layouts[name].Lang {
			tags = append(tags, lang)
			names = append(names, name)
		}
	}
	r.mu.RUnlock()

	if len(tags) == 0 {
		return "", false
	}

	_, idx, confidence := language.NewMatcher(tags).Match(tag)
	if confidence == language.No {
		return "", false
	}
	return names[idx], true
}
