package vkeyboard

import (
	"testing"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/layouts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLayoutRegistry_Builtins(t *testing.T) {
	r := newTestRegistry(t)

	names := r.LayoutNames()
	assert.Contains(t, names, "US International")
	assert.Contains(t, names, "Numpad")
	assert.IsIncreasing(t, names)
	assert.Equal(t, DefaultLayoutName, r.CurrentLayout())

	us, ok := r.Layout("US International")
	require.True(t, ok)
	key, ok := us.KeyAt(0, 13)
	require.True(t, ok)
	assert.Equal(t, KindBackspace, key.Kind)
	key, _ = us.KeyAt(4, 0)
	assert.Equal(t, KindSpace, key.Kind)
	key, _ = us.KeyAt(4, 1)
	assert.Equal(t, KindAlt, key.Kind)
	assert.Equal(t, []language.Tag{language.English, language.AmericanEnglish}, us.Lang)

	_, ok = r.Layout("nonexistent")
	assert.False(t, ok)
}

func TestLayoutRegistry_LayoutIsACopy(t *testing.T) {
	r := newTestRegistry(t)

	first, _ := r.Layout("Numpad")
	first.Rows[0][0] = Key{Base: "x"}

	second, _ := r.Layout("Numpad")
	assert.Equal(t, "7", second.Rows[0][0].Base)
}

func TestLayoutRegistry_AddLayoutRejectsDuplicate(t *testing.T) {
	logger, buf := bufferLogger()
	r := newTestRegistry(t, WithRegistryLogger(logger))
	original, _ := r.Layout("US International")

	added := r.AddLayout("US International", [][]Key{{{Base: "z"}}})

	assert.False(t, added)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), "US International")

	got, ok := r.Layout("US International")
	require.True(t, ok)
	assert.Equal(t, original, got)
}

func TestLayoutRegistry_AddLayoutRejectsEmptyName(t *testing.T) {
	logger, buf := bufferLogger()
	r := NewLayoutRegistry(WithRegistryLogger(logger))

	assert.False(t, r.AddLayout("", [][]Key{{{Base: "a"}}}))
	assert.Empty(t, r.LayoutNames())
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestLayoutRegistry_AddLayoutCopiesRows(t *testing.T) {
	r := NewLayoutRegistry(WithRegistryLogger(discardLogger()))
	rows := [][]Key{{{Base: "a", Shifted: "A"}}}

	require.True(t, r.AddLayout("Mini", rows))
	rows[0][0] = Key{Base: "b"}

	got, _ := r.Layout("Mini")
	assert.Equal(t, "a", got.Rows[0][0].Base)
}

func TestLayoutRegistry_UseLayoutNotifiesOnRejection(t *testing.T) {
	logger, buf := bufferLogger()
	r := newTestRegistry(t, WithRegistryLogger(logger))

	var changes []LayoutChange
	r.Subscribe(func(c LayoutChange) { changes = append(changes, c) })

	r.UseLayout("nonexistent")

	assert.Equal(t, DefaultLayoutName, r.CurrentLayout())
	assert.Equal(t, []LayoutChange{{Name: DefaultLayoutName, Known: false}}, changes)
	assert.Contains(t, buf.String(), "nonexistent")
}

func TestLayoutRegistry_UseLayout(t *testing.T) {
	r := newTestRegistry(t)

	var changes []LayoutChange
	sub := r.Subscribe(func(c LayoutChange) { changes = append(changes, c) })

	r.UseLayout("Deutsch")
	assert.Equal(t, "Deutsch", r.CurrentLayout())

	r.UseLayout("")
	assert.Equal(t, "Deutsch", r.CurrentLayout())

	sub.Unsubscribe()
	sub.Unsubscribe()
	r.UseLayout("Numpad")

	assert.Equal(t, []LayoutChange{
		{Name: "Deutsch", Known: true},
		{Name: "Deutsch", Known: false},
	}, changes)
}

func TestLayoutRegistry_SetDefaultLayoutDoesNotNotify(t *testing.T) {
	r := newTestRegistry(t)

	notified := false
	r.Subscribe(func(LayoutChange) { notified = true })

	r.SetDefaultLayout("Français")
	r.SetDefaultLayout("Klingon")

	assert.Equal(t, "Français", r.CurrentLayout())
	assert.False(t, notified)
}

func TestLayoutRegistry_UnknownLayoutSuggestion(t *testing.T) {
	logger, buf := bufferLogger()
	r := newTestRegistry(t, WithRegistryLogger(logger))

	r.SetDefaultLayout("Deutch")

	assert.Contains(t, buf.String(), `"suggestion":"Deutsch"`)
}

func TestLayoutRegistry_AddTables(t *testing.T) {
	r := NewLayoutRegistry(WithRegistryLogger(discardLogger()))

	err := r.AddTables([]layouts.Table{
		{Name: "Good", Lang: []string{"nl"}, Rows: [][]layouts.KeySpec{{{Base: "⌫", Kind: "backspace"}, {Base: "a", Shifted: "A"}}}},
		{Name: "BadLang", Lang: []string{"!!"}, Rows: [][]layouts.KeySpec{{{Base: "a"}}}},
		{Name: "BadKind", Rows: [][]layouts.KeySpec{{{Base: "a", Kind: "hyper"}}}},
	})

	require.Error(t, err)
	assert.Equal(t, []string{"Good"}, r.LayoutNames())

	good, _ := r.Layout("Good")
	assert.Equal(t, KindBackspace, good.Rows[0][0].Kind)
	assert.Equal(t, Key{Base: "a", Shifted: "A", Kind: KindCharacter}, good.Rows[0][1])
}

func TestLayoutRegistry_AuxiliaryTables(t *testing.T) {
	r := newTestRegistry(t)

	got, ok := r.Deadkey("´", "e")
	assert.True(t, ok)
	assert.Equal(t, "é", got)

	_, ok = r.Deadkey("x", "e")
	assert.False(t, ok)

	caption, ok := r.SymbolCaption("\u00a0")
	assert.True(t, ok)
	assert.Equal(t, "NB\nSP", caption)

	symbols := r.Symbols()
	delete(symbols, "\u00a0")
	_, ok = r.SymbolCaption("\u00a0")
	assert.True(t, ok)
}

func TestLayoutRegistry_LayoutForLanguage(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		tag  language.Tag
		want string
		ok   bool
	}{
		{language.German, "Deutsch", true},
		{language.MustParse("de-CH"), "Deutsch", true},
		{language.MustParse("fr-CA"), "Français", true},
		{language.BritishEnglish, "US International", true},
		{language.Japanese, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			got, ok := r.LayoutForLanguage(tt.tag)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	empty := NewLayoutRegistry(WithRegistryLogger(discardLogger()))
	_, ok := empty.LayoutForLanguage(language.German)
	assert.False(t, ok)
}

func TestKeyKind(t *testing.T) {
	kind, err := ParseKeyKind("capsLock")
	require.NoError(t, err)
	assert.Equal(t, KindCapsLock, kind)

	_, err = ParseKeyKind("hyper")
	assert.Error(t, err)

	assert.Equal(t, KindAlt, InferKeyKind("AltLk"))
	assert.Equal(t, KindSpacer, InferKeyKind("spacer"))
	assert.Equal(t, KindCharacter, InferKeyKind("q"))

	assert.Equal(t, "key-bksp", Key{Base: "Bksp", Kind: KindBackspace}.Class())
	assert.Equal(t, "key-altgr", Key{Base: "AltGr", Kind: KindAlt}.Class())
	assert.Equal(t, "key-enter", Key{Base: "Enter", Kind: KindEnter}.Class())
	assert.Equal(t, "spacer", Key{Kind: KindSpacer}.Class())
}

func TestLayoutRegistry_Caption(t *testing.T) {
	r := newTestRegistry(t)

	letter := Key{Base: "a", Shifted: "A"}
	assert.Equal(t, "a", r.Caption(letter, ModifierState{}))
	assert.Equal(t, "A", r.Caption(letter, ModifierState{CapsLocked: true}))
	assert.Equal(t, "ZWSP", r.Caption(Key{Base: "\u200b"}, ModifierState{}))
	assert.Equal(t, "Enter", r.Caption(Key{Base: "Enter", Kind: KindEnter}, ModifierState{}))
	assert.Equal(t, "Space", r.Caption(Key{Base: " ", Kind: KindSpace}, ModifierState{}))
	assert.Equal(t, "", r.Caption(Key{Kind: KindSpacer}, ModifierState{}))
}
