package vkeyboard

import (
	"strings"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/i18n"
)

// Caption returns the text a renderer draws on key. Character keys show the
// glyph they would insert, invisible glyphs show their symbol caption and
// control keys show a localized name.
func (r *LayoutRegistry) Caption(key Key, mods ModifierState) string {
	switch key.Kind {
	case KindSpacer:
		return ""
	case KindCharacter:
		glyph := ResolveGlyph(key, mods.CapsLocked, mods.ShiftActive)
		if caption, ok := r.SymbolCaption(glyph); ok {
			return strings.ReplaceAll(caption, "\n", "")
		}
		return glyph
	case KindAlt:
		return key.Base
	}
	if caption := i18n.Caption(key.Kind.String()); caption != "" {
		return caption
	}
	return key.Base
}
