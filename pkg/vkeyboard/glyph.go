package vkeyboard

// ResolveGlyph returns the glyph a character key inserts.
//
//	capsLocked  shiftActive  glyph
//	false       false        base
//	true        false        shifted
//	false       true         shifted
//	true        true         base
//
// Keys without a shifted form always insert their base glyph.
func ResolveGlyph(key Key, capsLocked, shiftActive bool) string {
	if capsLocked != shiftActive && key.HasShifted() {
		return key.Shifted
	}
	return key.Base
}
