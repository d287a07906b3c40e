package text

import (
	"bytes"

	"github.com/go-text/typesetting/font"
)

// CheckCoverage verifies that src has a glyph for every rune in runes,
// using the font's cmap as read by go-text/typesetting. The space rune is
// always accepted since blank cells are never drawn.
//
// Missing runes are reported once each, in first-seen order, in a
// *MissingGlyphsError.
func CheckCoverage(src *FontSource, runes []rune) error {
	face, err := font.ParseTTF(bytes.NewReader(src.Data()))
	if err != nil {
		return &FontError{Reason: "failed to read cmap", Err: err}
	}

	var missing []rune
	seen := make(map[rune]bool, len(runes))
	for _, r := range runes {
		if r == ' ' || seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := face.Font.NominalGlyph(r); !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return &MissingGlyphsError{Font: src.Name(), Runes: missing}
	}
	return nil
}
