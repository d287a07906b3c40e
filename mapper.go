package asciiart

// GlyphIndex maps a brightness sample to a ramp index for a ramp of n entries:
// floor(sample/256 * n), clamped to [0, n-1]. Sample 255 always maps to n-1,
// including ramps longer than 256 entries where the plain formula stops short.
// n must be positive.
func GlyphIndex(sample uint8, n int) int {
	if sample == 255 {
		return n - 1
	}
	idx := int(sample) * n / 256
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Glyph returns the ramp entry for a brightness sample.
func Glyph(sample uint8, ramp *Ramp) rune {
	return ramp.glyphs[GlyphIndex(sample, len(ramp.glyphs))]
}

// Mapper is the memoized brightness-to-glyph function for one ramp.
// All 256 results are computed once at construction, so the table can never
// go stale: a different ramp means a different Mapper.
//
// Mapper is safe for concurrent use.
type Mapper struct {
	ramp  *Ramp
	table [256]rune
}

// NewMapper precomputes the glyph for every brightness level of ramp.
func NewMapper(ramp *Ramp) *Mapper {
	m := &Mapper{ramp: ramp}
	for s := range m.table {
		m.table[s] = Glyph(uint8(s), ramp)
	}
	return m
}

// Glyph returns the glyph for sample.
func (m *Mapper) Glyph(sample uint8) rune {
	return m.table[sample]
}

// Ramp returns the ramp the mapper was built from.
func (m *Mapper) Ramp() *Ramp {
	return m.ramp
}
