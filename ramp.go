package asciiart

import (
	"slices"
	"unicode/utf8"
)

// DefaultGlyphs is the calibrated glyph ramp, ordered from the glyph that looks
// darkest on a dark canvas to the one that looks lightest. It was measured
// offline by rendering every candidate character and averaging its ink.
const DefaultGlyphs = ".',`:_;-!liI^rv1/ftj~><L*J7T+y?)(cnus=xYVzF}{oha][kAeC4wUX3bdpqZP2EH05GSgOK96DmNR8QBWM&%#@$"

// blank is the padding glyph appended at the bright end of a ramp.
const blank = ' '

// Ramp is an immutable ordered sequence of glyphs from visually darkest to
// visually lightest on the canvas it was built for.
//
// Ramp is safe for concurrent use.
type Ramp struct {
	glyphs []rune
}

// NewRamp builds a ramp from glyphs, appends padding blanks at the
// maximum-brightness end and, for a light background, reverses the whole
// sequence. Identical inputs always produce identical ramps.
//
// The padding blanks act as a sparsity knob: the more of them, the larger the
// share of bright samples rendered as empty cells.
func NewRamp(glyphs string, padding int, bg Background) (*Ramp, error) {
	if glyphs == "" {
		return nil, configErr("glyphs", nil, "ramp needs at least one glyph")
	}
	if !utf8.ValidString(glyphs) {
		return nil, configErr("glyphs", glyphs, "not valid UTF-8")
	}
	if padding < 0 {
		return nil, configErr("padding", padding, "must be >= 0")
	}
	if !bg.valid() {
		return nil, configErr("background", bg, "unknown background mode")
	}

	src := []rune(glyphs)
	out := make([]rune, 0, len(src)+padding)
	out = append(out, src...)
	for range padding {
		out = append(out, blank)
	}
	if bg == BackgroundLight {
		slices.Reverse(out)
	}
	return &Ramp{glyphs: out}, nil
}

// Len returns the number of entries, padding included.
func (r *Ramp) Len() int {
	return len(r.glyphs)
}

// At returns the glyph at index i. It panics if i is out of range.
func (r *Ramp) At(i int) rune {
	return r.glyphs[i]
}

// Runes returns a copy of the ramp entries.
func (r *Ramp) Runes() []rune {
	return slices.Clone(r.glyphs)
}

// Distinct returns each glyph of the ramp once, in first-occurrence order.
func (r *Ramp) Distinct() []rune {
	seen := make(map[rune]struct{}, len(r.glyphs))
	out := make([]rune, 0, len(r.glyphs))
	for _, g := range r.glyphs {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// String returns the ramp as a string.
func (r *Ramp) String() string {
	return string(r.glyphs)
}

// Equal reports whether both ramps hold the same glyph sequence.
func (r *Ramp) Equal(other *Ramp) bool {
	if r == nil || other == nil {
		return r == other
	}
	return slices.Equal(r.glyphs, other.glyphs)
}
