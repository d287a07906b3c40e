package text

import "math"

// BasePPEM is the glyph size, in pixels per em, at a font scale of 1.
// It approximates the size of an OpenCV Hershey font drawn at scale 1.
const BasePPEM = 30.0

// Metrics holds font metrics at a specific size, in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font,
	// stored as a positive value.
	Descent float64

	// LineGap is the recommended gap between lines.
	LineGap float64

	// XHeight is the height of lowercase letters.
	XHeight float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// Rect is an axis-aligned box in pixels.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Style fixes how glyphs are rasterized for one run.
type Style struct {
	// PPEM is the font size in pixels per em.
	PPEM float64
	// Thickness is the stroke thickness in pixels; 1 is the bare outline fill.
	Thickness int
	// Antialias keeps fractional edge coverage; otherwise masks are binary.
	Antialias bool
}

func (st Style) validate() error {
	if !(st.PPEM > 0) || math.IsInf(st.PPEM, 1) || st.Thickness < 1 {
		return ErrInvalidStyle
	}
	return nil
}

// CellSize derives the square cell size for a style: the reference glyph's
// box (its advance, or the cap height grown by the extra stroke, whichever is
// larger) multiplied by textOffset and truncated. The result is at least 1.
func CellSize(src *FontSource, ref rune, st Style, textOffset float64) (int, error) {
	if err := st.validate(); err != nil {
		return 0, err
	}
	m, err := src.Metrics(st.PPEM)
	if err != nil {
		return 0, err
	}
	advance, _, err := src.GlyphBox(ref, st.PPEM)
	if err != nil {
		return 0, err
	}

	box := max(advance, m.CapHeight+float64(st.Thickness-1))
	cell := int(box * textOffset)
	if cell < 1 {
		cell = 1
	}
	return cell, nil
}
