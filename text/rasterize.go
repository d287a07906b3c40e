package text

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// aliasThreshold is the coverage at or above which an aliased mask pixel is set.
const aliasThreshold = 0x80

// Rasterizer renders single glyphs of one FontSource into cell-sized alpha
// masks. The glyph ink box is centred horizontally in the cell and the cap
// height is centred vertically, so every glyph of a ramp shares one baseline.
//
// Rasterizer is safe for concurrent use.
type Rasterizer struct {
	src       *FontSource
	style     Style
	cell      int
	ppem      fixed.Int26_6
	capHeight float64
}

// NewRasterizer prepares a rasterizer for masks of cell×cell pixels.
func NewRasterizer(src *FontSource, st Style, cell int) (*Rasterizer, error) {
	if err := st.validate(); err != nil {
		return nil, err
	}
	if cell < 1 {
		return nil, &FontError{Reason: "cell size must be positive"}
	}
	m, err := src.Metrics(st.PPEM)
	if err != nil {
		return nil, err
	}
	return &Rasterizer{
		src:       src,
		style:     st,
		cell:      cell,
		ppem:      toFixed(st.PPEM),
		capHeight: m.CapHeight,
	}, nil
}

// Rasterize returns the mask for r. Glyphs without an outline (space)
// produce an all-zero mask.
func (z *Rasterizer) Rasterize(r rune) (*image.Alpha, error) {
	var buf sfnt.Buffer
	f := z.src.font

	gid, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return nil, &FontError{Reason: "glyph lookup failed", Err: err}
	}
	segs, err := f.LoadGlyph(&buf, gid, z.ppem, nil)
	if err != nil {
		return nil, &FontError{Reason: "failed to load glyph " + string(r), Err: err}
	}

	mask := image.NewAlpha(image.Rect(0, 0, z.cell, z.cell))
	if len(segs) == 0 {
		return mask, nil
	}

	bounds, _, err := f.GlyphBounds(&buf, gid, z.ppem, font.HintingNone)
	if err != nil {
		return nil, &FontError{Reason: "glyph bounds failed", Err: err}
	}
	c := float64(z.cell)
	ox := (c - fixedToFloat64(bounds.Min.X+bounds.Max.X)) / 2
	oy := (c + z.capHeight) / 2
	origin := rasterx.ToFixedP(ox, oy)

	filler := rasterx.NewFiller(z.cell, z.cell, rasterx.NewScannerGV(z.cell, z.cell, mask, mask.Bounds()))
	filler.SetColor(color.Opaque)
	trace(filler, segs, origin)
	filler.Draw()

	if z.style.Thickness > 1 {
		stroker := rasterx.NewStroker(z.cell, z.cell, rasterx.NewScannerGV(z.cell, z.cell, mask, mask.Bounds()))
		width := fixed.Int26_6((z.style.Thickness - 1) * 64)
		stroker.SetStroke(width, fixed.I(4), rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
		stroker.SetColor(color.Opaque)
		trace(stroker, segs, origin)
		stroker.Draw()
	}

	if !z.style.Antialias {
		for i, a := range mask.Pix {
			if a >= aliasThreshold {
				mask.Pix[i] = 0xff
			} else {
				mask.Pix[i] = 0
			}
		}
	}
	return mask, nil
}

// trace feeds sfnt outline segments, shifted by origin, into a rasterx path.
func trace(p rasterx.Adder, segs sfnt.Segments, origin fixed.Point26_6) {
	open := false
	for _, seg := range segs {
		a0 := seg.Args[0].Add(origin)
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Stop(true)
			}
			p.Start(a0)
			open = true
		case sfnt.SegmentOpLineTo:
			p.Line(a0)
		case sfnt.SegmentOpQuadTo:
			p.QuadBezier(a0, seg.Args[1].Add(origin))
		case sfnt.SegmentOpCubeTo:
			p.CubeBezier(a0, seg.Args[1].Add(origin), seg.Args[2].Add(origin))
		}
	}
	if open {
		p.Stop(true)
	}
}
