package text

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// sourceIDs hands out process-unique FontSource identifiers for cache keys.
var sourceIDs atomic.Uint64

// FontSource represents a parsed font file.
// FontSource is heavyweight and should be shared; see FamilySource.
//
// FontSource is safe for concurrent use: every method uses its own
// sfnt.Buffer. It must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr points to the FontSource itself for copy detection.
	addr *FontSource

	id   uint64
	data []byte
	font *opentype.Font
	name string
}

// NewFontSource parses TTF or OTF data. The data slice is copied and can be
// reused after the call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &FontError{Reason: "failed to parse font", Err: err}
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{
		id:   sourceIDs.Add(1),
		data: dataCopy,
		font: f,
	}
	s.addr = s
	s.name = fontName(f)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name, or "Unknown Font".
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// ID returns the process-unique identifier of the source.
func (s *FontSource) ID() uint64 {
	s.copyCheck()
	return s.id
}

// Metrics returns the font metrics at ppem pixels per em.
func (s *FontSource) Metrics(ppem float64) (Metrics, error) {
	s.copyCheck()

	var buf sfnt.Buffer
	m, err := s.font.Metrics(&buf, toFixed(ppem), font.HintingNone)
	if err != nil {
		return Metrics{}, &FontError{Reason: "failed to read metrics", Err: err}
	}

	descent := fixedToFloat64(m.Descent)
	if descent < 0 {
		descent = -descent
	}
	capHeight := fixedToFloat64(m.CapHeight)
	if capHeight <= 0 {
		// Some fonts leave the OS/2 cap height empty.
		capHeight = fixedToFloat64(m.Ascent) * 0.7
	}
	return Metrics{
		Ascent:    fixedToFloat64(m.Ascent),
		Descent:   descent,
		LineGap:   fixedToFloat64(m.Height) - fixedToFloat64(m.Ascent) - descent,
		XHeight:   fixedToFloat64(m.XHeight),
		CapHeight: capHeight,
	}, nil
}

// GlyphBox returns the advance and ink bounds of r at ppem. Bounds use the
// font.Drawer convention: origin on the baseline, y growing downwards.
func (s *FontSource) GlyphBox(r rune, ppem float64) (advance float64, bounds Rect, err error) {
	s.copyCheck()

	var buf sfnt.Buffer
	gid, err := s.font.GlyphIndex(&buf, r)
	if err != nil {
		return 0, Rect{}, &FontError{Reason: "glyph lookup failed", Err: err}
	}
	b, adv, err := s.font.GlyphBounds(&buf, gid, toFixed(ppem), font.HintingNone)
	if err != nil {
		return 0, Rect{}, &FontError{Reason: "glyph bounds failed", Err: err}
	}
	return fixedToFloat64(adv), Rect{
		MinX: fixedToFloat64(b.Min.X),
		MinY: fixedToFloat64(b.Min.Y),
		MaxX: fixedToFloat64(b.Max.X),
		MaxY: fixedToFloat64(b.Max.Y),
	}, nil
}

// HasGlyph reports whether the font maps r to a real glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	s.copyCheck()

	var buf sfnt.Buffer
	gid, err := s.font.GlyphIndex(&buf, r)
	return err == nil && gid != 0
}

// Data returns the raw font bytes. The slice must not be modified.
func (s *FontSource) Data() []byte {
	s.copyCheck()
	return s.data
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

func fontName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
