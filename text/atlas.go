package text

import (
	"hash/fnv"
	"image"
	"math"

	"github.com/gogpu/asciiart/cache"
)

// GlyphKey identifies one rasterized mask.
type GlyphKey struct {
	Source    uint64
	PPEM      int32 // 26.6 fixed point
	Thickness int
	Antialias bool
	Cell      int
	Rune      rune
}

// hashGlyphKey is the cache.Hasher for GlyphKey (FNV-1a over the fields).
func hashGlyphKey(k GlyphKey) uint64 {
	var b [33]byte
	put := func(off int, v uint64) {
		for i := range 8 {
			b[off+i] = byte(v >> (8 * i))
		}
	}
	put(0, k.Source)
	put(8, uint64(uint32(k.PPEM))|uint64(uint32(k.Rune))<<32)
	put(16, uint64(k.Thickness))
	put(24, uint64(k.Cell))
	if k.Antialias {
		b[32] = 1
	}
	h := fnv.New64a()
	_, _ = h.Write(b[:]) // fnv.Write never returns an error
	return h.Sum64()
}

// DefaultMaskCache holds rasterized masks shared by every Atlas in the
// process. Capacity is bounded, so unrelated configurations only evict each
// other's entries. Cached masks are read-only.
var DefaultMaskCache = cache.NewSharded[GlyphKey, *image.Alpha](256, hashGlyphKey)

// Atlas is the set of cell-sized masks for the glyphs of one ramp.
// An Atlas is read-only after NewAtlas returns, so row workers can share it.
type Atlas struct {
	cell  int
	masks map[rune]*image.Alpha
}

// NewAtlas rasterizes every rune in runes into a cell×cell mask.
func NewAtlas(src *FontSource, runes []rune, cell int, st Style) (*Atlas, error) {
	z, err := NewRasterizer(src, st, cell)
	if err != nil {
		return nil, err
	}

	ppem := int32(math.Round(st.PPEM * 64))
	a := &Atlas{
		cell:  cell,
		masks: make(map[rune]*image.Alpha, len(runes)),
	}
	for _, r := range runes {
		if _, ok := a.masks[r]; ok {
			continue
		}
		key := GlyphKey{
			Source:    src.ID(),
			PPEM:      ppem,
			Thickness: st.Thickness,
			Antialias: st.Antialias,
			Cell:      cell,
			Rune:      r,
		}
		mask, err := DefaultMaskCache.GetOrCreate(key, func() (*image.Alpha, error) {
			return z.Rasterize(r)
		})
		if err != nil {
			return nil, err
		}
		a.masks[r] = mask
	}
	return a, nil
}

// Mask returns the mask for r. ok is false if r was not part of the atlas.
func (a *Atlas) Mask(r rune) (mask *image.Alpha, ok bool) {
	mask, ok = a.masks[r]
	return mask, ok
}

// CellSize returns the mask width and height in pixels.
func (a *Atlas) CellSize() int {
	return a.cell
}

// Len returns the number of distinct glyphs in the atlas.
func (a *Atlas) Len() int {
	return len(a.masks)
}
