// Package text turns fonts into cell-sized glyph masks for the ASCII-art
// renderer.
//
// The pipeline is split the same way for every run:
//
//   - FontSource: heavyweight parsed font (built-in Go fonts or a TTF/OTF file)
//   - Rasterizer: glyph outline to alpha mask, with stroke thickness and
//     aliased or antialiased edges (github.com/srwiley/rasterx)
//   - Atlas: the read-only set of masks for one ramp, one mask per glyph,
//     each exactly one cell wide and high
//
// # Example usage
//
//	src, err := text.FamilySource(text.FamilyMono)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	style := text.Style{PPEM: 12, Thickness: 1}
//	cell, err := text.CellSize(src, '.', style, 1.3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	atlas, err := text.NewAtlas(src, []rune(" .:-=+*#%@"), cell, style)
//
// Masks are cached process-wide in a bounded LRU (see DefaultMaskCache), so
// renderers built with the same font and style share rasterization work.
package text
