// Package asciiart renders images and video frames as ASCII art.
//
// # Overview
//
// Every frame is downsampled by a scale factor. Each remaining pixel becomes
// one square glyph cell: its brightness picks a glyph from a calibrated ramp,
// and the glyph is stamped onto a fresh canvas in white or black (mono) or in
// the pixel's own color. Rows of cells are rendered in parallel on a worker
// pool that lives as long as the Renderer.
//
// # Quick Start
//
//	import "github.com/gogpu/asciiart"
//
//	cfg, err := asciiart.NewConfig(
//	    asciiart.WithScale(0.2),
//	    asciiart.WithBackground(asciiart.BackgroundLight),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := asciiart.NewRenderer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	canvas, err := r.Render(img) // *image.RGBA
//
// # Glyph Ramp
//
// DefaultGlyphs orders 91 printable characters by how much ink they put on a
// dark canvas. Padding appends blanks at the bright end, which thins out
// highlights. On a light background the whole ramp is reversed so that dark
// source pixels still get dense glyphs.
//
// # Cell Geometry
//
// The cell side is the box of the '.' glyph (its advance, or the cap height
// grown by the stroke thickness) times the text offset, truncated to whole
// pixels. A canvas for a W×H grid is therefore (W·cell)×(H·cell) pixels.
// Glyphs are clipped to their own cell, so rows never overlap.
//
// # Errors
//
// Configuration problems are reported by NewConfig and NewRenderer as
// *ConfigError (errors.Is(err, ErrConfiguration)) before any frame is
// touched. Per-frame failures are *RenderError (errors.Is(err, ErrRender));
// Render never returns a partially drawn canvas.
//
// # Logging
//
// The package is silent by default. SetLogger installs a *slog.Logger that
// this package and the video package share.
//
// # Video
//
// The video subpackage drives a Renderer over the frames of a video file,
// encodes the result, and muxes the input audio back in with ffmpeg.
package asciiart
