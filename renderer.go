package asciiart

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/asciiart/internal/parallel"
	"github.com/gogpu/asciiart/text"
)

// refGlyph is the glyph whose box sets the cell size.
const refGlyph = '.'

// Cell is one glyph position of a rendered frame.
type Cell struct {
	Row, Col int
	// Brightness is the BT.601 luma of the downsampled pixel.
	Brightness uint8
	// Color is the downsampled pixel color (opaque).
	Color color.RGBA
	Glyph rune
}

// Renderer turns frames into glyph rasters for one Config.
//
// All per-run state is built once by NewRenderer: the ramp, the mapper memo,
// the glyph atlas and a row worker pool that every Render call reuses.
// Render may be called from several goroutines, but frames are rendered one
// batch at a time per call; Close must not race with Render.
type Renderer struct {
	cfg    Config
	ramp   *Ramp
	mapper *Mapper
	font   *text.FontSource
	atlas  *text.Atlas
	cell   int
	pool   *parallel.WorkerPool
}

// NewRenderer validates cfg and prepares everything a frame needs.
// Every failure is a *ConfigError and happens before any frame is touched.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ramp, err := NewRamp(DefaultGlyphs, cfg.Padding, cfg.Background)
	if err != nil {
		return nil, err
	}

	src, err := loadFont(cfg)
	if err != nil {
		return nil, err
	}
	glyphs := ramp.Distinct()
	if err := text.CheckCoverage(src, glyphs); err != nil {
		return nil, &ConfigError{Field: "font", Value: src.Name(), Reason: "cannot draw the ramp", Err: err}
	}

	style := text.Style{
		PPEM:      cfg.FontScale * text.BasePPEM,
		Thickness: cfg.Thickness,
		Antialias: cfg.LineStyle == LineAntialiased,
	}
	cell, err := text.CellSize(src, refGlyph, style, cfg.TextOffset)
	if err != nil {
		return nil, &ConfigError{Field: "font scale", Value: cfg.FontScale, Reason: "cannot size cells", Err: err}
	}
	atlas, err := text.NewAtlas(src, glyphs, cell, style)
	if err != nil {
		return nil, &ConfigError{Field: "font", Value: src.Name(), Reason: "cannot rasterize glyphs", Err: err}
	}

	r := &Renderer{
		cfg:    cfg,
		ramp:   ramp,
		mapper: NewMapper(ramp),
		font:   src,
		atlas:  atlas,
		cell:   cell,
		pool:   parallel.NewWorkerPool(cfg.workers()),
	}
	Logger().Debug("asciiart: renderer ready",
		"font", src.Name(),
		"cell", cell,
		"ramp", ramp.Len(),
		"workers", r.pool.Workers())
	return r, nil
}

func loadFont(cfg Config) (*text.FontSource, error) {
	if cfg.FontFile != "" {
		src, err := text.NewFontSourceFromFile(cfg.FontFile)
		if err != nil {
			return nil, &ConfigError{Field: "font file", Value: cfg.FontFile, Reason: "cannot load font", Err: err}
		}
		return src, nil
	}
	src, err := text.FamilySource(cfg.Font)
	if err != nil {
		return nil, &ConfigError{Field: "font", Value: cfg.Font, Reason: "cannot load font", Err: err}
	}
	return src, nil
}

// Config returns the configuration the renderer was built with.
func (r *Renderer) Config() Config { return r.cfg }

// Ramp returns the glyph ramp in use.
func (r *Renderer) Ramp() *Ramp { return r.ramp }

// Font returns the font glyphs are drawn with.
func (r *Renderer) Font() *text.FontSource { return r.font }

// CellSize returns the side of one glyph cell in pixels.
func (r *Renderer) CellSize() int { return r.cell }

// GridSize returns the number of glyph columns and rows for a w×h frame.
func (r *Renderer) GridSize(w, h int) (cols, rows int) {
	return gridSize(w, h, r.cfg.Scale)
}

// CanvasSize returns the output size for a w×h frame. It fails like Render
// would when the frame leaves no cells.
func (r *Renderer) CanvasSize(w, h int) (image.Point, error) {
	cols, rows := r.GridSize(w, h)
	if w < 1 || h < 1 || cols < 1 || rows < 1 {
		return image.Point{}, renderErr(fmt.Sprintf("%dx%d frame at scale %g leaves no cells", w, h, r.cfg.Scale), nil)
	}
	return image.Pt(cols*r.cell, rows*r.cell), nil
}

// Layout computes the glyph cells of frame in row-major order without
// drawing them.
func (r *Renderer) Layout(frame image.Image) ([]Cell, error) {
	small, err := downsample(frame, r.cfg.Scale, r.cfg.Resample)
	if err != nil {
		return nil, err
	}
	cols, rows := small.Rect.Dx(), small.Rect.Dy()
	cells := make([]Cell, 0, cols*rows)
	for i := range rows {
		for j := range cols {
			cells = append(cells, r.cellAt(small, i, j))
		}
	}
	return cells, nil
}

// Render converts one frame into a fresh glyph raster of
// (cols·cell)×(rows·cell) pixels. On failure the canvas is discarded and the
// error is a *RenderError.
func (r *Renderer) Render(frame image.Image) (*image.RGBA, error) {
	start := time.Now()

	small, err := downsample(frame, r.cfg.Scale, r.cfg.Resample)
	if err != nil {
		return nil, err
	}
	cols, rows := small.Rect.Dx(), small.Rect.Dy()

	canvas, err := newCanvas(cols, rows, r.cell, r.cfg.Background)
	if err != nil {
		return nil, err
	}

	tasks := make([]func() error, rows)
	for i := range rows {
		tasks[i] = func() error { return r.renderRow(canvas, small, i) }
	}
	if err := r.pool.ExecuteAll(tasks); err != nil {
		return nil, renderErr("row failed", err)
	}

	Logger().Debug("asciiart: frame rendered",
		"grid", fmt.Sprintf("%dx%d", cols, rows),
		"cell", r.cell,
		"elapsed", time.Since(start))
	return canvas, nil
}

// renderRow stamps the glyphs of row i. It writes only canvas rows
// [i·cell, (i+1)·cell).
func (r *Renderer) renderRow(canvas, small *image.RGBA, i int) error {
	src := &image.Uniform{}
	y0 := i * r.cell
	for j := range small.Rect.Dx() {
		c := r.cellAt(small, i, j)
		mask, ok := r.atlas.Mask(c.Glyph)
		if !ok {
			return fmt.Errorf("asciiart: no mask for glyph %q", c.Glyph)
		}
		if r.cfg.ColorMode == ColorModeMono {
			src.C = ink(r.cfg.Background)
		} else {
			src.C = c.Color
		}
		x0 := j * r.cell
		draw.DrawMask(canvas, image.Rect(x0, y0, x0+r.cell, y0+r.cell), src, image.Point{}, mask, image.Point{}, draw.Over)
	}
	return nil
}

func (r *Renderer) cellAt(small *image.RGBA, i, j int) Cell {
	off := small.PixOffset(j, i)
	px := small.Pix[off : off+3 : off+3]
	b := luma(px[0], px[1], px[2])
	return Cell{
		Row:        i,
		Col:        j,
		Brightness: b,
		Color:      color.RGBA{px[0], px[1], px[2], 0xff},
		Glyph:      r.mapper.Glyph(b),
	}
}

// Close releases the worker pool. The renderer must not be used afterwards.
func (r *Renderer) Close() {
	r.pool.Close()
}
