package asciiart

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

// ============================================================================
// Helpers
// ============================================================================

func newTestRenderer(t testing.TB, opts ...Option) *Renderer {
	t.Helper()
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig() = %v", err)
	}
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func uniformImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// noiseImage returns a deterministic pseudo-random opaque image.
func noiseImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	seed := uint32(12345)
	for i := 0; i < len(img.Pix); i += 4 {
		for k := range 3 {
			seed = seed*1664525 + 1013904223
			img.Pix[i+k] = uint8(seed >> 24)
		}
		img.Pix[i+3] = 0xff
	}
	return img
}

// ============================================================================
// Construction
// ============================================================================

func TestNewRendererRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scale = 0
	if _, err := NewRenderer(cfg); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewRenderer(scale=0) = %v, want ErrConfiguration", err)
	}

	cfg = DefaultConfig()
	cfg.TextOffset = 1
	if _, err := NewRenderer(cfg); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewRenderer(text offset=1) = %v, want ErrConfiguration", err)
	}
}

func TestNewRendererFontFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	r := newTestRenderer(t, WithFontFile(path))
	if r.CellSize() < 1 {
		t.Errorf("CellSize() = %d", r.CellSize())
	}

	cfg := DefaultConfig()
	cfg.FontFile = filepath.Join(t.TempDir(), "missing.ttf")
	_, err := NewRenderer(cfg)
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "font file" {
		t.Errorf("NewRenderer(missing font) = %v, want font file ConfigError", err)
	}
}

func TestCellSizeGrowsWithSettings(t *testing.T) {
	base := newTestRenderer(t).CellSize()
	bigger := newTestRenderer(t, WithFontScale(0.8)).CellSize()
	wider := newTestRenderer(t, WithTextOffset(2.6)).CellSize()
	if bigger <= base || wider <= base {
		t.Errorf("cell sizes: base %d, font scale 0.8 %d, text offset 2.6 %d", base, bigger, wider)
	}
}

// ============================================================================
// Render
// ============================================================================

func TestRenderCanvasSize(t *testing.T) {
	r := newTestRenderer(t, WithScale(0.5))
	img := noiseImage(37, 23)

	canvas, err := r.Render(img)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	cell := r.CellSize()
	want := image.Rect(0, 0, 19*cell, 12*cell)
	if canvas.Bounds() != want {
		t.Errorf("canvas bounds = %v, want %v", canvas.Bounds(), want)
	}

	size, err := r.CanvasSize(37, 23)
	if err != nil {
		t.Fatalf("CanvasSize() = %v", err)
	}
	if size != want.Max {
		t.Errorf("CanvasSize() = %v, want %v", size, want.Max)
	}
}

func TestRenderMidGrayScenario(t *testing.T) {
	r := newTestRenderer(t, WithScale(0.1))
	img := uniformImage(100, 100, color.Gray{Y: 128})

	cells, err := r.Layout(img)
	if err != nil {
		t.Fatalf("Layout() = %v", err)
	}
	if len(cells) != 100 {
		t.Fatalf("len(cells) = %d, want 100", len(cells))
	}
	ramp := r.Ramp()
	want := ramp.At(ramp.Len() / 2)
	for _, c := range cells {
		if c.Glyph != want {
			t.Fatalf("cell (%d,%d) glyph = %q, want %q", c.Row, c.Col, c.Glyph, want)
		}
	}
	last := cells[len(cells)-1]
	if last.Row != 9 || last.Col != 9 {
		t.Errorf("last cell = (%d,%d), want (9,9)", last.Row, last.Col)
	}

	canvas, err := r.Render(img)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if got := canvas.Bounds().Dx(); got != 10*r.CellSize() {
		t.Errorf("canvas width = %d, want %d", got, 10*r.CellSize())
	}
}

func TestRenderUniformFrameSingleGlyph(t *testing.T) {
	r := newTestRenderer(t, WithScale(0.5))
	cells, err := r.Layout(uniformImage(30, 20, color.RGBA{40, 160, 90, 255}))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cells[1:] {
		if c.Glyph != cells[0].Glyph || c.Brightness != cells[0].Brightness {
			t.Fatalf("cell (%d,%d) = %q/%d, want %q/%d", c.Row, c.Col, c.Glyph, c.Brightness, cells[0].Glyph, cells[0].Brightness)
		}
	}
}

func TestRenderDeterministicAcrossWorkers(t *testing.T) {
	img := noiseImage(64, 48)
	var outputs [][]byte
	for _, workers := range []int{1, 3, 8} {
		r := newTestRenderer(t, WithScale(0.5), WithWorkers(workers), WithLineStyle(LineAntialiased), WithThickness(2))
		for range 2 {
			canvas, err := r.Render(img)
			if err != nil {
				t.Fatalf("workers=%d: Render() = %v", workers, err)
			}
			outputs = append(outputs, canvas.Pix)
		}
	}
	for i := 1; i < len(outputs); i++ {
		if !bytes.Equal(outputs[0], outputs[i]) {
			t.Fatalf("output %d differs from output 0", i)
		}
	}
}

func TestRenderMonoColors(t *testing.T) {
	tests := []struct {
		name  string
		bg    Background
		frame color.Color
		paper color.RGBA
		ink   color.RGBA
	}{
		{"dark", BackgroundDark, color.Gray{Y: 200}, black, white},
		{"light", BackgroundLight, color.Gray{Y: 60}, white, black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, WithBackground(tt.bg), WithColorMode(ColorModeMono), WithScale(0.25))
			canvas, err := r.Render(uniformImage(16, 16, tt.frame))
			if err != nil {
				t.Fatal(err)
			}
			inked, blank := 0, 0
			b := canvas.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					switch canvas.RGBAAt(x, y) {
					case tt.ink:
						inked++
					case tt.paper:
						blank++
					default:
						t.Fatalf("pixel (%d,%d) = %v, want only %v or %v", x, y, canvas.RGBAAt(x, y), tt.paper, tt.ink)
					}
				}
			}
			if inked == 0 || blank == 0 {
				t.Errorf("ink pixels = %d, background pixels = %d, want both", inked, blank)
			}
		})
	}
}

func TestRenderColorMode(t *testing.T) {
	r := newTestRenderer(t, WithScale(0.25))
	red := color.RGBA{255, 0, 0, 255}
	canvas, err := r.Render(uniformImage(16, 16, red))
	if err != nil {
		t.Fatal(err)
	}
	reds := 0
	for i := 0; i < len(canvas.Pix); i += 4 {
		px := color.RGBA{canvas.Pix[i], canvas.Pix[i+1], canvas.Pix[i+2], canvas.Pix[i+3]}
		switch px {
		case red:
			reds++
		case black:
		default:
			t.Fatalf("pixel %d = %v, want red or black", i/4, px)
		}
	}
	if reds == 0 {
		t.Error("no glyph pixels in the source color")
	}
}

func TestRenderCellsStayInsideTheirRow(t *testing.T) {
	// Rows of alternating black and white: on a dark canvas black rows map
	// to the darkest glyph in black, so their bands must stay untouched.
	r := newTestRenderer(t, WithThickness(4), WithLineStyle(LineAntialiased))
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := range 6 {
		c := color.RGBA{0, 0, 0, 255}
		if y%2 == 1 {
			c = color.RGBA{255, 255, 255, 255}
		}
		for x := range 6 {
			img.SetRGBA(x, y, c)
		}
	}
	canvas, err := r.Render(img)
	if err != nil {
		t.Fatal(err)
	}
	cell := r.CellSize()
	for row := 0; row < 6; row += 2 {
		for y := row * cell; y < (row+1)*cell; y++ {
			for x := range canvas.Rect.Dx() {
				if got := canvas.RGBAAt(x, y); got != black {
					t.Fatalf("pixel (%d,%d) in black row %d = %v", x, y, row, got)
				}
			}
		}
	}
}

func TestRenderSubImage(t *testing.T) {
	r := newTestRenderer(t, WithScale(0.5))
	full := noiseImage(40, 40)
	sub := full.SubImage(image.Rect(10, 10, 30, 26))

	canvas, err := r.Render(sub)
	if err != nil {
		t.Fatal(err)
	}
	want := image.Rect(0, 0, 10*r.CellSize(), 8*r.CellSize())
	if canvas.Bounds() != want {
		t.Errorf("canvas bounds = %v, want %v", canvas.Bounds(), want)
	}
}

func TestRenderResampleFilters(t *testing.T) {
	img := noiseImage(40, 30)
	for _, f := range []Resample{ResampleBilinear, ResampleNearest, ResampleCatmullRom, ResampleLanczos, ResampleMitchell} {
		t.Run(f.String(), func(t *testing.T) {
			r := newTestRenderer(t, WithScale(0.5), WithResample(f))
			cells, err := r.Layout(img)
			if err != nil {
				t.Fatal(err)
			}
			if len(cells) != 20*15 {
				t.Errorf("len(cells) = %d, want 300", len(cells))
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	r := newTestRenderer(t, WithScale(0.1))

	tests := []struct {
		name  string
		frame image.Image
	}{
		{"empty", image.NewRGBA(image.Rectangle{})},
		{"too small for scale", noiseImage(3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas, err := r.Render(tt.frame)
			if !errors.Is(err, ErrRender) {
				t.Errorf("Render() error = %v, want ErrRender", err)
			}
			if canvas != nil {
				t.Error("Render() returned a canvas with an error")
			}
		})
	}

	if _, err := r.CanvasSize(3, 3); !errors.Is(err, ErrRender) {
		t.Errorf("CanvasSize(3,3) = %v, want ErrRender", err)
	}
}

func TestRenderAfterClose(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
	if _, err := r.Render(noiseImage(4, 4)); !errors.Is(err, ErrRender) {
		t.Errorf("Render() after Close = %v, want ErrRender", err)
	}
}

func TestRenderConcurrentCallers(t *testing.T) {
	r := newTestRenderer(t, WithScale(0.5), WithWorkers(2))
	img := noiseImage(20, 20)
	want, err := r.Render(img)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Render(img)
			if err != nil {
				t.Errorf("Render() = %v", err)
				return
			}
			if !bytes.Equal(got.Pix, want.Pix) {
				t.Error("concurrent render differs")
			}
		}()
	}
	wg.Wait()
}

func TestLuma(t *testing.T) {
	for _, c := range []color.RGBA{{0, 0, 0, 255}, {255, 255, 255, 255}, {255, 0, 0, 255}, {12, 200, 77, 255}, {128, 128, 128, 255}} {
		want := color.GrayModel.Convert(c).(color.Gray).Y
		if got := luma(c.R, c.G, c.B); got != want {
			t.Errorf("luma(%v) = %d, want %d", c, got, want)
		}
	}
}

// ============================================================================
// Benchmarks
// ============================================================================

func BenchmarkRender(b *testing.B) {
	r := newTestRenderer(b, WithScale(0.25))
	img := noiseImage(640, 360)
	b.ResetTimer()
	for range b.N {
		if _, err := r.Render(img); err != nil {
			b.Fatal(err)
		}
	}
}
