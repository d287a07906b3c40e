package text

import (
	"errors"
	"image"
	"testing"
)

// ============================================================================
// Helpers
// ============================================================================

func ink(m *image.Alpha) int {
	total := 0
	for _, a := range m.Pix {
		total += int(a)
	}
	return total
}

// inkCentroidY returns the coverage-weighted mean row of m.
func inkCentroidY(m *image.Alpha) float64 {
	var sum, weight float64
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := float64(m.AlphaAt(x, y).A)
			sum += a * float64(y)
			weight += a
		}
	}
	return sum / weight
}

func newTestRasterizer(t *testing.T, st Style) (*Rasterizer, int) {
	t.Helper()
	src := mustFamily(t, FamilyMono)
	cell, err := CellSize(src, '.', st, 1.3)
	if err != nil {
		t.Fatalf("CellSize failed: %v", err)
	}
	z, err := NewRasterizer(src, st, cell)
	if err != nil {
		t.Fatalf("NewRasterizer failed: %v", err)
	}
	return z, cell
}

// ============================================================================
// CellSize
// ============================================================================

func TestCellSize(t *testing.T) {
	src := mustFamily(t, FamilyMono)
	st := Style{PPEM: 0.4 * BasePPEM, Thickness: 1}

	small, err := CellSize(src, '.', st, 1.3)
	if err != nil {
		t.Fatalf("CellSize failed: %v", err)
	}
	large, err := CellSize(src, '.', st, 2.6)
	if err != nil {
		t.Fatalf("CellSize failed: %v", err)
	}
	if small < 1 || large < small {
		t.Errorf("CellSize = %d at 1.3 and %d at 2.6", small, large)
	}

	thick, err := CellSize(src, '.', Style{PPEM: st.PPEM, Thickness: 20}, 1.3)
	if err != nil {
		t.Fatalf("CellSize failed: %v", err)
	}
	if thick <= small {
		t.Errorf("CellSize with thickness 20 = %d, want more than %d", thick, small)
	}

	tiny, err := CellSize(src, '.', Style{PPEM: 0.5, Thickness: 1}, 1.01)
	if err != nil {
		t.Fatalf("CellSize failed: %v", err)
	}
	if tiny != 1 {
		t.Errorf("CellSize at tiny ppem = %d, want 1", tiny)
	}
}

func TestStyleValidate(t *testing.T) {
	src := mustFamily(t, FamilyMono)
	bad := []Style{
		{PPEM: 0, Thickness: 1},
		{PPEM: -3, Thickness: 1},
		{PPEM: 12, Thickness: 0},
	}
	for _, st := range bad {
		if _, err := CellSize(src, '.', st, 1.3); !errors.Is(err, ErrInvalidStyle) {
			t.Errorf("CellSize(%+v) err = %v, want ErrInvalidStyle", st, err)
		}
		if _, err := NewRasterizer(src, st, 10); !errors.Is(err, ErrInvalidStyle) {
			t.Errorf("NewRasterizer(%+v) err = %v, want ErrInvalidStyle", st, err)
		}
	}
}

// ============================================================================
// Rasterize
// ============================================================================

func TestRasterizeBlank(t *testing.T) {
	z, cell := newTestRasterizer(t, Style{PPEM: 12, Thickness: 1})
	m, err := z.Rasterize(' ')
	if err != nil {
		t.Fatalf("Rasterize(' ') failed: %v", err)
	}
	if m.Bounds() != image.Rect(0, 0, cell, cell) {
		t.Errorf("bounds = %v, want %d×%d", m.Bounds(), cell, cell)
	}
	if ink(m) != 0 {
		t.Errorf("space has ink %d, want 0", ink(m))
	}
}

func TestRasterizeAliasedIsBinary(t *testing.T) {
	z, cell := newTestRasterizer(t, Style{PPEM: 24, Thickness: 1})
	for _, r := range "@#M." {
		m, err := z.Rasterize(r)
		if err != nil {
			t.Fatalf("Rasterize(%q) failed: %v", r, err)
		}
		if m.Bounds() != image.Rect(0, 0, cell, cell) {
			t.Errorf("%q bounds = %v", r, m.Bounds())
		}
		if ink(m) == 0 {
			t.Errorf("%q has no ink", r)
		}
		for i, a := range m.Pix {
			if a != 0 && a != 0xff {
				t.Fatalf("%q pixel %d = %d, want 0 or 255", r, i, a)
			}
		}
	}
}

func TestRasterizeDensityOrder(t *testing.T) {
	z, _ := newTestRasterizer(t, Style{PPEM: 24, Thickness: 1, Antialias: true})
	dot, err := z.Rasterize('.')
	if err != nil {
		t.Fatal(err)
	}
	at, err := z.Rasterize('@')
	if err != nil {
		t.Fatal(err)
	}
	if ink(at) <= ink(dot) {
		t.Errorf("ink('@') = %d, want more than ink('.') = %d", ink(at), ink(dot))
	}
}

func TestRasterizeBaseline(t *testing.T) {
	z, cell := newTestRasterizer(t, Style{PPEM: 24, Thickness: 1, Antialias: true})
	dot, err := z.Rasterize('.')
	if err != nil {
		t.Fatal(err)
	}
	tick, err := z.Rasterize('\'')
	if err != nil {
		t.Fatal(err)
	}
	mid := float64(cell) / 2
	if y := inkCentroidY(dot); y <= mid {
		t.Errorf("'.' centroid y = %v, want below the middle %v", y, mid)
	}
	if y := inkCentroidY(tick); y >= mid {
		t.Errorf("'\\'' centroid y = %v, want above the middle %v", y, mid)
	}
}

func TestRasterizeThickness(t *testing.T) {
	thin, _ := newTestRasterizer(t, Style{PPEM: 24, Thickness: 1, Antialias: true})
	src := mustFamily(t, FamilyMono)
	thick, err := NewRasterizer(src, Style{PPEM: 24, Thickness: 3, Antialias: true}, thin.cell)
	if err != nil {
		t.Fatal(err)
	}

	a, err := thin.Rasterize('l')
	if err != nil {
		t.Fatal(err)
	}
	b, err := thick.Rasterize('l')
	if err != nil {
		t.Fatal(err)
	}
	if ink(b) <= ink(a) {
		t.Errorf("ink at thickness 3 = %d, want more than %d", ink(b), ink(a))
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	z, _ := newTestRasterizer(t, Style{PPEM: 18, Thickness: 2, Antialias: true})
	a, err := z.Rasterize('&')
	if err != nil {
		t.Fatal(err)
	}
	b, err := z.Rasterize('&')
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel %d differs: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}
