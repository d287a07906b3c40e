package asciiart

import (
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// gridSize returns the downsampled frame size for a w×h frame: each side
// multiplied by scale and rounded to the nearest integer.
func gridSize(w, h int, scale float64) (int, int) {
	return int(math.Round(float64(w) * scale)), int(math.Round(float64(h) * scale))
}

// downsample scales frame by the configured factor into an RGBA image with
// its origin at (0, 0). One pixel of the result becomes one glyph cell.
func downsample(frame image.Image, scale float64, filter Resample) (*image.RGBA, error) {
	b := frame.Bounds()
	if b.Empty() {
		return nil, renderErr("empty frame", nil)
	}
	w, h := gridSize(b.Dx(), b.Dy(), scale)
	if w < 1 || h < 1 {
		return nil, renderErr(fmt.Sprintf("%dx%d frame at scale %g leaves no cells", b.Dx(), b.Dy(), scale), nil)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Rect, frame, b.Min, draw.Src)
		return dst, nil
	}

	switch filter {
	case ResampleLanczos, ResampleMitchell:
		interp := resize.Lanczos3
		if filter == ResampleMitchell {
			interp = resize.MitchellNetravali
		}
		small := resize.Resize(uint(w), uint(h), frame, interp)
		draw.Draw(dst, dst.Rect, small, small.Bounds().Min, draw.Src)
	case ResampleNearest:
		draw.NearestNeighbor.Scale(dst, dst.Rect, frame, b, draw.Src, nil)
	case ResampleCatmullRom:
		draw.CatmullRom.Scale(dst, dst.Rect, frame, b, draw.Src, nil)
	default:
		draw.BiLinear.Scale(dst, dst.Rect, frame, b, draw.Src, nil)
	}
	return dst, nil
}

// luma returns the ITU-R BT.601 brightness of an RGB triple, computed the same
// way as color.GrayModel.
func luma(r, g, b uint8) uint8 {
	y := (19595*uint32(r)*0x101 + 38470*uint32(g)*0x101 + 7471*uint32(b)*0x101 + 1<<15) >> 24
	return uint8(y)
}
