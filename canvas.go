package asciiart

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// maxCanvasPixels bounds the output canvas (1 GiB of RGBA).
const maxCanvasPixels = 1 << 28

var (
	black = color.RGBA{0, 0, 0, 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// paper returns the canvas fill color for bg.
func paper(bg Background) color.RGBA {
	if bg == BackgroundLight {
		return white
	}
	return black
}

// ink returns the glyph color used in mono mode for bg.
func ink(bg Background) color.RGBA {
	if bg == BackgroundLight {
		return black
	}
	return white
}

// newCanvas allocates a grid of cols×rows cells, each cell×cell pixels,
// filled with the background color.
func newCanvas(cols, rows, cell int, bg Background) (*image.RGBA, error) {
	w, h := cols*cell, rows*cell
	if w/cell != cols || h/cell != rows || w > maxCanvasPixels/h {
		return nil, renderErr("canvas too large", nil)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Rect, image.NewUniform(paper(bg)), image.Point{}, draw.Src)
	return canvas, nil
}
