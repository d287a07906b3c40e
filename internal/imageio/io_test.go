package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for y := range 8 {
		for x := range 12 {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 20), uint8(y * 30), 90, 255})
		}
	}
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	for _, name := range []string{"out.png", "out.bmp", "out.tiff", "out.TIF"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save(%s) = %v", name, err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load(%s) = %v", name, err)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			// Lossless formats keep every pixel.
			for y := range 8 {
				for x := range 12 {
					r1, g1, b1, _ := got.At(x, y).RGBA()
					r2, g2, b2, _ := src.At(x, y).RGBA()
					if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got.At(x, y), src.At(x, y))
					}
				}
			}
		})
	}
}

func TestSaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := Save(path, testImage()); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got.Bounds().Dx() != 12 || got.Bounds().Dy() != 8 {
		t.Errorf("bounds = %v", got.Bounds())
	}
}

func TestDecodeGIF(t *testing.T) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(gif) = %v", err)
	}
	if img.Bounds().Dx() != 12 {
		t.Errorf("width = %d, want 12", img.Bounds().Dx())
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode(garbage) = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestSaveUnsupported(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "out.xyz"), testImage())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) = %v, want ErrUnsupportedFormat", err)
	}
	if err := Encode(&bytes.Buffer{}, testImage(), Format(99)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(Format(99)) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		path string
		want FileKind
	}{
		{"a.png", KindImage},
		{"dir/b.JPEG", KindImage},
		{"c.webp", KindImage},
		{"clip.mp4", KindVideo},
		{"clip.MOV", KindVideo},
		{"clip.wmv", KindVideo},
		{"notes.txt", KindUnknown},
		{"noext", KindUnknown},
	}
	for _, tt := range tests {
		if got := Kind(tt.path); got != tt.want {
			t.Errorf("Kind(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"x.png":  FormatPNG,
		"x.jpg":  FormatJPEG,
		"x.JPEG": FormatJPEG,
		"x.bmp":  FormatBMP,
		"x.tif":  FormatTIFF,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %v, %v, want %v", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("x.webp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatFromPath(webp) = %v, want ErrUnsupportedFormat", err)
	}
}
