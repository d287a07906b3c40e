package asciiart

import (
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/gogpu/asciiart/text"
)

// Background selects the canvas color and the ramp orientation.
type Background uint8

const (
	// BackgroundDark renders onto a black canvas.
	BackgroundDark Background = iota
	// BackgroundLight renders onto a white canvas and reverses the ramp.
	BackgroundLight
)

func (b Background) valid() bool { return b <= BackgroundLight }

// String returns the background name.
func (b Background) String() string {
	switch b {
	case BackgroundDark:
		return "dark"
	case BackgroundLight:
		return "light"
	default:
		return "Background(" + strconv.Itoa(int(b)) + ")"
	}
}

// ParseBackground parses "dark"/"black" or "light"/"white".
func ParseBackground(s string) (Background, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "black":
		return BackgroundDark, nil
	case "light", "white":
		return BackgroundLight, nil
	}
	return 0, configErr("background", s, "want dark or light")
}

// ColorMode selects how glyphs are colored.
type ColorMode uint8

const (
	// ColorModeColor stamps each glyph in the color of the source pixel.
	ColorModeColor ColorMode = iota
	// ColorModeMono stamps white glyphs on dark canvases and black on light.
	ColorModeMono
)

func (m ColorMode) valid() bool { return m <= ColorModeMono }

// String returns the color mode name.
func (m ColorMode) String() string {
	switch m {
	case ColorModeColor:
		return "color"
	case ColorModeMono:
		return "mono"
	default:
		return "ColorMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseColorMode parses "color" or "mono" (also "grayscale", "bw").
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "color", "colour", "full":
		return ColorModeColor, nil
	case "mono", "monochrome", "grayscale", "greyscale", "bw":
		return ColorModeMono, nil
	}
	return 0, configErr("color mode", s, "want color or mono")
}

// LineStyle selects how glyph edges are rasterized.
type LineStyle uint8

const (
	// LineAliased produces hard-edged glyphs (coverage thresholded at 50%).
	LineAliased LineStyle = iota
	// LineAntialiased keeps fractional edge coverage.
	LineAntialiased
)

func (l LineStyle) valid() bool { return l <= LineAntialiased }

// String returns the line style name.
func (l LineStyle) String() string {
	switch l {
	case LineAliased:
		return "aliased"
	case LineAntialiased:
		return "antialiased"
	default:
		return "LineStyle(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLineStyle parses a line style name or an OpenCV line type code
// (1, 4 and 8 are aliased, 16 is antialiased).
func ParseLineStyle(s string) (LineStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aliased", "hard", "1", "4", "8", "line_4", "line_8":
		return LineAliased, nil
	case "antialiased", "aa", "smooth", "16", "line_aa":
		return LineAntialiased, nil
	}
	return 0, configErr("line style", s, "want aliased or antialiased")
}

// Resample selects the downsampling filter.
type Resample uint8

const (
	// ResampleBilinear is linear interpolation (golang.org/x/image/draw).
	ResampleBilinear Resample = iota
	// ResampleNearest picks the nearest source pixel.
	ResampleNearest
	// ResampleCatmullRom is the Catmull-Rom cubic kernel.
	ResampleCatmullRom
	// ResampleLanczos is Lanczos-3 (github.com/nfnt/resize).
	ResampleLanczos
	// ResampleMitchell is Mitchell-Netravali (github.com/nfnt/resize).
	ResampleMitchell
)

var resampleNames = [...]string{"bilinear", "nearest", "catmullrom", "lanczos", "mitchell"}

func (r Resample) valid() bool { return int(r) < len(resampleNames) }

// String returns the filter name.
func (r Resample) String() string {
	if r.valid() {
		return resampleNames[r]
	}
	return "Resample(" + strconv.Itoa(int(r)) + ")"
}

// ParseResample parses a filter name.
func ParseResample(s string) (Resample, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "linear", "area":
		return ResampleBilinear, nil
	case "catmull-rom", "cubic":
		return ResampleCatmullRom, nil
	case "lanczos3":
		return ResampleLanczos, nil
	}
	for i, n := range resampleNames {
		if n == name {
			return Resample(i), nil
		}
	}
	return 0, configErr("resample", s, "unknown filter")
}

// Config is the immutable description of one conversion.
// Build it with NewConfig; a Config value is never modified by this package.
type Config struct {
	// Scale is the downsampling factor applied to the frame before it is
	// split into glyph cells. Must be > 0; values <= 1 shrink the source.
	Scale float64

	// Padding is the number of blanks appended to the bright end of the ramp.
	Padding int

	Background Background
	ColorMode  ColorMode

	// Font is the built-in family used when FontFile is empty.
	Font text.Family
	// FontFile, when set, is a TTF/OTF file used instead of Font.
	FontFile string

	// FontScale multiplies the base glyph size (text.BasePPEM pixels per em).
	FontScale float64

	// Thickness is the stroke thickness in pixels. 1 is the plain outline fill.
	Thickness int

	LineStyle LineStyle

	// TextOffset multiplies the reference glyph box to get the cell size.
	// Must be > 1 so neighbouring cells do not overlap.
	TextOffset float64

	Resample Resample

	// Workers is the row worker count. 0 means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the default conversion settings.
func DefaultConfig() Config {
	return Config{
		Scale:      1,
		Padding:    0,
		Background: BackgroundDark,
		ColorMode:  ColorModeColor,
		Font:       text.FamilyRegular,
		FontScale:  0.4,
		Thickness:  1,
		LineStyle:  LineAliased,
		TextOffset: 1.3,
		Resample:   ResampleBilinear,
		Workers:    0,
	}
}

// NewConfig applies opts to DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every invariant of the configuration. The returned error
// is a *ConfigError matching ErrConfiguration.
func (c Config) Validate() error {
	if !positive(c.Scale) {
		return configErr("scale", c.Scale, "must be a finite number > 0")
	}
	if c.Padding < 0 {
		return configErr("padding", c.Padding, "must be >= 0")
	}
	if !c.Background.valid() {
		return configErr("background", c.Background, "unknown background mode")
	}
	if !c.ColorMode.valid() {
		return configErr("color mode", c.ColorMode, "unknown color mode")
	}
	if c.FontFile == "" && !c.Font.Valid() {
		return configErr("font", c.Font, "unknown font family")
	}
	if !positive(c.FontScale) {
		return configErr("font scale", c.FontScale, "must be a finite number > 0")
	}
	if c.Thickness < 1 {
		return configErr("thickness", c.Thickness, "must be >= 1")
	}
	if !c.LineStyle.valid() {
		return configErr("line style", c.LineStyle, "unknown line style")
	}
	if math.IsNaN(c.TextOffset) || math.IsInf(c.TextOffset, 0) || c.TextOffset <= 1 {
		return configErr("text offset", c.TextOffset, "must be a finite number > 1")
	}
	if !c.Resample.valid() {
		return configErr("resample", c.Resample, "unknown filter")
	}
	if c.Workers < 0 {
		return configErr("workers", c.Workers, "must be >= 0")
	}
	return nil
}

// workers returns the effective worker count.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// String renders the configuration for logs.
func (c Config) String() string {
	font := c.Font.String()
	if c.FontFile != "" {
		font = c.FontFile
	}
	return fmt.Sprintf("scale=%g padding=%d bg=%s mode=%s font=%s font-scale=%g thickness=%d line=%s text-offset=%g resample=%s",
		c.Scale, c.Padding, c.Background, c.ColorMode, font, c.FontScale, c.Thickness, c.LineStyle, c.TextOffset, c.Resample)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
