package asciiart

import "github.com/gogpu/asciiart/text"

// Option configures a Config in NewConfig.
//
// Example:
//
//	cfg, err := asciiart.NewConfig(
//	    asciiart.WithScale(0.2),
//	    asciiart.WithBackground(asciiart.BackgroundLight),
//	    asciiart.WithColorMode(asciiart.ColorModeMono),
//	)
type Option func(*Config)

// WithScale sets the downsampling factor.
func WithScale(scale float64) Option {
	return func(c *Config) {
		c.Scale = scale
	}
}

// WithPadding sets how many blanks are appended to the bright end of the ramp.
func WithPadding(n int) Option {
	return func(c *Config) {
		c.Padding = n
	}
}

// WithBackground sets the canvas background.
func WithBackground(bg Background) Option {
	return func(c *Config) {
		c.Background = bg
	}
}

// WithColorMode sets monochrome or full-color glyphs.
func WithColorMode(m ColorMode) Option {
	return func(c *Config) {
		c.ColorMode = m
	}
}

// WithFont selects a built-in font family.
func WithFont(f text.Family) Option {
	return func(c *Config) {
		c.Font = f
		c.FontFile = ""
	}
}

// WithFontFile selects a TTF/OTF file instead of a built-in family.
func WithFontFile(path string) Option {
	return func(c *Config) {
		c.FontFile = path
	}
}

// WithFontScale sets the glyph size multiplier.
func WithFontScale(scale float64) Option {
	return func(c *Config) {
		c.FontScale = scale
	}
}

// WithThickness sets the stroke thickness in pixels.
func WithThickness(px int) Option {
	return func(c *Config) {
		c.Thickness = px
	}
}

// WithLineStyle sets aliased or antialiased glyph edges.
func WithLineStyle(s LineStyle) Option {
	return func(c *Config) {
		c.LineStyle = s
	}
}

// WithTextOffset sets the cell spacing multiplier.
func WithTextOffset(m float64) Option {
	return func(c *Config) {
		c.TextOffset = m
	}
}

// WithResample sets the downsampling filter.
func WithResample(r Resample) Option {
	return func(c *Config) {
		c.Resample = r
	}
}

// WithWorkers sets the row worker count. 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}
