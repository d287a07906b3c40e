package text

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownFamily is returned for a Family outside the built-in set.
	ErrUnknownFamily = errors.New("text: unknown font family")

	// ErrInvalidStyle is returned for a Style with a non-positive size or thickness.
	ErrInvalidStyle = errors.New("text: invalid glyph style")
)

// MissingGlyphsError lists runes the font has no glyph for.
type MissingGlyphsError struct {
	Font  string
	Runes []rune
}

func (e *MissingGlyphsError) Error() string {
	quoted := make([]string, len(e.Runes))
	for i, r := range e.Runes {
		quoted[i] = strconv.QuoteRune(r)
	}
	return "text: font " + strconv.Quote(e.Font) + " has no glyph for " + strings.Join(quoted, ", ")
}

// FontError represents a font-related failure.
type FontError struct {
	Reason string
	Err    error
}

func (e *FontError) Error() string {
	if e.Err != nil {
		return "text: " + e.Reason + ": " + e.Err.Error()
	}
	return "text: " + e.Reason
}

func (e *FontError) Unwrap() error {
	return e.Err
}
