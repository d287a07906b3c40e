package text

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// Family selects one of the built-in Go fonts.
type Family uint8

const (
	FamilyRegular Family = iota
	FamilyMedium
	FamilyBold
	FamilyItalic
	FamilyBoldItalic
	FamilyMono
	FamilyMonoBold
	FamilySmallcaps

	familyCount
)

var familyNames = [familyCount]string{
	"regular", "medium", "bold", "italic", "bold-italic", "mono", "mono-bold", "smallcaps",
}

// hersheyAliases maps OpenCV font names to the closest built-in family.
var hersheyAliases = map[string]Family{
	"font_hershey_simplex":        FamilyRegular,
	"font_hershey_plain":          FamilyMono,
	"font_hershey_duplex":         FamilyMedium,
	"font_hershey_complex":        FamilyBold,
	"font_hershey_triplex":        FamilyBoldItalic,
	"font_hershey_complex_small":  FamilyMonoBold,
	"font_hershey_script_simplex": FamilyItalic,
	"font_hershey_script_complex": FamilySmallcaps,
}

// Valid reports whether f is a built-in family.
func (f Family) Valid() bool {
	return f < familyCount
}

// String returns the family name accepted by ParseFamily.
func (f Family) String() string {
	if f.Valid() {
		return familyNames[f]
	}
	return "Family(" + strconv.Itoa(int(f)) + ")"
}

// ParseFamily parses a family name or an OpenCV FONT_HERSHEY_* name.
func ParseFamily(s string) (Family, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := hersheyAliases[name]; ok {
		return f, nil
	}
	name = strings.ReplaceAll(name, "_", "-")
	for i, n := range familyNames {
		if n == name {
			return Family(i), nil
		}
	}
	return 0, ErrUnknownFamily
}

// TTF returns the embedded font file for the family, or nil if f is invalid.
func (f Family) TTF() []byte {
	switch f {
	case FamilyRegular:
		return goregular.TTF
	case FamilyMedium:
		return gomedium.TTF
	case FamilyBold:
		return gobold.TTF
	case FamilyItalic:
		return goitalic.TTF
	case FamilyBoldItalic:
		return gobolditalic.TTF
	case FamilyMono:
		return gomono.TTF
	case FamilyMonoBold:
		return gomonobold.TTF
	case FamilySmallcaps:
		return gosmallcaps.TTF
	}
	return nil
}

var familySources struct {
	mu      sync.Mutex
	sources [familyCount]*FontSource
}

// FamilySource returns the shared FontSource for a built-in family. The font
// is parsed on first use; later calls return the same source, which keeps
// its mask cache entries valid across renderers.
func FamilySource(f Family) (*FontSource, error) {
	if !f.Valid() {
		return nil, ErrUnknownFamily
	}

	familySources.mu.Lock()
	defer familySources.mu.Unlock()

	if s := familySources.sources[f]; s != nil {
		return s, nil
	}
	s, err := NewFontSource(f.TTF())
	if err != nil {
		return nil, err
	}
	familySources.sources[f] = s
	return s, nil
}
