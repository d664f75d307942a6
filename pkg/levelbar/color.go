package levelbar

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque colour value used to fill rectangles.
type Color struct {
	R, G, B uint8
}

var _ color.Color = Color{}

var (
	Green     = Color{R: 0x00, G: 0xFF, B: 0x00}
	LightGray = Color{R: 0xCC, G: 0xCC, B: 0xCC}
)

var namedColors = map[string]Color{
	"black":     {0x00, 0x00, 0x00},
	"white":     {0xFF, 0xFF, 0xFF},
	"red":       {0xFF, 0x00, 0x00},
	"green":     Green,
	"blue":      {0x00, 0x00, 0xFF},
	"yellow":    {0xFF, 0xFF, 0x00},
	"cyan":      {0x00, 0xFF, 0xFF},
	"magenta":   {0xFF, 0x00, 0xFF},
	"gray":      {0x88, 0x88, 0x88},
	"darkgray":  {0x44, 0x44, 0x44},
	"lightgray": LightGray,
}

// RGBA implements color.Color. The alpha channel is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// String returns the colour as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts #rrggbb, #rgb or one of the named colours
// (case-insensitive, "grey" spellings allowed).
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	name := strings.ReplaceAll(s, "grey", "gray")
	if c, ok := namedColors[name]; ok {
		return c, nil
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 {
		// #rgb -> #rrggbb
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	if len(s) != 7 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb, #rgb or a color name", s)
	}

	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()

	return Color{R: r, G: g, B: b}, nil
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
