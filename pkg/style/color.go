package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a Color.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

// String returns the color in the canonical #rrggbbaa form.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses a hex color literal. After the leading "#" and an
// optional "x", the number of hex digits decides the form:
//
//   - 1 or 2 digits: a gray level, with a single digit doubled ("#f" is white)
//   - 3 digits: rgb, each digit doubled
//   - 4 digits: rgba, each digit doubled
//   - 6 digits: rrggbb
//   - 8 digits: rrggbbaa
//
// Colors without an alpha component are opaque.
func ParseColor(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("bad color %q: must start with #", s)
	}
	digits := strings.TrimPrefix(s[1:], "x")
	n := make([]uint8, len(digits))
	for i := range digits {
		d, err := strconv.ParseUint(digits[i:i+1], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("bad color %q: invalid hex digit %q", s, digits[i])
		}
		n[i] = uint8(d)
	}
	double := func(d uint8) uint8 { return d<<4 | d }
	pair := func(i int) uint8 { return n[i]<<4 | n[i+1] }

	switch len(n) {
	case 1:
		g := double(n[0])
		return Color{g, g, g, 0xff}, nil
	case 2:
		g := pair(0)
		return Color{g, g, g, 0xff}, nil
	case 3:
		return Color{double(n[0]), double(n[1]), double(n[2]), 0xff}, nil
	case 4:
		return Color{double(n[0]), double(n[1]), double(n[2]), double(n[3])}, nil
	case 6:
		return Color{pair(0), pair(2), pair(4), 0xff}, nil
	case 8:
		return Color{pair(0), pair(2), pair(4), pair(6)}, nil
	}
	return Color{}, fmt.Errorf("bad color %q: want 1, 2, 3, 4, 6 or 8 hex digits", s)
}
