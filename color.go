package mortier

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an opaque RGB colour with 8-bit channels.
type Color struct {
	R, G, B int
}

// Black is the default stroke colour.
var Black = Color{}

// Validate checks that every channel is within 0..255.
func (c Color) Validate() error {
	for _, ch := range [...]struct {
		name string
		v    int
	}{{"red", c.R}, {"green", c.G}, {"blue", c.B}} {
		if ch.v < 0 || ch.v > 255 {
			return Errorf(KindInvalidParameter, "color", "%s channel %d out of range 0..255", ch.name, ch.v)
		}
	}
	return nil
}

// Hex returns the colour as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.R), uint8(c.G), uint8(c.B))
}

// NRGBA converts the colour to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}

// ParseColor parses "#rgb", "#rrggbb", "r,g,b" or an SVG colour keyword
// such as "navy".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return Color{}, Errorf(KindInvalidParameter, "color", "want r,g,b, got %q", s)
		}
		var ch [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return Color{}, Errorf(KindInvalidParameter, "color", "bad channel %q", p)
			}
			ch[i] = v
		}
		c := Color{R: ch[0], G: ch[1], B: ch[2]}
		return c, c.Validate()
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{R: int(named.R), G: int(named.G), B: int(named.B)}, nil
	}
	return Color{}, Errorf(KindInvalidParameter, "color", "unknown colour %q", s)
}

func parseHexColor(hex string) (Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, Errorf(KindInvalidParameter, "color", "bad hex colour %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, Errorf(KindInvalidParameter, "color", "bad hex colour %q", hex)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}
