package settings

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses "#rrggbb" or "#rgb". The result is opaque.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatColor formats c as "#rrggbb".
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is the set of pen colors offered in the toolbar.
var Palette = []color.NRGBA{
	{R: 0x00, G: 0x2b, B: 0x5c, A: 0xff}, // navy
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff},
	{R: 0x38, G: 0x8e, B: 0x3c, A: 0xff},
	{R: 0xf9, G: 0xa8, B: 0x25, A: 0xff},
}
