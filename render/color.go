package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/glyphworks/symbology"
)

// namedColors is the color set the generator accepts by name.
var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xFF},
	"white":   {0xFF, 0xFF, 0xFF, 0xFF},
	"red":     {0xFF, 0x00, 0x00, 0xFF},
	"green":   {0x00, 0x80, 0x00, 0xFF},
	"blue":    {0x00, 0x00, 0xFF, 0xFF},
	"yellow":  {0xFF, 0xFF, 0x00, 0xFF},
	"cyan":    {0x00, 0xFF, 0xFF, 0xFF},
	"magenta": {0xFF, 0x00, 0xFF, 0xFF},
	"orange":  {0xFF, 0xA5, 0x00, 0xFF},
	"purple":  {0x80, 0x00, 0x80, 0xFF},
	"brown":   {0xA5, 0x2A, 0x2A, 0xFF},
	"pink":    {0xFF, 0xC0, 0xCB, 0xFF},
	"gray":    {0x80, 0x80, 0x80, 0xFF},
}

// ParseColor resolves a named color or a #rgb/#rrggbb hex triplet.
func ParseColor(s string) (color.RGBA, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3:
			var r, g, b byte
			if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err == nil {
				return color.RGBA{r * 0x11, g * 0x11, b * 0x11, 0xFF}, nil
			}
		case 6:
			var r, g, b byte
			if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err == nil {
				return color.RGBA{r, g, b, 0xFF}, nil
			}
		}
	}
	return color.RGBA{}, fmt.Errorf("render: color %q: %w", s, symbology.ErrUnsupportedOption)
}

// hexColor formats a color the way SVG attributes expect.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
