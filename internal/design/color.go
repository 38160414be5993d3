package design

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB", "RRGGBB" or the three-digit short form.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex renders c as uppercase "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Darken moves c toward black by fraction f (0..1).
func (c RGB) Darken(f float64) RGB {
	return c.mix(RGB{}, f)
}

// Lighten moves c toward white by fraction f (0..1).
func (c RGB) Lighten(f float64) RGB {
	return c.mix(RGB{255, 255, 255}, f)
}

func (c RGB) mix(to RGB, f float64) RGB {
	f = math.Max(0, math.Min(1, f))
	ch := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
	}
	return RGB{R: ch(c.R, to.R), G: ch(c.G, to.G), B: ch(c.B, to.B)}
}

// Luminance is the WCAG relative luminance of c.
func (c RGB) Luminance() float64 {
	lin := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}
