package render

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA is a straight (non-premultiplied) 8-bit color with alpha
type RGBA struct {
	R, G, B, A uint8
}

// Predefined colors
var (
	RGBABlack = RGBA{0, 0, 0, 255}
	RGBAWhite = RGBA{255, 255, 255, 255}
)

// ParseHex parses #rgb, #rgba, #rrggbb and #rrggbbaa. Alpha defaults to opaque.
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 4:
		// Expand shorthand: "abc" -> "aabbcc"
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return RGBA{}, fmt.Errorf("invalid color %q: want #rgb, #rgba, #rrggbb or #rrggbbaa", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(h) == 6 {
		return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustHex is ParseHex for compile-time constants, panics on error
func MustHex(s string) RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats as #rrggbb, or #rrggbbaa when not opaque
func (c RGBA) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer
func (c RGBA) String() string { return c.Hex() }

// Alpha returns the alpha channel in [0, 1]
func (c RGBA) Alpha() float64 { return float64(c.A) / 255.0 }

// Opaque drops the alpha channel
func (c RGBA) Opaque() RGBA {
	c.A = 255
	return c
}

// RGBA implements image/color.Color with alpha-premultiplied 16-bit channels
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 255
	g = uint32(c.G) * a / 255
	b = uint32(c.B) * a / 255
	return r | r<<8, g | g<<8, b | b<<8, a | a<<8
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGBA, alpha float64) RGBA {
	if alpha >= 1.0 {
		return src.Opaque()
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGBA{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
		A: 255,
	}
}

// Over composites src onto an opaque dst using src's own alpha
func Over(dst, src RGBA) RGBA {
	return Blend(dst.Opaque(), src, src.Alpha())
}
