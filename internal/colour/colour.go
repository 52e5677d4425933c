// Package colour provides colour parsing, conversion and mixing utilities
// for the recolour engine.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidColour is returned when a textual colour is not a well-formed
// 6-hex-digit value.
var ErrInvalidColour = errors.New("invalid colour")

// RGB represents a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as a lowercase hex string (e.g., "#1a2b3c").
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// ParseHex parses a hex colour string like "#e2da9d" into an RGB. The
// leading "#" is optional and digits are case-insensitive. Anything that is
// not exactly 6 hex digits is rejected.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q (expected #RRGGBB)", ErrInvalidColour, s)
	}
	var v uint32
	for i := 0; i < 6; i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return RGB{}, fmt.Errorf("%w: %q (expected #RRGGBB)", ErrInvalidColour, s)
		}
		v = v<<4 | uint32(d)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// NormalizeHex canonicalizes a textual colour to lowercase "#rrggbb" form.
func NormalizeHex(s string) (string, error) {
	c, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// Unit returns the colour channels normalized to [0.0, 1.0].
func (c RGB) Unit() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// FromUnit builds an RGB from unit-range channels, clamping out-of-range
// values and rounding to the nearest integer.
func FromUnit(r, g, b float64) RGB {
	return RGB{
		R: uint8(math.Round(clamp(r, 0, 1) * 255)),
		G: uint8(math.Round(clamp(g, 0, 1) * 255)),
		B: uint8(math.Round(clamp(b, 0, 1) * 255)),
	}
}

// Distance returns the Euclidean distance between two colours in unit RGB
// space. The range is [0, √3].
func Distance(a, b RGB) float64 {
	ar, ag, ab := a.Unit()
	br, bg, bb := b.Unit()
	return math.Sqrt((ar-br)*(ar-br) + (ag-bg)*(ag-bg) + (ab-bb)*(ab-bb))
}

// ToHLS converts a colour to (hue, lightness, saturation), each in [0, 1]
// with hue circular and its origin at red. The conventions match the classic
// cylindrical HLS transform so that FromHLS round-trips within rounding.
func ToHLS(c RGB) (h, l, s float64) {
	r, g, b := c.Unit()
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	l = (minc + maxc) / 2.0
	if minc == maxc {
		return 0, l, 0
	}
	delta := maxc - minc
	if l <= 0.5 {
		s = delta / (maxc + minc)
	} else {
		s = delta / (2.0 - maxc - minc)
	}
	rc := (maxc - r) / delta
	gc := (maxc - g) / delta
	bc := (maxc - b) / delta
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}
	h = math.Mod(h/6.0, 1.0)
	if h < 0 {
		h += 1.0
	}
	return h, l, s
}

// FromHLS converts (hue, lightness, saturation) back to an RGB colour.
func FromHLS(h, l, s float64) RGB {
	if s == 0 {
		return FromUnit(l, l, l)
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1.0 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2.0*l - m2
	return FromUnit(
		hlsComponent(m1, m2, h+1.0/3.0),
		hlsComponent(m1, m2, h),
		hlsComponent(m1, m2, h-1.0/3.0),
	)
}

func hlsComponent(m1, m2, hue float64) float64 {
	hue = math.Mod(hue, 1.0)
	if hue < 0 {
		hue += 1.0
	}
	switch {
	case hue < 1.0/6.0:
		return m1 + (m2-m1)*hue*6.0
	case hue < 0.5:
		return m2
	case hue < 2.0/3.0:
		return m1 + (m2-m1)*(2.0/3.0-hue)*6.0
	}
	return m1
}

// HueDeltaSigned returns the signed shortest circular distance from h2 to
// h1 on the hue wheel, in (-0.5, 0.5]. Interpolating by this delta stays on
// the short arc.
func HueDeltaSigned(h1, h2 float64) float64 {
	d := math.Mod(h1-h2, 1.0)
	if d < 0 {
		d += 1.0
	}
	if d > 0.5 {
		d -= 1.0
	}
	return d
}

// Mix linearly interpolates between two colours. t is clamped to [0, 1];
// 0 yields a, 1 yields b.
func Mix(a, b RGB, t float64) RGB {
	t = clamp(t, 0, 1)
	ar, ag, ab := a.Unit()
	br, bg, bb := b.Unit()
	return FromUnit(
		(1.0-t)*ar+t*br,
		(1.0-t)*ag+t*bg,
		(1.0-t)*ab+t*bb,
	)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
