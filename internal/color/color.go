// Package color parses and renders CSS colors in hex, rgb(a) and hsl(a)
// notation.
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Errors returned by the parsers.
var (
	ErrInvalidHex   = errors.New("invalid hex color")
	ErrInvalidRGB   = errors.New("invalid rgb color")
	ErrInvalidHSL   = errors.New("invalid hsl color")
	ErrInvalidColor = errors.New("unrecognized color")
)

// Default is the color shown before any input.
var Default = Color{R: 59, G: 130, B: 246, A: 1}

// Color is an sRGB color with an alpha channel in 0..1.
type Color struct {
	R, G, B uint8
	A       float64
}

// HSL is a color in hue degrees and saturation/lightness percentages.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

var (
	hexPattern = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)
	rgbPattern = regexp.MustCompile(`(?i)^rgba?\(\s*([-\d.]+)\s*,\s*([-\d.]+)\s*,\s*([-\d.]+)\s*(?:,\s*([-\d.]+)\s*)?\)$`)
	hslPattern = regexp.MustCompile(`(?i)^hsla?\(\s*([-\d.]+)\s*,\s*([-\d.]+)%?\s*,\s*([-\d.]+)%?\s*(?:,\s*([-\d.]+)\s*)?\)$`)
)

// ParseHex parses "#rrggbb" or "rrggbb" in any letter case.
func ParseHex(s string) (Color, error) {
	m := hexPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	var c [3]uint8
	for i := range c {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		c[i] = uint8(v)
	}
	return Color{R: c[0], G: c[1], B: c[2], A: 1}, nil
}

// ParseRGB parses "rgb(r, g, b)" or "rgba(r, g, b, a)".
func ParseRGB(s string) (Color, error) {
	v, err := parseFunc(rgbPattern, s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidRGB, s)
	}
	return FromRGB(v[0], v[1], v[2], v[3]), nil
}

// ParseHSL parses "hsl(h, s%, l%)" or "hsla(h, s%, l%, a)".
func ParseHSL(s string) (Color, error) {
	v, err := parseFunc(hslPattern, s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHSL, s)
	}
	return FromHSL(v[0], v[1], v[2], v[3]), nil
}

// Parse accepts any of the hex, rgb and hsl notations.
func Parse(s string) (Color, error) {
	if c, err := ParseHex(s); err == nil {
		return c, nil
	}
	if c, err := ParseRGB(s); err == nil {
		return c, nil
	}
	if c, err := ParseHSL(s); err == nil {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseFunc(re *regexp.Regexp, s string) ([4]float64, error) {
	out := [4]float64{0, 0, 0, 1}
	m := re.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return out, ErrInvalidColor
	}
	for i := 1; i <= 4; i++ {
		if m[i] == "" {
			continue
		}
		f, err := strconv.ParseFloat(m[i], 64)
		if err != nil {
			return out, err
		}
		out[i-1] = f
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FromRGB builds a color from channel values, clamping r, g and b to 0..255
// and a to 0..1.
func FromRGB(r, g, b, a float64) Color {
	ch := func(v float64) uint8 { return uint8(math.Round(clamp(v, 0, 255))) }
	return Color{R: ch(r), G: ch(g), B: ch(b), A: clamp(a, 0, 1)}
}

// FromHSL builds a color from hue degrees and saturation/lightness
// percentages. Out of range inputs are clamped.
func FromHSL(h, s, l, a float64) Color {
	c := colorful.Hsl(clamp(h, 0, 360), clamp(s, 0, 100)/100, clamp(l, 0, 100)/100)
	return FromRGB(c.R*255, c.G*255, c.B*255, a)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex renders the color as lowercase "#rrggbb". Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSL returns the rounded hue, saturation and lightness.
func (c Color) HSL() HSL {
	h, s, l := c.colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSL{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// RGBString renders rgb(...) or rgba(...) when the color is translucent.
func (c Color) RGBString() string {
	if c.A < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HSLString renders hsl(...) or hsla(...) when the color is translucent.
func (c Color) HSLString() string {
	v := c.HSL()
	if c.A < 1 {
		return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", v.H, v.S, v.L, formatAlpha(c.A))
	}
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", v.H, v.S, v.L)
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// String implements fmt.Stringer using the hex form.
func (c Color) String() string {
	return c.Hex()
}
