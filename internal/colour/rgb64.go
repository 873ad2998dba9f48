package colour

import (
	"fmt"
	"math"
	"strconv"
)

// RGB64 is an (R,G,B) triple with float64 channels in the range [0,255].
// Channels may drift outside that range during intermediate arithmetic;
// Clamp and Round bring them back.
type RGB64 struct {
	R, G, B float64
}

// NewRGB64 builds an RGB64 from three channel values.
func NewRGB64(r, g, b float64) RGB64 {
	return RGB64{R: r, G: g, B: b}
}

// Grey returns the neutral colour with every channel set to v.
func Grey(v float64) RGB64 {
	return RGB64{R: v, G: v, B: v}
}

// Clamp limits every channel to [0,255].
func (c RGB64) Clamp() RGB64 {
	return RGB64{R: clamp255(c.R), G: clamp255(c.G), B: clamp255(c.B)}
}

// Round clamps and rounds every channel to the nearest integer.
func (c RGB64) Round() RGB64 {
	c = c.Clamp()
	return RGB64{R: math.Round(c.R), G: math.Round(c.G), B: math.Round(c.B)}
}

// RGB converts to the 8-bit representation.
func (c RGB64) RGB() RGB {
	c = c.Round()
	return RGB{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B)}
}

// Hex returns the rounded colour as "#rrggbb".
func (c RGB64) Hex() string {
	return c.RGB().Hex()
}

// String returns "rgb(r, g, b)" with rounded channels.
func (c RGB64) String() string {
	return c.RGB().String()
}

// Unit returns the three channels scaled to [0,1] as decimal strings with
// three fractional digits, the representation used for settings values.
func (c RGB64) Unit() [3]string {
	c = c.Round()
	return [3]string{
		strconv.FormatFloat(c.R/255, 'f', 3, 64),
		strconv.FormatFloat(c.G/255, 'f', 3, 64),
		strconv.FormatFloat(c.B/255, 'f', 3, 64),
	}
}

// FromUnit builds a colour from channels in [0,1].
func FromUnit(r, g, b float64) RGB64 {
	return RGB64{R: r * 255, G: g * 255, B: b * 255}
}

// ParseUnit parses three decimal strings in [0,1], the inverse of Unit.
func ParseUnit(v [3]string) (RGB64, error) {
	var ch [3]float64
	for i, s := range v {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return RGB64{}, fmt.Errorf("invalid channel %q: %w", s, err)
		}
		ch[i] = f
	}
	return FromUnit(ch[0], ch[1], ch[2]), nil
}

// Mix linearly interpolates from c towards other by t (0 returns c, 1 returns other).
func (c RGB64) Mix(other RGB64, t float64) RGB64 {
	return RGB64{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
