package colour

import "math"

// AddTint moves every channel towards white by amt (0-1).
func AddTint(c RGB64, amt float64) RGB64 {
	return c.Mix(Grey(255), amt)
}

// AddShade moves every channel towards target (usually 0) by amt (0-1).
func AddShade(c RGB64, amt, target float64) RGB64 {
	return c.Mix(Grey(target), amt)
}

// AddTone moves every channel towards mid grey by amt (0-1).
func AddTone(c RGB64, amt float64) RGB64 {
	return c.Mix(Grey(128), amt)
}

// AddPastel desaturates and lightens a colour in HSL space by amt (0-1).
func AddPastel(c RGB64, amt float64) RGB64 {
	amt = clamp01(amt)
	h, s, l := RGBToHSL(c)
	s *= 1 - amt
	l += (1 - l) * amt
	return HSLToRGB(h, s, l)
}

// HueBand is an arc of the colour wheel from From to To (both in [0,1]),
// travelling in the positive direction. A band with From > To wraps past red.
type HueBand struct {
	From, To float64
}

// Contains reports whether h lies in the band.
func (b HueBand) Contains(h float64) bool {
	h -= math.Floor(h)
	if b.From <= b.To {
		return h >= b.From && h <= b.To
	}
	return h >= b.From || h <= b.To
}

// ClampSaturationForHue caps the HSL saturation of c at maxSat when its hue
// falls inside band. Colours outside the band are returned unchanged.
func ClampSaturationForHue(c RGB64, band HueBand, maxSat float64) RGB64 {
	h, s, l := RGBToHSL(c)
	if s <= maxSat || !band.Contains(h) {
		return c
	}
	return HSLToRGB(h, maxSat, l)
}
