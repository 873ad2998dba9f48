package colour

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// toColorful converts to go-colorful's unit-range representation.
func (c RGB64) toColorful() colorful.Color {
	c = c.Clamp()
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

// RGBToLab converts sRGB to CIELAB under the D65 white point.
// L is in [0,100]; a and b are roughly in [-128,128].
func RGBToLab(c RGB64) (l, a, b float64) {
	l, a, b = c.toColorful().Lab()
	return l * 100, a * 100, b * 100
}

// ColourDistance returns the CIE76 ΔE (Euclidean distance in CIELAB).
func ColourDistance(x, y RGB64) float64 {
	return x.toColorful().DistanceLab(y.toColorful()) * 100
}

// ColourDistance2000 returns the CIEDE2000 ΔE between two colours on the
// conventional 0-100 scale. The distance is symmetric.
func ColourDistance2000(x, y RGB64) float64 {
	return x.toColorful().DistanceCIEDE2000(y.toColorful()) * 100
}
