package colour

import (
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB64) float64 {
	c = c.Clamp()
	rf := gammaCorrect(c.R / 255.0)
	rg := gammaCorrect(c.G / 255.0)
	rb := gammaCorrect(c.B / 255.0)

	return 0.2126*rf + 0.7152*rg + 0.0722*rb
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB64) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// HSP returns the perceived brightness of a colour using the HSP model,
// sqrt(.299R² + .587G² + .114B²). The result is in [0,255].
func HSP(c RGB64) float64 {
	c = c.Clamp()
	return math.Sqrt(0.299*c.R*c.R + 0.587*c.G*c.G + 0.114*c.B*c.B)
}

// RGBToHSL converts to HSL with hue, saturation and lightness all in [0,1].
func RGBToHSL(c RGB64) (h, s, l float64) {
	c = c.Clamp()
	r := c.R / 255.0
	g := c.G / 255.0
	b := c.B / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	if delta == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return h / 6, s, l
}

// HSLToRGB converts HSL (all components in [0,1]) to an RGB64.
// Saturation and lightness are clamped; hue wraps.
func HSLToRGB(h, s, l float64) RGB64 {
	s = clamp01(s)
	l = clamp01(l)
	if s == 0 {
		return Grey(l * 255)
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB64{
		R: hueToRGB(p, q, h+1.0/3.0) * 255,
		G: hueToRGB(p, q, h) * 255,
		B: hueToRGB(p, q, h-1.0/3.0) * 255,
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	t -= math.Floor(t)

	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// Colourfulness returns the per-colour opponent-channel magnitude
// sqrt(rg² + yb²) with rg = R-G and yb = (R+G)/2 - B.
func Colourfulness(c RGB64) float64 {
	rg := c.R - c.G
	yb := 0.5*(c.R+c.G) - c.B
	return math.Sqrt(rg*rg + yb*yb)
}

// MoreColourful reports whether a is more colourful than b.
func MoreColourful(a, b RGB64) bool {
	return Colourfulness(a) > Colourfulness(b)
}

// MoreSaturated reports whether a has higher HSL saturation than b.
func MoreSaturated(a, b RGB64) bool {
	_, sa, _ := RGBToHSL(a)
	_, sb, _ := RGBToHSL(b)
	return sa > sb
}
