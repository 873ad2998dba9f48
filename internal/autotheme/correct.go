package autotheme

import (
	"math"

	"github.com/jmylchreest/bartint/internal/colour"
)

// Originals below these are treated as grey. HSL correction of a near-grey
// amplifies tiny channel differences into a visible cast, so such colours
// are rebuilt as pure grey at the corrected lightness.
const (
	greySatMax   = 0.06
	greyLightMax = 0.04
)

// Separation loop limits. Each step moves at least minSeparationStep.
const (
	maxSeparationSteps = 100
	minSeparationStep  = 0.05
)

// correct pulls a colour's HSL lightness and saturation into the correction
// windows. Saturation under SatDNDMin is scaled up instead of clamped.
func correct(c colour.RGB64, k Correction, pull float64) colour.RGB64 {
	h, s, l := colour.RGBToHSL(c)
	nl := k.Light.pull(l, pull)
	if s < greySatMax || l < greyLightMax {
		return colour.Grey(nl * 255)
	}

	var ns float64
	if s < k.SatDNDMin {
		ns = math.Min(s*k.SatDNDScale, k.Sat.Max)
	} else {
		ns = k.Sat.pull(s, pull)
	}
	return colour.HSLToRGB(h, ns, nl)
}

// finish applies the theme's tint or shade to a corrected background.
func finish(c colour.RGB64, amt float64, p Params) colour.RGB64 {
	switch p.Finish {
	case FinishShade:
		return colour.AddShade(c, amt, 0)
	case FinishTint:
		return colour.AddTint(c, amt)
	case FinishPastel:
		c = colour.AddPastel(c, p.PastelAmount)
		h, s, _ := colour.RGBToHSL(c)
		if s > 0 && p.ShadeHues.Contains(h) {
			return colour.AddShade(c, amt, 0)
		}
		return colour.AddTint(c, amt)
	}
	return c
}

// correctAccent applies the accent's bounds and the theme's accent styling.
func correctAccent(c colour.RGB64, a AccentParams, pull float64) colour.RGB64 {
	c = correct(c, a.Correction, pull)
	if a.Pastel > 0 {
		c = colour.AddPastel(c, a.Pastel)
	}
	if a.SatCap > 0 {
		c = colour.ClampSaturationForHue(c, a.CapHues, a.SatCap)
	}
	return c
}

// separate pushes sub away from menu, in the direction sub already sits
// relative to menu, until their ΔE2000 reaches minDist. The distance is
// measured on the 8-bit rounded sub, which is also what is returned. Each
// step moves in proportion to the remaining shortfall. The direction
// reverses once if sub runs into black or white first.
func separate(menu, sub colour.RGB64, minDist, push float64, preferDarkMenu bool) colour.RGB64 {
	menu = menu.Round()
	m, s := colour.HSP(menu), colour.HSP(sub)
	lighter := s > m || (s == m && preferDarkMenu)

	for range maxSeparationSteps {
		d := colour.ColourDistance2000(menu, sub.Round())
		if d >= minDist {
			break
		}
		switch hsp := colour.HSP(sub); {
		case lighter && hsp >= 254:
			lighter = false
		case !lighter && hsp <= 1:
			lighter = true
		}

		amt := max(push*(minDist-d)/minDist, minSeparationStep)
		if lighter {
			sub = colour.AddTint(sub, amt)
		} else {
			sub = colour.AddShade(sub, amt, 0)
		}
	}
	return sub.Round()
}

// recorrectAccent moves the accent out of the backgrounds' lightness and
// saturation envelope when it is within MinBGDistance of either background.
// An accent already far outside the envelope is pulled partway back.
func recorrectAccent(accent, menu, sub colour.RGB64, a AccentParams) colour.RGB64 {
	if colour.ColourDistance2000(accent, menu) >= a.MinBGDistance &&
		colour.ColourDistance2000(accent, sub) >= a.MinBGDistance {
		return accent
	}

	h, s, l := colour.RGBToHSL(accent)
	_, s1, l1 := colour.RGBToHSL(menu)
	_, s2, l2 := colour.RGBToHSL(sub)
	lo, hi := math.Min(l1, l2), math.Max(l1, l2)
	w := a.LightMargin

	origS := s
	switch {
	case l >= lo-w && l <= hi+w:
		if (lo+hi)/2 < 0.5 {
			l = hi + w
		} else {
			l = lo - w
		}
	case l > hi+2*w:
		l += (hi + w - l) / 2
	case l < lo-2*w:
		l += (lo - w - l) / 2
	}
	l = math.Max(0, math.Min(1, l))

	sLo, sHi := math.Min(s1, s2), math.Max(s1, s2)
	if s >= sLo-a.SatMargin && s <= sHi+a.SatMargin {
		s = math.Min(1, sHi+a.SatMargin)
	}

	if origS < greySatMax {
		return colour.Grey(l * 255)
	}
	return colour.HSLToRGB(h, s, l)
}

// correctBar moves a muddy mid-brightness bar towards the nearer extreme and
// enforces the theme's hard lightness limit.
func correctBar(c colour.RGB64, b BarParams) colour.RGB64 {
	if hsp := colour.HSP(c); hsp > b.MuddyLow && hsp < b.MuddyHigh {
		if hsp < (b.MuddyLow+b.MuddyHigh)/2 {
			c = colour.AddShade(c, b.MuddyPush, 0)
		} else {
			c = colour.AddTint(c, b.MuddyPush)
		}
	}

	if b.LightMax < 1 {
		if h, s, l := colour.RGBToHSL(c); l > b.LightMax {
			c = colour.HSLToRGB(h, s, b.LightMax)
		}
		c = colour.AddShade(c, b.Force, 0)
	}
	if b.LightMin > 0 {
		if h, s, l := colour.RGBToHSL(c); l < b.LightMin {
			c = colour.HSLToRGB(h, s, b.LightMin)
		}
		c = colour.AddTint(c, b.Force)
	}
	return c
}

// boostNeon lifts a neon border's saturation and lightness multiplicatively
// when they fall short of the neon thresholds.
func boostNeon(c colour.RGB64, b BorderParams) colour.RGB64 {
	h, s, l := colour.RGBToHSL(c)
	if s < b.Sat.Target {
		s = math.Min(1, s*b.SatBoost)
	}
	if l < b.Light.Low {
		l = math.Min(b.Light.High, l*b.LightBoost)
	}
	return colour.HSLToRGB(h, s, l)
}
