package autotheme

import (
	"math"
	"sort"

	"github.com/jmylchreest/bartint/internal/colour"
)

// swatch caches the metrics every stage reads for one palette entry.
type swatch struct {
	c      colour.RGB64
	weight float64
	h      float64
	s      float64
	l      float64
	hsp    float64
}

func newSwatches(p []colour.WeightedColour) []swatch {
	out := make([]swatch, len(p))
	for i, e := range p {
		c := e.Colour.Clamp()
		h, s, l := colour.RGBToHSL(c)
		out[i] = swatch{c: c, weight: e.Weight, h: h, s: s, l: l, hsp: colour.HSP(c)}
	}
	return out
}

// prominentSet returns the palette prefix covering at least cover percent of
// the image, extended to minCount entries.
func prominentSet(sw []swatch, cover float64, minCount int) indexSet {
	count := len(sw)
	cum := 0.0
	for i, s := range sw {
		cum += s.weight
		if cum >= cover {
			count = i + 1
			break
		}
	}
	count = min(max(count, minCount), len(sw))
	return firstN(count)
}

// selectAccent scores prominent candidates by weight and by saturation and
// lightness distance from the theme target.
func selectAccent(sw []swatch, a AccentParams, pool indexSet) pick {
	return search(pool, func(i int) verdict {
		c := sw[i]
		score := -a.WeightFactor*c.weight/100 +
			a.SatFactor*a.Sat.deviation(c.s) +
			a.LightFactor*a.Light.deviation(c.l)
		return verdict{
			score:  score,
			strict: a.Sat.in(c.s) && a.Light.in(c.l) && c.weight >= a.WeightMin,
			close:  a.Sat.inClose(c.s) && a.Light.inClose(c.l) && c.weight >= a.WeightMinClose,
		}
	})
}

// reference is an assigned role a background must keep its distance from.
type reference struct {
	c   colour.RGB64
	sep Separation
}

// proximityPenalty grows as d falls. Below the separation target the slope
// is halved; the hard distance floor is enforced by the bounds instead.
func proximityPenalty(d float64, r Range) float64 {
	const soften = 0.5
	if d >= r.Target {
		return math.Max(0, (100-d)/100)
	}
	return (100-r.Target)/100 + (r.Target-d)/100*soften
}

// contrastShortfall is the fraction by which cr misses the target contrast.
func contrastShortfall(cr float64, r Range) float64 {
	if r.Target <= 0 || cr >= r.Target {
		return 0
	}
	return (r.Target - cr) / r.Target
}

// selectBackground scores menu background candidates against the theme's
// lightness and saturation targets and against every reference role.
func selectBackground(sw []swatch, b BackgroundParams, pool indexSet, refs ...reference) pick {
	return search(pool, func(i int) verdict {
		c := sw[i]
		score := -b.WeightFactor*c.weight/100 +
			b.LightFactor*b.Light.deviation(c.l) +
			b.SatFactor*b.Sat.deviation(c.s)
		strict := b.Light.in(c.l) && c.s <= b.Sat.High && c.weight >= b.WeightMin
		relaxed := b.Light.inClose(c.l) && c.s <= b.Sat.HighClose && c.weight >= b.WeightMinClose

		for _, ref := range refs {
			d := colour.ColourDistance2000(c.c, ref.c)
			cr := colour.ContrastRatio(c.c, ref.c)
			score += b.DistFactor*proximityPenalty(d, ref.sep.Dist) +
				b.ContrastFactor*contrastShortfall(cr, ref.sep.Contrast)
			strict = strict && d >= ref.sep.Dist.Low && cr >= ref.sep.Contrast.Low
			relaxed = relaxed && d >= ref.sep.Dist.LowClose
		}

		return verdict{score: score, strict: strict, close: relaxed}
	})
}

// menuOutOfOrder reports whether the menu backgrounds contradict the theme's
// preferred brightness ordering.
func menuOutOfOrder(menu, sub colour.RGB64, preferDarkMenu bool) bool {
	m, s := colour.HSP(menu), colour.HSP(sub)
	if preferDarkMenu {
		return m > s
	}
	return m < s
}

// selectBar searches the whole remaining palette for a colour near the
// scheme's extreme (black for dark, white for light) that stays close to the
// menu background.
func selectBar(sw []swatch, b BarParams, pool indexSet, scheme Scheme, menu colour.RGB64) pick {
	target := 0.0
	if scheme == SchemeLight {
		target = 255
	}
	return search(pool, func(i int) verdict {
		c := sw[i]
		score := -b.WeightFactor*c.weight/100 +
			b.EvadeFactor*math.Abs(c.hsp-target)/255 +
			b.MenuFactor*colour.ColourDistance2000(c.c, menu)/100
		if scheme == SchemeLight {
			return verdict{
				score:  score,
				strict: c.hsp >= b.LightMinHSP && c.s <= b.SatMax,
				close:  c.hsp >= b.LightMinHSPClose,
			}
		}
		return verdict{
			score:  score,
			strict: c.hsp <= b.DarkMaxHSP && c.s <= b.SatMax,
			close:  c.hsp <= b.DarkMaxHSPClose,
		}
	})
}

// borderOrder sorts the pool for border selection: lightest first in the
// dark scheme, most saturated first in the light scheme. Equal saturations
// fall back to the more colourful entry.
func borderOrder(sw []swatch, pool indexSet, scheme Scheme) []int {
	order := pool.indices()
	sort.SliceStable(order, func(x, y int) bool {
		a, b := sw[order[x]], sw[order[y]]
		if scheme == SchemeLight {
			if a.s == b.s {
				return colour.MoreColourful(a.c, b.c)
			}
			return colour.MoreSaturated(a.c, b.c)
		}
		return a.l > b.l
	})
	return order
}

// selectBorder picks the border colour. Without neon the first entry of the
// ordered pool wins. With neon the first entry that is saturated enough and
// inside the lightness window wins; otherwise the lowest score, preferring
// entries inside the relaxed windows.
func selectBorder(sw []swatch, b BorderParams, pool indexSet, scheme Scheme, neon bool) pick {
	order := borderOrder(sw, pool, scheme)
	if len(order) == 0 {
		return pick{index: -1, tier: TierNone}
	}
	if !neon {
		return pick{index: order[0], tier: TierFirst}
	}

	for _, i := range order {
		if sw[i].s >= b.Sat.Low && b.Light.in(sw[i].l) {
			return pick{index: i, tier: TierBest}
		}
	}

	closest := pick{index: -1, tier: TierClosest}
	loosest := pick{index: -1, tier: TierLoosest}
	for _, i := range order {
		c := sw[i]
		score := b.SatFactor*b.Sat.deviation(c.s) + b.LightFactor*b.Light.deviation(c.l)
		if b.Sat.inClose(c.s) && b.Light.inClose(c.l) && (closest.index < 0 || score < closest.score) {
			closest.index, closest.score = i, score
		}
		if loosest.index < 0 || score < loosest.score {
			loosest.index, loosest.score = i, score
		}
	}
	if closest.index >= 0 {
		return closest
	}
	return loosest
}
