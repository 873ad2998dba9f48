package autotheme

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/bartint/internal/colour"
)

// Theme names a parameter bundle. The string values match the selector
// strings stored in settings profiles.
type Theme string

const (
	// ThemeNone means no automatic theme is configured for a mode.
	ThemeNone Theme = ""
	// ThemeColor keeps wallpaper colours as-is (selection only).
	ThemeColor Theme = "Color"
	// ThemeDark produces dark backgrounds with a vivid accent.
	ThemeDark Theme = "Dark"
	// ThemeLight produces light backgrounds with a deeper accent.
	ThemeLight Theme = "Light"
	// ThemePastel produces soft, desaturated light backgrounds.
	ThemePastel Theme = "Pastel"
)

// Themes lists every selectable theme in display order.
func Themes() []Theme {
	return []Theme{ThemeColor, ThemeDark, ThemeLight, ThemePastel}
}

// ParseTheme resolves a selector string, accepting the common spellings.
// An empty string yields ThemeNone.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ThemeNone, nil
	case "color", "colour", "true color", "truecolor", "true colour":
		return ThemeColor, nil
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	case "pastel":
		return ThemePastel, nil
	}
	return ThemeNone, fmt.Errorf("%w: %q (valid: Color, Dark, Light, Pastel)", ErrUnknownTheme, s)
}

// Range is a scored acceptance window. A value inside [Low,High] is in
// bounds; [LowClose,HighClose] is the relaxed window used when nothing is in
// bounds. Target is the value scores are measured against.
type Range struct {
	Low, LowClose, High, HighClose, Target float64
}

func (r Range) in(v float64) bool {
	return v >= r.Low && v <= r.High
}

func (r Range) inClose(v float64) bool {
	return v >= r.LowClose && v <= r.HighClose
}

func (r Range) deviation(v float64) float64 {
	d := v - r.Target
	if d < 0 {
		return -d
	}
	return d
}

// Bounds is a hard correction window.
type Bounds struct {
	Min, Max float64
}

// pull clamps v into the window, or moves an in-window v by amt towards the
// window centre.
func (b Bounds) pull(v, amt float64) float64 {
	switch {
	case v < b.Min:
		return b.Min
	case v > b.Max:
		return b.Max
	}
	return v + ((b.Min+b.Max)/2-v)*amt
}

// Contains reports whether v lies inside the window.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Correction bounds one role's HSL lightness and saturation.
// Saturation below SatDNDMin is scaled by SatDNDScale instead of clamped.
type Correction struct {
	Light       Bounds
	Sat         Bounds
	SatDNDMin   float64
	SatDNDScale float64
}

// AccentParams drives Accent selection and correction.
type AccentParams struct {
	Sat, Light                           Range
	WeightMin, WeightMinClose            float64
	WeightFactor, SatFactor, LightFactor float64

	Correction Correction
	// Pastel is the AddPastel amount applied after correction (Pastel only).
	Pastel float64
	// SatCap limits saturation for hues in CapHues; zero disables the cap.
	SatCap  float64
	CapHues colour.HueBand

	// Re-correction against the two menu backgrounds.
	MinBGDistance float64
	LightMargin   float64
	SatMargin     float64
}

// Separation constrains a candidate against an already assigned role.
type Separation struct {
	Dist     Range
	Contrast Range
}

// BackgroundParams drives Menu-BG and Sub-Menu-BG selection and correction.
type BackgroundParams struct {
	Light, Sat                Range
	WeightMin, WeightMinClose float64

	WeightFactor, LightFactor, SatFactor float64
	DistFactor, ContrastFactor           float64

	FromAccent Separation
	// FromMenu applies to the sub-menu background only.
	FromMenu Separation

	Correction Correction
	// Finish is the tint/shade amount applied after correction.
	Finish float64
}

// BarParams drives Bar-BG selection and correction.
type BarParams struct {
	// Strict and relaxed HSP limits for dark and light shell schemes.
	DarkMaxHSP, DarkMaxHSPClose   float64
	LightMinHSP, LightMinHSPClose float64
	SatMax                        float64

	WeightFactor, EvadeFactor, MenuFactor float64

	// HSP window considered muddy, and the tint/shade used to leave it.
	MuddyLow, MuddyHigh, MuddyPush float64

	// LightMax and LightMin are hard HSL lightness limits; 1 and 0 disable them.
	LightMax, LightMin float64
	// Force is the shade (under LightMax) or tint (over LightMin) applied after limiting.
	Force float64
}

// BorderParams drives Border/Neon selection.
type BorderParams struct {
	Sat, Light             Range
	SatFactor, LightFactor float64
	SatBoost, LightBoost   float64
}

// Finish selects how corrected backgrounds are finished.
type Finish int

const (
	// FinishNone leaves corrected colours untouched.
	FinishNone Finish = iota
	// FinishShade darkens towards black.
	FinishShade
	// FinishTint lightens towards white.
	FinishTint
	// FinishPastel pastel-ifies, then shades hues in ShadeHues and tints the rest.
	FinishPastel
)

// Params is the complete, immutable parameter bundle for one theme.
type Params struct {
	Theme Theme
	// Correct enables every post-selection correction pass.
	Correct bool

	ProminentCover float64
	ProminentMin   int

	// PreferDarkMenu orders Menu-BG darker than Sub-Menu-BG.
	PreferDarkMenu bool
	// Pull is the fraction an in-window value moves towards the window centre.
	Pull float64

	Finish       Finish
	PastelAmount float64
	ShadeHues    colour.HueBand

	MinMenuDistance float64
	MenuPush        float64

	// Bases for the window-maximised bar blend.
	DarkBase, LightBase colour.RGB64

	Accent  AccentParams
	Menu    BackgroundParams
	SubMenu BackgroundParams
	Bar     BarParams
	Border  BorderParams
}

// trueColour is the base bundle every other theme overrides.
var trueColour = Params{
	Theme:          ThemeColor,
	Correct:        false,
	ProminentCover: 90,
	ProminentMin:   4,
	PreferDarkMenu: true,
	Pull:           0.4,
	Finish:         FinishNone,
	PastelAmount:   0,
	ShadeHues:      colour.HueBand{From: 0.1, To: 0.45},

	MinMenuDistance: 30,
	MenuPush:        0.5,

	DarkBase:  colour.Grey(24),
	LightBase: colour.Grey(246),

	Accent: AccentParams{
		Sat:            Range{Low: 0.35, LowClose: 0.15, High: 1, HighClose: 1, Target: 0.75},
		Light:          Range{Low: 0.3, LowClose: 0.15, High: 0.75, HighClose: 0.9, Target: 0.55},
		WeightMin:      2,
		WeightMinClose: 0.5,
		WeightFactor:   1,
		SatFactor:      1,
		LightFactor:    0.8,
		Correction: Correction{
			Light:       Bounds{Min: 0.45, Max: 0.7},
			Sat:         Bounds{Min: 0.5, Max: 0.9},
			SatDNDMin:   0.2,
			SatDNDScale: 1.6,
		},
		MinBGDistance: 25,
		LightMargin:   0.15,
		SatMargin:     0.15,
	},

	Menu: BackgroundParams{
		Light:          Range{Low: 0.05, LowClose: 0, High: 0.35, HighClose: 0.55, Target: 0.15},
		Sat:            Range{Low: 0, LowClose: 0, High: 0.6, HighClose: 0.85, Target: 0.25},
		WeightMin:      4,
		WeightMinClose: 1,
		WeightFactor:   1,
		LightFactor:    1,
		SatFactor:      0.5,
		DistFactor:     0.6,
		ContrastFactor: 0.4,
		FromAccent: Separation{
			Dist:     Range{Low: 20, LowClose: 10, High: 100, HighClose: 100, Target: 40},
			Contrast: Range{Low: 2, LowClose: 1, High: 21, HighClose: 21, Target: 4.5},
		},
		Correction: Correction{
			Light:       Bounds{Min: 0.08, Max: 0.22},
			Sat:         Bounds{Min: 0.05, Max: 0.45},
			SatDNDMin:   0.08,
			SatDNDScale: 1.5,
		},
		Finish: 0.15,
	},

	SubMenu: BackgroundParams{
		Light:          Range{Low: 0.08, LowClose: 0, High: 0.45, HighClose: 0.65, Target: 0.22},
		Sat:            Range{Low: 0, LowClose: 0, High: 0.6, HighClose: 0.85, Target: 0.25},
		WeightMin:      2,
		WeightMinClose: 0.5,
		WeightFactor:   0.8,
		LightFactor:    1,
		SatFactor:      0.5,
		DistFactor:     0.6,
		ContrastFactor: 0.4,
		FromAccent: Separation{
			Dist:     Range{Low: 20, LowClose: 10, High: 100, HighClose: 100, Target: 40},
			Contrast: Range{Low: 1.8, LowClose: 1, High: 21, HighClose: 21, Target: 4},
		},
		FromMenu: Separation{
			Dist:     Range{Low: 8, LowClose: 3, High: 100, HighClose: 100, Target: 20},
			Contrast: Range{Low: 1.1, LowClose: 1, High: 21, HighClose: 21, Target: 1.4},
		},
		Correction: Correction{
			Light:       Bounds{Min: 0.14, Max: 0.3},
			Sat:         Bounds{Min: 0.05, Max: 0.45},
			SatDNDMin:   0.08,
			SatDNDScale: 1.5,
		},
		Finish: 0.1,
	},

	Bar: BarParams{
		DarkMaxHSP:       90,
		DarkMaxHSPClose:  140,
		LightMinHSP:      185,
		LightMinHSPClose: 140,
		SatMax:           0.7,
		WeightFactor:     0.5,
		EvadeFactor:      1,
		MenuFactor:       0.5,
		MuddyLow:         100,
		MuddyHigh:        200,
		MuddyPush:        0.35,
		LightMax:         1,
		LightMin:         0,
		Force:            0.1,
	},

	Border: BorderParams{
		Sat:         Range{Low: 0.55, LowClose: 0.3, High: 1, HighClose: 1, Target: 0.85},
		Light:       Range{Low: 0.4, LowClose: 0.3, High: 0.8, HighClose: 0.9, Target: 0.6},
		SatFactor:   1,
		LightFactor: 1,
		SatBoost:    1.3,
		LightBoost:  1.2,
	},
}

// overrides declares each theme's deltas against the True Color base.
var overrides = map[Theme]func(p *Params){
	ThemeColor: func(*Params) {},

	ThemeDark: func(p *Params) {
		p.Correct = true
		p.ProminentMin = 5
		p.PreferDarkMenu = true
		p.Pull = 0.35
		p.Finish = FinishShade

		p.Accent.Light.Target = 0.55
		p.Accent.Correction.Light = Bounds{Min: 0.45, Max: 0.68}

		p.Menu.Light.High = 0.3
		p.Menu.Light.Target = 0.12
		p.Menu.Correction.Light = Bounds{Min: 0.06, Max: 0.18}
		p.Menu.Finish = 0.2

		p.SubMenu.Light.Target = 0.2
		p.SubMenu.Correction.Light = Bounds{Min: 0.12, Max: 0.26}

		p.Bar.LightMax = 0.4
	},

	ThemeLight: func(p *Params) {
		p.Correct = true
		p.ProminentMin = 5
		p.PreferDarkMenu = false
		p.Pull = 0.4
		p.Finish = FinishTint

		p.Accent.Light = Range{Low: 0.25, LowClose: 0.1, High: 0.65, HighClose: 0.8, Target: 0.45}
		p.Accent.Correction.Light = Bounds{Min: 0.35, Max: 0.55}
		p.Accent.LightMargin = 0.12

		p.Menu.Light = Range{Low: 0.7, LowClose: 0.5, High: 1, HighClose: 1, Target: 0.9}
		p.Menu.Sat.High = 0.5
		p.Menu.Correction.Light = Bounds{Min: 0.82, Max: 0.95}
		p.Menu.Correction.Sat = Bounds{Min: 0.05, Max: 0.4}
		p.Menu.Finish = 0.25

		p.SubMenu.Light = Range{Low: 0.62, LowClose: 0.45, High: 1, HighClose: 1, Target: 0.84}
		p.SubMenu.Sat.High = 0.5
		p.SubMenu.Correction.Light = Bounds{Min: 0.74, Max: 0.9}
		p.SubMenu.Correction.Sat = Bounds{Min: 0.05, Max: 0.4}
		p.SubMenu.Finish = 0.15

		p.Bar.LightMin = 0.8
	},

	ThemePastel: func(p *Params) {
		p.Correct = true
		p.ProminentMin = 6
		p.PreferDarkMenu = false
		p.Pull = 0.5
		p.Finish = FinishPastel
		p.PastelAmount = 0.15

		p.Accent.Sat = Range{Low: 0.25, LowClose: 0.1, High: 0.7, HighClose: 1, Target: 0.5}
		p.Accent.Light = Range{Low: 0.55, LowClose: 0.35, High: 0.85, HighClose: 0.95, Target: 0.7}
		p.Accent.Correction = Correction{
			Light:       Bounds{Min: 0.62, Max: 0.8},
			Sat:         Bounds{Min: 0.35, Max: 0.65},
			SatDNDMin:   0.15,
			SatDNDScale: 1.4,
		}
		p.Accent.Pastel = 0.1
		p.Accent.SatCap = 0.55
		p.Accent.CapHues = colour.HueBand{From: 0.1, To: 0.45}
		p.Accent.LightMargin = 0.1
		p.Accent.SatMargin = 0.1

		p.Menu.Light = Range{Low: 0.6, LowClose: 0.4, High: 0.92, HighClose: 1, Target: 0.8}
		p.Menu.Sat = Range{Low: 0, LowClose: 0, High: 0.6, HighClose: 0.9, Target: 0.35}
		p.Menu.Correction.Light = Bounds{Min: 0.72, Max: 0.86}
		p.Menu.Correction.Sat = Bounds{Min: 0.2, Max: 0.5}
		p.Menu.Finish = 0.1

		p.SubMenu.Light = Range{Low: 0.55, LowClose: 0.35, High: 0.9, HighClose: 1, Target: 0.72}
		p.SubMenu.Sat = Range{Low: 0, LowClose: 0, High: 0.6, HighClose: 0.9, Target: 0.35}
		p.SubMenu.Correction.Light = Bounds{Min: 0.66, Max: 0.8}
		p.SubMenu.Correction.Sat = Bounds{Min: 0.2, Max: 0.5}
		p.SubMenu.Finish = 0.08
	},
}

// ParamsFor returns the effective parameter bundle for a theme. The result
// is a copy; callers may not affect other invocations through it.
func ParamsFor(t Theme) (Params, error) {
	apply, ok := overrides[t]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownTheme, string(t))
	}
	p := trueColour
	p.Theme = t
	apply(&p)
	return p, nil
}
