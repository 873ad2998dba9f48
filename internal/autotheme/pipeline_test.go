package autotheme

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jmylchreest/bartint/internal/colour"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// entry is a palette colour with its weight in percent.
type entry struct {
	r, g, b float64
	w       float64
}

func palette(entries ...entry) []colour.WeightedColour {
	out := make([]colour.WeightedColour, len(entries))
	for i, e := range entries {
		out[i] = colour.WeightedColour{Colour: colour.NewRGB64(e.r, e.g, e.b), Weight: e.w}
	}
	return out
}

// nightPalette resembles a dark city wallpaper.
func nightPalette() []colour.WeightedColour {
	return palette(
		entry{20, 24, 38, 30},
		entry{40, 48, 70, 20},
		entry{200, 60, 50, 12},
		entry{90, 110, 140, 10},
		entry{230, 200, 120, 8},
		entry{15, 15, 15, 6},
		entry{60, 140, 90, 5},
		entry{240, 240, 235, 3},
		entry{120, 80, 160, 2},
		entry{180, 180, 190, 2},
		entry{30, 90, 160, 1},
		entry{250, 130, 30, 1},
	)
}

// beachPalette resembles a bright, airy wallpaper.
func beachPalette() []colour.WeightedColour {
	return palette(
		entry{235, 225, 205, 28},
		entry{140, 200, 230, 22},
		entry{250, 250, 248, 14},
		entry{60, 140, 190, 10},
		entry{200, 170, 120, 8},
		entry{240, 120, 90, 6},
		entry{90, 90, 80, 4},
		entry{170, 220, 200, 3},
		entry{30, 60, 90, 2},
		entry{220, 200, 60, 1},
		entry{120, 60, 40, 1},
		entry{180, 30, 60, 1},
	)
}

func uniformPalette(c colour.RGB64) []colour.WeightedColour {
	out := make([]colour.WeightedColour, PaletteSize)
	for i := range out {
		out[i] = colour.WeightedColour{Colour: c, Weight: 100.0 / PaletteSize}
	}
	return out
}

func runOrFail(t *testing.T, in Input) Result {
	t.Helper()
	res, err := Run(in)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return res
}

func TestRunAssignsUniqueIndices(t *testing.T) {
	palettes := map[string][]colour.WeightedColour{
		"night": nightPalette(),
		"beach": beachPalette(),
	}
	for name, p := range palettes {
		for _, theme := range Themes() {
			for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
				for _, neon := range []bool{false, true} {
					in := Input{Palette: p, Theme: theme, Scheme: scheme, Neon: neon, HeaderbarHint: 20}
					res := runOrFail(t, in)

					seen := map[int]Role{}
					for _, role := range Roles() {
						sel := res.Selection(role)
						if sel.Index < 0 || sel.Tier == TierNone {
							t.Errorf("%s/%s/%s: %s unassigned", name, theme, scheme, role)
							continue
						}
						if prev, dup := seen[sel.Index]; dup {
							t.Errorf("%s/%s/%s: index %d used by %s and %s", name, theme, scheme, sel.Index, prev, role)
						}
						seen[sel.Index] = role
					}
				}
			}
		}
	}
}

func TestRunUniformPalette(t *testing.T) {
	greys := []colour.RGB64{colour.Grey(0), colour.Grey(128), colour.Grey(255), colour.NewRGB64(200, 40, 40)}
	for _, c := range greys {
		for _, theme := range Themes() {
			for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
				in := Input{Palette: uniformPalette(c), Theme: theme, Scheme: scheme, Neon: true}
				res, err := Run(in)
				if err != nil {
					t.Fatalf("%s/%s/%s: Run() error: %v", c.Hex(), theme, scheme, err)
				}
				for _, role := range Roles() {
					if sel := res.Selection(role); sel.Index < 0 || sel.Tier == TierNone {
						t.Errorf("%s/%s/%s: %s unassigned", c.Hex(), theme, scheme, role)
					}
					for _, v := range []float64{res.Colour(role).R, res.Colour(role).G, res.Colour(role).B} {
						if math.IsNaN(v) || v < 0 || v > 255 {
							t.Errorf("%s/%s/%s: %s has channel %v", c.Hex(), theme, scheme, role, v)
						}
					}
				}
			}
		}
	}
}

func TestRunDarkMenuWithinCorrectionWindow(t *testing.T) {
	p, _ := ParamsFor(ThemeDark)
	win := p.Menu.Correction.Light

	for name, pal := range map[string][]colour.WeightedColour{
		"night":   nightPalette(),
		"beach":   beachPalette(),
		"uniform": uniformPalette(colour.Grey(200)),
	} {
		for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
			res := runOrFail(t, Input{Palette: pal, Theme: ThemeDark, Scheme: scheme})
			_, _, l := colour.RGBToHSL(res.Trace.MenuBGCorrected)
			if l < win.Min-1e-6 || l > win.Max+1e-6 {
				t.Errorf("%s/%s: corrected menu lightness %.4f outside [%v, %v]", name, scheme, l, win.Min, win.Max)
			}
		}
	}
}

func TestRunAccentOverride(t *testing.T) {
	want := [3]string{"0.784", "0.196", "0.196"}
	for _, theme := range Themes() {
		in := Input{
			Palette: nightPalette(),
			Theme:   theme,
			Scheme:  SchemeDark,
			Accent:  Override{Enabled: true, Colour: colour.NewRGB64(200, 50, 50)},
		}
		res := runOrFail(t, in)
		if got := res.Accent.Unit(); got != want {
			t.Errorf("%s: accent = %v, want %v", theme, got, want)
		}
		sel := res.Selection(RoleAccent)
		if sel.Tier != TierOverride || sel.Index != -1 {
			t.Errorf("%s: accent selection = %+v, want override", theme, sel)
		}

		st := NewSettings(res, in)
		if got := st.Colours["dark-bgcolor2"]; got != want {
			t.Errorf("%s: dark-bgcolor2 = %v, want %v", theme, got, want)
		}
	}
}

func TestRunSubMenuOverride(t *testing.T) {
	sub := colour.NewRGB64(10, 20, 30)
	res := runOrFail(t, Input{
		Palette: nightPalette(),
		Theme:   ThemeDark,
		Scheme:  SchemeDark,
		SubMenu: Override{Enabled: true, Colour: sub},
	})
	if res.SubMenuBG != sub {
		t.Errorf("submenu = %v, want %v", res.SubMenuBG, sub)
	}
	if res.Swapped {
		t.Error("an overridden submenu must not be swapped")
	}
	if sel := res.Selection(RoleSubMenuBG); sel.Tier != TierOverride {
		t.Errorf("submenu tier = %s, want override", sel.Tier)
	}
}

func TestRunTrueColourUsesRawColours(t *testing.T) {
	pal := nightPalette()
	for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
		res := runOrFail(t, Input{Palette: pal, Theme: ThemeColor, Scheme: scheme})
		for _, role := range Roles() {
			sel := res.Selection(role)
			if got, want := res.Colour(role), pal[sel.Index].Colour; got != want {
				t.Errorf("%s: %s = %v, want raw palette entry %d %v", scheme, role, got, sel.Index, want)
			}
		}
		if res.Trace.MenuBGCorrected != res.MenuBG {
			t.Errorf("%s: true colour should not correct the menu background", scheme)
		}
	}
}

func TestRunPastelAccentFallsBackToClosest(t *testing.T) {
	pal := palette(
		entry{255, 0, 0, 45},
		entry{60, 60, 62, 5},
		entry{80, 80, 81, 5},
		entry{100, 101, 100, 5},
		entry{120, 120, 122, 5},
		entry{140, 140, 141, 5},
		entry{160, 161, 160, 5},
		entry{180, 180, 182, 5},
		entry{200, 200, 201, 5},
		entry{215, 216, 215, 5},
		entry{230, 230, 232, 5},
		entry{245, 245, 246, 5},
	)
	res := runOrFail(t, Input{Palette: pal, Theme: ThemePastel, Scheme: SchemeLight})
	sel := res.Selection(RoleAccent)
	if sel.Index != 0 || sel.Tier != TierClosest {
		t.Errorf("accent selection = %+v, want index 0 via closest", sel)
	}
}

func TestRunMenuSeparation(t *testing.T) {
	for name, pal := range map[string][]colour.WeightedColour{
		"night":   nightPalette(),
		"beach":   beachPalette(),
		"uniform": uniformPalette(colour.Grey(30)),
	} {
		for _, theme := range []Theme{ThemeDark, ThemeLight, ThemePastel} {
			for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
				res := runOrFail(t, Input{Palette: pal, Theme: theme, Scheme: scheme})
				if d := colour.ColourDistance2000(res.MenuBG, res.SubMenuBG); d < 30 {
					t.Errorf("%s/%s/%s: menu separation %.2f < 30", name, theme, scheme, d)
				}
			}
		}
	}
}

// Separation must hold for the 8-bit colours actually emitted, not just the
// unrounded intermediates.
func TestRunMenuSeparationAfterRounding(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for n := range 300 {
		entries := make([]entry, PaletteSize)
		total := 0.0
		for i := range entries {
			entries[i] = entry{rng.Float64() * 255, rng.Float64() * 255, rng.Float64() * 255, 1 + rng.Float64()*20}
			total += entries[i].w
		}
		for i := range entries {
			entries[i].w *= 100 / total
		}
		pal := palette(entries...)

		for _, theme := range []Theme{ThemeDark, ThemeLight, ThemePastel} {
			for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
				res := runOrFail(t, Input{Palette: pal, Theme: theme, Scheme: scheme})
				if d := colour.ColourDistance2000(res.MenuBG, res.SubMenuBG); d < 30 {
					t.Errorf("palette %d %s/%s: menu %s sub %s separation %.2f < 30",
						n, theme, scheme, res.MenuBG.Hex(), res.SubMenuBG.Hex(), d)
				}
			}
		}
	}
}

func TestRunAccentTrace(t *testing.T) {
	for _, theme := range []Theme{ThemeDark, ThemeLight, ThemePastel} {
		p, _ := ParamsFor(theme)
		in := Input{Palette: nightPalette(), Theme: theme, Scheme: SchemeDark}
		res := runOrFail(t, in)

		sel := res.Selections[RoleAccent]
		if sel.Index < 0 {
			t.Fatalf("%s: no accent selected", theme)
		}
		picked := in.Palette[sel.Index].Colour.Clamp()
		want := correctAccent(picked, p.Accent, p.Pull)
		if res.Trace.AccentCorrected != want {
			t.Errorf("%s: Trace.AccentCorrected = %v, want %v", theme, res.Trace.AccentCorrected, want)
		}
		if got := recorrectAccent(want, res.MenuBG, res.SubMenuBG, p.Accent).Round(); res.Accent != got {
			t.Errorf("%s: Accent = %s, want re-corrected %s", theme, res.Accent.Hex(), got.Hex())
		}
	}
}

func TestRunNeonBoostOnlyOnBestTier(t *testing.T) {
	p, _ := ParamsFor(ThemeColor)
	for name, pal := range map[string][]colour.WeightedColour{
		"night": nightPalette(),
		"beach": beachPalette(),
		"grey":  uniformPalette(colour.Grey(30)),
	} {
		in := Input{Palette: pal, Theme: ThemeColor, Scheme: SchemeDark, Neon: true}
		res := runOrFail(t, in)

		sel := res.Selections[RoleBorder]
		want := in.Palette[sel.Index].Colour.Clamp()
		if sel.Tier == TierBest {
			want = boostNeon(want, p.Border)
		}
		if res.Border != want.Round() {
			t.Errorf("%s: border %s (tier %s), want %s", name, res.Border.Hex(), sel.Tier, want.Round().Hex())
		}
		if name == "grey" && sel.Tier == TierBest {
			t.Errorf("grey palette border reached tier %s", sel.Tier)
		}
	}
}

func TestRunBarLightnessLimits(t *testing.T) {
	for name, pal := range map[string][]colour.WeightedColour{
		"night": nightPalette(),
		"beach": beachPalette(),
	} {
		for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
			res := runOrFail(t, Input{Palette: pal, Theme: ThemeDark, Scheme: scheme})
			if _, _, l := colour.RGBToHSL(res.BarBG); l > 0.4+0.005 {
				t.Errorf("%s/%s: dark bar lightness %.3f > 0.40", name, scheme, l)
			}

			res = runOrFail(t, Input{Palette: pal, Theme: ThemeLight, Scheme: scheme})
			if _, _, l := colour.RGBToHSL(res.BarBG); l < 0.8-0.005 {
				t.Errorf("%s/%s: light bar lightness %.3f < 0.80", name, scheme, l)
			}
		}
	}
}

func TestRunWindowMaxBlend(t *testing.T) {
	p, _ := ParamsFor(ThemeColor)
	for _, tt := range []struct {
		scheme Scheme
		base   colour.RGB64
	}{
		{SchemeDark, p.DarkBase},
		{SchemeLight, p.LightBase},
	} {
		zero := runOrFail(t, Input{Palette: nightPalette(), Theme: ThemeColor, Scheme: tt.scheme})
		if zero.WindowMaxBarBG != tt.base {
			t.Errorf("%s: hint 0 gives %v, want base %v", tt.scheme, zero.WindowMaxBarBG, tt.base)
		}
		full := runOrFail(t, Input{Palette: nightPalette(), Theme: ThemeColor, Scheme: tt.scheme, HeaderbarHint: 100})
		if full.WindowMaxBarBG != full.Accent {
			t.Errorf("%s: hint 100 gives %v, want accent %v", tt.scheme, full.WindowMaxBarBG, full.Accent)
		}
	}
}

func TestRunMenuOrdering(t *testing.T) {
	dark := runOrFail(t, Input{Palette: nightPalette(), Theme: ThemeColor, Scheme: SchemeDark})
	if colour.HSP(dark.MenuBG) > colour.HSP(dark.SubMenuBG) {
		t.Errorf("true colour menu %v should not be brighter than submenu %v", dark.MenuBG, dark.SubMenuBG)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	in := Input{Palette: beachPalette(), Theme: ThemePastel, Scheme: SchemeLight, Neon: true, HeaderbarHint: 35}
	a := runOrFail(t, in)
	b := runOrFail(t, in)
	if a != b {
		t.Errorf("two runs differ:\n%+v\n%+v", a, b)
	}
}

func TestInputValidate(t *testing.T) {
	good := nightPalette()
	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{"valid", Input{Palette: good, Theme: ThemeDark}, nil},
		{"too small", Input{Palette: good[:4], Theme: ThemeDark}, ErrPaletteSize},
		{"no theme", Input{Palette: good, Theme: ThemeNone}, ErrUnknownTheme},
		{"bad theme", Input{Palette: good, Theme: "Sepia"}, ErrUnknownTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	bad := nightPalette()
	bad[0].Weight = 80
	if err := (Input{Palette: bad, Theme: ThemeDark}).Validate(); err == nil {
		t.Error("expected an error for weights not summing to 100")
	}
	if err := (Input{Palette: good, Theme: ThemeDark, HeaderbarHint: 101}).Validate(); err == nil {
		t.Error("expected an error for headerbar hint above 100")
	}
}
