package autotheme

import (
	"maps"
	"slices"

	"github.com/jmylchreest/bartint/internal/colour"
)

// roleKeys maps each settings key to the role that supplies its colour.
// Key order is the order keys are written.
var roleKeys = []struct {
	key  string
	role Role
	wmax bool
}{
	{key: "boxcolor", role: RoleBarBG},
	{key: "bgcolor", role: RoleBarBG},
	{key: "bgcolor2", role: RoleAccent},
	{key: "iscolor", role: RoleMenuBG},
	{key: "shcolor", role: RoleBorder},
	{key: "bcolor", role: RoleBorder},
	{key: "bgcolor-wmax", wmax: true},
	{key: "mbgcolor", role: RoleMenuBG},
	{key: "smbgcolor", role: RoleSubMenuBG},
	{key: "mbcolor", role: RoleBorder},
	{key: "mshcolor", role: RoleBorder},
	{key: "mscolor", role: RoleAccent},
	{key: "winbcolor", role: RoleAccent},
}

// Alpha applied to opaque-looking backgrounds when auto-alpha is enabled.
const autoAlpha = 0.95

// Settings is the mode-scoped key set written after a run.
type Settings struct {
	Scheme Scheme
	// Colours maps prefixed keys ("dark-bgcolor") to 0-1 channel strings.
	Colours map[string][3]string
	// Alphas is empty unless auto-alpha is on.
	Alphas map[string]float64
}

// KeyNames returns the unprefixed colour keys in write order.
func KeyNames() []string {
	out := make([]string, len(roleKeys))
	for i, rk := range roleKeys {
		out[i] = rk.key
	}
	return out
}

// Prefix returns the settings key prefix for a scheme.
func (s Scheme) Prefix() string {
	return s.String() + "-"
}

// NewSettings maps a result onto the settings keys for its scheme.
func NewSettings(res Result, in Input) Settings {
	prefix := res.Scheme.Prefix()
	st := Settings{
		Scheme:  res.Scheme,
		Colours: make(map[string][3]string, len(roleKeys)),
		Alphas:  map[string]float64{},
	}
	for _, rk := range roleKeys {
		c := res.WindowMaxBarBG
		if !rk.wmax {
			c = res.Colour(rk.role)
		}
		st.Colours[prefix+rk.key] = c.Unit()
	}

	if in.AutoAlpha {
		bg, is := 0.0, 0.0
		switch in.BarType {
		case BarMainland, BarFloating:
			bg = autoAlpha
		case BarIslands, BarTrilands:
			is = autoAlpha
		}
		st.Alphas[prefix+"bgalpha"] = bg
		st.Alphas[prefix+"isalpha"] = is
	}
	return st
}

// Keys returns every key in the settings, colours first, each group sorted.
func (s Settings) Keys() []string {
	keys := slices.Sorted(maps.Keys(s.Colours))
	return append(keys, slices.Sorted(maps.Keys(s.Alphas))...)
}

// Colour parses a colour key back to an RGB value.
func (s Settings) Colour(key string) (colour.RGB64, bool) {
	v, ok := s.Colours[s.Scheme.Prefix()+key]
	if !ok {
		return colour.RGB64{}, false
	}
	c, err := colour.ParseUnit(v)
	if err != nil {
		return colour.RGB64{}, false
	}
	return c, true
}
