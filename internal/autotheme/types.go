// Package autotheme selects top-bar and menu colours from a weighted
// wallpaper palette.
//
// The pipeline assigns five roles in a fixed order: Accent, Menu-BG,
// Sub-Menu-BG, Bar-BG and Border. Each searched role takes the best
// in-bounds candidate, falling back to the closest relaxed candidate and
// finally to the lowest score in the pool, so every role is always assigned.
// A palette index is used by at most one role.
package autotheme

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmylchreest/bartint/internal/colour"
)

// PaletteSize is the number of colours the extractor produces for theming.
const PaletteSize = 12

// minPalette is the smallest palette that can fill every role.
const minPalette = 5

// Scheme is the shell colour scheme the theme is generated for.
type Scheme int

const (
	// SchemeDark is the "prefer-dark" shell colour scheme.
	SchemeDark Scheme = iota
	// SchemeLight is any other shell colour scheme.
	SchemeLight
)

// String returns "dark" or "light".
func (s Scheme) String() string {
	if s == SchemeLight {
		return "light"
	}
	return "dark"
}

// ParseScheme maps a GNOME color-scheme value or a mode name to a Scheme.
// Only "prefer-dark" and "dark" select the dark scheme.
func ParseScheme(s string) Scheme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefer-dark", "dark":
		return SchemeDark
	}
	return SchemeLight
}

// BarType is the panel layout; it only affects the alpha side effects.
type BarType string

const (
	BarMainland BarType = "Mainland"
	BarFloating BarType = "Floating"
	BarTrilands BarType = "Trilands"
	BarIslands  BarType = "Islands"
)

// ParseBarType resolves a bar type name case-insensitively.
func ParseBarType(s string) (BarType, error) {
	for _, bt := range []BarType{BarMainland, BarFloating, BarTrilands, BarIslands} {
		if strings.EqualFold(s, string(bt)) {
			return bt, nil
		}
	}
	return "", fmt.Errorf("unknown bar type %q (valid: Mainland, Floating, Trilands, Islands)", s)
}

// Override is a user-fixed colour that replaces a role's search.
type Override struct {
	Enabled bool
	Colour  colour.RGB64
}

// Input is everything one pipeline run reads. It is never modified.
type Input struct {
	// Palette is in extraction order with weights as percentages summing to 100.
	Palette []colour.WeightedColour
	Theme   Theme
	Scheme  Scheme

	Accent  Override
	SubMenu Override
	Neon    bool

	// HeaderbarHint is the percentage (0-100) of Accent blended into the
	// window-maximised bar background.
	HeaderbarHint float64
	BarType       BarType
	AutoAlpha     bool
}

// Validate checks the input can be themed.
func (in Input) Validate() error {
	n := len(in.Palette)
	if n < minPalette || n > maxPaletteSize {
		return fmt.Errorf("%w: %d colours (need %d-%d)", ErrPaletteSize, n, minPalette, maxPaletteSize)
	}
	total := 0.0
	for i, e := range in.Palette {
		if e.Weight < 0 || math.IsNaN(e.Weight) {
			return fmt.Errorf("palette entry %d has invalid weight %v", i, e.Weight)
		}
		total += e.Weight
	}
	if math.Abs(total-100) > 0.5 {
		return fmt.Errorf("palette weights sum to %.2f, want 100", total)
	}
	if _, err := ParamsFor(in.Theme); err != nil {
		return err
	}
	if in.HeaderbarHint < 0 || in.HeaderbarHint > 100 {
		return fmt.Errorf("headerbar hint %v out of range 0-100", in.HeaderbarHint)
	}
	return nil
}

// Role is one of the five functional colour slots.
type Role int

const (
	RoleAccent Role = iota
	RoleMenuBG
	RoleSubMenuBG
	RoleBarBG
	RoleBorder
)

// Roles lists every role in pipeline order.
func Roles() []Role {
	return []Role{RoleAccent, RoleMenuBG, RoleSubMenuBG, RoleBarBG, RoleBorder}
}

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleAccent:
		return "accent"
	case RoleMenuBG:
		return "menu-bg"
	case RoleSubMenuBG:
		return "submenu-bg"
	case RoleBarBG:
		return "bar-bg"
	case RoleBorder:
		return "border"
	}
	return "unknown"
}

// Selection records which palette entry a role took and how.
// Index is -1 for overrides.
type Selection struct {
	Index int
	Tier  Tier
	Score float64
}

// Trace holds intermediate colours for inspection.
type Trace struct {
	// Corrected backgrounds before the theme's tint/shade finish.
	MenuBGCorrected    colour.RGB64
	SubMenuBGCorrected colour.RGB64
	// Accent after its own correction, before re-correction against the backgrounds.
	AccentCorrected colour.RGB64
}

// Result is the role assignment produced by one run.
type Result struct {
	Theme  Theme
	Scheme Scheme

	Accent         colour.RGB64
	MenuBG         colour.RGB64
	SubMenuBG      colour.RGB64
	BarBG          colour.RGB64
	Border         colour.RGB64
	WindowMaxBarBG colour.RGB64

	Selections [5]Selection
	// Swapped reports that Menu-BG and Sub-Menu-BG traded places.
	Swapped bool
	Trace   Trace
}

// Colour returns the final colour for a role.
func (r Result) Colour(role Role) colour.RGB64 {
	switch role {
	case RoleAccent:
		return r.Accent
	case RoleMenuBG:
		return r.MenuBG
	case RoleSubMenuBG:
		return r.SubMenuBG
	case RoleBarBG:
		return r.BarBG
	case RoleBorder:
		return r.Border
	}
	return colour.RGB64{}
}

// Selection returns how a role was chosen.
func (r Result) Selection(role Role) Selection {
	return r.Selections[role]
}
