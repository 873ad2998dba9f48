package autotheme

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/bartint/internal/colour"
)

// Pipeline runs the role selection. It holds no per-run state and is safe
// for concurrent use.
type Pipeline struct {
	logger hclog.Logger
}

// NewPipeline creates a pipeline that logs stage decisions to logger.
// A nil logger discards output.
func NewPipeline(logger hclog.Logger) *Pipeline {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Pipeline{logger: logger.Named("autotheme")}
}

// Run selects a colour for every role. It fails only on invalid input.
func Run(in Input) (Result, error) {
	return NewPipeline(nil).Run(in)
}

// Run selects a colour for every role. It fails only on invalid input.
func (p *Pipeline) Run(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid theme input: %w", err)
	}
	params, err := ParamsFor(in.Theme)
	if err != nil {
		return Result{}, err
	}

	log := p.logger.With("theme", string(in.Theme), "scheme", in.Scheme.String())
	sw := newSwatches(in.Palette)
	pool := firstN(len(sw))
	prom := prominentSet(sw, params.ProminentCover, params.ProminentMin)
	log.Trace("prominent set", "size", prom.len())

	res := Result{Theme: in.Theme, Scheme: in.Scheme}

	// take records a search winner and removes it from both pools.
	take := func(role Role, pk pick) colour.RGB64 {
		pool, prom = pool.without(pk.index), prom.without(pk.index)
		res.Selections[role] = Selection{Index: pk.index, Tier: pk.tier, Score: pk.score}
		log.Debug("role selected", "role", role.String(), "index", pk.index,
			"tier", pk.tier.String(), "score", pk.score, "colour", sw[pk.index].c.Hex())
		return sw[pk.index].c
	}
	// searchPool is the prominent pool, or the whole pool once the prominent
	// entries are used up.
	searchPool := func() indexSet {
		if prom.len() == 0 {
			return pool
		}
		return prom
	}
	override := func(role Role, c colour.RGB64) colour.RGB64 {
		res.Selections[role] = Selection{Index: -1, Tier: TierOverride}
		log.Debug("role overridden", "role", role.String(), "colour", c.Hex())
		return c.Clamp()
	}

	var accent colour.RGB64
	if in.Accent.Enabled {
		accent = override(RoleAccent, in.Accent.Colour)
	} else {
		accent = take(RoleAccent, selectAccent(sw, params.Accent, searchPool()))
	}

	menu := take(RoleMenuBG, selectBackground(sw, params.Menu, searchPool(),
		reference{c: accent, sep: params.Menu.FromAccent}))

	var sub colour.RGB64
	if in.SubMenu.Enabled {
		sub = override(RoleSubMenuBG, in.SubMenu.Colour)
	} else {
		sub = take(RoleSubMenuBG, selectBackground(sw, params.SubMenu, searchPool(),
			reference{c: accent, sep: params.SubMenu.FromAccent},
			reference{c: menu, sep: params.SubMenu.FromMenu}))

		if menuOutOfOrder(menu, sub, params.PreferDarkMenu) {
			menu, sub = sub, menu
			res.Selections[RoleMenuBG], res.Selections[RoleSubMenuBG] = res.Selections[RoleSubMenuBG], res.Selections[RoleMenuBG]
			res.Swapped = true
			log.Debug("swapped menu backgrounds")
		}
	}

	res.Trace.MenuBGCorrected = menu
	res.Trace.SubMenuBGCorrected = sub
	res.Trace.AccentCorrected = accent

	if params.Correct {
		res.Trace.MenuBGCorrected = correct(menu, params.Menu.Correction, params.Pull)
		menu = finish(res.Trace.MenuBGCorrected, params.Menu.Finish, params).Round()

		if !in.SubMenu.Enabled {
			res.Trace.SubMenuBGCorrected = correct(sub, params.SubMenu.Correction, params.Pull)
			sub = finish(res.Trace.SubMenuBGCorrected, params.SubMenu.Finish, params)
			sub = separate(menu, sub, params.MinMenuDistance, params.MenuPush, params.PreferDarkMenu)
		}

		if !in.Accent.Enabled {
			res.Trace.AccentCorrected = correctAccent(accent, params.Accent, params.Pull)
			accent = recorrectAccent(res.Trace.AccentCorrected, menu, sub, params.Accent).Round()
		}
		log.Trace("corrected", "accent", accent.Hex(), "menu", menu.Hex(), "submenu", sub.Hex())
	}

	bar := take(RoleBarBG, selectBar(sw, params.Bar, pool, in.Scheme, menu))
	if params.Correct {
		bar = correctBar(bar, params.Bar)
	}

	border := take(RoleBorder, selectBorder(sw, params.Border, pool, in.Scheme, in.Neon))
	// Only a border that met the neon windows is boosted.
	if in.Neon && res.Selections[RoleBorder].Tier == TierBest {
		border = boostNeon(border, params.Border)
	}

	base := params.DarkBase
	if in.Scheme == SchemeLight {
		base = params.LightBase
	}

	res.Accent = accent.Round()
	res.MenuBG = menu.Round()
	res.SubMenuBG = sub.Round()
	res.BarBG = bar.Round()
	res.Border = border.Round()
	res.WindowMaxBarBG = base.Mix(res.Accent, in.HeaderbarHint/100).Round()
	return res, nil
}
