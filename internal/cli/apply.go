package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bartint/internal/autotheme"
	"github.com/jmylchreest/bartint/internal/colour"
	"github.com/jmylchreest/bartint/internal/config"
	"github.com/jmylchreest/bartint/internal/source"
)

type applyOptions struct {
	palette string
	mode    string
	format  string
	output  string
	preview bool
	noCache bool

	theme string
	neon  bool
	hint  float64
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply [image]",
		Short: "Pick bar and menu colours from a wallpaper",
		Long: `Extract a palette from a wallpaper (or read one with --palette), pick the
accent, menu, sub-menu, bar and border colours for each requested colour
scheme and print or write the resulting settings keys.

Themes, overrides and the bar type come from the profile; --theme, --neon and
--hint override it for one run. A scheme whose theme is empty is skipped.

Examples:
  # Print the keys for the profile's current colour scheme
  bartint apply wallpaper.jpg

  # Both schemes, merged into a settings file
  bartint apply --mode both -o ~/.config/bartint/settings.toml wallpaper.jpg

  # Preview the roles with a different theme
  bartint apply --preview --theme Pastel wallpaper.jpg

  # Reuse a palette saved by "bartint extract -f json"
  bartint apply --palette palette.json --mode dark`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image := ""
			if len(args) == 1 {
				image = args[0]
			}
			return runApply(cmd, root, opts, image)
		},
	}

	cmd.Flags().StringVar(&opts.palette, "palette", "", "palette JSON file instead of an image")
	cmd.Flags().Var(newEnum(&opts.mode, "auto", "auto", "dark", "light", "both"), "mode", "colour scheme to theme (auto, dark, light, both)")
	cmd.Flags().VarP(newEnum(&opts.format, "text", "text", "toml", "json"), "format", "f", "stdout format (text, toml, json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "merge keys into this TOML settings file instead of printing")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show the chosen roles")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the palette cache")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme for every requested scheme (Color, Dark, Light, Pastel)")
	cmd.Flags().BoolVar(&opts.neon, "neon", false, "boost the border colour")
	cmd.Flags().Float64Var(&opts.hint, "hint", 0, "percentage of accent blended into the maximised-window bar")
	return cmd
}

func runApply(cmd *cobra.Command, root *rootOptions, opts *applyOptions, image string) error {
	if (image == "") == (opts.palette == "") {
		return fmt.Errorf("exactly one of an image argument or --palette is required")
	}

	prof, _, err := root.loadProfile()
	if err != nil {
		return err
	}
	if err := opts.override(cmd, &prof); err != nil {
		return err
	}

	src := paletteSource(root, image, opts.palette, prof.PaletteSize)
	pal, closeSrc, err := loadPalette(cmd, root, src, opts.noCache)
	if err != nil {
		return err
	}
	closeSrc()

	applier := autotheme.NewApplier(root.logger)
	runs, err := applyAll(applier, prof, pal, schemesFor(opts.mode, prof), root)
	if err != nil {
		return err
	}

	if opts.preview {
		for _, r := range runs {
			writePreview(cmd.ErrOrStderr(), r, colour.SupportsANSIColours(os.Stderr))
		}
	}
	return writeRuns(cmd.OutOrStdout(), runs, config.Format(opts.format), opts.output, root)
}

// override applies the one-run flags to the profile.
func (o *applyOptions) override(cmd *cobra.Command, p *config.Profile) error {
	flags := cmd.Flags()
	if flags.Changed("theme") {
		p.DarkTheme, p.LightTheme = o.theme, o.theme
	}
	if flags.Changed("neon") {
		p.Neon = o.neon
	}
	if flags.Changed("hint") {
		p.HeaderbarHint = o.hint
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// schemesFor expands a --mode value. "auto" follows the profile's colour scheme.
func schemesFor(mode string, p config.Profile) []autotheme.Scheme {
	switch mode {
	case "dark":
		return []autotheme.Scheme{autotheme.SchemeDark}
	case "light":
		return []autotheme.Scheme{autotheme.SchemeLight}
	case "both":
		return []autotheme.Scheme{autotheme.SchemeDark, autotheme.SchemeLight}
	}
	return []autotheme.Scheme{p.Scheme()}
}

func paletteSource(root *rootOptions, image, palette string, size int) source.Source {
	if palette != "" {
		return &source.File{Path: palette}
	}
	return &source.Image{Path: image, Colours: size, Logger: root.logger}
}

// loadPalette reads the palette from src, attaching the palette cache to image
// sources unless noCache is set. The returned func closes the cache.
func loadPalette(cmd *cobra.Command, root *rootOptions, src source.Source, noCache bool) ([]colour.WeightedColour, func(), error) {
	closeFn := func() {}
	if img, ok := src.(*source.Image); ok && !noCache && img.Cache == nil {
		if cache := openCache(cmd, root); cache != nil {
			img.Cache = cache
			closeFn = func() { _ = cache.Close() }
		}
	}

	p, err := src.Palette(cmd.Context())
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	root.logger.Debug("palette loaded", "source", src.Name(), "colours", p.Len())
	return p.Weighted(), closeFn, nil
}

// run is one scheme's pipeline output.
type run struct {
	input    autotheme.Input
	result   autotheme.Result
	settings autotheme.Settings
}

// applyAll themes each scheme in turn. Schemes without a theme are skipped.
func applyAll(applier *autotheme.Applier, p config.Profile, pal []colour.WeightedColour, schemes []autotheme.Scheme, root *rootOptions) ([]run, error) {
	var runs []run
	for _, s := range schemes {
		in, err := p.Input(pal, s)
		if err != nil {
			return nil, err
		}
		res, st, err := applier.Apply(in)
		if errors.Is(err, autotheme.ErrNoTheme) {
			root.logger.Info("no theme configured, skipping", "scheme", s.String())
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to theme %s scheme: %w", s, err)
		}
		root.logger.Debug("themed", "scheme", s.String(), "theme", string(res.Theme), "swapped", res.Swapped)
		runs = append(runs, run{input: in, result: res, settings: st})
	}
	return runs, nil
}

// mergeRuns folds the settings of every run into one key set.
func mergeRuns(runs []run) autotheme.Settings {
	merged := autotheme.Settings{
		Scheme:  runs[0].settings.Scheme,
		Colours: map[string][3]string{},
		Alphas:  map[string]float64{},
	}
	for _, r := range runs {
		for k, v := range r.settings.Colours {
			merged.Colours[k] = v
		}
		for k, v := range r.settings.Alphas {
			merged.Alphas[k] = v
		}
	}
	return merged
}

// writeRuns prints the merged keys, or merges them into output when set.
func writeRuns(w io.Writer, runs []run, f config.Format, output string, root *rootOptions) error {
	if len(runs) == 0 {
		root.logger.Warn("no scheme has a theme configured, nothing to write")
		return nil
	}
	st := mergeRuns(runs)
	if output == "" {
		return config.WriteSettings(w, st, f)
	}
	if err := config.MergeSettingsFile(output, st); err != nil {
		return err
	}
	root.logger.Info("wrote settings", "path", output, "keys", len(st.Keys()))
	return nil
}

// writePreview prints one run's roles as a table.
func writePreview(w io.Writer, r run, swatches bool) {
	headers := []string{"Role", "Hex", "Index", "Tier", "Score"}
	if swatches {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers)
	off := len(headers) - 5
	table.AlignRight(off + 2)
	table.AlignRight(off + 4)

	row := func(name string, c colour.RGB64, index, tier, score string) {
		cells := []string{name, c.Hex(), index, tier, score}
		if swatches {
			cells = append([]string{colour.ColourPreview(c.RGB(), 4)}, cells...)
		}
		table.AddRow(cells)
	}
	for _, role := range autotheme.Roles() {
		sel := r.result.Selection(role)
		index := "-"
		if sel.Index >= 0 {
			index = strconv.Itoa(sel.Index)
		}
		row(role.String(), r.result.Colour(role), index, sel.Tier.String(), strconv.FormatFloat(sel.Score, 'f', 2, 64))
	}
	row("bar-bg-wmax", r.result.WindowMaxBarBG, "-", "-", "-")

	fmt.Fprintf(w, "%s scheme, %s theme\n", r.result.Scheme, r.result.Theme)
	fmt.Fprint(w, table.Render())
	if r.result.Swapped {
		fmt.Fprintln(w, "menu and sub-menu backgrounds were swapped")
	}
	fmt.Fprintln(w)
}
