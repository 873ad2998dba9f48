package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bartint/internal/autotheme"
)

func newParamsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "params [theme]",
		Short: "Show the selection windows of a theme",
		Long: `Show the acceptance and correction windows each role uses under a theme.
Without a theme argument every theme is listed. --format toml dumps the
complete parameter bundle.

Examples:
  bartint params
  bartint params Pastel
  bartint params --format toml Dark`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			themes := autotheme.Themes()
			if len(args) == 1 {
				t, err := autotheme.ParseTheme(args[0])
				if err != nil {
					return err
				}
				if t == autotheme.ThemeNone {
					return fmt.Errorf("theme name cannot be empty")
				}
				themes = []autotheme.Theme{t}
			}
			for i, t := range themes {
				p, err := autotheme.ParamsFor(t)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := writeParams(cmd.OutOrStdout(), p, format); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().VarP(newEnum(&format, "table", "table", "toml"), "format", "f", "output format (table, toml)")
	return cmd
}

func writeParams(w io.Writer, p autotheme.Params, format string) error {
	if format == "toml" {
		fmt.Fprintf(w, "# %s\n", p.Theme)
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode parameters: %w", err)
		}
		return nil
	}

	table := NewTable([]string{"Role", "Saturation", "Lightness", "Corrected sat", "Corrected light"})
	window := func(r autotheme.Range) string {
		return fmt.Sprintf("%.2f-%.2f (~%.2f)", r.Low, r.High, r.Target)
	}
	bounds := func(b autotheme.Bounds) string {
		if !p.Correct {
			return "-"
		}
		return fmt.Sprintf("%.2f-%.2f", b.Min, b.Max)
	}

	table.AddRow([]string{"accent", window(p.Accent.Sat), window(p.Accent.Light),
		bounds(p.Accent.Correction.Sat), bounds(p.Accent.Correction.Light)})
	table.AddRow([]string{"menu-bg", window(p.Menu.Sat), window(p.Menu.Light),
		bounds(p.Menu.Correction.Sat), bounds(p.Menu.Correction.Light)})
	table.AddRow([]string{"submenu-bg", window(p.SubMenu.Sat), window(p.SubMenu.Light),
		bounds(p.SubMenu.Correction.Sat), bounds(p.SubMenu.Correction.Light)})
	table.AddRow([]string{"bar-bg", fmt.Sprintf("<= %.2f", p.Bar.SatMax),
		fmt.Sprintf("hsp <= %.0f dark, >= %.0f light", p.Bar.DarkMaxHSP, p.Bar.LightMinHSP),
		"-", bounds(autotheme.Bounds{Min: p.Bar.LightMin, Max: p.Bar.LightMax})})
	table.AddRow([]string{"border", window(p.Border.Sat), window(p.Border.Light), "-", "-"})

	fmt.Fprintf(w, "%s theme (corrections %s)\n", p.Theme, onOff(p.Correct))
	fmt.Fprint(w, table.Render())
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
