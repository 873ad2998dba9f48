package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bartint/internal/colour"
	"github.com/jmylchreest/bartint/internal/palettecache"
	"github.com/jmylchreest/bartint/internal/source"
)

type extractOptions struct {
	colours int
	seed    uint64
	format  string
	output  string
	preview bool
	noCache bool
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a weighted colour palette from an image using k-means clustering.

The seed is derived from the image content, so the same wallpaper always
produces the same palette. Palettes are cached by image content; use
--no-cache to force a fresh extraction.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 12 colours (default) from an image
  bartint extract wallpaper.jpg

  # Extract 8 colours with preview
  bartint extract --preview --colours 8 wallpaper.png

  # Save a palette for "bartint apply --palette"
  bartint extract -f json -o palette.json wallpaper.jpg

  # Use the newest image in a directory
  bartint extract ~/Pictures/Wallpapers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.colours, "colours", "c", colour.DefaultColourCount, "number of colours to extract (1-256)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "k-means seed (default: derived from the image)")
	cmd.Flags().VarP(newEnum(&opts.format, "hex", "hex", "rgb", "json"), "format", "f", "output format (hex, rgb, json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews in terminal")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the palette cache")
	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions, path string) error {
	logger := root.logger

	cfg := colour.DefaultExtractorConfig()
	cfg.ColorCount = opts.colours
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	src := &source.Image{
		Path:    path,
		Colours: opts.colours,
		Seed:    opts.seed,
		Logger:  logger,
	}
	if !opts.noCache && opts.seed == 0 {
		cache := openCache(cmd, root)
		if cache != nil {
			defer cache.Close()
			src.Cache = cache
		}
	}

	palette, err := src.Palette(cmd.Context())
	if err != nil {
		return err
	}
	logger.Debug("extracted palette", "colours", palette.Len())

	output, err := formatPalette(palette, opts.format, opts.preview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(output), 0o644); err != nil { // #nosec G306 - Palette files are not secret
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote palette", "path", opts.output)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// openCache opens the default palette cache. Failures are logged and yield
// nil so extraction still works without a writable cache directory.
func openCache(cmd *cobra.Command, root *rootOptions) *palettecache.Cache {
	path, err := palettecache.DefaultPath()
	if err != nil {
		root.logger.Warn("palette cache disabled", "error", err)
		return nil
	}
	cache, err := palettecache.Open(cmd.Context(), path, root.logger)
	if err != nil {
		root.logger.Warn("palette cache disabled", "error", err)
		return nil
	}
	return cache
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// formatHex formats the palette as hex colour codes with their weights.
func formatHex(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for i, rgb := range palette.ToRGBSlice() {
		if showPreview {
			b.WriteString(colour.FormatColourWithPreview(rgb, 8))
		} else {
			b.WriteString(rgb.Hex())
		}
		if i < len(palette.Weights) {
			fmt.Fprintf(&b, "  %5.1f%%", palette.Weights[i]*100)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatRGB formats the palette as RGB values.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			b.WriteString(colour.FormatColourWithPreview(rgb, 8) + "  ")
		}
		b.WriteString(rgb.String() + "\n")
	}
	return b.String()
}
