package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bartint/internal/autotheme"
	"github.com/jmylchreest/bartint/internal/config"
	"github.com/jmylchreest/bartint/internal/palettecache"
	"github.com/jmylchreest/bartint/internal/source"
	"github.com/jmylchreest/bartint/internal/watch"
)

type watchOptions struct {
	output   string
	mode     string
	noCache  bool
	debounce time.Duration
}

func newWatchCmd(root *rootOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <image|dir>",
		Short: "Re-apply colours whenever the wallpaper or profile changes",
		Long: `Apply colours once, then keep watching the wallpaper (a file, or a directory
whose newest image is used) and the profile. Each settled change re-runs the
extraction and rewrites the settings file.

Examples:
  bartint watch -o ~/.config/bartint/settings.toml ~/Pictures/wall.jpg
  bartint watch --mode both -o settings.toml ~/Pictures/Wallpapers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "settings file to keep up to date (required)")
	cmd.Flags().Var(newEnum(&opts.mode, "both", "auto", "dark", "light", "both"), "mode", "colour scheme to theme (auto, dark, light, both)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the palette cache")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "delay for a burst of file events to settle")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// watchSession holds the state shared by successive applies.
type watchSession struct {
	cmd     *cobra.Command
	root    *rootOptions
	opts    *watchOptions
	image   string
	applier *autotheme.Applier
	cache   *palettecache.Cache
	profile config.Profile
}

func runWatch(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts *watchOptions, image string) error {
	prof, profilePath, err := root.loadProfile()
	if err != nil {
		return err
	}

	s := &watchSession{
		cmd:     cmd,
		root:    root,
		opts:    opts,
		image:   image,
		applier: autotheme.NewApplier(root.logger),
		profile: prof,
	}
	if !opts.noCache {
		if s.cache = openCache(cmd, root); s.cache != nil {
			defer s.cache.Close()
		}
	}

	w, err := watch.New(image, profilePath, watch.WithDebounce(opts.debounce), watch.WithLogger(root.logger))
	if err != nil {
		return err
	}

	if err := s.apply(); err != nil {
		return err
	}
	root.logger.Info("watching for changes", "wallpaper", image, "profile", profilePath)

	return w.Run(ctx, func(c watch.Change) {
		if c.Profile {
			s.reloadProfile()
		}
		if err := s.apply(); err != nil {
			root.logger.Error("failed to apply colours", "error", err)
		}
	})
}

// reloadProfile re-reads the profile while holding the applier's transfer
// guard. An invalid profile keeps the previous one.
func (s *watchSession) reloadProfile() {
	release, ok := s.applier.BeginTransfer()
	if !ok {
		s.root.logger.Warn("profile transfer already in progress")
		return
	}
	defer release()

	prof, _, err := s.root.loadProfile()
	if err != nil {
		s.root.logger.Error("keeping previous profile", "error", err)
		return
	}
	s.profile = prof
	s.root.logger.Info("profile reloaded")
}

func (s *watchSession) apply() error {
	src := &source.Image{
		Path:    s.image,
		Colours: s.profile.PaletteSize,
		Cache:   s.cache,
		Logger:  s.root.logger,
	}
	pal, _, err := loadPalette(s.cmd, s.root, src, true)
	if err != nil {
		return err
	}
	runs, err := applyAll(s.applier, s.profile, pal, schemesFor(s.opts.mode, s.profile), s.root)
	if err != nil {
		return fmt.Errorf("failed to apply colours: %w", err)
	}
	return writeRuns(s.cmd.OutOrStdout(), runs, config.FormatTOML, s.opts.output, s.root)
}
