// Package cli provides the command-line interface for bartint.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bartint/internal/config"
	"github.com/jmylchreest/bartint/internal/version"
)

// rootOptions holds the persistent flags and the logger built from them.
type rootOptions struct {
	profile string
	verbose bool
	quiet   bool

	logger hclog.Logger
}

// loadProfile reads the profile named by --profile, BARTINT_PROFILE or the
// default path, in that order.
func (o *rootOptions) loadProfile() (config.Profile, string, error) {
	loader := config.NewLoader().WithFile(o.profile).WithEnv()
	path, err := loader.Path()
	if err != nil {
		return config.Profile{}, "", err
	}
	p, err := loader.Load()
	if err != nil {
		return config.Profile{}, "", err
	}
	o.logger.Debug("profile loaded", "path", path)
	return p, path, nil
}

// NewRootCmd builds the command tree. Each call returns independent commands
// and flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: hclog.NewNullLogger()}

	cmd := &cobra.Command{
		Use:   "bartint",
		Short: "Wallpaper-driven top bar and menu colours",
		Long: `bartint extracts a weighted colour palette from a wallpaper and picks the
accent, menu, sub-menu, bar and border colours of a GNOME top bar from it.

The colours are written as dark- or light- prefixed settings keys, ready to be
loaded into the shell extension's settings.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.verbose && opts.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			level := hclog.Info
			switch {
			case opts.verbose:
				level = hclog.Debug
			case opts.quiet:
				level = hclog.Error
			}
			opts.logger = hclog.New(&hclog.LoggerOptions{
				Name:   "bartint",
				Level:  level,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "profile file (default: $BARTINT_PROFILE or $XDG_CONFIG_HOME/bartint/profile.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(
		newVersionCmd(),
		newExtractCmd(opts),
		newApplyCmd(opts),
		newParamsCmd(),
		newWatchCmd(opts),
		newProfileCmd(opts),
		newCacheCmd(opts),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
