package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bartint/internal/config"
)

func newProfileCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the theme profile",
		Long: `Manage the profile that selects themes, overrides and the bar type.

The profile is read from --profile, $BARTINT_PROFILE or
$XDG_CONFIG_HOME/bartint/profile.toml, in that order.`,
	}
	cmd.AddCommand(newProfileInitCmd(root), newProfileShowCmd(root), newProfileImportCmd(root))
	return cmd
}

func newProfileInitCmd(root *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.NewLoader().WithFile(root.profile).WithEnv().Path()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("profile %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to access profile: %w", err)
			}
			if err := config.SaveProfile(path, config.Default()); err != nil {
				return err
			}
			root.logger.Info("wrote default profile", "path", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing profile")
	return cmd
}

func newProfileShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective profile",
		Long:  `Print the effective profile: the profile file over the defaults, with environment overrides applied.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, path, err := root.loadProfile()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(p)
			if err != nil {
				return fmt.Errorf("failed to encode profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
			return nil
		},
	}
}

func newProfileImportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate a profile file and make it the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("failed to access %s: %w", args[0], err)
			}
			p, err := config.LoadProfile(args[0])
			if err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return fmt.Errorf("invalid profile %s: %w", args[0], err)
			}

			path, err := config.NewLoader().WithFile(root.profile).WithEnv().Path()
			if err != nil {
				return err
			}
			if err := config.SaveProfile(path, p); err != nil {
				return err
			}
			root.logger.Info("imported profile", "from", args[0], "path", path)
			return nil
		},
	}
}
