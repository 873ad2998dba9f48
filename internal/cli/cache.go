package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bartint/internal/palettecache"
)

func newCacheCmd(root *rootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or prune the palette cache",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "cache database (default: user cache dir)")

	open := func(cmd *cobra.Command) (*palettecache.Cache, error) {
		path := dbPath
		if path == "" {
			p, err := palettecache.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return palettecache.Open(cmd.Context(), path, root.logger)
	}

	info := &cobra.Command{
		Use:   "info",
		Short: "Show the number of cached palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := open(cmd)
			if err != nil {
				return err
			}
			defer cache.Close()
			n, err := cache.Len(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cached palettes\n", n)
			return nil
		},
	}

	var olderThan time.Duration
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached palettes older than a given age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := open(cmd)
			if err != nil {
				return err
			}
			defer cache.Close()
			n, err := cache.Prune(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d palettes\n", n)
			return nil
		},
	}
	prune.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "age of entries to remove")

	cmd.AddCommand(info, prune)
	return cmd
}
