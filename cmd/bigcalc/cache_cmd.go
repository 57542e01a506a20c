package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bigcalc/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the batch result cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dc, err := cache.Open(sess.cfg.Cache.Dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dc.Dir())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dc, err := cache.Open(sess.cfg.Cache.Dir)
		if err != nil {
			return err
		}
		if err := dc.DropAll(); err != nil {
			return fmt.Errorf("clear %s: %w", dc.Dir(), err)
		}
		if !sess.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "cleared %s\n", dc.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
