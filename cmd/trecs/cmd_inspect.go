/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/friendsincode/trecs/internal/reel"
	"github.com/friendsincode/trecs/internal/unit"
	"github.com/friendsincode/trecs/internal/version"
)

var timestampsCmd = &cobra.Command{
	Use:   "timestamps [reel.yaml|-]",
	Short: "Print the reel's unit times in ascending order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		_, src, err := buildSource(cmd, reelArg(args), reel.Options{})
		if err != nil {
			return err
		}
		for at, u := range src.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", unit.Millis(at), u.Kind())
		}
		return nil
	},
}

var atCmd = &cobra.Command{
	Use:   "at [reel.yaml|-] <ms>",
	Short: "Print the unit governing a point in time",
	Long: `Resolve a time to the unit that governs it: an exact match, otherwise the
closest earlier unit; times before the first unit resolve to the first and
times after the last resolve to the last.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		path, raw := "", args[0]
		if len(args) == 2 {
			path, raw = args[0], args[1]
		}
		ms, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", raw, err)
		}
		_, src, err := buildSource(cmd, path, reel.Options{})
		if err != nil {
			return err
		}
		resolved := src.Resolve(unit.Ms(ms))
		u, _ := src.Lookup(resolved)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", unit.Millis(resolved), u.Kind())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.AddCommand(timestampsCmd, atCmd, versionCmd)
}
