/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/friendsincode/trecs/internal/config"
	"github.com/friendsincode/trecs/internal/logging"
	"github.com/friendsincode/trecs/internal/reel"
	"github.com/friendsincode/trecs/internal/source"
	"github.com/friendsincode/trecs/internal/unit"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "trecs",
	Short: "trecs - timed frame playback",
	Long: `trecs plays a reel: a timed sequence of frames, transitions between them and
progressively typed text, pacing output with sleeps derived from each unit's time.

Reels are YAML documents. Without a reel argument the built-in demo reel is used;
"-" reads the reel from stdin.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.SetupWithWriter(cfg.Environment, cmd.ErrOrStderr())
	return nil
}

// loadReel reads the reel named by path: empty for the demo, "-" for stdin.
func loadReel(cmd *cobra.Command, path string) (*reel.Document, error) {
	var r io.Reader
	switch path {
	case "":
		return reel.Demo(), nil
	case "-":
		r = cmd.InOrStdin()
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open reel: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := reel.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("reel %s: %w", path, err)
	}
	return doc, nil
}

func buildSource(cmd *cobra.Command, path string, opts reel.Options) (*reel.Document, *source.Source, error) {
	doc, err := loadReel(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	src, err := doc.Build(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("build reel: %w", err)
	}
	logger.Debug().
		Str("title", doc.Title).
		Int("units", src.Len()).
		Str("span_ms", unit.Millis(doc.Duration())).
		Msg("reel loaded")
	return doc, src, nil
}

func reelArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
