/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/friendsincode/trecs/internal/config"
	"github.com/friendsincode/trecs/internal/player"
	"github.com/friendsincode/trecs/internal/reel"
	"github.com/friendsincode/trecs/internal/screen"
	"github.com/friendsincode/trecs/internal/telemetry"
	"github.com/friendsincode/trecs/internal/timer"
	"github.com/friendsincode/trecs/internal/unit"
	"github.com/friendsincode/trecs/internal/version"
)

var (
	playTimer string
	playScale float64
	playSeed  int64
	playTUI   bool
	playTimes int
)

var playCmd = &cobra.Command{
	Use:   "play [reel.yaml|-]",
	Short: "Play a reel",
	Long: `Play a reel to stdout (or a full-screen terminal with --tui).

Flags override the TRECS_TIMER, TRECS_TIME_SCALE, TRECS_SEED and TRECS_SCREEN
environment variables.

Examples:
  # Play the built-in demo, printing sleeps instead of waiting
  trecs play

  # Play a reel in real time at double speed
  trecs play reel.yaml --timer real --scale 0.5

  # Deterministic transition decorations
  trecs play reel.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playTimer, "timer", "", "Timer: log, real or none (default from TRECS_TIMER)")
	playCmd.Flags().Float64Var(&playScale, "scale", 0, "Multiplier applied to real delays (default from TRECS_TIME_SCALE)")
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "Seed for transition decoration codes (0 = random)")
	playCmd.Flags().BoolVar(&playTUI, "tui", false, "Render to a full-screen terminal")
	playCmd.Flags().IntVarP(&playTimes, "times", "n", 1, "Number of times to play the reel")
	rootCmd.AddCommand(playCmd)
}

func applyPlayFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("timer") {
		cfg.Timer = playTimer
	}
	if flags.Changed("scale") {
		cfg.TimeScale = playScale
	}
	if flags.Changed("seed") {
		cfg.Seed = playSeed
	}
	if flags.Changed("tui") {
		cfg.Screen = config.ScreenPlain
		if playTUI {
			cfg.Screen = config.ScreenTUI
		}
	}
	if playTimes < 1 {
		return fmt.Errorf("--times must be at least 1, got %d", playTimes)
	}
	return cfg.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	if err := applyPlayFlags(cmd); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracerProvider, err := telemetry.InitTracer(ctx, telemetry.TracerConfig{
		ServiceName:    "trecs",
		ServiceVersion: version.Version,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown tracer provider")
		}
	}()

	var opts reel.Options
	if cfg.Seed != 0 {
		opts.Codes = unit.SeededCodes(uint64(cfg.Seed))
	}
	_, src, err := buildSource(cmd, reelArg(args), opts)
	if err != nil {
		return err
	}

	var (
		out  unit.Screen
		term *screen.Terminal
	)
	if cfg.Screen == config.ScreenTUI {
		ts, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := ts.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		term = screen.NewTerminal(ts)
		defer term.Close()
		// Raw mode swallows SIGINT; Ctrl-C and Esc cancel through the key loop.
		term.Listen(cancel)
		out = term
	} else {
		out = screen.NewWriter(cmd.OutOrStdout())
	}

	tm, err := timer.New(timer.Mode(cfg.Timer), out, cfg.TimeScale)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)

	p, err := player.New(src, out, tm, logger,
		player.WithMetrics(metrics),
		player.WithTracer(tracerProvider.Tracer("trecs/player")),
	)
	if err != nil {
		return err
	}

	for i := 0; i < playTimes; i++ {
		if err := p.Play(ctx); err != nil {
			return fmt.Errorf("play %d: %w", i+1, err)
		}
	}
	if term != nil {
		term.WaitKey(ctx)
		term.Close()
	}

	totals, err := telemetry.Totals(registry)
	if err != nil {
		logger.Warn().Err(err).Msg("gather metrics")
		return nil
	}
	logger.Info().
		Float64("plays", totals["trecs_plays_total"]).
		Float64("units_rendered", totals["trecs_units_rendered_total"]).
		Float64("sleep_seconds", totals["trecs_sleep_seconds_total"]).
		Msg("playback complete")
	return nil
}
