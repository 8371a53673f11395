/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Timer modes.
const (
	TimerLog  = "log"
	TimerReal = "real"
	TimerNone = "none"
)

// Screen kinds.
const (
	ScreenPlain = "plain"
	ScreenTUI   = "tui"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	Timer       string  // log, real or none
	TimeScale   float64 // multiplier applied by the real timer
	Seed        int64   // decoration code seed; 0 picks a random seed
	Screen      string  // plain or tui

	// Tracing configuration
	TracingEnabled    bool
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:       getEnv("TRECS_ENV", "production"),
		Timer:             strings.ToLower(getEnv("TRECS_TIMER", TimerLog)),
		TimeScale:         getEnvFloat("TRECS_TIME_SCALE", 1.0),
		Seed:              getEnvInt64("TRECS_SEED", 0),
		Screen:            strings.ToLower(getEnv("TRECS_SCREEN", ScreenPlain)),
		TracingEnabled:    getEnvBool("TRECS_TRACING_ENABLED", false),
		TracingSampleRate: getEnvFloat("TRECS_TRACING_SAMPLE_RATE", 1.0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values, including ones overridden after Load.
func (c *Config) Validate() error {
	switch c.Timer {
	case TimerLog, TimerReal, TimerNone:
	default:
		return fmt.Errorf("unsupported timer %q (want log, real or none)", c.Timer)
	}
	switch c.Screen {
	case ScreenPlain, ScreenTUI:
	default:
		return fmt.Errorf("unsupported screen %q (want plain or tui)", c.Screen)
	}
	if c.TimeScale <= 0 {
		return fmt.Errorf("TRECS_TIME_SCALE must be positive, got %v", c.TimeScale)
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("TRECS_TRACING_SAMPLE_RATE must be within [0, 1], got %v", c.TracingSampleRate)
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}
