package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		env  string
		want zerolog.Level
	}{
		{"development", zerolog.DebugLevel},
		{"production", zerolog.InfoLevel},
		{"quiet", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if got := SetupWithWriter(tt.env, &buf).GetLevel(); got != tt.want {
			t.Errorf("%s: level = %s, want %s", tt.env, got, tt.want)
		}
	}
}

func TestSetupWritesConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWithWriter("development", &buf)
	logger.Info().Str("run_id", "abc").Msg("playback finished")

	out := buf.String()
	if !strings.Contains(out, "playback finished") || !strings.Contains(out, "run_id=abc") {
		t.Fatalf("unexpected log output %q", out)
	}
}
