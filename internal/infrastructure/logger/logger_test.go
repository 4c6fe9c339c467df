package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerFormatsOutput(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		level      string
		assertions func(t *testing.T, output string)
	}{
		{
			name:   "console format is human readable",
			format: "console",
			level:  "info",
			assertions: func(t *testing.T, output string) {
				if strings.HasPrefix(strings.TrimSpace(output), "{") {
					t.Fatalf("expected console output, got json %q", output)
				}
				if !strings.Contains(output, "hello") {
					t.Fatalf("expected message in output, got %q", output)
				}
			},
		},
		{
			name:   "json format carries service and message",
			format: "json",
			level:  "debug",
			assertions: func(t *testing.T, output string) {
				var fields map[string]any
				if err := json.Unmarshal([]byte(output), &fields); err != nil {
					t.Fatalf("expected json output, got %q: %v", output, err)
				}
				if fields["message"] != "hello" || fields["service"] != "gobank" {
					t.Fatalf("unexpected fields: %v", fields)
				}
				if _, ok := fields["time"]; !ok {
					t.Fatalf("expected timestamp field, got %v", fields)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Format: tt.format, Level: tt.level, Output: &buf})
			log.Info().Msg("hello")

			if buf.Len() == 0 {
				t.Fatalf("expected log output, got empty string")
			}

			tt.assertions(t, buf.String())
		})
	}
}

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "error", Output: &buf})

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at error level, got %q", buf.String())
	}

	log.Error().Msg("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected error to be logged, got %q", buf.String())
	}
}
