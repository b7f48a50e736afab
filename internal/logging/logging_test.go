package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.WarnLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "info", true); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	log.Debug().Msg("hidden")
	log.Error().Err(errors.New("boom")).Str("file", "a.txt").Msg("scan failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "scan failed" {
		t.Errorf("msg = %v, want scan failed", entry["msg"])
	}
	if entry["file"] != "a.txt" {
		t.Errorf("file = %v, want a.txt", entry["file"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
}

func TestSetupConsole(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "warn", false); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	log.Warn().Msg("careful")
	if !strings.Contains(buf.String(), "careful") {
		t.Errorf("console output %q missing message", buf.String())
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	if err := Setup(&bytes.Buffer{}, "verbose", false); err == nil {
		t.Error("expected error for unknown level")
	}
}
