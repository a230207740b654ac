package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("plan", "abc").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["plan"] != "abc" || entry["service"] != "uqplanner" {
		t.Errorf("unexpected entry %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a timestamp")
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New("loud", &buf)

	logger.Debug().Msg("debug")
	logger.Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, `"message":"debug"`) {
		t.Errorf("debug should be filtered: %s", out)
	}
	if !strings.Contains(out, `"message":"info"`) {
		t.Errorf("info should be logged: %s", out)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole("debug", &buf)
	logger.Debug().Int("nodes", 42).Msg("search finished")

	out := buf.String()
	if !strings.Contains(out, "search finished") || !strings.Contains(out, "nodes=") {
		t.Errorf("unexpected console output %q", out)
	}
}
