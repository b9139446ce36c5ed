package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelWarn)
	t.Cleanup(func() { SetLevel(LevelInfo) })

	Info("hidden", "k", "v")
	Warn("shown", "event_id", "ev-1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at WARN level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown event_id=ev-1") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestErrorQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelDebug)
	t.Cleanup(func() { SetLevel(LevelInfo) })

	Error("sweep failed", errors.New("db is gone"), "odd")

	out := buf.String()
	if !strings.Contains(out, `[ERROR] sweep failed err="db is gone"`) {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "odd") {
		t.Fatalf("dangling key must be dropped: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != LevelDebug {
		t.Fatalf("debug not parsed")
	}
	if ParseLevel("verbose") != LevelInfo {
		t.Fatalf("unknown level must fall back to INFO")
	}
}
