package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerPromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	WithComponent(logger, "export").Info("frame finalized", "frame", 12, "percent", 4.0)

	line := buf.String()
	if !strings.Contains(line, " INFO export: frame finalized") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "frame=12") || !strings.Contains(line, "percent=4") {
		t.Fatalf("missing attrs in %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component attr should be folded into prefix: %q", line)
	}
}

func TestConsoleHandlerQuotesAwkwardValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Warn("source stalled", "name", "beach day.mp4", "empty", "")

	line := buf.String()
	if !strings.Contains(line, `name="beach day.mp4"`) {
		t.Fatalf("expected quoted value in %q", line)
	}
	if !strings.Contains(line, `empty=""`) {
		t.Fatalf("expected quoted empty value in %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
