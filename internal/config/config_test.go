package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"montage/internal/config"
)

func TestLoadDefaultsWhenNoFilePresent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_DATA_HOME", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantStaging := filepath.Join(tempHome, ".local", "share", "montage", "staging")
	if cfg.Paths.StagingDir != wantStaging {
		t.Fatalf("unexpected staging dir: got %q want %q", cfg.Paths.StagingDir, wantStaging)
	}
	if cfg.Canvas.Width != 1280 || cfg.Canvas.Height != 720 {
		t.Fatalf("unexpected canvas: %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Export.FrameRate != 30 {
		t.Fatalf("unexpected frame rate: %d", cfg.Export.FrameRate)
	}
	if cfg.Editing.PixelsPerSecond != 60 {
		t.Fatalf("unexpected pixels per second: %v", cfg.Editing.PixelsPerSecond)
	}
}

func TestLoadParsesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "montage.toml")
	content := `
[canvas]
width = 640
height = 360

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Canvas.Width != 640 || cfg.Canvas.Height != 360 {
		t.Fatalf("unexpected canvas: %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	// Sections the file omits keep their defaults.
	if cfg.Export.SeekWaitMillis != 250 {
		t.Fatalf("unexpected seek wait: %d", cfg.Export.SeekWaitMillis)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Canvas.Width = 0
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "canvas") {
		t.Fatalf("expected canvas problem in %q", err)
	}
	if !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging problem in %q", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}
