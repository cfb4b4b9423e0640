package config

import (
	"os"
	"path/filepath"
)

// Default returns a configuration populated with built-in defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultDataDir("staging"),
			OutputDir:  defaultDataDir("exports"),
			LogDir:     defaultDataDir("logs"),
		},
		Canvas: Canvas{
			Width:  1280,
			Height: 720,
		},
		Editing: Editing{
			PixelsPerSecond: 60,
			TrackRowHeight:  64,
			SnapThresholdPx: 10,
		},
		Export: Export{
			FrameRate:      30,
			SeekWaitMillis: 250,
			SeekPollMillis: 10,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

func defaultDataDir(leaf string) string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && base != "" {
		return filepath.Join(base, "montage", leaf)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("~", ".local", "share", "montage", leaf)
	}
	return filepath.Join(home, ".local", "share", "montage", leaf)
}
