package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		problems = append(problems, "paths.staging_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		problems = append(problems, "paths.log_dir must be set")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		problems = append(problems, fmt.Sprintf("canvas dimensions must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Editing.PixelsPerSecond <= 0 {
		problems = append(problems, "editing.pixels_per_second must be positive")
	}
	if c.Editing.TrackRowHeight <= 0 {
		problems = append(problems, "editing.track_row_height must be positive")
	}
	if c.Editing.SnapThresholdPx < 0 {
		problems = append(problems, "editing.snap_threshold_px must not be negative")
	}
	if c.Export.FrameRate <= 0 {
		problems = append(problems, "export.frame_rate must be positive")
	}
	if c.Export.SeekWaitMillis < 0 {
		problems = append(problems, "export.seek_wait_ms must not be negative")
	}
	if c.Export.SeekPollMillis <= 0 {
		problems = append(problems, "export.seek_poll_ms must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
