package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return err
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Export.FrameRate == 0 {
		c.Export.FrameRate = 30
	}
	if c.Export.SeekWaitMillis == 0 {
		c.Export.SeekWaitMillis = 250
	}
	if c.Export.SeekPollMillis == 0 {
		c.Export.SeekPollMillis = 10
	}
	return nil
}
