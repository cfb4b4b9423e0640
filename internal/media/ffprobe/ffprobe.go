// Package ffprobe shells out to ffprobe to inspect media files when assets
// are registered. The probe result feeds the one-shot natural-duration fill
// on video assets.
package ffprobe

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"montage/internal/services"
)

// Info is the subset of probe output the editor cares about.
type Info struct {
	DurationSeconds float64
	Width           int
	Height          int
	HasVideo        bool
}

type probeResult struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe executes ffprobe against the provided path and extracts duration and
// video dimensions.
func Probe(ctx context.Context, binary, path string) (Info, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Info{}, services.Wrap(services.ErrValidation, "probe", "inspect", "empty path", nil)
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Info{}, services.Wrap(services.ErrExternalTool, "probe", "inspect", strings.TrimSpace(string(output)), err)
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return Info{}, services.Wrap(services.ErrExternalTool, "probe", "parse", "", err)
	}

	info := Info{DurationSeconds: parseSeconds(result.Format.Duration)}
	for _, stream := range result.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			info.HasVideo = true
			if info.Width == 0 {
				info.Width = stream.Width
				info.Height = stream.Height
			}
		}
	}
	return info, nil
}

func parseSeconds(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
