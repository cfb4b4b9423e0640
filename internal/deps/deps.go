// Package deps verifies the external binaries montage shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"montage/internal/config"
	"montage/internal/services"
)

// Requirement defines an external binary montage relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Default lists the binaries the render pipeline needs.
func Default(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Encoding and video frame extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Media duration and stream probing",
		},
	}
}

// Check evaluates the provided requirements and reports availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		status.Command = strings.TrimSpace(req.Command)
		switch {
		case status.Command == "":
			status.Detail = "command not configured"
		default:
			if path, err := exec.LookPath(status.Command); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", status.Command)
			} else {
				status.Command = path
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// Verify returns a configuration error naming every missing required binary.
func Verify(requirements []Requirement) error {
	var missing []string
	for _, status := range Check(requirements) {
		if !status.Available && !status.Optional {
			missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "deps", "verify",
		"missing required binaries: "+strings.Join(missing, ", "), nil)
}
