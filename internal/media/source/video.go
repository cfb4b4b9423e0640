package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os/exec"
	"sync"
	"time"
)

// seekTolerance is how close a decoded frame must sit to the requested
// source instant to satisfy it, in seconds. Half a frame at 30fps.
const seekTolerance = 1.0 / 60

// extractTimeout bounds a single frame extraction.
const extractTimeout = 10 * time.Second

// VideoFile extracts frames from a video file with ffmpeg, one frame per
// seek. Seeks run asynchronously: RequestSeek kicks off extraction and
// returns; Ready/FrameAt report whether the requested instant has landed.
// Interactive preview simply skips the clip while a seek is in flight; the
// export scheduler polls Ready with a bounded budget.
type VideoFile struct {
	binary string
	path   string

	mu      sync.Mutex
	frame   image.Image
	frameAt float64
	hasIt   bool
	pending bool
	target  float64
}

// NewVideoFile wraps a video path. binary defaults to "ffmpeg" when empty.
func NewVideoFile(binary, path string) *VideoFile {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &VideoFile{binary: binary, path: path}
}

func (v *VideoFile) RequestSeek(instant float64) {
	if instant < 0 {
		instant = 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.hasIt && math.Abs(v.frameAt-instant) <= seekTolerance {
		return
	}
	if v.pending && math.Abs(v.target-instant) <= seekTolerance {
		return
	}
	v.pending = true
	v.target = instant
	go v.extract(instant)
}

func (v *VideoFile) Ready(instant float64) bool {
	if instant < 0 {
		instant = 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hasIt && math.Abs(v.frameAt-instant) <= seekTolerance
}

func (v *VideoFile) FrameAt(instant float64) (image.Image, bool) {
	if instant < 0 {
		instant = 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.hasIt || math.Abs(v.frameAt-instant) > seekTolerance {
		return nil, false
	}
	return v.frame, true
}

func (v *VideoFile) extract(instant float64) {
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, v.binary,
		"-hide_banner", "-loglevel", "error",
		"-ss", fmt.Sprintf("%.4f", instant),
		"-i", v.path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	output, err := cmd.Output()

	var frame image.Image
	if err == nil {
		frame, err = png.Decode(bytes.NewReader(output))
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	// A newer seek may have superseded this one while ffmpeg ran.
	if math.Abs(v.target-instant) > seekTolerance {
		return
	}
	v.pending = false
	if err != nil || frame == nil {
		return
	}
	v.frame = frame
	v.frameAt = instant
	v.hasIt = true
}
