// Package ffmpeg implements the encoder boundary by piping raw RGBA frames
// into an ffmpeg process that produces a VP9/WebM container. The core hands
// frames over in strictly increasing time order and never looks inside the
// codec.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"

	"montage/internal/services"
)

// EncoderOptions describes one encode run.
type EncoderOptions struct {
	Binary     string
	Width      int
	Height     int
	FrameRate  int
	OutputPath string
}

// Encoder streams raw frames to an ffmpeg child process. Not safe for
// concurrent use; the export scheduler is the single writer.
type Encoder struct {
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	width      int
	height     int
	outputPath string
	frames     int
	done       bool
}

// NewEncoder starts the ffmpeg process and returns an encoder ready for
// WriteFrame calls.
func NewEncoder(ctx context.Context, opts EncoderOptions) (*Encoder, error) {
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, services.Wrap(services.ErrValidation, "encode", "start", fmt.Sprintf("bad frame size %dx%d", opts.Width, opts.Height), nil)
	}
	if opts.FrameRate <= 0 {
		return nil, services.Wrap(services.ErrValidation, "encode", "start", "frame rate must be positive", nil)
	}
	if strings.TrimSpace(opts.OutputPath) == "" {
		return nil, services.Wrap(services.ErrValidation, "encode", "start", "output path required", nil)
	}

	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-framerate", fmt.Sprintf("%d", opts.FrameRate),
		"-i", "-",
		"-c:v", "libvpx-vp9",
		"-pix_fmt", "yuv420p",
		opts.OutputPath,
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	enc := &Encoder{
		cmd:        cmd,
		width:      opts.Width,
		height:     opts.Height,
		outputPath: opts.OutputPath,
	}
	cmd.Stderr = &enc.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "encode", "start", "open stdin pipe", err)
	}
	enc.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "encode", "start", "launch ffmpeg", err)
	}
	return enc, nil
}

// WriteFrame pushes one frame. Frames must match the configured size and
// arrive in presentation order.
func (e *Encoder) WriteFrame(frame *image.RGBA) error {
	if e.done {
		return services.Wrap(services.ErrValidation, "encode", "write", "encoder already finalized", nil)
	}
	bounds := frame.Bounds()
	if bounds.Dx() != e.width || bounds.Dy() != e.height {
		return services.Wrap(services.ErrValidation, "encode", "write",
			fmt.Sprintf("frame size %dx%d does not match %dx%d", bounds.Dx(), bounds.Dy(), e.width, e.height), nil)
	}

	rowBytes := e.width * 4
	if frame.Stride == rowBytes {
		if _, err := e.stdin.Write(frame.Pix[:rowBytes*e.height]); err != nil {
			return e.writeFailed(err)
		}
	} else {
		for y := 0; y < e.height; y++ {
			row := frame.Pix[y*frame.Stride : y*frame.Stride+rowBytes]
			if _, err := e.stdin.Write(row); err != nil {
				return e.writeFailed(err)
			}
		}
	}
	e.frames++
	return nil
}

func (e *Encoder) writeFailed(err error) error {
	return services.Wrap(services.ErrExternalTool, "encode", "write",
		strings.TrimSpace(e.stderr.String()), err)
}

// FrameCount returns the number of frames accepted so far.
func (e *Encoder) FrameCount() int {
	return e.frames
}

// Finalize closes the stream, waits for ffmpeg to flush the container, and
// returns the encoded bytes.
func (e *Encoder) Finalize() ([]byte, error) {
	if e.done {
		return nil, services.Wrap(services.ErrValidation, "encode", "finalize", "encoder already finalized", nil)
	}
	e.done = true

	if err := e.stdin.Close(); err != nil {
		_ = e.cmd.Wait()
		return nil, services.Wrap(services.ErrExternalTool, "encode", "finalize", "close stream", err)
	}
	if err := e.cmd.Wait(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "encode", "finalize",
			strings.TrimSpace(e.stderr.String()), err)
	}

	data, err := os.ReadFile(e.outputPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "encode", "finalize", "read container", err)
	}
	return data, nil
}

// Abort kills the child process and removes the partial container. Safe to
// call after a failed write or on cancellation.
func (e *Encoder) Abort() {
	if e.done {
		return
	}
	e.done = true
	_ = e.stdin.Close()
	if e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	_ = e.cmd.Wait()
	_ = os.Remove(e.outputPath)
}
