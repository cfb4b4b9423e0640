// Package export batch-drives the compositor across the full project
// duration at a fixed frame rate and streams finalized frames to an encoder.
// Unlike interactive preview it is frame-exact and non-real-time: every
// frame waits (within a bounded budget) for the video sources active at that
// instant to finish seeking before the frame is composited and handed over.
package export

import (
	"context"
	"image"
	"log/slog"
	"math"
	"time"

	"montage/internal/compositor"
	"montage/internal/logging"
	"montage/internal/timeline"
)

// Encoder is the external encoding collaborator. Frames arrive in strictly
// increasing time order; Finalize produces the container bytes.
type Encoder interface {
	WriteFrame(frame *image.RGBA) error
	Finalize() ([]byte, error)
	Abort()
}

// Progress reports one finalized frame.
type Progress struct {
	Frame       int
	TotalFrames int
	Percent     int
}

// Options tunes a run.
type Options struct {
	// FrameRate defaults to 30 frames per second.
	FrameRate int
	// Duration overrides the derived project duration when positive.
	Duration float64
	// SeekWait bounds the per-frame wait for video source readiness.
	SeekWait time.Duration
	// SeekPoll is the readiness polling interval.
	SeekPoll time.Duration
	// OnProgress, when set, is invoked once per finalized frame.
	OnProgress func(Progress)
}

// Result is the completed export.
type Result struct {
	Data   []byte
	Frames int
}

// Run composites and encodes every frame of the project. On error or
// cancellation the encoder is aborted and no partial container is returned.
func Run(ctx context.Context, comp *compositor.Compositor, project *timeline.Project, lib compositor.Library, enc Encoder, logger *slog.Logger, opts Options) (Result, error) {
	log := logging.WithComponent(logger, "export")

	rate := opts.FrameRate
	if rate <= 0 {
		rate = 30
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = project.Duration()
	}
	totalFrames := int(math.Ceil(duration * float64(rate)))

	log.Info("export started", "duration", duration, "frame_rate", rate, "frames", totalFrames)

	frames := 0
	for f := 0; ; f++ {
		instant := float64(f) / float64(rate)
		if instant >= duration {
			break
		}
		if err := ctx.Err(); err != nil {
			enc.Abort()
			log.Warn("export cancelled", "frame", f)
			return Result{}, err
		}

		percent := int(math.Round(instant / duration * 100))
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Frame: f, TotalFrames: totalFrames, Percent: percent})
		}

		waitForSources(ctx, project, lib, instant, opts.SeekWait, opts.SeekPoll)

		frame := comp.Render(project.Tracks, project.Clips, lib, instant, compositor.Options{})
		if err := enc.WriteFrame(frame); err != nil {
			enc.Abort()
			return Result{}, err
		}
		frames++

		if f%300 == 0 {
			log.Debug("export progress", "frame", f, "percent", percent)
		}
	}

	data, err := enc.Finalize()
	if err != nil {
		return Result{}, err
	}
	log.Info("export finished", "frames", frames, "bytes", len(data))
	return Result{Data: data, Frames: frames}, nil
}

// waitForSources requests seeks for every video source active at the
// instant, then polls readiness up to the budget. A source that stays stuck
// past the budget is skipped for this frame; a stalled frame beats an
// aborted export.
func waitForSources(ctx context.Context, project *timeline.Project, lib compositor.Library, instant float64, budget, poll time.Duration) {
	type pendingSeek struct {
		src    compositor.Source
		target float64
	}

	var pending []pendingSeek
	for i := range project.Clips {
		clip := project.Clips[i]
		if !clip.ActiveAt(instant) || clip.IsText() {
			continue
		}
		asset, ok := project.Assets.Get(clip.AssetID)
		if !ok || asset.Kind != timeline.AssetVideo {
			continue
		}
		src, ok := lib.Source(clip.AssetID)
		if !ok {
			continue
		}
		target := clip.SourceInstant(instant)
		src.RequestSeek(target)
		pending = append(pending, pendingSeek{src: src, target: target})
	}
	if len(pending) == 0 || budget <= 0 {
		return
	}
	if poll <= 0 {
		poll = 10 * time.Millisecond
	}

	deadline := time.Now().Add(budget)
	for {
		allReady := true
		for _, p := range pending {
			if !p.src.Ready(p.target) {
				allReady = false
				break
			}
		}
		if allReady || time.Now().After(deadline) || ctx.Err() != nil {
			return
		}
		time.Sleep(poll)
	}
}
