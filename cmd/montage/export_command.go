package main

import (
	"context"
	"fmt"
	"math"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"montage/internal/compositor"
	"montage/internal/config"
	"montage/internal/deps"
	"montage/internal/export"
	"montage/internal/logging"
	"montage/internal/manifest"
	"montage/internal/media/ffprobe"
	"montage/internal/media/source"
	"montage/internal/renderjobs"
	"montage/internal/services/ffmpeg"
	"montage/internal/textutil"
	"montage/internal/timeline"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputName string
	var frameRate int
	var duration float64

	cmd := &cobra.Command{
		Use:   "export <manifest.toml>",
		Short: "Render a manifest timeline to a VP9/WebM file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, ctx, args[0], outputName, frameRate, duration)
		},
	}

	cmd.Flags().StringVarP(&outputName, "output", "o", "", "Output file name inside the output directory")
	cmd.Flags().IntVar(&frameRate, "frame-rate", 0, "Frames per second (defaults to the configured rate)")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Render only the first N seconds instead of the full timeline")
	return cmd
}

func runExport(cmd *cobra.Command, ctx *commandContext, manifestPath, outputName string, frameRate int, duration float64) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if err := deps.Verify(deps.Default(cfg)); err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	durations, err := probeManifestAssets(signalCtx, cfg, m)
	if err != nil {
		return err
	}
	project, err := m.Build(durations)
	if err != nil {
		return err
	}

	rate := frameRate
	if rate <= 0 {
		rate = cfg.Export.FrameRate
	}
	renderDuration := duration
	if renderDuration <= 0 {
		renderDuration = project.Duration()
	}
	totalFrames := int(math.Ceil(renderDuration * float64(rate)))

	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "montage-render.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire render lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another montage render is already running")
	}
	defer func() { _ = lock.Unlock() }()

	store, err := renderjobs.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	absManifest, err := filepath.Abs(manifestPath)
	if err != nil {
		absManifest = manifestPath
	}
	job, err := store.NewJob(signalCtx, absManifest, rate, totalFrames)
	if err != nil {
		return err
	}
	if _, err := store.Transition(signalCtx, job.ID, renderjobs.StatusCompositing); err != nil {
		return err
	}

	outputPath := filepath.Join(cfg.Paths.OutputDir, resolveOutputName(outputName, m, manifestPath))

	enc, err := ffmpeg.NewEncoder(signalCtx, ffmpeg.EncoderOptions{
		Binary:     cfg.FFmpegBinary(),
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		FrameRate:  rate,
		OutputPath: outputPath,
	})
	if err != nil {
		_, _ = store.MarkFailed(context.Background(), job.ID, err.Error())
		return err
	}

	lib := source.NewFileLibrary(cfg.FFmpegBinary(), project.Assets)
	comp := compositor.New(cfg.Canvas.Width, cfg.Canvas.Height)
	out := cmd.OutOrStdout()

	result, err := export.Run(signalCtx, comp, project, lib, enc, logger, export.Options{
		FrameRate: rate,
		Duration:  duration,
		SeekWait:  time.Duration(cfg.Export.SeekWaitMillis) * time.Millisecond,
		SeekPoll:  time.Duration(cfg.Export.SeekPollMillis) * time.Millisecond,
		OnProgress: func(p export.Progress) {
			_ = store.UpdateProgress(context.Background(), job.ID, p.Frame+1, float64(p.Percent), "")
			fmt.Fprintf(out, "\rframe %d/%d (%d%%)", p.Frame+1, p.TotalFrames, p.Percent)
		},
	})
	fmt.Fprintln(out)
	if err != nil {
		_, _ = store.MarkFailed(context.Background(), job.ID, err.Error())
		return err
	}

	if _, err := store.Transition(signalCtx, job.ID, renderjobs.StatusEncoding); err != nil {
		return err
	}
	if _, err := store.MarkCompleted(signalCtx, job.ID, outputPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "Rendered %d frames to %s\n", result.Frames, outputPath)
	return nil
}

// probeManifestAssets fills natural durations for video assets the manifest
// left unspecified.
func probeManifestAssets(ctx context.Context, cfg *config.Config, m *manifest.Manifest) (map[string]float64, error) {
	durations := make(map[string]float64)
	for _, asset := range m.Assets {
		if timeline.AssetKind(asset.Kind) != timeline.AssetVideo || asset.Duration > 0 {
			continue
		}
		info, err := ffprobe.Probe(ctx, cfg.FFprobeBinary(), sourcePath(asset.Source))
		if err != nil {
			return nil, fmt.Errorf("probe asset %q: %w", asset.Handle, err)
		}
		durations[asset.Handle] = info.DurationSeconds
	}
	return durations, nil
}

func resolveOutputName(explicit string, m *manifest.Manifest, manifestPath string) string {
	name := strings.TrimSpace(explicit)
	if name == "" {
		name = strings.TrimSpace(m.Name)
	}
	if name == "" {
		base := filepath.Base(manifestPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	name = textutil.SanitizeFileName(name)
	if name == "" {
		name = "montage"
	}
	if !strings.HasSuffix(name, ".webm") {
		name += ".webm"
	}
	return name
}

func sourcePath(locator string) string {
	return strings.TrimPrefix(locator, "file://")
}
