package session

import (
	"context"
	"image"

	"montage/internal/compositor"
	"montage/internal/export"
)

// Preview composites the frame under the playhead, including the selection
// outline. This is the interactive render path; it never feeds an export.
func (s *Session) Preview(lib compositor.Library) *image.RGBA {
	return s.comp.Render(s.project.Tracks, s.project.Clips, lib, s.clock.Cursor(), compositor.Options{
		SelectedClipID: s.selection,
	})
}

// Export runs a full export of the current timeline. The playback clock is
// paused and the selection cleared for the duration, and no second export
// may start while one runs. Gestures and ticks are frozen until it returns.
func (s *Session) Export(ctx context.Context, lib compositor.Library, enc export.Encoder, opts export.Options) (export.Result, error) {
	if s.exporting {
		return export.Result{}, ErrExportInProgress
	}
	s.exporting = true
	defer func() { s.exporting = false }()

	s.clock.Pause()
	s.selection = ""

	return export.Run(ctx, s.comp, s.project, lib, enc, s.logger, opts)
}

// Exporting reports whether an export is currently running.
func (s *Session) Exporting() bool {
	return s.exporting
}
