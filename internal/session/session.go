package session

import (
	"errors"
	"log/slog"

	"montage/internal/compositor"
	"montage/internal/config"
	"montage/internal/history"
	"montage/internal/interaction"
	"montage/internal/logging"
	"montage/internal/playback"
	"montage/internal/timeline"
)

// ErrExportInProgress is returned when an export is started while another
// one is running.
var ErrExportInProgress = errors.New("export already in progress")

// Session is one local editing session: the live project, its history, the
// current selection, the playback clock, and the export mutual-exclusion
// flag. All mutations run on the caller's single control flow.
type Session struct {
	logger *slog.Logger

	project *timeline.Project
	history *history.Stack
	engine  *interaction.Engine
	clock   *playback.Clock
	comp    *compositor.Compositor

	selection string

	drag       interaction.Session
	dragActive bool
	// preDrag restores live state when a gesture is cancelled instead of
	// released.
	preDrag []timeline.Clip

	exporting bool
}

// New builds a session with the fixed initial track set and an initial
// history snapshot, so the first edit can be undone back to the empty
// timeline.
func New(cfg *config.Config, logger *slog.Logger) *Session {
	project := timeline.NewProject("Text", "Overlay", "Main")
	s := &Session{
		logger:  logging.WithComponent(logger, "session"),
		project: project,
		history: history.New(),
		engine: interaction.NewEngine(interaction.Surface{
			PixelsPerSecond: cfg.Editing.PixelsPerSecond,
			TrackRowHeight:  cfg.Editing.TrackRowHeight,
			SnapThresholdPx: cfg.Editing.SnapThresholdPx,
		}),
		clock: playback.NewClock(),
		comp:  compositor.New(cfg.Canvas.Width, cfg.Canvas.Height),
	}
	s.history.Commit(project.Clips, project.Tracks)
	return s
}

// Project exposes the live editing state.
func (s *Session) Project() *timeline.Project {
	return s.project
}

// Duration returns the derived project duration.
func (s *Session) Duration() float64 {
	return s.project.Duration()
}

// Clock returns the playback clock.
func (s *Session) Clock() *playback.Clock {
	return s.clock
}

// Compositor returns the session's canvas-sized compositor.
func (s *Session) Compositor() *compositor.Compositor {
	return s.comp
}

// AddAsset registers external media and returns the new asset ID. Collaborators
// that generate content call this after producing it; the session neither
// knows nor cares how the bytes came to be.
func (s *Session) AddAsset(kind timeline.AssetKind, source, displayName string, optionalDuration float64) string {
	asset := s.project.Assets.Add(kind, source, displayName, optionalDuration)
	s.logger.Info("asset added", "asset", asset.ID, "kind", string(kind), "name", displayName)
	return asset.ID
}

// SetAssetDuration fills a video asset's natural duration once the probe
// completes. One-shot and idempotent.
func (s *Session) SetAssetDuration(assetID string, seconds float64) {
	s.project.Assets.SetDuration(assetID, seconds)
}

// AddClip places an asset on a track and commits. Returns the clip ID, or
// false when the track does not exist.
func (s *Session) AddClip(assetID, trackID string, start, duration float64) (string, bool) {
	if s.project.TrackIndex(trackID) < 0 {
		return "", false
	}
	if duration < timeline.MinClipDuration {
		duration = timeline.MinClipDuration
	}
	if asset, ok := s.project.Assets.Get(assetID); ok && asset.HasKnownDuration() && duration > asset.NaturalDuration {
		duration = asset.NaturalDuration
	}
	clip := timeline.NewClip(assetID, trackID, start, duration)
	s.project.Clips = append(s.project.Clips, clip)
	s.selection = clip.ID
	s.commit()
	return clip.ID, true
}

// AddTextClip places a text clip with default text styling and commits.
func (s *Session) AddTextClip(trackID, text string, start, duration float64) (string, bool) {
	if s.project.TrackIndex(trackID) < 0 {
		return "", false
	}
	clip := timeline.NewClip(timeline.TextAssetID, trackID, start, duration)
	clip.Properties = timeline.DefaultTextProperties(text)
	s.project.Clips = append(s.project.Clips, clip)
	s.selection = clip.ID
	s.commit()
	return clip.ID, true
}

// DeleteClip removes a clip and commits. Clears the selection when it
// pointed at the removed clip.
func (s *Session) DeleteClip(clipID string) bool {
	if !s.project.RemoveClip(clipID) {
		return false
	}
	if s.selection == clipID {
		s.selection = ""
	}
	s.commit()
	return true
}

// UpdateClipProperties replaces a clip's transform/appearance block and
// commits.
func (s *Session) UpdateClipProperties(clipID string, props timeline.ClipProperties) bool {
	clip := s.project.Clip(clipID)
	if clip == nil {
		return false
	}
	props.Clamp()
	clip.Properties = props
	s.commit()
	return true
}

// Select marks a clip as selected. Selecting an unknown ID clears the
// selection.
func (s *Session) Select(clipID string) {
	if s.project.Clip(clipID) == nil {
		s.selection = ""
		return
	}
	s.selection = clipID
}

// Selection returns the selected clip ID, or empty.
func (s *Session) Selection() string {
	return s.selection
}

// commit pushes the live state onto the history stack.
func (s *Session) commit() {
	s.history.Commit(s.project.Clips, s.project.Tracks)
}

// Undo steps back one snapshot and applies it. No-op at the history
// boundary.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.apply(snap)
	return true
}

// Redo steps forward one snapshot and applies it. No-op at the history
// boundary.
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.apply(snap)
	return true
}

func (s *Session) apply(snap history.Snapshot) {
	s.project.Clips = snap.Clips
	s.project.Tracks = snap.Tracks
	if s.selection != "" && s.project.Clip(s.selection) == nil {
		s.selection = ""
	}
}
