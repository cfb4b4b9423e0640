package interaction

import (
	"math"

	"montage/internal/timeline"
)

// Mode classifies a drag gesture.
type Mode string

const (
	ModeMove      Mode = "move"
	ModeTrimStart Mode = "trim-start"
	ModeTrimEnd   Mode = "trim-end"
)

// Surface is the fixed editing-surface geometry: horizontal time scale,
// vertical lane extent, and snap threshold.
type Surface struct {
	PixelsPerSecond float64
	TrackRowHeight  float64
	SnapThresholdPx float64
}

// Session is the per-gesture context captured once at press from the clip's
// committed values. Updates are computed against these originals, never
// against intermediate state, so a gesture is one deterministic function of
// the current pointer position.
type Session struct {
	Mode                 Mode
	ClipID               string
	PointerOriginX       float64
	OriginalStart        float64
	OriginalDuration     float64
	OriginalSourceOffset float64
}

// Engine converts pointer input into clip mutations. It is stateless between
// calls; all gesture state lives in the Session threaded through Update.
type Engine struct {
	surface Surface
}

// NewEngine builds an engine for the given surface geometry.
func NewEngine(surface Surface) *Engine {
	return &Engine{surface: surface}
}

// Begin captures a gesture session for the clip. It reports false when the
// clip does not exist or sits on a locked track.
func (e *Engine) Begin(project *timeline.Project, clipID string, mode Mode, pointerX float64) (Session, bool) {
	clip := project.Clip(clipID)
	if clip == nil {
		return Session{}, false
	}
	if i := project.TrackIndex(clip.TrackID); i >= 0 && project.Tracks[i].Locked {
		return Session{}, false
	}
	return Session{
		Mode:                 mode,
		ClipID:               clipID,
		PointerOriginX:       pointerX,
		OriginalStart:        clip.Start,
		OriginalDuration:     clip.Duration,
		OriginalSourceOffset: clip.SourceOffset,
	}, true
}

// Update applies the pointer position to the live clip for the session's
// mode. playhead is the current timeline cursor, used as the highest-priority
// snap target. Update mutates live state only; committing to history is the
// caller's concern at gesture end.
func (e *Engine) Update(project *timeline.Project, session Session, pointerX, pointerY, playhead float64) {
	clip := project.Clip(session.ClipID)
	if clip == nil {
		return
	}

	deltaT := (pointerX - session.PointerOriginX) / e.surface.PixelsPerSecond

	switch session.Mode {
	case ModeMove:
		candidate := math.Max(0, session.OriginalStart+deltaT)
		clip.Start = e.resolveSnap(project.Clips, session.ClipID, candidate, playhead)
		e.retargetTrack(project, clip, pointerY)

	case ModeTrimStart:
		e.trimStart(project, clip, session, deltaT, playhead)

	case ModeTrimEnd:
		e.trimEnd(project, clip, session, deltaT)
	}
}

// trimStart slides the clip start while preserving its end time, re-anchoring
// the source offset by the same delta.
func (e *Engine) trimStart(project *timeline.Project, clip *timeline.Clip, session Session, deltaT, playhead float64) {
	low := 0.0
	// A video clip's start cannot move left of the head of its source.
	if asset, ok := project.Assets.Get(clip.AssetID); ok && asset.Kind == timeline.AssetVideo {
		low = math.Max(0, session.OriginalStart-session.OriginalSourceOffset)
	}
	high := session.OriginalStart + session.OriginalDuration - timeline.MinClipDuration

	candidate := session.OriginalStart + deltaT
	candidate = math.Min(math.Max(candidate, low), high)
	candidate = e.resolveSnap(project.Clips, session.ClipID, candidate, playhead)
	candidate = math.Min(math.Max(candidate, low), high)

	timeDelta := candidate - session.OriginalStart
	clip.Start = candidate
	clip.Duration = session.OriginalDuration - timeDelta
	clip.SourceOffset = math.Max(0, session.OriginalSourceOffset+timeDelta)
}

// trimEnd grows or shrinks the clip duration, clamped to the source's known
// natural duration for video.
func (e *Engine) trimEnd(project *timeline.Project, clip *timeline.Clip, session Session, deltaT float64) {
	duration := math.Max(timeline.MinClipDuration, session.OriginalDuration+deltaT)
	if asset, ok := project.Assets.Get(clip.AssetID); ok && asset.HasKnownDuration() {
		if remaining := asset.NaturalDuration - clip.SourceOffset; duration > remaining {
			duration = math.Max(timeline.MinClipDuration, remaining)
		}
	}
	clip.Duration = duration
}

// retargetTrack reassigns the clip to the lane the pointer hovers over.
// A pointer outside all lanes leaves the assignment unchanged.
func (e *Engine) retargetTrack(project *timeline.Project, clip *timeline.Clip, pointerY float64) {
	if pointerY < 0 {
		return
	}
	index := int(pointerY / e.surface.TrackRowHeight)
	if index < 0 || index >= len(project.Tracks) {
		return
	}
	if project.Tracks[index].Locked {
		return
	}
	clip.TrackID = project.Tracks[index].ID
}
