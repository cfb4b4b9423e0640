package interaction

import (
	"math"

	"montage/internal/timeline"
)

// resolveSnap pulls a candidate time onto the first qualifying snap target.
// Targets are checked in fixed priority order: the playhead, then every other
// clip's start, then every other clip's end. The first target within the
// pixel threshold wins even when a later one is nearer.
func (e *Engine) resolveSnap(clips []timeline.Clip, draggedID string, candidate, playhead float64) float64 {
	threshold := e.surface.SnapThresholdPx / e.surface.PixelsPerSecond

	if math.Abs(candidate-playhead) < threshold {
		return playhead
	}
	for i := range clips {
		if clips[i].ID == draggedID {
			continue
		}
		if math.Abs(candidate-clips[i].Start) < threshold {
			return clips[i].Start
		}
	}
	for i := range clips {
		if clips[i].ID == draggedID {
			continue
		}
		if math.Abs(candidate-clips[i].End()) < threshold {
			return clips[i].End()
		}
	}
	return candidate
}
