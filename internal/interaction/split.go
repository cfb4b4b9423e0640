package interaction

import (
	"github.com/google/uuid"

	"montage/internal/timeline"
)

// Split cuts the clip at instant t. The left half keeps the original ID and
// properties with its duration shortened in place; the right half is a fresh
// clip covering the remainder with its source offset shifted so the two
// halves play contiguous source ranges. Returns the right clip's ID.
//
// A no-op unless t falls strictly inside the clip's active interval.
func Split(project *timeline.Project, clipID string, t float64) (string, bool) {
	clip := project.Clip(clipID)
	if clip == nil {
		return "", false
	}
	if t <= clip.Start || t >= clip.End() {
		return "", false
	}

	leftDuration := t - clip.Start

	right := *clip
	right.ID = uuid.NewString()
	right.Start = t
	right.Duration = clip.Duration - leftDuration
	right.SourceOffset = clip.SourceOffset + leftDuration

	clip.Duration = leftDuration

	project.Clips = append(project.Clips, right)
	return right.ID, true
}
