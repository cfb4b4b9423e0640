package timeline

import "github.com/google/uuid"

// MinClipDuration is the floor any trim operation clamps to, in seconds.
const MinClipDuration = 0.1

// Clip is a placed instance of an asset on a track. Start, Duration, and
// SourceOffset are seconds; Start/Duration define the half-open active
// interval [Start, Start+Duration).
type Clip struct {
	ID           string
	AssetID      string
	TrackID      string
	Start        float64
	Duration     float64
	SourceOffset float64
	Properties   ClipProperties
}

// NewClip places an asset on a track with default properties.
func NewClip(assetID, trackID string, start, duration float64) Clip {
	return Clip{
		ID:         uuid.NewString(),
		AssetID:    assetID,
		TrackID:    trackID,
		Start:      start,
		Duration:   duration,
		Properties: DefaultProperties(),
	}
}

// End returns the exclusive end of the clip's active interval.
func (c Clip) End() float64 {
	return c.Start + c.Duration
}

// ActiveAt reports whether the clip contributes at instant t.
func (c Clip) ActiveAt(t float64) bool {
	return t >= c.Start && t < c.End()
}

// SourceInstant maps a global timeline instant to the position within the
// clip's source.
func (c Clip) SourceInstant(t float64) float64 {
	return c.SourceOffset + (t - c.Start)
}

// IsText reports whether the clip renders its text properties rather than an
// asset's pixels.
func (c Clip) IsText() bool {
	return c.AssetID == TextAssetID
}

// CloneClips deep-copies a clip slice for snapshotting.
func CloneClips(clips []Clip) []Clip {
	out := make([]Clip, len(clips))
	copy(out, clips)
	return out
}

// FindClip returns the index of the clip with the given ID, or -1.
func FindClip(clips []Clip, id string) int {
	for i := range clips {
		if clips[i].ID == id {
			return i
		}
	}
	return -1
}
