package timeline

import "github.com/google/uuid"

// Track is an ordered lane. Storage order defines both vertical stacking in
// the editing surface and compositing layer order: the last track is the
// bottom layer (painted first), the first track the top layer (painted last).
type Track struct {
	ID          string
	DisplayName string
	Visible     bool
	Locked      bool
}

// NewTrack builds a visible, unlocked track with a fresh ID.
func NewTrack(displayName string) Track {
	return Track{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Visible:     true,
	}
}

// CloneTracks deep-copies a track slice for snapshotting.
func CloneTracks(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}
