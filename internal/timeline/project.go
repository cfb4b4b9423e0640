package timeline

// Baseline timeline extent and the padding appended past the last clip, in
// seconds.
const (
	MinProjectDuration = 30.0
	ProjectTailPadding = 5.0
)

// Project is the live editing state: the asset registry plus ordered clips
// and tracks. Tracks are created at initialization and not mutated afterwards.
type Project struct {
	Assets *Registry
	Clips  []Clip
	Tracks []Track
}

// NewProject builds a project with the fixed initial track set, ordered
// top-most first.
func NewProject(trackNames ...string) *Project {
	if len(trackNames) == 0 {
		trackNames = []string{"Overlay", "Main"}
	}
	tracks := make([]Track, 0, len(trackNames))
	for _, name := range trackNames {
		tracks = append(tracks, NewTrack(name))
	}
	return &Project{
		Assets: NewRegistry(),
		Tracks: tracks,
	}
}

// Duration derives the project duration: at least MinProjectDuration, else
// the last clip end plus ProjectTailPadding.
func (p *Project) Duration() float64 {
	return DurationOf(p.Clips)
}

// DurationOf computes the derived project duration for a clip list.
func DurationOf(clips []Clip) float64 {
	end := 0.0
	for i := range clips {
		if e := clips[i].End(); e > end {
			end = e
		}
	}
	d := end + ProjectTailPadding
	if d < MinProjectDuration {
		return MinProjectDuration
	}
	return d
}

// TrackIndex returns the storage index of a track ID, or -1.
func (p *Project) TrackIndex(id string) int {
	for i := range p.Tracks {
		if p.Tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// Clip returns a pointer into the live clip list, or nil.
func (p *Project) Clip(id string) *Clip {
	if i := FindClip(p.Clips, id); i >= 0 {
		return &p.Clips[i]
	}
	return nil
}

// RemoveClip deletes the clip with the given ID. It reports whether a clip
// was removed.
func (p *Project) RemoveClip(id string) bool {
	i := FindClip(p.Clips, id)
	if i < 0 {
		return false
	}
	p.Clips = append(p.Clips[:i], p.Clips[i+1:]...)
	return true
}
