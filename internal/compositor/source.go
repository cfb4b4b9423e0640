package compositor

import "image"

// Source supplies raster content for one asset. Implementations for still
// images are always ready; video sources may need to seek before they can
// satisfy a frame request.
type Source interface {
	// RequestSeek asks the source to position itself at the source instant.
	// A no-op for sources without a time axis.
	RequestSeek(instant float64)
	// Ready reports whether FrameAt(instant) can be satisfied synchronously.
	Ready(instant float64) bool
	// FrameAt returns the frame at the source instant. The second return is
	// false while a seek is still pending; the compositor then paints
	// nothing for the clip.
	FrameAt(instant float64) (image.Image, bool)
}

// Library resolves asset IDs to sources. A missing ID is the degrade-
// gracefully case: the clip paints nothing.
type Library interface {
	Source(assetID string) (Source, bool)
}

// Still is a Source backed by a fixed image; it is always ready.
type Still struct {
	Image image.Image
}

// NewStill wraps an image as an always-ready source.
func NewStill(img image.Image) *Still {
	return &Still{Image: img}
}

func (s *Still) RequestSeek(float64) {}

func (s *Still) Ready(float64) bool { return s.Image != nil }

func (s *Still) FrameAt(float64) (image.Image, bool) {
	if s.Image == nil {
		return nil, false
	}
	return s.Image, true
}

// MapLibrary is a Library over a plain map.
type MapLibrary map[string]Source

func (m MapLibrary) Source(assetID string) (Source, bool) {
	src, ok := m[assetID]
	return src, ok
}
