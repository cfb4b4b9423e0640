package source

import (
	"strings"
	"sync"

	"montage/internal/compositor"
	"montage/internal/timeline"
)

// FileLibrary resolves registry assets to file-backed sources, creating one
// source per asset lazily and reusing it across renders so video seek state
// survives between frames.
type FileLibrary struct {
	ffmpegBinary string
	registry     *timeline.Registry

	mu      sync.Mutex
	sources map[string]compositor.Source
}

// NewFileLibrary builds a library over the project's asset registry.
func NewFileLibrary(ffmpegBinary string, registry *timeline.Registry) *FileLibrary {
	return &FileLibrary{
		ffmpegBinary: ffmpegBinary,
		registry:     registry,
		sources:      make(map[string]compositor.Source),
	}
}

// Source implements compositor.Library.
func (l *FileLibrary) Source(assetID string) (compositor.Source, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if src, ok := l.sources[assetID]; ok {
		return src, true
	}

	asset, ok := l.registry.Get(assetID)
	if !ok {
		return nil, false
	}
	path := filePath(asset.Source)
	if path == "" {
		return nil, false
	}

	var src compositor.Source
	switch asset.Kind {
	case timeline.AssetImage:
		src = NewImageFile(path)
	case timeline.AssetVideo:
		src = NewVideoFile(l.ffmpegBinary, path)
	default:
		return nil, false
	}
	l.sources[assetID] = src
	return src, true
}

// filePath strips an optional file:// scheme; other schemes are not local
// media and resolve to nothing.
func filePath(locator string) string {
	locator = strings.TrimSpace(locator)
	if rest, ok := strings.CutPrefix(locator, "file://"); ok {
		return rest
	}
	if strings.Contains(locator, "://") {
		return ""
	}
	return locator
}
