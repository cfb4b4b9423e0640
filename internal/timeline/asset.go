package timeline

import (
	"strings"

	"github.com/google/uuid"
)

// AssetKind identifies the media type behind an asset.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetVideo AssetKind = "video"
	AssetText  AssetKind = "text"
)

// TextAssetID is the virtual asset identifier text clips reference. No record
// exists for it in the registry; the compositor renders the clip's own text
// properties instead.
const TextAssetID = "text"

// Asset is an external media reference. Assets are immutable after creation
// except NaturalDuration, which is filled at most once when a video source is
// probed.
type Asset struct {
	ID          string
	Kind        AssetKind
	Source      string
	DisplayName string
	// NaturalDuration is the source duration in seconds for video assets.
	// Zero means unknown (not yet probed, or not a video).
	NaturalDuration float64
}

// HasKnownDuration reports whether the asset's natural duration was probed.
func (a *Asset) HasKnownDuration() bool {
	return a != nil && a.NaturalDuration > 0
}

// Registry owns the project's assets, keyed by ID. Clips hold weak references:
// a missing ID is a degrade-gracefully case, never an error.
type Registry struct {
	assets map[string]*Asset
	order  []string
}

// NewRegistry returns an empty asset registry.
func NewRegistry() *Registry {
	return &Registry{assets: make(map[string]*Asset)}
}

// Add registers a new asset and returns it. naturalDuration may be zero when
// the source has not been probed yet.
func (r *Registry) Add(kind AssetKind, source, displayName string, naturalDuration float64) *Asset {
	asset := &Asset{
		ID:          uuid.NewString(),
		Kind:        kind,
		Source:      strings.TrimSpace(source),
		DisplayName: strings.TrimSpace(displayName),
	}
	if kind == AssetVideo && naturalDuration > 0 {
		asset.NaturalDuration = naturalDuration
	}
	r.assets[asset.ID] = asset
	r.order = append(r.order, asset.ID)
	return asset
}

// Get looks up an asset by ID.
func (r *Registry) Get(id string) (*Asset, bool) {
	asset, ok := r.assets[id]
	return asset, ok
}

// SetDuration fills an asset's natural duration. The first probed value wins;
// repeat calls are no-ops so a duplicate probe callback cannot change playback
// math mid-session.
func (r *Registry) SetDuration(id string, seconds float64) {
	asset, ok := r.assets[id]
	if !ok || seconds <= 0 {
		return
	}
	if asset.NaturalDuration > 0 {
		return
	}
	asset.NaturalDuration = seconds
}

// All returns the registered assets in insertion order.
func (r *Registry) All() []*Asset {
	out := make([]*Asset, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.assets[id])
	}
	return out
}
