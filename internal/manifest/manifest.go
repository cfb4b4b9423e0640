package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"montage/internal/services"
	"montage/internal/timeline"
)

// Manifest is a declarative timeline description for headless exports. Assets
// are referenced by manifest-local handles; clips place those handles on the
// fixed track set by track display name.
type Manifest struct {
	Name   string  `toml:"name"`
	Assets []Asset `toml:"assets"`
	Clips  []Clip  `toml:"clips"`
}

// Asset declares one piece of external media.
type Asset struct {
	Handle      string  `toml:"id"`
	Kind        string  `toml:"kind"`
	Source      string  `toml:"source"`
	DisplayName string  `toml:"display_name"`
	Duration    float64 `toml:"duration"`
}

// Clip places an asset, or a text element, on a track. Text clips leave Asset
// empty and set Text instead.
type Clip struct {
	Asset        string     `toml:"asset"`
	Track        string     `toml:"track"`
	Start        float64    `toml:"start"`
	Duration     float64    `toml:"duration"`
	SourceOffset float64    `toml:"source_offset"`
	Text         string     `toml:"text"`
	Properties   Properties `toml:"properties"`
}

// Properties overrides the default clip transform. Zero values fall back to
// the defaults, so a manifest only states what it changes.
type Properties struct {
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Scale     float64 `toml:"scale"`
	Rotation  float64 `toml:"rotation"`
	Opacity   float64 `toml:"opacity"`
	TextColor string  `toml:"text_color"`
	FontSize  float64 `toml:"font_size"`
}

// Load parses and validates a manifest file.
func Load(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "manifest", "load", "open manifest", err)
	}
	defer file.Close()

	var m Manifest
	if err := toml.NewDecoder(file).Decode(&m); err != nil {
		return nil, services.Wrap(services.ErrValidation, "manifest", "load", "parse manifest", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	handles := make(map[string]Asset, len(m.Assets))
	for i, asset := range m.Assets {
		if strings.TrimSpace(asset.Handle) == "" {
			return validationErr(fmt.Sprintf("asset %d: missing id", i))
		}
		if _, dup := handles[asset.Handle]; dup {
			return validationErr(fmt.Sprintf("asset %q: duplicate id", asset.Handle))
		}
		switch timeline.AssetKind(asset.Kind) {
		case timeline.AssetImage, timeline.AssetVideo:
		default:
			return validationErr(fmt.Sprintf("asset %q: unsupported kind %q", asset.Handle, asset.Kind))
		}
		if strings.TrimSpace(asset.Source) == "" {
			return validationErr(fmt.Sprintf("asset %q: missing source", asset.Handle))
		}
		if asset.Duration < 0 {
			return validationErr(fmt.Sprintf("asset %q: negative duration", asset.Handle))
		}
		handles[asset.Handle] = asset
	}

	for i, clip := range m.Clips {
		label := fmt.Sprintf("clip %d", i)
		isText := strings.TrimSpace(clip.Asset) == ""
		if isText && strings.TrimSpace(clip.Text) == "" {
			return validationErr(label + ": needs either an asset or text")
		}
		if !isText {
			if _, ok := handles[clip.Asset]; !ok {
				return validationErr(fmt.Sprintf("%s: unknown asset %q", label, clip.Asset))
			}
		}
		if strings.TrimSpace(clip.Track) == "" {
			return validationErr(label + ": missing track")
		}
		if clip.Start < 0 {
			return validationErr(label + ": negative start")
		}
		if clip.Duration < timeline.MinClipDuration {
			return validationErr(fmt.Sprintf("%s: duration below %v", label, timeline.MinClipDuration))
		}
		if clip.SourceOffset < 0 {
			return validationErr(label + ": negative source offset")
		}
	}
	return nil
}

func validationErr(message string) error {
	return services.Wrap(services.ErrValidation, "manifest", "validate", message, nil)
}
