package manifest

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"montage/internal/services"
	"montage/internal/timeline"
)

// Build materializes the manifest into a project. probedDurations supplies
// natural durations keyed by asset handle for video assets the manifest left
// unspecified; missing entries leave the duration unknown.
func (m *Manifest) Build(probedDurations map[string]float64) (*timeline.Project, error) {
	project := timeline.NewProject("Text", "Overlay", "Main")

	trackByName := make(map[string]string, len(project.Tracks))
	for _, track := range project.Tracks {
		trackByName[track.DisplayName] = track.ID
	}

	assetByHandle := make(map[string]string, len(m.Assets))
	for _, asset := range m.Assets {
		duration := asset.Duration
		if duration <= 0 {
			duration = probedDurations[asset.Handle]
		}
		name := asset.DisplayName
		if strings.TrimSpace(name) == "" {
			name = DisplayNameFromSource(asset.Source)
		}
		record := project.Assets.Add(timeline.AssetKind(asset.Kind), asset.Source, name, duration)
		assetByHandle[asset.Handle] = record.ID
	}

	for i, entry := range m.Clips {
		trackID, ok := trackByName[entry.Track]
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "manifest", "build",
				fmt.Sprintf("clip %d: unknown track %q", i, entry.Track), nil)
		}

		var clip timeline.Clip
		if strings.TrimSpace(entry.Asset) == "" {
			clip = timeline.NewClip(timeline.TextAssetID, trackID, entry.Start, entry.Duration)
			clip.Properties = timeline.DefaultTextProperties(entry.Text)
		} else {
			clip = timeline.NewClip(assetByHandle[entry.Asset], trackID, entry.Start, entry.Duration)
			clip.SourceOffset = entry.SourceOffset
		}
		applyProperties(&clip, entry.Properties)
		project.Clips = append(project.Clips, clip)
	}

	return project, nil
}

func applyProperties(clip *timeline.Clip, props Properties) {
	if props.X != 0 {
		clip.Properties.X = props.X
	}
	if props.Y != 0 {
		clip.Properties.Y = props.Y
	}
	if props.Scale != 0 {
		clip.Properties.Scale = props.Scale
	}
	if props.Rotation != 0 {
		clip.Properties.Rotation = props.Rotation
	}
	if props.Opacity != 0 {
		clip.Properties.Opacity = props.Opacity
	}
	if props.TextColor != "" {
		clip.Properties.TextColor = props.TextColor
	}
	if props.FontSize != 0 {
		clip.Properties.FontSizePx = props.FontSize
	}
	clip.Properties.Clamp()
}

// DisplayNameFromSource derives a human-facing asset name from a source URI
// or path: the file stem with separators collapsed to spaces, title-cased.
func DisplayNameFromSource(source string) string {
	base := filepath.Base(strings.TrimPrefix(source, "file://"))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var cleaned strings.Builder
	prevSpace := true
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	name := strings.TrimSpace(cleaned.String())
	if name == "" {
		return "Untitled Asset"
	}
	return cases.Title(language.Und).String(name)
}
