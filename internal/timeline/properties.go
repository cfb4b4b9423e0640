package timeline

// ClipProperties is the transform/appearance block applied when compositing a
// clip. X and Y are fractional canvas coordinates of the clip center.
// Text, TextColor, and FontSizePx apply only to text clips.
type ClipProperties struct {
	X          float64
	Y          float64
	Scale      float64
	Rotation   float64 // degrees
	Opacity    float64 // 0..1
	Text       string
	TextColor  string
	FontSizePx float64
}

// DefaultProperties centers the clip at full scale and opacity.
func DefaultProperties() ClipProperties {
	return ClipProperties{
		X:       0.5,
		Y:       0.5,
		Scale:   1,
		Opacity: 1,
	}
}

// DefaultTextProperties returns DefaultProperties plus legible text defaults.
func DefaultTextProperties(text string) ClipProperties {
	props := DefaultProperties()
	props.Text = text
	props.TextColor = "#ffffff"
	props.FontSizePx = 48
	return props
}

// Clamp normalizes out-of-range values in place: coordinates and opacity to
// [0,1], scale to a small positive floor.
func (p *ClipProperties) Clamp() {
	p.X = clamp01(p.X)
	p.Y = clamp01(p.Y)
	p.Opacity = clamp01(p.Opacity)
	if p.Scale <= 0 {
		p.Scale = 0.01
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
