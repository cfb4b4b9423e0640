package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"

	"montage/internal/timeline"
)

// Options controls per-render behavior that is not part of the timeline
// state.
type Options struct {
	// SelectedClipID draws an editing outline over that clip. Leave empty
	// when compositing for export; the outline is a pure editing affordance.
	SelectedClipID string
}

// Compositor renders composited frames from timeline state. Render is a pure
// query: the same (tracks, clips, sources, instant) always produces the same
// frame.
type Compositor struct {
	width  int
	height int
	fonts  *fontCache
}

// New builds a compositor for the given canvas size.
func New(width, height int) *Compositor {
	return &Compositor{width: width, height: height, fonts: newFontCache()}
}

// Width returns the canvas width in pixels.
func (c *Compositor) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Compositor) Height() int { return c.height }

// Render composites the frame at the given instant. Tracks are painted from
// the bottom layer up (stored order reversed); invisible tracks are skipped;
// active clips on one track paint in insertion order.
func (c *Compositor) Render(tracks []timeline.Track, clips []timeline.Clip, lib Library, instant float64, opts Options) *image.RGBA {
	dc := gg.NewContext(c.width, c.height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	for ti := len(tracks) - 1; ti >= 0; ti-- {
		track := tracks[ti]
		if !track.Visible {
			continue
		}
		for i := range clips {
			clip := clips[i]
			if clip.TrackID != track.ID || !clip.ActiveAt(instant) {
				continue
			}
			c.paintClip(dc, clip, lib, instant, opts)
		}
	}

	frame, _ := dc.Image().(*image.RGBA)
	return frame
}

func (c *Compositor) paintClip(dc *gg.Context, clip timeline.Clip, lib Library, instant float64, opts Options) {
	props := clip.Properties
	props.Clamp()
	if props.Opacity == 0 {
		return
	}

	dc.Push()
	defer dc.Pop()

	dc.Translate(props.X*float64(c.width), props.Y*float64(c.height))
	dc.Rotate(gg.Radians(props.Rotation))
	dc.Scale(props.Scale, props.Scale)

	var contentW, contentH float64
	if clip.IsText() {
		contentW, contentH = c.paintText(dc, props)
	} else {
		src, ok := lib.Source(clip.AssetID)
		if !ok {
			return
		}
		sourceInstant := clip.SourceInstant(instant)
		src.RequestSeek(sourceInstant)
		frame, ok := src.FrameAt(sourceInstant)
		if !ok || frame == nil {
			return
		}
		bounds := frame.Bounds()
		contentW = float64(bounds.Dx())
		contentH = float64(bounds.Dy())
		dc.DrawImageAnchored(withOpacity(frame, props.Opacity), 0, 0, 0.5, 0.5)
	}

	if opts.SelectedClipID != "" && opts.SelectedClipID == clip.ID {
		c.paintSelection(dc, props, contentW, contentH)
	}
}

// paintText draws the clip's string centered at the origin with the fixed
// soft drop shadow, and returns the measured content extent.
func (c *Compositor) paintText(dc *gg.Context, props timeline.ClipProperties) (float64, float64) {
	if props.Text == "" {
		return 0, 0
	}
	dc.SetFontFace(c.fonts.face(props.FontSizePx))

	w, h := dc.MeasureString(props.Text)

	dc.SetRGBA(0, 0, 0, 0.6*props.Opacity)
	dc.DrawStringAnchored(props.Text, 2, 2, 0.5, 0.5)

	r, g, b := parseHexColor(props.TextColor)
	dc.SetRGBA(r, g, b, props.Opacity)
	dc.DrawStringAnchored(props.Text, 0, 0, 0.5, 0.5)

	return w, h
}

// paintSelection strokes a dashed outline around the clip's content bounds
// inside the current transform.
func (c *Compositor) paintSelection(dc *gg.Context, props timeline.ClipProperties, contentW, contentH float64) {
	if contentW <= 0 || contentH <= 0 {
		return
	}
	const pad = 4.0
	dc.SetRGBA(0.24, 0.6, 1, 1)
	dc.SetLineWidth(2 / props.Scale)
	dc.SetDash(6/props.Scale, 4/props.Scale)
	dc.DrawRectangle(-contentW/2-pad, -contentH/2-pad, contentW+2*pad, contentH+2*pad)
	dc.Stroke()
}

// withOpacity pre-multiplies the frame with a uniform alpha so the context's
// transform can draw it directly.
func withOpacity(frame image.Image, opacity float64) image.Image {
	if opacity >= 1 {
		return frame
	}
	bounds := frame.Bounds()
	out := image.NewRGBA(bounds)
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(out, bounds, frame, bounds.Min, mask, image.Point{}, draw.Over)
	return out
}
