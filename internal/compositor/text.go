package compositor

import (
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontCache builds and memoizes font faces per pixel size. The compositor is
// driven from a single control flow, so no locking is needed.
type fontCache struct {
	parsed *opentype.Font
	faces  map[float64]font.Face
}

func newFontCache() *fontCache {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// goregular.TTF is embedded and known-good; a parse failure is a
		// build problem, not a runtime condition.
		panic("parse embedded font: " + err.Error())
	}
	return &fontCache{parsed: parsed, faces: make(map[float64]font.Face)}
}

func (fc *fontCache) face(sizePx float64) font.Face {
	if sizePx <= 0 {
		sizePx = 48
	}
	if face, ok := fc.faces[sizePx]; ok {
		return face
	}
	face, err := opentype.NewFace(fc.parsed, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		face, _ = opentype.NewFace(fc.parsed, &opentype.FaceOptions{Size: 16, DPI: 72})
	}
	fc.faces[sizePx] = face
	return face
}

// parseHexColor parses #rgb and #rrggbb strings into 0..1 channels,
// defaulting to white on malformed input.
func parseHexColor(value string) (r, g, b float64) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 1, 1, 1
	}
	parsed, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 1, 1, 1
	}
	r = float64((parsed>>16)&0xff) / 255
	g = float64((parsed>>8)&0xff) / 255
	b = float64(parsed&0xff) / 255
	return r, g, b
}
