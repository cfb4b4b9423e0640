package source

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
)

// ImageFile is an always-ready source over a still image on disk. The file
// is decoded once, on first use; a decode failure makes the source
// permanently not ready, which the compositor treats as "paint nothing".
type ImageFile struct {
	path string
	once sync.Once
	img  image.Image
	err  error
}

// NewImageFile wraps a still image path.
func NewImageFile(path string) *ImageFile {
	return &ImageFile{path: path}
}

func (s *ImageFile) load() {
	s.once.Do(func() {
		file, err := os.Open(s.path)
		if err != nil {
			s.err = err
			return
		}
		defer file.Close()
		s.img, _, s.err = image.Decode(file)
	})
}

func (s *ImageFile) RequestSeek(float64) {}

func (s *ImageFile) Ready(float64) bool {
	s.load()
	return s.err == nil && s.img != nil
}

func (s *ImageFile) FrameAt(float64) (image.Image, bool) {
	s.load()
	if s.err != nil || s.img == nil {
		return nil, false
	}
	return s.img, true
}
