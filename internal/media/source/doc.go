// Package source provides compositor.Source implementations over local
// media files: eagerly-ready still images and ffmpeg-backed video frame
// extraction with asynchronous seeks.
package source
