// Package compositor renders composited raster frames from timeline state.
// A frame is a pure function of (tracks, clips, sources, instant): tracks
// paint bottom layer first (reverse storage order), each active clip is
// transformed by its properties and drawn centered, and video sources that
// cannot satisfy a frame request synchronously contribute nothing. The same
// query serves interactive preview and batch export; only the selection
// outline differs, and it is suppressed for export.
package compositor
