// Package timeline holds the editing data model: assets, tracks, clips, and
// clip properties, plus the derived project duration. Everything here is
// plain data; interaction, history, and compositing build on top of it.
package timeline
