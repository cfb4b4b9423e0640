// Package interaction turns pointer gestures into clip mutations: move with
// track retargeting, trim-start, trim-end, and split, with snap resolution
// against the playhead and neighboring clip edges. Gesture state is captured
// once at press into a Session and threaded through every update.
package interaction
