// Package session coordinates a single editing session: the live timeline,
// undo history, selection, drag gestures, the playback clock, and export
// mutual exclusion. It is the facade the CLI and any future UI talk to.
package session
