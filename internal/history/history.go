// Package history implements the bounded linear undo/redo stack over full
// (clips, tracks) snapshots. The stack never mutates live state; callers
// apply returned snapshots themselves.
package history

import "montage/internal/timeline"

// Capacity bounds the snapshot stack. The oldest snapshot is evicted when a
// commit would exceed it.
const Capacity = 20

// Snapshot is an immutable capture of the full editing state.
type Snapshot struct {
	Clips  []timeline.Clip
	Tracks []timeline.Track
}

// Stack is a linear undo history with a cursor. Committing while the cursor
// is not at the end discards the redo tail first.
type Stack struct {
	snapshots []Snapshot
	cursor    int
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{cursor: -1}
}

// Commit appends a deep-copied snapshot of the given state, truncating any
// redo tail and evicting the oldest entry over capacity. The cursor ends on
// the new snapshot.
func (s *Stack) Commit(clips []timeline.Clip, tracks []timeline.Track) {
	snap := Snapshot{
		Clips:  timeline.CloneClips(clips),
		Tracks: timeline.CloneTracks(tracks),
	}

	if s.cursor < len(s.snapshots)-1 {
		s.snapshots = s.snapshots[:s.cursor+1]
	}
	s.snapshots = append(s.snapshots, snap)
	if len(s.snapshots) > Capacity {
		s.snapshots = s.snapshots[1:]
	}
	s.cursor = len(s.snapshots) - 1
}

// Undo moves the cursor back one snapshot and returns it. The second return
// is false when the cursor is already at the first snapshot (or the stack is
// empty) and no snapshot was produced.
func (s *Stack) Undo() (Snapshot, bool) {
	if s.cursor <= 0 {
		return Snapshot{}, false
	}
	s.cursor--
	return s.current(), true
}

// Redo moves the cursor forward one snapshot and returns it. The second
// return is false at the end of the stack.
func (s *Stack) Redo() (Snapshot, bool) {
	if s.cursor < 0 || s.cursor >= len(s.snapshots)-1 {
		return Snapshot{}, false
	}
	s.cursor++
	return s.current(), true
}

// Len returns the number of stored snapshots.
func (s *Stack) Len() int {
	return len(s.snapshots)
}

// CanUndo reports whether Undo would produce a snapshot.
func (s *Stack) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo reports whether Redo would produce a snapshot.
func (s *Stack) CanRedo() bool {
	return s.cursor >= 0 && s.cursor < len(s.snapshots)-1
}

// current re-copies the snapshot at the cursor so callers can mutate the
// returned slices without corrupting stored history.
func (s *Stack) current() Snapshot {
	snap := s.snapshots[s.cursor]
	return Snapshot{
		Clips:  timeline.CloneClips(snap.Clips),
		Tracks: timeline.CloneTracks(snap.Tracks),
	}
}
