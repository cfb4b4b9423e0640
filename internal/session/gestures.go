package session

import (
	"montage/internal/interaction"
	"montage/internal/timeline"
)

// BeginDrag starts a move or trim gesture on a clip. Returns false when the
// clip is missing or its track is locked; no history entry is made either
// way.
func (s *Session) BeginDrag(clipID string, mode interaction.Mode, pointerX float64) bool {
	if s.exporting || s.dragActive {
		return false
	}
	sess, ok := s.engine.Begin(s.project, clipID, mode, pointerX)
	if !ok {
		return false
	}
	s.drag = sess
	s.dragActive = true
	s.preDrag = timeline.CloneClips(s.project.Clips)
	s.selection = clipID
	return true
}

// UpdateDrag applies the gesture's current pointer position to the live
// state. Intermediate positions are visible immediately but never enter
// history.
func (s *Session) UpdateDrag(pointerX, pointerY float64) {
	if !s.dragActive {
		return
	}
	s.engine.Update(s.project, s.drag, pointerX, pointerY, s.clock.Cursor())
}

// EndDrag releases the gesture and commits exactly one history entry for
// the whole interaction.
func (s *Session) EndDrag() {
	if !s.dragActive {
		return
	}
	s.dragActive = false
	s.preDrag = nil
	s.commit()
}

// CancelDrag abandons the gesture and restores the pre-gesture state
// without touching history.
func (s *Session) CancelDrag() {
	if !s.dragActive {
		return
	}
	s.dragActive = false
	s.project.Clips = s.preDrag
	s.preDrag = nil
}

// SplitAtPlayhead splits the selected clip at the playback cursor. The
// right-hand clip becomes the selection. No-op when nothing is selected or
// the cursor is not strictly inside the clip.
func (s *Session) SplitAtPlayhead() bool {
	if s.exporting || s.selection == "" {
		return false
	}
	rightID, ok := interaction.Split(s.project, s.selection, s.clock.Cursor())
	if !ok {
		return false
	}
	s.selection = rightID
	s.commit()
	return true
}

// Play starts the playback clock. Suspended while exporting.
func (s *Session) Play() {
	if s.exporting {
		return
	}
	s.clock.Play()
}

// Pause stops the playback clock.
func (s *Session) Pause() {
	s.clock.Pause()
}

// Seek moves the playhead, clamped to the project duration.
func (s *Session) Seek(instant float64) {
	s.clock.Seek(instant, s.project.Duration())
}

// Tick advances the playback clock against the derived project duration.
// Frozen while an export runs.
func (s *Session) Tick() {
	if s.exporting {
		return
	}
	s.clock.Tick(s.project.Duration())
}
