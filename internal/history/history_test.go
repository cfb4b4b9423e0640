package history

import (
	"fmt"
	"testing"

	"montage/internal/timeline"
)

func clipNamed(id string) timeline.Clip {
	return timeline.Clip{ID: id, AssetID: "asset", TrackID: "track", Duration: 1}
}

func commitSingle(s *Stack, id string) {
	s.Commit([]timeline.Clip{clipNamed(id)}, nil)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := New()
	commitSingle(s, "before")
	commitSingle(s, "after")

	snap, ok := s.Undo()
	if !ok {
		t.Fatal("undo should produce a snapshot")
	}
	if snap.Clips[0].ID != "before" {
		t.Fatalf("undo returned %q", snap.Clips[0].ID)
	}

	snap, ok = s.Redo()
	if !ok {
		t.Fatal("redo should produce a snapshot")
	}
	if snap.Clips[0].ID != "after" {
		t.Fatalf("redo returned %q", snap.Clips[0].ID)
	}
}

func TestBoundaryNoOps(t *testing.T) {
	s := New()
	if _, ok := s.Undo(); ok {
		t.Fatal("undo on empty stack should be a no-op")
	}
	if _, ok := s.Redo(); ok {
		t.Fatal("redo on empty stack should be a no-op")
	}

	commitSingle(s, "only")
	if _, ok := s.Undo(); ok {
		t.Fatal("undo at first snapshot should be a no-op")
	}
	if _, ok := s.Redo(); ok {
		t.Fatal("redo at last snapshot should be a no-op")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := New()
	for i := 0; i < Capacity+1; i++ {
		commitSingle(s, fmt.Sprintf("state-%d", i))
	}
	if s.Len() != Capacity {
		t.Fatalf("len: got %d want %d", s.Len(), Capacity)
	}

	// Walk back as far as possible; the oldest reachable state is state-1,
	// state-0 was evicted.
	var last Snapshot
	for {
		snap, ok := s.Undo()
		if !ok {
			break
		}
		last = snap
	}
	if last.Clips[0].ID != "state-1" {
		t.Fatalf("oldest snapshot: got %q want state-1", last.Clips[0].ID)
	}
}

func TestCommitAfterUndoDiscardsRedoTail(t *testing.T) {
	s := New()
	commitSingle(s, "a")
	commitSingle(s, "b")
	commitSingle(s, "c")

	if _, ok := s.Undo(); !ok {
		t.Fatal("undo to b")
	}
	if _, ok := s.Undo(); !ok {
		t.Fatal("undo to a")
	}

	commitSingle(s, "d")
	if _, ok := s.Redo(); ok {
		t.Fatal("redo tail should be discarded after commit")
	}
	if s.Len() != 2 {
		t.Fatalf("len after branch: got %d want 2", s.Len())
	}

	snap, ok := s.Undo()
	if !ok || snap.Clips[0].ID != "a" {
		t.Fatalf("undo after branch: ok=%v snap=%+v", ok, snap)
	}
}

func TestSnapshotsAreIsolatedFromLiveState(t *testing.T) {
	s := New()
	live := []timeline.Clip{clipNamed("live")}
	s.Commit(live, nil)
	s.Commit(live, nil)

	live[0].Start = 99

	snap, ok := s.Undo()
	if !ok {
		t.Fatal("undo")
	}
	if snap.Clips[0].Start != 0 {
		t.Fatalf("stored snapshot mutated by live edit: %v", snap.Clips[0].Start)
	}

	// Mutating a returned snapshot must not corrupt the stack either.
	snap.Clips[0].Start = 77
	again, ok := s.Redo()
	if !ok {
		t.Fatal("redo")
	}
	if again.Clips[0].Start != 0 {
		t.Fatalf("stack corrupted through returned snapshot: %v", again.Clips[0].Start)
	}
}
