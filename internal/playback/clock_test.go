package playback

import (
	"math"
	"testing"
	"time"
)

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newFakeClock() (*Clock, *fakeTime) {
	ft := &fakeTime{now: time.Unix(1000, 0)}
	return NewClockWithNow(func() time.Time { return ft.now }), ft
}

func TestTickAdvancesByWallDelta(t *testing.T) {
	clock, ft := newFakeClock()
	clock.Play()

	ft.advance(250 * time.Millisecond)
	clock.Tick(30)
	if math.Abs(clock.Cursor()-0.25) > 1e-9 {
		t.Fatalf("cursor: got %v want 0.25", clock.Cursor())
	}

	ft.advance(time.Second)
	clock.Tick(30)
	if math.Abs(clock.Cursor()-1.25) > 1e-9 {
		t.Fatalf("cursor: got %v want 1.25", clock.Cursor())
	}
}

func TestTickWhilePausedDoesNothing(t *testing.T) {
	clock, ft := newFakeClock()
	ft.advance(time.Second)
	clock.Tick(30)
	if clock.Cursor() != 0 {
		t.Fatalf("paused clock advanced: %v", clock.Cursor())
	}
}

func TestReachingEndStopsAndResets(t *testing.T) {
	clock, ft := newFakeClock()
	clock.Play()

	ft.advance(31 * time.Second)
	clock.Tick(30)

	if clock.Playing() {
		t.Fatal("playback should stop at the project end")
	}
	if clock.Cursor() != 0 {
		t.Fatalf("cursor should reset to 0, got %v", clock.Cursor())
	}
}

func TestSeekClampsAndWorksWhilePaused(t *testing.T) {
	clock, _ := newFakeClock()

	clock.Seek(12.5, 30)
	if clock.Cursor() != 12.5 {
		t.Fatalf("cursor: got %v", clock.Cursor())
	}

	clock.Seek(-3, 30)
	if clock.Cursor() != 0 {
		t.Fatalf("negative seek should clamp to 0, got %v", clock.Cursor())
	}

	clock.Seek(99, 30)
	if clock.Cursor() != 30 {
		t.Fatalf("seek past end should clamp, got %v", clock.Cursor())
	}
}

func TestSeekDuringPlaybackRebasesTicking(t *testing.T) {
	clock, ft := newFakeClock()
	clock.Play()
	ft.advance(2 * time.Second)
	clock.Tick(30)

	clock.Seek(10, 30)
	ft.advance(500 * time.Millisecond)
	clock.Tick(30)

	if math.Abs(clock.Cursor()-10.5) > 1e-9 {
		t.Fatalf("cursor: got %v want 10.5", clock.Cursor())
	}
	if !clock.Playing() {
		t.Fatal("seek must not pause playback")
	}
}
