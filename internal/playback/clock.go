// Package playback advances the preview cursor in wall-clock time. The clock
// is driven by the host's frame callback and is fully suspended while an
// export runs; the export scheduler paces itself.
package playback

import "time"

// Clock is a monotonically advancing cursor over [0, projectDuration).
type Clock struct {
	now      func() time.Time
	cursor   float64
	playing  bool
	lastTick time.Time
}

// NewClock returns a paused clock at instant 0.
func NewClock() *Clock {
	return NewClockWithNow(time.Now)
}

// NewClockWithNow injects the time source, for tests.
func NewClockWithNow(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Play starts advancing from the current cursor.
func (c *Clock) Play() {
	if c.playing {
		return
	}
	c.playing = true
	c.lastTick = c.now()
}

// Pause stops advancing without moving the cursor.
func (c *Clock) Pause() {
	c.playing = false
}

// Playing reports whether the cursor is advancing.
func (c *Clock) Playing() bool {
	return c.playing
}

// Cursor returns the current timeline instant in seconds.
func (c *Clock) Cursor() float64 {
	return c.cursor
}

// Seek positions the cursor directly. Always permitted regardless of play
// state; the position is clamped to [0, projectDuration).
func (c *Clock) Seek(t, projectDuration float64) {
	if t < 0 {
		t = 0
	}
	if t >= projectDuration {
		t = projectDuration
	}
	c.cursor = t
	c.lastTick = c.now()
}

// Tick advances the cursor by the wall-clock delta since the previous tick.
// Reaching the project duration stops playback and resets the cursor to 0.
func (c *Clock) Tick(projectDuration float64) {
	if !c.playing {
		return
	}
	now := c.now()
	delta := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	if delta <= 0 {
		return
	}
	c.cursor += delta
	if c.cursor >= projectDuration {
		c.cursor = 0
		c.playing = false
	}
}
