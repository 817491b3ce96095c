package mengine

import (
	"fmt"
	"time"
)

// Clock supplies the wall-clock readings that gate animation frames.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock backed by time.Now.
var SystemClock Clock = systemClock{}

// ManualClock is a Clock that only moves when told to. Useful for tests and
// for replaying fixed-step simulations.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// FrameTimer is a fixed-rate timer. Readiness is polled, never waited on: each
// successful poll schedules the next frame one frame time after the previous
// deadline, so a late poll catches up on subsequent calls.
type FrameTimer struct {
	clock     Clock
	frameTime time.Duration
	next      time.Time
}

// NewFrameTimer creates a timer ticking fps times per second. A nil clock
// uses SystemClock. Panics if fps is not positive.
func NewFrameTimer(fps float64, clock Clock) *FrameTimer {
	if clock == nil {
		clock = SystemClock
	}
	t := &FrameTimer{clock: clock}
	t.SetFPS(fps)
	t.Reset()
	return t
}

// SetFPS changes the frame rate without resetting the schedule.
func (t *FrameTimer) SetFPS(fps float64) {
	if fps <= 0 {
		panic(fmt.Sprintf("mengine: frame timer fps must be positive, got %v", fps))
	}
	t.frameTime = time.Duration(float64(time.Second) / fps)
}

// FrameTime returns the duration of one frame.
func (t *FrameTimer) FrameTime() time.Duration {
	return t.frameTime
}

// Reset makes the timer ready immediately.
func (t *FrameTimer) Reset() {
	t.next = t.clock.Now()
}

// Ready reports whether the next frame is due and, if so, schedules the one
// after it.
func (t *FrameTimer) Ready() bool {
	if t.clock.Now().Before(t.next) {
		return false
	}
	t.next = t.next.Add(t.frameTime)
	return true
}
