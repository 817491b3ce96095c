package mengine

import (
	"image"
	"math"
	"time"
)

// fakeImage is a GPU-free Image of a fixed size.
type fakeImage struct {
	w, h int
}

func (f fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }

type drawCall struct {
	img      Image
	src, dst Rect
}

// recordCanvas captures DrawRect calls.
type recordCanvas struct {
	calls []drawCall
}

func (c *recordCanvas) DrawRect(img Image, src, dst Rect) {
	c.calls = append(c.calls, drawCall{img, src, dst})
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestAnimation returns an active animation driven by a manual clock.
func newTestAnimation(n int, fps float64) (*Animation, *ManualClock) {
	clock := NewManualClock(epoch)
	a := NewActiveAnimation(fakeImage{16 * n, 16}, GridFrames(0, 0, 16, 16, n, false), fps)
	a.SetClock(clock)
	return a, clock
}

func rectNear(a, b Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Width-b.Width) < eps && math.Abs(a.Height-b.Height) < eps
}
