package mengine

import "fmt"

// Animation cycles through source regions of a single image at a fixed frame
// rate. It is advanced by Update, independently of how often it is drawn.
//
// The frame index starts at -1 ("not started"), which draws as frame 0. When a
// cycle completes, a repeating animation wraps to frame 0; a one-shot
// animation parks on len(frames), deactivates, and reports IsEnd.
type Animation struct {
	image   Image
	frames  []Rect
	timer   *FrameTimer
	current int
	repeat  bool
	active  bool
}

// NewAnimation creates a stopped animation over the given frames of img.
// Panics if fps is not positive.
func NewAnimation(img Image, frames []Rect, fps float64) *Animation {
	return &Animation{
		image:   img,
		frames:  frames,
		timer:   NewFrameTimer(fps, nil),
		current: -1,
	}
}

// NewActiveAnimation creates an animation and starts it immediately.
func NewActiveAnimation(img Image, frames []Rect, fps float64) *Animation {
	a := NewAnimation(img, frames, fps)
	a.Start()
	return a
}

// SetClock replaces the clock driving the frame timer and resets it.
func (a *Animation) SetClock(c Clock) {
	if c == nil {
		c = SystemClock
	}
	a.timer.clock = c
	a.timer.Reset()
}

// SetFPS changes the frame rate.
func (a *Animation) SetFPS(fps float64) {
	a.timer.SetFPS(fps)
}

// Image returns the source image.
func (a *Animation) Image() Image { return a.image }

// Frames returns the source regions. The returned slice MUST NOT be mutated.
func (a *Animation) Frames() []Rect { return a.frames }

// Start rewinds to the not-started state and activates the animation.
func (a *Animation) Start() {
	a.active = true
	a.current = -1
	a.timer.Reset()
}

// Stop deactivates the animation, freezing the current frame.
func (a *Animation) Stop() {
	a.active = false
}

// IsActive reports whether Update advances frames.
func (a *Animation) IsActive() bool { return a.active }

// SetRepeat controls whether the animation loops.
func (a *Animation) SetRepeat(repeat bool) { a.repeat = repeat }

// IsRepeat reports whether the animation loops.
func (a *Animation) IsRepeat() bool { return a.repeat }

// IsEnd reports whether a one-shot cycle has just completed.
func (a *Animation) IsEnd() bool {
	return a.current == len(a.frames)
}

// Started reports whether at least one frame has been shown since Start.
func (a *Animation) Started() bool {
	return a.current >= 0
}

// CurrentFrame returns the index of the frame that Draw would render.
func (a *Animation) CurrentFrame() int {
	if a.current <= 0 || len(a.frames) == 0 {
		return 0
	}
	if a.current >= len(a.frames) {
		return len(a.frames) - 1
	}
	return a.current
}

// SetCurrentFrame jumps to frame. Returns false and leaves the animation
// untouched if frame is out of range.
func (a *Animation) SetCurrentFrame(frame int) bool {
	if frame < 0 || frame >= len(a.frames) {
		return false
	}
	a.current = frame
	return true
}

// FrameWidth returns the width of the first frame, or 0 without frames.
func (a *Animation) FrameWidth() float64 {
	if len(a.frames) == 0 {
		return 0
	}
	return a.frames[0].Width
}

// FrameHeight returns the height of the first frame, or 0 without frames.
func (a *Animation) FrameHeight() float64 {
	if len(a.frames) == 0 {
		return 0
	}
	return a.frames[0].Height
}

// Update advances one frame if the animation is active and its timer is due.
// It reports whether the frame changed.
func (a *Animation) Update() bool {
	if !a.active || !a.timer.Ready() {
		return false
	}
	a.current++
	if a.current >= len(a.frames) {
		if a.repeat && len(a.frames) > 0 {
			a.current = 0
		} else {
			a.current = len(a.frames)
			a.active = false
		}
	}
	return true
}

// Draw renders the current frame into dst. Animations without frames draw
// nothing.
func (a *Animation) Draw(c Canvas, dst Rect) {
	if len(a.frames) == 0 {
		return
	}
	c.DrawRect(a.image, a.frames[a.CurrentFrame()], dst)
}

func (a *Animation) String() string {
	return fmt.Sprintf("Animation{frame: %d/%d, active: %v, repeat: %v}",
		a.current, len(a.frames), a.active, a.repeat)
}

// GridFrames builds n equally sized frames laid out in a strip starting at
// (x, y), stacked downward when vertical is true and rightward otherwise.
func GridFrames(x, y, w, h float64, n int, vertical bool) []Rect {
	frames := make([]Rect, 0, n)
	for i := range n {
		f := Rect{X: x, Y: y, Width: w, Height: h}
		if vertical {
			f.Y += float64(i) * h
		} else {
			f.X += float64(i) * w
		}
		frames = append(frames, f)
	}
	return frames
}
