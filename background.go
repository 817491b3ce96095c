package mengine

import "math"

// ViewportCase classifies how a layer viewport sits relative to its bitmap.
type ViewportCase uint8

const (
	ViewportTopLeft     ViewportCase = iota // wraps over the top and left edges (4 blits)
	ViewportTopRight                        // wraps over the top and right edges (4 blits)
	ViewportBottomLeft                      // wraps over the bottom and left edges (4 blits)
	ViewportBottomRight                     // wraps over the bottom and right edges (4 blits)
	ViewportTop                             // wraps over the top edge (2 blits)
	ViewportRight                           // wraps over the right edge (up to 2 blits)
	ViewportBottom                          // wraps over the bottom edge (2 blits)
	ViewportLeft                            // wraps over the left edge (2 blits)
	ViewportInside                          // fully inside the bitmap (1 blit)
)

// Blit copies Src of a layer bitmap to Dst on the target. Both rectangles
// always have the same size.
type Blit struct {
	Src, Dst Rect
}

// BackgroundLayer scrolls a viewport over a bitmap that wraps at its edges.
// The viewport may hang over any edge of [0, width] x [0, height]; drawing
// stitches the overhang from the opposite side.
type BackgroundLayer struct {
	bitmap    Image
	viewport  Rect
	speed     float64
	direction ScrollDir

	blits []Blit // reused by Draw
}

// NewBackgroundLayer creates a layer showing viewport of bitmap.
func NewBackgroundLayer(bitmap Image, viewport Rect, speed float64, direction ScrollDir) *BackgroundLayer {
	return &BackgroundLayer{
		bitmap:    bitmap,
		viewport:  viewport,
		speed:     speed,
		direction: direction,
	}
}

// Width returns the bitmap width.
func (l *BackgroundLayer) Width() float64 {
	w, _ := imageSize(l.bitmap)
	return w
}

// Height returns the bitmap height.
func (l *BackgroundLayer) Height() float64 {
	_, h := imageSize(l.bitmap)
	return h
}

// Bitmap returns the layer image.
func (l *BackgroundLayer) Bitmap() Image { return l.bitmap }

// Viewport returns the visible rectangle in bitmap coordinates.
func (l *BackgroundLayer) Viewport() Rect { return l.viewport }

// SetViewport replaces the visible rectangle.
func (l *BackgroundLayer) SetViewport(r Rect) { l.viewport = r }

// Speed returns the scroll speed in pixels per update.
func (l *BackgroundLayer) Speed() float64 { return l.speed }

// SetSpeed sets the scroll speed in pixels per update.
func (l *BackgroundLayer) SetSpeed(speed float64) { l.speed = speed }

// Direction returns the scroll direction.
func (l *BackgroundLayer) Direction() ScrollDir { return l.direction }

// SetDirection sets the scroll direction.
func (l *BackgroundLayer) SetDirection(d ScrollDir) { l.direction = d }

// Update slides the viewport by speed. Each time it moves completely past an
// edge it is translated by one bitmap dimension, so it never drifts further
// than one bitmap away from the origin, even when speed exceeds the bitmap
// size. Its size never changes.
func (l *BackgroundLayer) Update() {
	w, h := l.Width(), l.Height()
	v := l.viewport
	switch l.direction {
	case ScrollUp:
		v = v.Offset(0, l.speed)
		for h > 0 && v.Top() >= h {
			v = v.Offset(0, -h)
		}
	case ScrollRight:
		v = v.Offset(-l.speed, 0)
		for w > 0 && v.Right() <= 0 {
			v = v.Offset(w, 0)
		}
	case ScrollDown:
		v = v.Offset(0, -l.speed)
		for h > 0 && v.Bottom() <= 0 {
			v = v.Offset(0, h)
		}
	case ScrollLeft:
		v = v.Offset(l.speed, 0)
		for w > 0 && v.Left() >= w {
			v = v.Offset(-w, 0)
		}
	}
	l.viewport = v
}

// wrapOrigin maps the origin lo of a span of length size back onto a bitmap
// dimension dim when the span lies completely past either edge. Spans that
// still overlap the bitmap are returned unchanged.
func wrapOrigin(lo, size, dim float64) float64 {
	if dim <= 0 || (lo+size > 0 && lo < dim) {
		return lo
	}
	lo = math.Mod(lo, dim)
	if lo < 0 {
		lo += dim
	}
	return lo
}

// placed returns the viewport with an origin that overlaps the bitmap. A
// viewport set fully past an edge shows the same pixels as its wrapped copy.
func (l *BackgroundLayer) placed() Rect {
	v := l.viewport
	v.X = wrapOrigin(v.X, v.Width, l.Width())
	v.Y = wrapOrigin(v.Y, v.Height, l.Height())
	return v
}

// Classify reports which wrap case the current viewport falls into. Cases are
// tested in a fixed order, so a viewport overhanging opposite edges resolves
// to the first match. A viewport lying fully past an edge is classified by its
// wrapped copy.
func (l *BackgroundLayer) Classify() ViewportCase {
	w, h := l.Width(), l.Height()
	v := l.placed()
	top, bottom := v.Top() < 0, v.Bottom() > h
	left, right := v.Left() < 0, v.Right() > w
	switch {
	case top && left:
		return ViewportTopLeft
	case top && right:
		return ViewportTopRight
	case bottom && left:
		return ViewportBottomLeft
	case bottom && right:
		return ViewportBottomRight
	case top:
		return ViewportTop
	case right:
		return ViewportRight
	case bottom:
		return ViewportBottom
	case left:
		return ViewportLeft
	default:
		return ViewportInside
	}
}

// span is one axis-aligned piece of a viewport along a single axis.
type span struct {
	src, dst, size float64
}

const (
	splitNone = iota
	splitLow  // overhangs the low edge (left/top)
	splitHigh // overhangs the high edge (right/bottom)
)

// splitAxis cuts [lo, hi) of a viewport over a bitmap dimension dim into the
// pieces to copy, in destination order.
func splitAxis(lo, hi, dim float64, split int) []span {
	switch split {
	case splitLow:
		return []span{
			{src: dim + lo, dst: 0, size: -lo},
			{src: 0, dst: -lo, size: hi},
		}
	case splitHigh:
		return []span{
			{src: lo, dst: 0, size: dim - lo},
			{src: 0, dst: dim - lo, size: hi - dim},
		}
	default:
		return []span{{src: lo, dst: 0, size: hi - lo}}
	}
}

func (c ViewportCase) splits() (x, y int) {
	switch c {
	case ViewportTopLeft:
		return splitLow, splitLow
	case ViewportTopRight:
		return splitHigh, splitLow
	case ViewportBottomLeft:
		return splitLow, splitHigh
	case ViewportBottomRight:
		return splitHigh, splitHigh
	case ViewportTop:
		return splitNone, splitLow
	case ViewportRight:
		return splitHigh, splitNone
	case ViewportBottom:
		return splitNone, splitHigh
	case ViewportLeft:
		return splitLow, splitNone
	default:
		return splitNone, splitNone
	}
}

// AppendBlits appends the copies needed to draw the viewport to buf, top to
// bottom and left to right. Destinations are anchored at (0, 0) and tile the
// viewport size exactly. Pieces without area are left out.
func (l *BackgroundLayer) AppendBlits(buf []Blit) []Blit {
	w, h := l.Width(), l.Height()
	v := l.placed()
	sx, sy := l.Classify().splits()
	cols := splitAxis(v.Left(), v.Right(), w, sx)
	rows := splitAxis(v.Top(), v.Bottom(), h, sy)
	for _, r := range rows {
		if r.size <= 0 {
			continue
		}
		for _, c := range cols {
			if c.size <= 0 {
				continue
			}
			buf = append(buf, Blit{
				Src: Rect{X: c.src, Y: r.src, Width: c.size, Height: r.size},
				Dst: Rect{X: c.dst, Y: r.dst, Width: c.size, Height: r.size},
			})
		}
	}
	return buf
}

// Blits returns the copies needed to draw the viewport.
func (l *BackgroundLayer) Blits() []Blit {
	return l.AppendBlits(nil)
}

// Draw renders the visible part of the layer at the canvas origin.
func (l *BackgroundLayer) Draw(c Canvas) {
	l.blits = l.AppendBlits(l.blits[:0])
	for _, b := range l.blits {
		c.DrawRect(l.bitmap, b.Src, b.Dst)
	}
}

// ScrollingBackground is an ordered stack of layers, drawn back to front in
// insertion order.
type ScrollingBackground struct {
	layers []*BackgroundLayer
}

// NewScrollingBackground creates an empty background.
func NewScrollingBackground() *ScrollingBackground {
	return &ScrollingBackground{}
}

// AddLayer appends l on top of the existing layers.
func (b *ScrollingBackground) AddLayer(l *BackgroundLayer) {
	if l == nil {
		panic("mengine: cannot add nil background layer")
	}
	b.layers = append(b.layers, l)
}

// Layers returns the layers in draw order. The returned slice MUST NOT be
// mutated; mutate the layers it points to instead.
func (b *ScrollingBackground) Layers() []*BackgroundLayer {
	return b.layers
}

// Update scrolls every layer.
func (b *ScrollingBackground) Update() {
	for _, l := range b.layers {
		l.Update()
	}
}

// Draw renders every layer, back to front.
func (b *ScrollingBackground) Draw(c Canvas) {
	for _, l := range b.layers {
		l.Draw(c)
	}
}
