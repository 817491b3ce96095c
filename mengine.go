package mengine

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R float64 `toml:"r"`
	G float64 `toml:"g"`
	B float64 `toml:"b"`
	A float64 `toml:"a"`
}

// ColorBlack is the default letterbox color.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA converts c to a color.RGBA suitable for ebiten fills.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and velocities (pixels per tick).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the X coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the Y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// MoveTo returns r with its top-left corner placed at (x, y). Size is kept.
func (r Rect) MoveTo(x, y float64) Rect {
	r.X = x
	r.Y = y
	return r
}

// Inflate grows r by dx on the left and right and by dy on the top and
// bottom. Negative values shrink it.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{r.X - dx, r.Y - dy, r.Width + dx + dx, r.Height + dy + dy}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		other.X <= r.X+r.Width &&
		r.Y <= other.Y+other.Height &&
		other.Y <= r.Y+r.Height
}

// SpriteAction is the per-tick outcome of a sprite update.
type SpriteAction uint8

const (
	ActionNone      SpriteAction = iota // keep the sprite as is
	ActionKill                          // remove the sprite at the end of the tick
	ActionAddSprite                     // ask the sprite's behavior for a child sprite
)

func (a SpriteAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionKill:
		return "kill"
	case ActionAddSprite:
		return "add-sprite"
	default:
		return "unknown"
	}
}

// BoundsAction selects what happens when a sprite's projected position
// leaves its bounds rectangle.
type BoundsAction uint8

const (
	BoundsStop   BoundsAction = iota // clamp inside the bounds and halt
	BoundsWrap                       // teleport to the opposite edge
	BoundsBounce                     // clamp and reflect velocity
	BoundsDie                        // kill once fully outside
	BoundsNone                       // no constraint
)

func (b BoundsAction) String() string {
	switch b {
	case BoundsStop:
		return "stop"
	case BoundsWrap:
		return "wrap"
	case BoundsBounce:
		return "bounce"
	case BoundsDie:
		return "die"
	case BoundsNone:
		return "none"
	default:
		return "unknown"
	}
}

// ScrollDir is the direction a background layer scrolls on screen.
type ScrollDir uint8

const (
	ScrollUp    ScrollDir = iota // content moves up (viewport slides down)
	ScrollRight                  // content moves right (viewport slides left)
	ScrollDown                   // content moves down (viewport slides up)
	ScrollLeft                   // content moves left (viewport slides right)
)

func (d ScrollDir) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollRight:
		return "right"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	default:
		return "unknown"
	}
}
