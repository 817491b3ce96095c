package mengine

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenField identifies what a TweenGroup writes each update.
type tweenField uint8

const (
	tweenPosition tweenField = iota
	tweenVelocity
	tweenLayerSpeed
)

// TweenGroup eases up to two values of a sprite or background layer toward a
// target. Call Update(dt) each tick; values are written through the regular
// setters, so a tweened position keeps the collision rectangle in sync. If
// the target sprite starts dying, the group stops immediately.
//
// There is no global tween manager; hosts call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	field  tweenField
	sprite *Sprite
	layer  *BackgroundLayer
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.sprite != nil && g.sprite.Dying() {
		g.Done = true
		return
	}

	var vals [2]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	switch g.field {
	case tweenPosition:
		g.sprite.SetPosition(vals[0], vals[1])
	case tweenVelocity:
		g.sprite.SetVelocity(vals[0], vals[1])
	case tweenLayerSpeed:
		g.layer.SetSpeed(vals[0])
	}
}

// TweenPosition moves s to (toX, toY) over duration seconds.
func TweenPosition(s *Sprite, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := s.Position()
	g := &TweenGroup{count: 2, field: tweenPosition, sprite: s}
	g.tweens[0] = gween.New(float32(p.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(p.Y), float32(toY), duration, fn)
	return g
}

// TweenVelocity eases the velocity of s to (toX, toY), e.g. to accelerate or
// brake smoothly.
func TweenVelocity(s *Sprite, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	v := s.Velocity()
	g := &TweenGroup{count: 2, field: tweenVelocity, sprite: s}
	g.tweens[0] = gween.New(float32(v.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(toY), duration, fn)
	return g
}

// TweenLayerSpeed eases the scroll speed of l to the target value.
func TweenLayerSpeed(l *BackgroundLayer, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, field: tweenLayerSpeed, layer: l}
	g.tweens[0] = gween.New(float32(l.Speed()), float32(to), duration, fn)
	return g
}
