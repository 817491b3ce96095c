package mengine

import (
	"fmt"
	"slices"
	"time"
)

// SpriteEventType identifies a sprite lifecycle event.
type SpriteEventType uint8

const (
	EventSpriteAdded     SpriteEventType = iota // sprite inserted into the collection
	EventSpriteDying                            // sprite about to be removed
	EventSpriteCollision                        // sprite hit another one
)

// SpriteEvent carries lifecycle data to an EventSink.
type SpriteEvent struct {
	Type     SpriteEventType
	Tick     uint64
	SpriteID string
	Name     string
	TypeName string
	Position Rect
	// OtherID is the sprite that was hit (EventSpriteCollision only).
	OtherID string
	// Blocked reports whether the host rolled the move back
	// (EventSpriteCollision only).
	Blocked bool
}

// EventSink is the interface for optional ECS integration.
// When set on an Engine, sprite events are forwarded to it.
type EventSink interface {
	EmitEvent(event SpriteEvent)
}

// Engine owns the ordered sprite collection and drives it once per tick.
// The collection is kept sorted by ascending z-order; sprites with equal
// z-order keep insertion order. Lookups by id are linear scans.
type Engine struct {
	sprites  []*Sprite
	snapshot []*Sprite
	doomed   []*Sprite
	tick     uint64

	sink  EventSink
	debug bool

	// OnSpriteDying is called exactly once for each sprite that dies, before
	// it is removed. The sprite is still in the collection during the call.
	OnSpriteDying func(s *Sprite)

	// OnSpriteCollision arbitrates a hit of hittee (the sprite that just
	// moved) into hitter. Return true to roll hittee back to its previous
	// position. A nil hook allows every move.
	OnSpriteCollision func(hitter, hittee *Sprite) bool
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Sprites returns the ordered collection. The returned slice MUST NOT be
// mutated; mutate the sprites it points to instead.
func (e *Engine) Sprites() []*Sprite {
	return e.sprites
}

// Len returns the number of sprites in the collection.
func (e *Engine) Len() int {
	return len(e.sprites)
}

// Tick returns the number of completed UpdateSprites calls.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// SetEventSink sets the optional ECS bridge.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDebugMode enables or disables per-tick stats logging.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// AddSprite inserts s before the first sprite with a strictly greater
// z-order, or appends it. Panics if s is nil.
func (e *Engine) AddSprite(s *Sprite) {
	if s == nil {
		panic("mengine: cannot add nil sprite")
	}
	i := slices.IndexFunc(e.sprites, func(o *Sprite) bool { return s.zOrder < o.zOrder })
	if i < 0 {
		e.sprites = append(e.sprites, s)
	} else {
		e.sprites = slices.Insert(e.sprites, i, s)
	}
	e.emit(SpriteEvent{Type: EventSpriteAdded, SpriteID: s.id, Name: s.name, TypeName: s.typeName, Position: s.position})
}

// UpdateSprites runs one tick. Every sprite present on entry is updated once,
// in collection order; sprites spawned during the tick wait for the next one.
// Killed sprites are reported to OnSpriteDying and removed together after the
// pass. Surviving sprites are checked for collisions and rolled back when the
// host blocks the move (velocity is left untouched).
func (e *Engine) UpdateSprites() {
	var stats tickStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.snapshot = append(e.snapshot[:0], e.sprites...)
	e.doomed = e.doomed[:0]

	for _, s := range e.snapshot {
		old := s.position
		action := s.Update()
		stats.updated++

		if action == ActionAddSprite {
			if child := s.AddSprite(); child != nil {
				e.AddSprite(child)
				stats.spawned++
			}
		}

		if action == ActionKill {
			e.spriteDying(s)
			e.doomed = append(e.doomed, s)
			stats.killed++
			continue
		}

		hit, blocked := e.checkSpriteCollision(s)
		if hit {
			stats.collisions++
		}
		if blocked {
			s.SetPositionRect(old)
			stats.blocked++
		}
	}

	e.removeSprites(e.doomed)
	clear(e.doomed)
	clear(e.snapshot)
	e.tick++

	if e.debug {
		stats.updateTime = time.Since(t0)
		stats.sprites = len(e.sprites)
		e.debugLog(stats)
	}
}

// CheckSpriteCollision scans the collection for the first other sprite whose
// collision rectangle touches s's and asks OnSpriteCollision about it. Only
// one hit is reported per call. Returns true when s must be rolled back.
func (e *Engine) CheckSpriteCollision(s *Sprite) bool {
	_, blocked := e.checkSpriteCollision(s)
	return blocked
}

func (e *Engine) checkSpriteCollision(s *Sprite) (hit, blocked bool) {
	for _, o := range e.sprites {
		if o == s || !s.TestCollision(o.collision) {
			continue
		}
		if e.OnSpriteCollision != nil {
			blocked = e.OnSpriteCollision(o, s)
		}
		e.emit(SpriteEvent{
			Type: EventSpriteCollision, SpriteID: s.id, Name: s.name, TypeName: s.typeName,
			Position: s.position, OtherID: o.id, Blocked: blocked,
		})
		return true, blocked
	}
	return false, false
}

func (e *Engine) spriteDying(s *Sprite) {
	s.dying = true
	if e.OnSpriteDying != nil {
		e.OnSpriteDying(s)
	}
	e.emit(SpriteEvent{Type: EventSpriteDying, SpriteID: s.id, Name: s.name, TypeName: s.typeName, Position: s.position})
	if e.debug {
		Logger().Debug("sprite dying", "id", s.id, "name", s.name, "tick", e.tick)
	}
}

// removeSprites drops the given sprites by identity, so a sprite sharing an
// id with a dead one survives.
func (e *Engine) removeSprites(doomed []*Sprite) {
	if len(doomed) == 0 {
		return
	}
	e.sprites = slices.DeleteFunc(e.sprites, func(s *Sprite) bool {
		return slices.Contains(doomed, s)
	})
}

// DrawSprites draws every sprite in z-order.
func (e *Engine) DrawSprites(c Canvas) {
	for _, s := range e.sprites {
		s.Draw(c)
	}
}

// KillSprite flags the sprite with the given id for removal on the next tick.
// Reports whether the sprite was found.
func (e *Engine) KillSprite(id string) bool {
	s, ok := e.Sprite(id)
	if ok {
		s.Kill()
	}
	return ok
}

// CleanUpSprites empties the collection without firing any hooks.
func (e *Engine) CleanUpSprites() {
	clear(e.sprites)
	e.sprites = e.sprites[:0]
}

// Sprite returns the sprite with the given id.
func (e *Engine) Sprite(id string) (*Sprite, bool) {
	i, ok := e.IndexOfSprite(id)
	if !ok {
		return nil, false
	}
	return e.sprites[i], true
}

// MustSprite returns the sprite with the given id. Use it where the sprite is
// known to exist; a missing id is a programming error and panics.
func (e *Engine) MustSprite(id string) *Sprite {
	s, ok := e.Sprite(id)
	if !ok {
		Logger().Error("required sprite missing", "id", id, "sprites", len(e.sprites))
		panic(fmt.Sprintf("mengine: sprite %q does not exist", id))
	}
	return s
}

// IndexOfSprite returns the collection index of the sprite with the given id.
func (e *Engine) IndexOfSprite(id string) (int, bool) {
	i := slices.IndexFunc(e.sprites, func(s *Sprite) bool { return s.id == id })
	return i, i >= 0
}

// ContainsSprite reports whether a sprite with the given id is in the
// collection.
func (e *Engine) ContainsSprite(id string) bool {
	_, ok := e.IndexOfSprite(id)
	return ok
}

// SpriteAt returns the first visible sprite containing (x, y), or nil.
func (e *Engine) SpriteAt(x, y float64) *Sprite {
	for _, s := range e.sprites {
		if !s.hidden && s.IsPointInside(x, y) {
			return s
		}
	}
	return nil
}

func (e *Engine) emit(ev SpriteEvent) {
	if e.sink == nil {
		return
	}
	ev.Tick = e.tick
	e.sink.EmitEvent(ev)
}
