package mengine

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// relatedSlots is the number of generic related-sprite id slots.
const relatedSlots = 3

// Sprite is one simulated, renderable entity. Position and collision
// rectangles are kept in sync by every position setter: the collision
// rectangle is the position shrunk by 1/12 of the size on each side.
//
// Relationship ids (parent, killer, related) are weak references resolved
// through Engine lookups; the empty string means "none".
type Sprite struct {
	id       string
	name     string
	typeName string

	resource     Resource
	position     Rect
	collision    Rect
	velocity     Vec2
	bounds       Rect
	boundsAction BoundsAction
	zOrder       int

	score  int
	lives  int
	hidden bool
	dying  bool

	parentID string
	killerID string
	related  [relatedSlots]string

	behavior Behavior

	// UserData is free for host use.
	UserData any
}

// NewSprite creates a sprite at pos whose size comes from the resource.
func NewSprite(name string, res Resource, pos, velocity Vec2, zOrder int, bounds Rect, action BoundsAction) *Sprite {
	s := &Sprite{
		id:           uuid.NewString(),
		name:         name,
		resource:     res,
		position:     Rect{X: pos.X, Y: pos.Y, Width: res.Width(), Height: res.Height()},
		velocity:     velocity,
		zOrder:       zOrder,
		bounds:       bounds,
		boundsAction: action,
	}
	s.calcCollisionRect()
	return s
}

// NewSpriteFromBitmap creates a motionless sprite at the origin with the
// Stop bounds policy.
func NewSpriteFromBitmap(name string, res Resource, bounds Rect) *Sprite {
	return NewSprite(name, res, Vec2{}, Vec2{}, 0, bounds, BoundsStop)
}

// NewSpriteWithBoundsAction creates a motionless sprite at a random position
// inside bounds. rng supplies the randomness; nil uses the global source.
func NewSpriteWithBoundsAction(name string, res Resource, bounds Rect, action BoundsAction, rng *rand.Rand) *Sprite {
	x := bounds.X + float64(randIntN(rng, int(bounds.Width)))
	y := bounds.Y + float64(randIntN(rng, int(bounds.Height)))
	return NewSprite(name, res, Vec2{X: x, Y: y}, Vec2{}, 0, bounds, action)
}

func randIntN(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

func (s *Sprite) calcCollisionRect() {
	s.collision = s.position.Inflate(-s.position.Width/12, -s.position.Height/12)
}

// Update runs one simulation tick: the motion step followed by the behavior,
// if any. See Behavior for how the two actions combine.
func (s *Sprite) Update() SpriteAction {
	action := s.step()
	if s.behavior == nil {
		return action
	}
	next := s.behavior.Update(s, action)
	if action == ActionKill {
		return ActionKill
	}
	return next
}

// step advances animation and position and applies the bounds policy.
func (s *Sprite) step() SpriteAction {
	if s.dying {
		return ActionKill
	}

	// A finished one-shot animation marks the sprite; the kill is reported
	// on the following tick, after one more move.
	if anim := s.resource.Animation(); anim != nil {
		anim.Update()
		if !anim.IsRepeat() && anim.IsEnd() {
			s.dying = true
		}
	}

	np := Vec2{X: s.position.X + s.velocity.X, Y: s.position.Y + s.velocity.Y}
	size := Vec2{X: s.position.Width, Y: s.position.Height}
	b := s.bounds

	switch s.boundsAction {
	case BoundsWrap:
		if np.X < b.Left() && s.velocity.X < 0 {
			np.X = b.Right()
		} else if np.X > b.Right() {
			np.X = b.Left() - size.X
		}
		if np.Y < b.Top() && s.velocity.Y < 0 {
			np.Y = b.Bottom()
		} else if np.Y > b.Bottom() {
			np.Y = b.Top() - size.Y
		}

	case BoundsBounce:
		bounce := false
		v := s.velocity
		if np.X < b.Left() {
			bounce = true
			np.X = b.Left()
			v.X = -v.X
		} else if np.X+size.X > b.Right() {
			bounce = true
			np.X = b.Right() - size.X
			v.X = -v.X
		}
		if np.Y < b.Top() {
			bounce = true
			np.Y = b.Top()
			v.Y = -v.Y
		} else if np.Y+size.Y > b.Bottom() {
			bounce = true
			np.Y = b.Bottom() - size.Y
			v.Y = -v.Y
		}
		if bounce {
			s.velocity = v
		}

	case BoundsDie:
		if np.X+size.X < b.Left() || np.X > b.Right() ||
			np.Y+size.Y < b.Top() || np.Y > b.Bottom() {
			return ActionKill
		}

	case BoundsStop:
		// Clamping happens on the integer grid and halts both axes even when
		// only one of them hit the edge.
		if np.X < b.Left() || np.X > b.Right()-size.X {
			np.X = float64(max(int(b.Left()), min(int(np.X), int(b.Right())-int(size.X))))
			s.velocity = Vec2{}
		}
		if np.Y < b.Top() || np.Y > b.Bottom()-size.Y {
			np.Y = float64(max(int(b.Top()), min(int(np.Y), int(b.Bottom())-int(size.Y))))
			s.velocity = Vec2{}
		}
	}

	s.SetPosition(np.X, np.Y)
	return ActionNone
}

// Draw renders the sprite at its position unless it is hidden.
func (s *Sprite) Draw(c Canvas) {
	if s.hidden {
		return
	}
	dst := Rect{X: s.position.X, Y: s.position.Y, Width: s.resource.Width(), Height: s.resource.Height()}
	s.resource.Draw(c, dst)
}

// AddSprite asks the behavior for a child sprite. Returns nil without a
// behavior.
func (s *Sprite) AddSprite() *Sprite {
	if s.behavior == nil {
		return nil
	}
	return s.behavior.AddSprite(s)
}

// TestCollision reports whether r touches the sprite's collision rectangle.
// Shared edges count as a hit.
func (s *Sprite) TestCollision(r Rect) bool {
	return s.collision.Intersects(r)
}

// IsPointInside reports whether (x, y) lies within the sprite's position.
func (s *Sprite) IsPointInside(x, y float64) bool {
	return s.position.Contains(x, y)
}

// --- Identity ---

// ID returns the unique identifier.
func (s *Sprite) ID() string { return s.id }

// SetID overrides the identifier for hosts that assign their own ids.
// Must be called before the sprite is added to an engine.
func (s *Sprite) SetID(id string) { s.id = id }

// Name returns the display name.
func (s *Sprite) Name() string { return s.name }

// SetName sets the display name.
func (s *Sprite) SetName(name string) { s.name = name }

// TypeName returns the host-defined type tag.
func (s *Sprite) TypeName() string { return s.typeName }

// SetTypeName sets the host-defined type tag.
func (s *Sprite) SetTypeName(typeName string) { s.typeName = typeName }

// --- Geometry ---

// Position returns the sprite's rectangle.
func (s *Sprite) Position() Rect { return s.position }

// SetPosition moves the sprite's top-left corner to (x, y).
func (s *Sprite) SetPosition(x, y float64) {
	s.position = s.position.MoveTo(x, y)
	s.calcCollisionRect()
}

// SetPositionRect replaces the whole position rectangle.
func (s *Sprite) SetPositionRect(r Rect) {
	s.position = r
	s.calcCollisionRect()
}

// Collision returns the hit-box derived from the position.
func (s *Sprite) Collision() Rect { return s.collision }

// Velocity returns the displacement applied per tick.
func (s *Sprite) Velocity() Vec2 { return s.velocity }

// SetVelocity sets the displacement applied per tick.
func (s *Sprite) SetVelocity(x, y float64) { s.velocity = Vec2{X: x, Y: y} }

// Bounds returns the arena rectangle.
func (s *Sprite) Bounds() Rect { return s.bounds }

// SetBounds replaces the arena rectangle.
func (s *Sprite) SetBounds(r Rect) { s.bounds = r }

// BoundsAction returns the bounds policy.
func (s *Sprite) BoundsAction() BoundsAction { return s.boundsAction }

// SetBoundsAction sets the bounds policy.
func (s *Sprite) SetBoundsAction(a BoundsAction) { s.boundsAction = a }

// Width returns the resource width.
func (s *Sprite) Width() float64 { return s.resource.Width() }

// Height returns the resource height.
func (s *Sprite) Height() float64 { return s.resource.Height() }

// ZOrder returns the draw priority; lower is drawn first.
func (s *Sprite) ZOrder() int { return s.zOrder }

// --- Resource & behavior ---

// Resource returns the sprite's image or animation.
func (s *Sprite) Resource() Resource { return s.resource }

// SetBehavior attaches b, replacing any previous behavior. nil removes it.
func (s *Sprite) SetBehavior(b Behavior) { s.behavior = b }

// Behavior returns the attached behavior, or nil.
func (s *Sprite) Behavior() Behavior { return s.behavior }

// --- Lifecycle & bookkeeping ---

// Kill flags the sprite for removal at the end of the next engine tick.
func (s *Sprite) Kill() { s.dying = true }

// Dying reports whether the sprite is flagged for removal.
func (s *Sprite) Dying() bool { return s.dying }

// Hidden reports whether Draw is suppressed.
func (s *Sprite) Hidden() bool { return s.hidden }

// SetHidden suppresses or restores drawing.
func (s *Sprite) SetHidden(hidden bool) { s.hidden = hidden }

// Score returns the host-maintained score.
func (s *Sprite) Score() int { return s.score }

// AddScore adds v to the score.
func (s *Sprite) AddScore(v int) { s.score += v }

// Lives returns the host-maintained life count.
func (s *Sprite) Lives() int { return s.lives }

// SetLives sets the life count.
func (s *Sprite) SetLives(lives int) { s.lives = lives }

// AddLives adds v to the life count.
func (s *Sprite) AddLives(v int) { s.lives += v }

// --- Relationships ---

// ParentID returns the id of the sprite that created this one.
func (s *Sprite) ParentID() (string, bool) { return s.parentID, s.parentID != "" }

// SetParentID records the parent id. "" clears it.
func (s *Sprite) SetParentID(id string) { s.parentID = id }

// KillerID returns the id of the sprite that killed this one.
func (s *Sprite) KillerID() (string, bool) { return s.killerID, s.killerID != "" }

// SetKillerID records the killer id. "" clears it.
func (s *Sprite) SetKillerID(id string) { s.killerID = id }

// RelatedID returns the id stored in one of the three generic slots.
// Panics if slot is outside [0, 3).
func (s *Sprite) RelatedID(slot int) (string, bool) {
	checkRelatedSlot(slot)
	id := s.related[slot]
	return id, id != ""
}

// SetRelatedID stores id in one of the three generic slots. "" clears it.
// Panics if slot is outside [0, 3).
func (s *Sprite) SetRelatedID(slot int, id string) {
	checkRelatedSlot(slot)
	s.related[slot] = id
}

func checkRelatedSlot(slot int) {
	if slot < 0 || slot >= relatedSlots {
		panic(fmt.Sprintf("mengine: related id slot %d out of range [0, %d)", slot, relatedSlots))
	}
}

func (s *Sprite) String() string {
	return fmt.Sprintf("Sprite{%s %q at (%.1f, %.1f) z=%d}", s.id, s.name, s.position.X, s.position.Y, s.zOrder)
}
