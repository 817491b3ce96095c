package mengine

// Behavior extends a sprite with game-specific logic. Update runs every tick
// right after the sprite's own motion step and receives that step's action.
// It may escalate ActionNone to ActionAddSprite or ActionKill; a Kill from the
// motion step is never downgraded. When the final action is ActionAddSprite,
// the engine calls AddSprite and inserts the returned sprite, if any.
//
// A Behavior belongs to exactly one sprite and must not touch the engine's
// collection directly: new sprites are requested through the returned action.
type Behavior interface {
	Update(s *Sprite, action SpriteAction) SpriteAction
	AddSprite(s *Sprite) *Sprite
}

// BaseBehavior provides the default no-op methods. Embed it to implement
// only the parts of Behavior you need.
type BaseBehavior struct{}

// Update returns action unchanged.
func (BaseBehavior) Update(_ *Sprite, action SpriteAction) SpriteAction { return action }

// AddSprite returns nil.
func (BaseBehavior) AddSprite(*Sprite) *Sprite { return nil }

// UpdateFunc adapts a plain function to a Behavior that never spawns.
type UpdateFunc func(s *Sprite, action SpriteAction) SpriteAction

// Update calls f.
func (f UpdateFunc) Update(s *Sprite, action SpriteAction) SpriteAction { return f(s, action) }

// AddSprite returns nil.
func (UpdateFunc) AddSprite(*Sprite) *Sprite { return nil }
