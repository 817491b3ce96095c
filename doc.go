// Package mengine is a small 2D sprite engine for [Ebitengine].
//
// mengine provides frame-timed animations, sprites with velocity and
// boundary policies, a z-ordered sprite collection with collision and
// lifecycle hooks, and parallax scrolling backgrounds that tile a bitmap
// endlessly.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you. A game implements [Game]:
//
//	type game struct{ engine *mengine.Engine }
//
//	func (g *game) Event(ev mengine.Event)   {}
//	func (g *game) Update() error            { g.engine.UpdateSprites(); return nil }
//	func (g *game) Draw(c mengine.Canvas)    { g.engine.DrawSprites(c) }
//
//	mengine.Run(&game{engine: mengine.NewEngine()}, mengine.DefaultRunConfig())
//
// For full control, implement [ebiten.Game] yourself and draw through an
// [ImageCanvas] wrapping the screen.
//
// # Animations
//
// An [Animation] cycles through source rectangles of a sprite sheet at a
// fixed frame rate. Frames advance on wall-clock time measured by a [Clock],
// not on the number of Update calls. Use [GridFrames] for uniform sheets or
// [LoadAtlas] for TexturePacker JSON.
//
//	sheet := mengine.NewActiveAnimation(img, mengine.GridFrames(0, 0, 32, 32, 8, false), 12)
//	sheet.SetRepeat(true)
//
// A non-repeating animation stops on its last frame and reports [Animation.IsEnd].
//
// # Sprites
//
// A [Sprite] draws a [Resource] (a static image or an animation) at a
// position and moves by its velocity each tick. When the projected position
// leaves the sprite's bounds, its [BoundsAction] decides what happens: stop,
// wrap to the opposite edge, bounce, die, or nothing.
//
// Per-game logic attaches as a [Behavior]. It may override the tick's
// [SpriteAction] and supply child sprites when it returns [ActionAddSprite].
//
// # Engine
//
// An [Engine] keeps sprites sorted by ascending z-order and drives them once
// per tick with [Engine.UpdateSprites]. Sprites that report [ActionKill] are
// passed to OnSpriteDying and removed at the end of the tick. Moves that
// collide can be rolled back by OnSpriteCollision. Lifecycle events can be
// forwarded to an ECS through an [EventSink] (see mengine/ecs).
//
// # Scrolling backgrounds
//
// A [BackgroundLayer] slides a viewport across a bitmap treated as a torus.
// Depending on where the viewport sits relative to the bitmap edges it is
// drawn as one, two, or four blits ([BackgroundLayer.Blits]). A
// [ScrollingBackground] updates and draws its layers in order.
//
// Sprite positions, velocities, and layer speeds can be animated with
// [TweenPosition], [TweenVelocity], and [TweenLayerSpeed] (via [gween]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package mengine
