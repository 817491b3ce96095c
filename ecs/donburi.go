package ecs

import (
	"github.com/phanxgames/mengine"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SpriteEventType carries everything an Engine reports through its sink:
//
//   - EventSpriteAdded once per AddSprite, including sprites spawned by a
//     behavior during a tick.
//   - EventSpriteDying once per death, after OnSpriteDying ran and before
//     the sprite leaves the collection.
//   - EventSpriteCollision at most once per moved sprite and tick, naming the
//     first sprite it touched in OtherID. Blocked is set when
//     OnSpriteCollision rolled the move back.
//
// Events are queued in the world; systems receive them on ProcessEvents.
var SpriteEventType = events.NewEventType[mengine.SpriteEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns a sink that queues engine events in world. Pass it
// to Engine.SetEventSink.
func NewDonburiSink(world donburi.World) mengine.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event mengine.SpriteEvent) {
	SpriteEventType.Publish(s.world, event)
}

// SubscribeKind subscribes fn to events of a single kind, e.g. only
// collisions for a damage system.
func SubscribeKind(world donburi.World, kind mengine.SpriteEventType, fn func(w donburi.World, ev mengine.SpriteEvent)) {
	SpriteEventType.Subscribe(world, func(w donburi.World, ev mengine.SpriteEvent) {
		if ev.Type == kind {
			fn(w, ev)
		}
	})
}
