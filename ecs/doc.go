// Package ecs provides ECS adapters for mengine's sprite event stream.
//
// The primary adapter is [NewDonburiSink], which bridges sprite lifecycle
// events (added, dying, collision) into a [Donburi] world as typed events.
// Subscribe to [SpriteEventType] in your ECS systems to receive them, or use
// [SubscribeKind] to receive a single event kind.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
