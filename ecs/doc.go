// Package ecs provides ECS adapters for tiltcard events.
//
// The primary adapter is [NewDonburiSink], which bridges tilt events (target
// changes, settles, phase changes) into a [Donburi] world as typed events.
// Subscribe to [TiltEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	card.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
