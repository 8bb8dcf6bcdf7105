// Package ecs provides ECS adapters for keyframe animations.
//
// The primary adapter is [NewDonburiSink], which forwards every committed
// target write of an animation into a [Donburi] world as a typed event.
// Subscribe to [WriteEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	anim.SetWriteSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
