// Package ecs provides ECS adapters for keyframe.
package ecs

import (
	"github.com/phanxgames/keyframe"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// WriteEventType is the Donburi event type for keyframe write events.
// Subscribe to this in your ECS systems to receive animated field changes.
var WriteEventType = events.NewEventType[keyframe.WriteEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a WriteSink backed by a Donburi world.
// Write events are published to WriteEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) keyframe.WriteSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitWrite(event keyframe.WriteEvent) {
	WriteEventType.Publish(s.world, event)
}
