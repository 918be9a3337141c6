package ecs

import (
	"github.com/phanxgames/tiltcard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TiltEventType is the Donburi event type for tiltcard events.
var TiltEventType = events.NewEventType[tiltcard.TiltEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are queued on TiltEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) tiltcard.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitTiltEvent(event tiltcard.TiltEvent) {
	TiltEventType.Publish(s.world, event)
}
