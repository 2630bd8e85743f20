// Package ecs provides ECS adapters for marquee.
package ecs

import (
	"github.com/phanxgames/marquee"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// OrchestrationEventType is the Donburi event type for marquee events.
var OrchestrationEventType = events.NewEventType[marquee.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are published to OrchestrationEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) marquee.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event marquee.Event) {
	OrchestrationEventType.Publish(s.world, event)
}
