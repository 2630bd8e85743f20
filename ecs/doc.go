// Package ecs provides ECS adapters for marquee's orchestration events.
//
// The primary adapter is [NewDonburiStore], which bridges orchestration
// events (region visible, stagger start, counter tick and settle) into a
// [Donburi] world as typed events. Subscribe to [OrchestrationEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
