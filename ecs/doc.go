// Package ecs provides ECS adapters for crossdim's scene events.
//
// The primary adapter is [NewDonburiStore], which bridges scene events (body
// added, scene started and stopped, tick) into a [Donburi] world as typed
// events and mirrors every added body as an entity with a [Body] component.
// Subscribe to [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	...
//	store.ProcessEvents()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
