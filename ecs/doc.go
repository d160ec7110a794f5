// Package ecs bridges forest scene events into a [Donburi] world.
//
// [NewDonburiStore] queues every scene event (node created, selection
// changed, mode changed) as a typed [SceneEventType] event. Systems either
// subscribe to SceneEventType directly or register [Handlers] with
// [Subscribe]; [Store.Flush] delivers the queue.
//
//	store := ecs.NewDonburiStore(donburi.NewWorld())
//	ecs.Subscribe(store.World(), ecs.LogHandlers(log))
//	viewer.SetEventStore(store)
//	// each frame, after viewer.Frame:
//	store.Flush()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
