// Package ecs bridges spinview control events into a [Donburi] world.
//
// [NewDonburiSink] publishes every committed slider, numeric entry and
// checkbox change as a [ControlEventType] event, and mirrors each panel's
// committed state into a [PanelStateComponent] entity so ECS systems can
// query it.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEventSink(ecs.NewDonburiSink(world, scene.Panels()))
//	ecs.ControlEventType.Subscribe(world, onControl)
//	// once per frame:
//	ecs.ControlEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
