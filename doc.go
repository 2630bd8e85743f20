// Package marquee drives view-triggered animations for scrolling pages on
// [Ebitengine].
//
// A page is a tree of [Node] values rooted at [Scene.Root]. The scene's
// primary [Camera] defines the viewport. Every frame [Scene.UpdateDelta]
// advances a single virtual-time timer queue ([Timers]), asks the [Sensor]
// which observed regions entered or left the viewport, and steps the active
// transitions. Everything runs on the goroutine calling Update.
//
// # Quick start
//
//	scene := marquee.NewScene(1280, 720)
//	scene.NewCamera(marquee.Rect{Width: 1280, Height: 720})
//	fonts, _ := marquee.DefaultFonts()
//	page, err := scene.BuildPage(marquee.DefaultPageConfig(), fonts)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer page.Dispose()
//	marquee.Run(scene, marquee.RunConfig{Title: "Vibeify", Width: 1280, Height: 720})
//
// # Building blocks
//
// [Sensor.Observe] fires a callback the first time a region intersects the
// viewport, optionally expanded or shrunk by a margin at its bottom edge.
// The latch never re-arms, even if the region leaves and re-enters.
//
// A [StaggerGroup] describes n items whose start offsets are
// baseDelay + i*perItemDelay. [ScheduleGroup] arms one timer per item and
// [Reveal] pairs each start signal with a [Transition] on the item's node.
//
// A [Counter] counts from 0 to a non-negative integer target in fixed ticks,
// emitting floor values and finishing exactly on the target. A zero target
// settles at once with a single emission of 0.
//
// Disposing a node cancels everything bound to it: its sensor subscription,
// pending start signals and running counters. Nothing emits after teardown.
//
// Invalid timing (negative delays, non-positive durations, negative targets)
// is rejected when a group or counter is created with an error matching
// [ErrConfig].
//
// The scene logs through log/slog; set a logger with [Scene.SetLogger].
// Orchestration events can also be forwarded to an ECS world with the
// marquee/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
package marquee
