// Package spinview is the core of a small 3D viewer that shows three spinning
// solids, each with its own speed slider and visibility toggle.
//
// The package is front-end neutral. It owns the scene graph, the per-frame
// animators, the control panel models and the camera, and produces a
// depth-sorted triangle list that a rendering front-end draws. Two front-ends
// ship with the module: [github.com/phanxgames/spinview/ebitenview] draws into
// an [Ebitengine] window and [github.com/phanxgames/spinview/term] draws into a
// terminal.
//
// # Quick start
//
//	scene := spinview.NewScene(spinview.DefaultConfig())
//	if err := ebitenview.Run(scene, ebitenview.RunConfig{
//		Title: "spinview", Width: 960, Height: 600,
//	}); err != nil {
//		log.Fatal(err)
//	}
//
// # Frame loop and controls
//
// Speed and visibility live in small shared cells, [SpeedChannel] and
// [VisibilityState]. A [ControlPanel] writes them when the user edits a
// control; the [SpinAnimator] for each entry reads its speed on every
// [Scene.Update] and the projector reads visibility on every frame. Editing a
// control never rebuilds the scene graph, and a frame tick never repaints a
// panel: panels carry a revision number that only changes on commit.
//
// Everything here runs on one goroutine. Input handlers finish before the
// next frame tick, so a write is always seen by the very next read.
//
// [Ebitengine]: https://ebitengine.org
package spinview
