// Package forest is the runtime scene model of a small real-time 3D viewer.
//
// Forest owns a flat set of addressable entities (cameras and drawable render
// items), keeps exactly one selected instance per kind, routes device input to
// whichever kind is currently targeted, and hands the renderer the per-frame
// view, projection, and model matrices it needs.
//
// # Quick start
//
// The simplest way to get a window is the view package, which wraps
// [Ebitengine]:
//
//	r := view.NewRenderer(nil)
//	v := forest.NewViewer(forest.DefaultConfig(), r, nil)
//	v.Nodes().CreateCamera()
//	v.Nodes().CreateRenderItem(forest.Quad(), mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
//	view.Run(v, r, view.RunConfig{})
//
// For full control, drive [Viewer.Frame] yourself with any [EventSource] and
// [KeyState]:
//
//	var q forest.EventQueue
//	keys := forest.NewKeyboardState()
//	for v.Frame(&q, keys) {
//		// feed q and keys from your device layer
//	}
//
// # Nodes
//
// Every entity is a [Node]. The set of node kinds is closed: [Camera] and
// [RenderItem]. Nodes are created only through [NodeManager] and live until
// [NodeManager.Close]; ids are dense, start at zero, and are never reused.
//
// # Selection and input
//
// [NodeManager] tracks one selected camera and one selected render item.
// [InputHandler] cycles between [ModeItem] and [ModeCamera] on the Backslash
// key and forwards move/rotate/scale gestures to the selection of the active
// kind.
//
// [Ebitengine]: https://ebitengine.org
package forest
