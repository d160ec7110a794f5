// Package view runs a forest.Viewer in an [Ebitengine] window.
//
// [Renderer] implements forest.Renderer by projecting every submitted mesh on
// the CPU and drawing the triangles with DrawTriangles32. [Device] converts
// Ebitengine's polled keyboard and mouse state into forest events. [Run]
// wires both into an ebiten.Game.
//
//	r := view.NewRenderer(log)
//	v := forest.NewViewer(cfg, r, log)
//	v.Nodes().CreateCamera()
//	if err := view.Run(v, r, view.RunConfig{ShowHUD: true}); err != nil {
//		log.Error("run", "err", err)
//	}
//
// [Ebitengine]: https://ebitengine.org
package view
