package forest

import (
	"log/slog"
)

// Viewer ties a NodeManager and an InputHandler to a renderer and runs one
// frame at a time.
type Viewer struct {
	cfg      Config
	nodes    *NodeManager
	input    *InputHandler
	renderer Renderer
	log      *slog.Logger

	frames uint64
	err    error
}

// NewViewer creates a viewer with an empty scene configured from cfg. r may
// be nil for headless use. A nil logger discards output. cfg is expected to
// pass Config.Validate; a non-positive scale floor panics.
func NewViewer(cfg Config, r Renderer, log *slog.Logger) *Viewer {
	log = orDiscard(log)
	nodes := NewNodeManager(r, log.With("component", "nodes"))
	nodes.SetDefaultLens(cfg.Camera)
	nodes.SetScaleMin(cfg.Input.ScaleMin)
	nodes.SetDebugMode(cfg.Debug)
	return &Viewer{
		cfg:      cfg,
		nodes:    nodes,
		input:    NewInputHandler(cfg.Input, log.With("component", "input")),
		renderer: r,
		log:      log,
	}
}

// Config returns the configuration the viewer was built with.
func (v *Viewer) Config() Config { return v.cfg }

// Nodes returns the scene's node manager.
func (v *Viewer) Nodes() *NodeManager { return v.nodes }

// Input returns the input handler.
func (v *Viewer) Input() *InputHandler { return v.input }

// SetEventStore attaches store to both the node manager and the input
// handler.
func (v *Viewer) SetEventStore(store EventStore) {
	v.nodes.SetEventStore(store)
	v.input.SetEventStore(store)
}

// Frame runs one frame: input is applied, the selected camera's view and
// projection go to the renderer, and every node is updated. Node failures
// are logged by the manager and do not stop the loop; Err reports them.
// Frame returns false once a quit event has been seen.
func (v *Viewer) Frame(src EventSource, keys KeyState) bool {
	if !v.input.Update(src, keys, v.nodes) {
		return false
	}
	if cam := v.nodes.Camera(); cam != nil && v.renderer != nil {
		v.renderer.SetView(cam.ViewMatrix(), cam.ProjectionMatrix(v.cfg.Window.Aspect()))
	}
	v.err = v.nodes.Update()
	v.frames++
	return true
}

// Err returns the joined node update errors of the last completed frame, or
// nil if every node updated cleanly.
func (v *Viewer) Err() error { return v.err }

// Frames returns the number of completed frames.
func (v *Viewer) Frames() uint64 { return v.frames }

// Close releases all scene resources.
func (v *Viewer) Close() {
	v.nodes.Close()
	v.log.Info("viewer closed", "frames", v.frames)
}
