package forest

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeManager owns every node in a scene. Nodes live in a dense arena indexed
// by id; cameras and render items are additionally tracked in typed id lists
// in creation order. The manager keeps at most one selected camera and one
// selected render item, held as ids so they can never dangle.
//
// NodeManager is not safe for concurrent use.
type NodeManager struct {
	nodes   []Node
	cameras []NodeID
	items   []NodeID

	selCamera NodeID
	hasCamera bool
	selItem   NodeID
	hasItem   bool

	renderer Renderer
	log      *slog.Logger
	store    EventStore

	lens     Lens
	scaleMin float32
	debug    bool
	closed   bool
}

// NewNodeManager creates an empty manager. Render items upload their meshes
// to r, which may be nil for headless use. A nil logger discards output.
func NewNodeManager(r Renderer, log *slog.Logger) *NodeManager {
	return &NodeManager{
		renderer: r,
		log:      orDiscard(log),
		lens:     DefaultLens,
		scaleMin: ScaleMin,
	}
}

// SetEventStore attaches a store that receives node-created and
// selection-changed events. Pass nil to detach.
func (m *NodeManager) SetEventStore(store EventStore) {
	m.store = store
}

// SetDebugMode enables per-sweep timing and node-count warnings at debug and
// warn level.
func (m *NodeManager) SetDebugMode(enabled bool) {
	m.debug = enabled
}

// SetDefaultLens sets the lens given to cameras created after this call.
func (m *NodeManager) SetDefaultLens(l Lens) {
	m.lens = l
}

// SetScaleMin sets the scale floor given to render items created after this
// call. Panics if floor is not positive.
func (m *NodeManager) SetScaleMin(floor float32) {
	if !(floor > 0) {
		panic("forest: scale floor must be positive")
	}
	m.scaleMin = floor
}

// CreateCamera adds a camera at the default pose and returns its id.
func (m *NodeManager) CreateCamera() NodeID {
	return m.CreateCameraAt(defaultEye, defaultDirection, defaultUp)
}

// CreateCameraAt adds a camera with the given pose and returns its id. The
// first camera created becomes the selected camera. Panics if direction or up
// is degenerate.
func (m *NodeManager) CreateCameraAt(eye, direction, up mgl32.Vec3) NodeID {
	m.mustOpen()
	id := m.nextID()
	c := newCamera(id, eye, direction, up, m.lens)
	m.nodes = append(m.nodes, c)
	m.cameras = append(m.cameras, id)
	m.log.Info("created camera", "id", id, "eye", c.eye, "direction", c.direction)
	m.emit(SceneEvent{Type: SceneNodeCreated, NodeID: id, Kind: KindCamera})
	if !m.hasCamera {
		m.setCamera(id)
	}
	m.debugCheckNodeCount()
	return id
}

// CreateRenderItem uploads mesh to the renderer and adds a render item with
// the given transform. The first render item created becomes the selected
// item. No id is consumed when the mesh is rejected.
func (m *NodeManager) CreateRenderItem(mesh Mesh, position, rotation, scale mgl32.Vec3) (NodeID, error) {
	m.mustOpen()
	if err := mesh.Validate(); err != nil {
		return 0, fmt.Errorf("create render item: %w", err)
	}
	var g Geometry
	if m.renderer != nil {
		var err error
		g, err = m.renderer.Upload(mesh)
		if err != nil {
			return 0, fmt.Errorf("create render item: upload: %w", err)
		}
	}
	id := m.nextID()
	it := newRenderItem(id, g, m.renderer, position, rotation, scale, m.scaleMin)
	m.nodes = append(m.nodes, it)
	m.items = append(m.items, id)
	m.log.Info("created render item", "id", id, "position", it.position, "vertices", mesh.VertexCount())
	m.emit(SceneEvent{Type: SceneNodeCreated, NodeID: id, Kind: KindRenderItem})
	if !m.hasItem {
		m.setItem(id)
	}
	m.debugCheckNodeCount()
	return id, nil
}

func (m *NodeManager) nextID() NodeID {
	return NodeID(len(m.nodes))
}

// Camera returns the selected camera, or nil if no camera exists.
func (m *NodeManager) Camera() *Camera {
	if !m.hasCamera {
		return nil
	}
	return m.nodes[m.selCamera].(*Camera)
}

// RenderItem returns the selected render item, or nil if none exists.
func (m *NodeManager) RenderItem() *RenderItem {
	if !m.hasItem {
		return nil
	}
	return m.nodes[m.selItem].(*RenderItem)
}

// Node returns the node with the given id, or nil if no such node exists.
func (m *NodeManager) Node(id NodeID) Node {
	if int(id) >= len(m.nodes) {
		return nil
	}
	return m.nodes[id]
}

// Cameras returns a copy of the camera ids in creation order.
func (m *NodeManager) Cameras() []NodeID {
	return slices.Clone(m.cameras)
}

// RenderItems returns a copy of the render item ids in creation order.
func (m *NodeManager) RenderItems() []NodeID {
	return slices.Clone(m.items)
}

// Len returns the number of nodes.
func (m *NodeManager) Len() int {
	return len(m.nodes)
}

// SelectCamera selects the camera with the given id. It reports false and
// leaves the selection unchanged if id is unknown or names a different kind.
func (m *NodeManager) SelectCamera(id NodeID) bool {
	if !m.lookup(id, KindCamera) {
		return false
	}
	m.setCamera(id)
	return true
}

// SelectRenderItem selects the render item with the given id. It reports
// false and leaves the selection unchanged if id is unknown or names a
// different kind.
func (m *NodeManager) SelectRenderItem(id NodeID) bool {
	if !m.lookup(id, KindRenderItem) {
		return false
	}
	m.setItem(id)
	return true
}

func (m *NodeManager) lookup(id NodeID, want NodeKind) bool {
	n := m.Node(id)
	if n == nil {
		m.log.Error("select failed: no such node", "id", id, "kind", want, "nodes", len(m.nodes))
		return false
	}
	if n.Kind() != want {
		m.log.Error("select failed: wrong kind", "id", id, "want", want, "got", n.Kind())
		return false
	}
	return true
}

// SelectNextCamera advances the camera selection to the next camera in
// creation order, wrapping after the last. Reports false if there are no
// cameras.
func (m *NodeManager) SelectNextCamera() bool {
	id, ok := m.next(m.cameras, m.selCamera, KindCamera)
	if ok {
		m.setCamera(id)
	}
	return ok
}

// SelectNextRenderItem advances the render item selection to the next item
// in creation order, wrapping after the last. Reports false if there are no
// render items.
func (m *NodeManager) SelectNextRenderItem() bool {
	id, ok := m.next(m.items, m.selItem, KindRenderItem)
	if ok {
		m.setItem(id)
	}
	return ok
}

// next returns the id that follows cur in ids, wrapping to the first.
func (m *NodeManager) next(ids []NodeID, cur NodeID, kind NodeKind) (NodeID, bool) {
	if len(ids) == 0 {
		m.log.Error("select next failed: none exist", "kind", kind)
		return 0, false
	}
	for i, id := range ids {
		if id == cur {
			return ids[(i+1)%len(ids)], true
		}
	}
	return ids[0], true
}

func (m *NodeManager) setCamera(id NodeID) {
	m.selCamera, m.hasCamera = id, true
	m.log.Info("selected camera", "id", id)
	m.emit(SceneEvent{Type: SceneSelectionChanged, NodeID: id, Kind: KindCamera})
}

func (m *NodeManager) setItem(id NodeID) {
	m.selItem, m.hasItem = id, true
	m.log.Info("selected render item", "id", id)
	m.emit(SceneEvent{Type: SceneSelectionChanged, NodeID: id, Kind: KindRenderItem})
}

func (m *NodeManager) emit(e SceneEvent) {
	if m.store != nil {
		m.store.EmitEvent(e)
	}
}

// Update calls Update on every node in creation order. A failing node is
// logged and skipped; the joined errors of all failures are returned after
// the full sweep.
func (m *NodeManager) Update() error {
	var start time.Time
	if m.debug {
		start = time.Now()
	}
	var errs []error
	for _, n := range m.nodes {
		if err := n.Update(); err != nil {
			m.log.Error("node update failed", "id", n.ID(), "kind", n.Kind(), "err", err)
			errs = append(errs, err)
		}
	}
	if m.debug {
		m.debugLog(sweepStats{
			duration: time.Since(start),
			nodes:    len(m.nodes),
			items:    len(m.items),
			failed:   len(errs),
		})
	}
	return errors.Join(errs...)
}

// Close releases every node's renderer resources exactly once. Further
// creation panics; calling Close again does nothing.
func (m *NodeManager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, n := range m.nodes {
		n.release()
	}
	m.log.Info("node manager closed", "nodes", len(m.nodes))
}

func (m *NodeManager) mustOpen() {
	if m.closed {
		panic("forest: node manager used after Close")
	}
}
