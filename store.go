package forest

// SceneEventType identifies what changed in the scene.
type SceneEventType uint8

const (
	SceneNodeCreated      SceneEventType = iota // a camera or render item was created
	SceneSelectionChanged                       // the selected camera or render item changed
	SceneModeChanged                            // the input handler switched target kind
)

func (t SceneEventType) String() string {
	switch t {
	case SceneNodeCreated:
		return "node created"
	case SceneSelectionChanged:
		return "selection changed"
	case SceneModeChanged:
		return "mode changed"
	default:
		return "unknown"
	}
}

// SceneEvent describes a change in scene state. NodeID and Kind are set for
// creation and selection events; Mode is set for mode changes.
type SceneEvent struct {
	Type   SceneEventType
	NodeID NodeID
	Kind   NodeKind
	Mode   Mode
}

// EventStore receives scene events as they happen. See the ecs package for a
// Donburi-backed implementation.
type EventStore interface {
	EmitEvent(SceneEvent)
}
