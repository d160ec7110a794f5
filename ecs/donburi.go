package ecs

import (
	"log/slog"

	"github.com/unlimitedforest/forest"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for forest scene events.
var SceneEventType = events.NewEventType[forest.SceneEvent]()

// Store is a forest.EventStore that queues scene events in a Donburi world.
// Queued events reach subscribers when Flush runs or when the world's events
// are processed by other means.
type Store struct {
	world   donburi.World
	pending int
}

// NewDonburiStore creates a Store publishing into world.
func NewDonburiStore(world donburi.World) *Store {
	return &Store{world: world}
}

// World returns the world events are published into.
func (s *Store) World() donburi.World { return s.world }

// EmitEvent queues event on SceneEventType.
func (s *Store) EmitEvent(event forest.SceneEvent) {
	SceneEventType.Publish(s.world, event)
	s.pending++
}

// Pending returns the number of events emitted since the last Flush.
func (s *Store) Pending() int { return s.pending }

// Flush delivers queued scene events to subscribers. Call it once per frame.
func (s *Store) Flush() {
	SceneEventType.ProcessEvents(s.world)
	s.pending = 0
}

// Handlers routes scene events by type. Nil fields are skipped.
type Handlers struct {
	NodeCreated      func(id forest.NodeID, kind forest.NodeKind)
	SelectionChanged func(id forest.NodeID, kind forest.NodeKind)
	ModeChanged      func(mode forest.Mode)
}

// Subscribe registers h for scene events published into world.
func Subscribe(world donburi.World, h Handlers) {
	SceneEventType.Subscribe(world, h.dispatch)
}

func (h Handlers) dispatch(_ donburi.World, e forest.SceneEvent) {
	switch e.Type {
	case forest.SceneNodeCreated:
		if h.NodeCreated != nil {
			h.NodeCreated(e.NodeID, e.Kind)
		}
	case forest.SceneSelectionChanged:
		if h.SelectionChanged != nil {
			h.SelectionChanged(e.NodeID, e.Kind)
		}
	case forest.SceneModeChanged:
		if h.ModeChanged != nil {
			h.ModeChanged(e.Mode)
		}
	}
}

// LogHandlers returns handlers that log selection and mode changes at Info
// and node creation at Debug.
func LogHandlers(log *slog.Logger) Handlers {
	return Handlers{
		NodeCreated: func(id forest.NodeID, kind forest.NodeKind) {
			log.Debug("node created", "id", id, "kind", kind)
		},
		SelectionChanged: func(id forest.NodeID, kind forest.NodeKind) {
			log.Info("selection changed", "id", id, "kind", kind)
		},
		ModeChanged: func(mode forest.Mode) {
			log.Info("mode changed", "mode", mode)
		},
	}
}
