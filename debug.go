package forest

import "time"

// sweepStats holds timing and counts for one NodeManager.Update sweep.
// Only populated when debug mode is on.
type sweepStats struct {
	duration time.Duration
	nodes    int
	items    int
	failed   int
}

// debugLog writes sweep stats at debug level.
func (m *NodeManager) debugLog(stats sweepStats) {
	if !m.debug {
		return
	}
	m.log.Debug("sweep",
		"duration", stats.duration,
		"nodes", stats.nodes,
		"render_items", stats.items,
		"failed", stats.failed)
}

// debugMaxNodeCount is the node count past which debug mode warns on every
// creation. The manager keeps a flat arena, so very large scenes usually mean
// a creation loop gone wrong.
const debugMaxNodeCount = 10000

func (m *NodeManager) debugCheckNodeCount() {
	if !m.debug {
		return
	}
	if n := len(m.nodes); n > debugMaxNodeCount {
		m.log.Warn("node count exceeds threshold", "nodes", n, "threshold", debugMaxNodeCount)
	}
}
