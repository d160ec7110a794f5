package forest

// Node is the identity and per-frame hook shared by every scene entity.
//
// The set of implementations is closed: only *Camera and *RenderItem satisfy
// Node, which lets NodeManager iterate nodes polymorphically while callers
// switch exhaustively on Kind.
type Node interface {
	// ID returns the identifier assigned by the owning NodeManager.
	ID() NodeID
	// Kind reports which variant this node is.
	Kind() NodeKind
	// Update runs the node's per-frame work. Cameras do nothing; render
	// items rebuild their model matrix and submit themselves for drawing.
	Update() error

	// release frees resources acquired at construction. Called exactly once
	// by NodeManager.Close.
	release()
}

// nodeBase carries the identity every node has.
type nodeBase struct {
	id NodeID
}

// ID returns the node's identifier.
func (n *nodeBase) ID() NodeID {
	return n.id
}

// Compile-time checks that the variant set implements Node.
var (
	_ Node = (*Camera)(nil)
	_ Node = (*RenderItem)(nil)
)
