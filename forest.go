package forest

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeID identifies a node within one NodeManager. IDs are assigned densely
// from zero in creation order and are never reused.
type NodeID uint32

// NodeKind distinguishes the closed set of node variants.
type NodeKind uint8

const (
	KindCamera     NodeKind = iota // viewpoint producing a view matrix
	KindRenderItem                 // drawable producing a model matrix
)

func (k NodeKind) String() string {
	switch k {
	case KindCamera:
		return "camera"
	case KindRenderItem:
		return "render item"
	default:
		return "unknown"
	}
}

// Mode is the entity kind the InputHandler currently routes gestures to.
type Mode uint8

const (
	ModeItem   Mode = iota // gestures edit the selected RenderItem
	ModeCamera             // gestures steer the selected Camera
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeItem:
		return "item"
	case ModeCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// next returns the mode after m, wrapping to the first.
func (m Mode) next() Mode {
	return (m + 1) % modeCount
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// ScaleMin is the default per-axis scale floor for render items.
const ScaleMin float32 = 0.1

// basisEpsilon is the shortest vector accepted as a camera basis direction.
const basisEpsilon = 1e-6

// WorldX is the fixed world axis used for mouse-look pitch.
var WorldX = mgl32.Vec3{1, 0, 0}

// WorldY is the world up axis used by the default camera.
var WorldY = mgl32.Vec3{0, 1, 0}

// mustNormalize returns v scaled to unit length. Panics if v is (nearly) zero
// or not finite, since a degenerate camera basis is a programming error.
func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func mustNormalize(v mgl32.Vec3, what string) mgl32.Vec3 {
	l := v.Len()
	if l < basisEpsilon || !finite(l) {
		panic("forest: " + what + " must be a finite non-zero vector")
	}
	return v.Mul(1 / l)
}
