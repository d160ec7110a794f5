package forest

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of float32 values per vertex: x y z r g b.
const VertexStride = 6

// ErrInvalidMesh is returned when vertex or index data is malformed.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is raw geometry supplied once at render item creation. Vertices are
// interleaved position and color; Indices list triangles.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of whole vertices in the mesh.
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// Position returns the position of vertex i.
func (m Mesh) Position(i int) mgl32.Vec3 {
	o := i * VertexStride
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// Color returns the RGB color of vertex i.
func (m Mesh) Color(i int) mgl32.Vec3 {
	o := i*VertexStride + 3
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// Validate reports whether the mesh can be uploaded.
func (m Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("%w: no vertices", ErrInvalidMesh)
	}
	if len(m.Vertices)%VertexStride != 0 {
		return fmt.Errorf("%w: %d floats is not a multiple of stride %d", ErrInvalidMesh, len(m.Vertices), VertexStride)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices do not form whole triangles", ErrInvalidMesh, len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// Bounds returns the local-space axis-aligned bounding box of the mesh.
func (m Mesh) Bounds() (lo, hi mgl32.Vec3) {
	n := m.VertexCount()
	if n == 0 {
		return
	}
	lo = m.Position(0)
	hi = lo
	for i := 1; i < n; i++ {
		p := m.Position(i)
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], p[a])
			hi[a] = max(hi[a], p[a])
		}
	}
	return lo, hi
}

// Quad returns a unit quad centered on the origin in the XY plane with a
// red, green, blue, green corner palette.
func Quad() Mesh {
	return Mesh{
		Vertices: []float32{
			-0.5, -0.5, 0, 1, 0, 0, // bottom left
			0.5, -0.5, 0, 0, 1, 0, // bottom right
			-0.5, 0.5, 0, 0, 0, 1, // top left
			0.5, 0.5, 0, 0, 1, 0, // top right
		},
		Indices: []uint32{
			0, 1, 2,
			1, 3, 2,
		},
	}
}

// Geometry is a renderer-owned handle for uploaded mesh data.
type Geometry interface {
	// IndexCount is the number of indices drawn per submission.
	IndexCount() int
	// Release frees the underlying resources. Safe to call more than once.
	Release()
}

// Renderer is the drawing collaborator. It receives raw mesh data once per
// render item, the view and projection once per frame, and one model matrix
// per drawable per frame. Matrices are column-major.
type Renderer interface {
	Upload(mesh Mesh) (Geometry, error)
	SetView(view, projection mgl32.Mat4)
	Submit(g Geometry, model mgl32.Mat4)
}
