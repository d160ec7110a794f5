package forest

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrReleased is returned by RenderItem.Update once the item's geometry has
// been released by NodeManager.Close.
var ErrReleased = errors.New("render item released")

// RenderItem is a drawable node with a world position, Euler rotation in
// degrees, and non-uniform scale. Each scale component stays at or above the
// item's scale floor.
type RenderItem struct {
	nodeBase

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
	scaleMin float32

	geometry Geometry
	renderer Renderer

	model    mgl32.Mat4
	released bool
}

// newRenderItem creates an item owning g. The initial scale is floored like
// any later scale change.
func newRenderItem(id NodeID, g Geometry, r Renderer, position, rotation, scale mgl32.Vec3, scaleMin float32) *RenderItem {
	it := &RenderItem{
		nodeBase: nodeBase{id: id},
		position: position,
		rotation: rotation,
		scaleMin: scaleMin,
		geometry: g,
		renderer: r,
	}
	it.scale = it.floor(scale)
	it.model = it.ModelMatrix()
	return it
}

// Kind reports KindRenderItem.
func (it *RenderItem) Kind() NodeKind { return KindRenderItem }

// Position returns the world position.
func (it *RenderItem) Position() mgl32.Vec3 { return it.position }

// Rotation returns the accumulated Euler angles in degrees.
func (it *RenderItem) Rotation() mgl32.Vec3 { return it.rotation }

// ScaleFactors returns the per-axis scale.
func (it *RenderItem) ScaleFactors() mgl32.Vec3 { return it.scale }

// Geometry returns the renderer handle owned by this item.
func (it *RenderItem) Geometry() Geometry { return it.geometry }

// Translate adds delta to the world position.
func (it *RenderItem) Translate(delta mgl32.Vec3) {
	it.position = it.position.Add(delta)
}

// Rotate adds delta degrees to each Euler angle. Angles are not wrapped.
func (it *RenderItem) Rotate(delta mgl32.Vec3) {
	it.rotation = it.rotation.Add(delta)
}

// Scale adds delta to each scale component, flooring every axis at the
// item's minimum. Shrinking past the floor is absorbed silently.
func (it *RenderItem) Scale(delta mgl32.Vec3) {
	it.scale = it.floor(it.scale.Add(delta))
}

// floor clamps each axis to scaleMin. Non-finite components collapse to the
// floor.
func (it *RenderItem) floor(s mgl32.Vec3) mgl32.Vec3 {
	for i, v := range s {
		if !finite(v) || v < it.scaleMin {
			s[i] = it.scaleMin
		}
	}
	return s
}

// ModelMatrix returns T * Rz * Ry * Rx * S for the current state.
func (it *RenderItem) ModelMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(it.position[0], it.position[1], it.position[2])
	r := mgl32.HomogRotate3DZ(mgl32.DegToRad(it.rotation[2])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(it.rotation[1]))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(it.rotation[0])))
	s := mgl32.Scale3D(it.scale[0], it.scale[1], it.scale[2])
	return t.Mul4(r).Mul4(s)
}

// Update rebuilds the model matrix and submits the item to its renderer.
func (it *RenderItem) Update() error {
	if it.released {
		return fmt.Errorf("update node %d: %w", it.id, ErrReleased)
	}
	it.model = it.ModelMatrix()
	if it.renderer != nil && it.geometry != nil {
		it.renderer.Submit(it.geometry, it.model)
	}
	return nil
}

func (it *RenderItem) release() {
	if it.released {
		return
	}
	it.released = true
	if it.geometry != nil {
		it.geometry.Release()
	}
}

func (it *RenderItem) String() string {
	return fmt.Sprintf("render item %d pos=%v rot=%v scale=%v", it.id, it.position, it.rotation, it.scale)
}
