package forest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Lens describes a perspective projection. FovY is the vertical field of view
// in degrees.
type Lens struct {
	FovY float32 `yaml:"fov_y"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// DefaultLens is the lens stamped on cameras when nothing else is configured.
var DefaultLens = Lens{FovY: 45, Near: 0.1, Far: 100}

// Default camera pose: two units back from the origin, looking down -Z.
var (
	defaultEye       = mgl32.Vec3{0, 0, 2}
	defaultDirection = mgl32.Vec3{0, 0, -1}
	defaultUp        = WorldY
)

// Camera is a free-look viewpoint. Direction and up are kept unit length; the
// view matrix is always LookAt(eye, eye+direction, up).
type Camera struct {
	nodeBase

	eye       mgl32.Vec3
	direction mgl32.Vec3
	up        mgl32.Vec3
	lens      Lens

	// Mouse-look baseline, set from the first sample MouseLook sees.
	prevMouse mgl32.Vec2
	mouseInit bool
}

// newCamera creates a camera with the given pose. Panics if direction or up
// is degenerate.
func newCamera(id NodeID, eye, direction, up mgl32.Vec3, lens Lens) *Camera {
	return &Camera{
		nodeBase:  nodeBase{id: id},
		eye:       eye,
		direction: mustNormalize(direction, "camera view direction"),
		up:        mustNormalize(up, "camera up vector"),
		lens:      lens,
	}
}

// Kind reports KindCamera.
func (c *Camera) Kind() NodeKind { return KindCamera }

// Update is a no-op for cameras; renderers pull the view matrix on demand.
func (c *Camera) Update() error { return nil }

func (c *Camera) release() {}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 { return c.eye }

// Direction returns the unit view direction.
func (c *Camera) Direction() mgl32.Vec3 { return c.direction }

// Up returns the unit up vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// Lens returns the camera's projection parameters.
func (c *Camera) Lens() Lens { return c.lens }

// SetLens replaces the camera's projection parameters.
func (c *Camera) SetLens(l Lens) { c.lens = l }

// ViewMatrix returns the right-handed world-to-camera transform. It is
// computed on every call so it always reflects the latest mutation.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.eye.Add(c.direction), c.up)
}

// ProjectionMatrix returns the perspective projection for the given
// width/height aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.lens.FovY), aspect, c.lens.Near, c.lens.Far)
}

// SetLocation moves the eye to pos.
func (c *Camera) SetLocation(pos mgl32.Vec3) {
	c.eye = pos
}

// Translate adds delta to the eye position.
func (c *Camera) Translate(delta mgl32.Vec3) {
	c.eye = c.eye.Add(delta)
}

// MoveForward moves the eye speed units along the view direction.
func (c *Camera) MoveForward(speed float32) {
	c.eye = c.eye.Add(c.direction.Mul(speed))
}

// MoveBackward moves the eye speed units against the view direction.
func (c *Camera) MoveBackward(speed float32) {
	c.eye = c.eye.Sub(c.direction.Mul(speed))
}

// MoveLeft strafes the eye speed units to the left.
func (c *Camera) MoveLeft(speed float32) {
	c.eye = c.eye.Sub(c.right().Mul(speed))
}

// MoveRight strafes the eye speed units to the right.
func (c *Camera) MoveRight(speed float32) {
	c.eye = c.eye.Add(c.right().Mul(speed))
}

// MoveUp moves the eye speed units along the up vector.
func (c *Camera) MoveUp(speed float32) {
	c.eye = c.eye.Add(c.up.Normalize().Mul(speed))
}

// MoveDown moves the eye speed units against the up vector.
func (c *Camera) MoveDown(speed float32) {
	c.eye = c.eye.Sub(c.up.Normalize().Mul(speed))
}

// right is recomputed from the current basis on every call.
func (c *Camera) right() mgl32.Vec3 {
	return c.direction.Cross(c.up).Normalize()
}

// MouseLook reorients the camera from an absolute pointer sample.
//
// The first call only records the sample as the baseline. Each later call
// takes delta = previous - current, yaws the direction delta.X degrees about
// the up vector, then pitches it delta.Y degrees about the fixed world X axis,
// and renormalizes. Pitch deliberately uses the world axis rather than the
// camera's right axis.
func (c *Camera) MouseLook(mouse mgl32.Vec2) {
	if !c.mouseInit {
		c.prevMouse = mouse
		c.mouseInit = true
		return
	}
	delta := c.prevMouse.Sub(mouse)
	c.prevMouse = mouse

	dir := mgl32.QuatRotate(mgl32.DegToRad(delta.X()), c.up).Rotate(c.direction)
	dir = mgl32.QuatRotate(mgl32.DegToRad(delta.Y()), WorldX).Rotate(dir)
	c.direction = dir.Normalize()
}

func (c *Camera) String() string {
	return fmt.Sprintf("camera %d eye=%v dir=%v up=%v", c.id, c.eye, c.direction, c.up)
}
