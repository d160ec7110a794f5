package forest

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// InputHandler routes device input to one target kind at a time. In
// ModeItem, gestures edit the selected RenderItem; in ModeCamera they steer
// the selected Camera. Backslash cycles the mode.
//
// Key bindings:
//
//	ModeItem
//	  Up / Down          translate +Y / -Y
//	  Right / Left       translate +X / -X
//	  Space / ShiftLeft  translate +Z / -Z
//	  AltLeft + Equal    scale up
//	  AltLeft + Minus    scale down
//	  ControlLeft + drag rotate (horizontal motion about Y, vertical about X)
//
//	ModeCamera
//	  mouse motion       mouse-look
//	  Up / Down          move forward / backward
//	  Left / Right       strafe
//	  Space / ShiftLeft  move up / down
type InputHandler struct {
	mode     Mode
	dragging bool

	// Relative motion accumulated from this frame's events.
	motion mgl32.Vec2
	// Virtual pointer fed to Camera.MouseLook; integrates scaled motion.
	cursor mgl32.Vec2

	cfg   InputConfig
	log   *slog.Logger
	store EventStore
}

// NewInputHandler creates a handler in ModeItem. A nil logger discards
// output.
func NewInputHandler(cfg InputConfig, log *slog.Logger) *InputHandler {
	return &InputHandler{
		mode: ModeItem,
		cfg:  cfg,
		log:  orDiscard(log),
	}
}

// Mode returns the current target kind.
func (h *InputHandler) Mode() Mode { return h.mode }

// Dragging reports whether the left mouse button is held.
func (h *InputHandler) Dragging() bool { return h.dragging }

// SetEventStore attaches a store that receives mode-changed events.
func (h *InputHandler) SetEventStore(store EventStore) {
	h.store = store
}

// Update drains src, then applies this frame's gestures to the selected
// entity of the current mode. It returns false when a quit event was seen,
// in which case no gestures are applied. If no entity of the current kind
// exists the frame is a no-op. Panics if nodes is nil.
func (h *InputHandler) Update(src EventSource, keys KeyState, nodes *NodeManager) bool {
	if nodes == nil {
		panic("forest: InputHandler.Update called with nil NodeManager")
	}
	h.motion = mgl32.Vec2{}
	quit := false
	for {
		e, ok := src.PollEvent()
		if !ok {
			break
		}
		switch e.Type {
		case EventQuit:
			quit = true
		case EventKeyDown:
			if e.Key == KeyBackslash && !e.Repeat {
				h.cycleMode()
			}
		case EventMouseButtonDown:
			if e.Button == MouseButtonLeft {
				h.dragging = true
			}
		case EventMouseButtonUp:
			if e.Button == MouseButtonLeft {
				h.dragging = false
			}
		case EventMouseMotion:
			h.motion = h.motion.Add(mgl32.Vec2{e.RelX, e.RelY})
		}
	}
	if quit {
		h.log.Info("quit requested")
		return false
	}

	switch h.mode {
	case ModeItem:
		if it := nodes.RenderItem(); it != nil {
			h.updateItem(keys, it)
		}
	case ModeCamera:
		if c := nodes.Camera(); c != nil {
			h.updateCamera(keys, c)
		}
	}
	return true
}

func (h *InputHandler) cycleMode() {
	h.mode = h.mode.next()
	h.log.Info("input mode changed", "mode", h.mode)
	if h.store != nil {
		h.store.EmitEvent(SceneEvent{Type: SceneModeChanged, Mode: h.mode})
	}
}

func (h *InputHandler) updateItem(keys KeyState, it *RenderItem) {
	if h.dragging && keys.IsKeyPressed(KeyControlLeft) {
		rot := mgl32.Vec3{h.motion.Y(), h.motion.X(), 0}.Mul(h.cfg.RotateSensitivity)
		h.motion = mgl32.Vec2{}
		if rot != (mgl32.Vec3{}) {
			it.Rotate(rot)
			h.log.Debug("rotate item", "id", it.ID(), "delta", rot, "rotation", it.rotation)
		}
	}

	step := h.cfg.MoveStep
	var move mgl32.Vec3
	if keys.IsKeyPressed(KeyUp) {
		move[1] += step
	}
	if keys.IsKeyPressed(KeyDown) {
		move[1] -= step
	}
	if keys.IsKeyPressed(KeyRight) {
		move[0] += step
	}
	if keys.IsKeyPressed(KeyLeft) {
		move[0] -= step
	}
	if keys.IsKeyPressed(KeySpace) {
		move[2] += step
	}
	if keys.IsKeyPressed(KeyShiftLeft) {
		move[2] -= step
	}
	if move != (mgl32.Vec3{}) {
		it.Translate(move)
		h.log.Debug("translate item", "id", it.ID(), "delta", move, "position", it.position)
	}

	if keys.IsKeyPressed(KeyAltLeft) {
		var d float32
		if keys.IsKeyPressed(KeyEqual) {
			d += h.cfg.ScaleStep
		}
		if keys.IsKeyPressed(KeyMinus) {
			d -= h.cfg.ScaleStep
		}
		if d != 0 {
			it.Scale(mgl32.Vec3{d, d, d})
			h.log.Debug("scale item", "id", it.ID(), "delta", d, "scale", it.scale)
		}
	}
}

func (h *InputHandler) updateCamera(keys KeyState, c *Camera) {
	if h.motion != (mgl32.Vec2{}) {
		h.cursor = h.cursor.Add(h.motion.Mul(h.cfg.LookSensitivity))
		c.MouseLook(h.cursor)
		h.log.Debug("mouse look", "id", c.ID(), "cursor", h.cursor, "direction", c.direction)
	}

	step := h.cfg.CameraStep
	moved := false
	if keys.IsKeyPressed(KeyUp) {
		c.MoveForward(step)
		moved = true
	}
	if keys.IsKeyPressed(KeyDown) {
		c.MoveBackward(step)
		moved = true
	}
	if keys.IsKeyPressed(KeyLeft) {
		c.MoveLeft(step)
		moved = true
	}
	if keys.IsKeyPressed(KeyRight) {
		c.MoveRight(step)
		moved = true
	}
	if keys.IsKeyPressed(KeySpace) {
		c.MoveUp(step)
		moved = true
	}
	if keys.IsKeyPressed(KeyShiftLeft) {
		c.MoveDown(step)
		moved = true
	}
	if moved {
		h.log.Debug("move camera", "id", c.ID(), "eye", c.eye)
	}
}
