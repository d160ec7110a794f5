package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/unlimitedforest/forest"
)

// Key repeat timing in ticks, close to common desktop defaults at 60 TPS.
const (
	defaultRepeatDelay    = 30
	defaultRepeatInterval = 3
)

// keyBinding maps a forest key to the physical Ebitengine key.
type keyBinding struct {
	key forest.Key
	eb  ebiten.Key
}

var keyBindings = []keyBinding{
	{forest.KeyUp, ebiten.KeyArrowUp},
	{forest.KeyDown, ebiten.KeyArrowDown},
	{forest.KeyLeft, ebiten.KeyArrowLeft},
	{forest.KeyRight, ebiten.KeyArrowRight},
	{forest.KeySpace, ebiten.KeySpace},
	{forest.KeyShiftLeft, ebiten.KeyShiftLeft},
	{forest.KeyControlLeft, ebiten.KeyControlLeft},
	{forest.KeyAltLeft, ebiten.KeyAltLeft},
	{forest.KeyEqual, ebiten.KeyEqual},
	{forest.KeyMinus, ebiten.KeyMinus},
	{forest.KeyBackslash, ebiten.KeyBackslash},
}

var mouseBindings = []struct {
	button forest.MouseButton
	eb     ebiten.MouseButton
}{
	{forest.MouseButtonLeft, ebiten.MouseButtonLeft},
	{forest.MouseButtonRight, ebiten.MouseButtonRight},
	{forest.MouseButtonMiddle, ebiten.MouseButtonMiddle},
}

// Device turns Ebitengine's polled input into forest events. Ebitengine only
// exposes current state, so Device keeps the previous frame's state to find
// edges and synthesizes auto-repeat key-downs for held keys.
//
// Device implements forest.KeyState.
type Device struct {
	held    []int // ticks each binding has been held, 0 when up
	buttons []bool

	cursorX, cursorY int
	cursorInit       bool

	// RepeatDelay is the number of ticks a key must be held before repeats
	// start; RepeatInterval is the number of ticks between repeats.
	RepeatDelay    int
	RepeatInterval int
}

// NewDevice creates a Device with default key repeat timing.
func NewDevice() *Device {
	return &Device{
		held:           make([]int, len(keyBindings)),
		buttons:        make([]bool, len(mouseBindings)),
		RepeatDelay:    defaultRepeatDelay,
		RepeatInterval: defaultRepeatInterval,
	}
}

// Poll appends this tick's events to q. Must be called from the game's
// Update.
func (d *Device) Poll(q *forest.EventQueue) {
	if ebiten.IsWindowBeingClosed() {
		q.InjectQuit()
	}

	for i, b := range keyBindings {
		pressed := ebiten.IsKeyPressed(b.eb)
		d.held[i] = d.keyEdge(q, b.key, pressed, d.held[i])
	}

	for i, b := range mouseBindings {
		pressed := ebiten.IsMouseButtonPressed(b.eb)
		if pressed != d.buttons[i] {
			q.InjectMouseButton(b.button, pressed)
			d.buttons[i] = pressed
		}
	}

	mx, my := ebiten.CursorPosition()
	if d.cursorInit && (mx != d.cursorX || my != d.cursorY) {
		q.InjectMouseMotion(float32(mx-d.cursorX), float32(my-d.cursorY))
	}
	d.cursorX, d.cursorY, d.cursorInit = mx, my, true
}

// keyEdge queues the events for one key given its current state and the
// number of ticks it had been held, and returns the new held count.
func (d *Device) keyEdge(q *forest.EventQueue, k forest.Key, pressed bool, ticks int) int {
	switch {
	case pressed && ticks == 0:
		q.InjectKeyPress(k)
		return 1
	case pressed:
		ticks++
		if d.RepeatInterval > 0 && ticks > d.RepeatDelay && (ticks-d.RepeatDelay)%d.RepeatInterval == 0 {
			q.InjectKeyRepeat(k)
		}
		return ticks
	case ticks > 0:
		q.InjectKeyRelease(k)
	}
	return 0
}

// IsKeyPressed implements forest.KeyState.
func (d *Device) IsKeyPressed(k forest.Key) bool {
	for _, b := range keyBindings {
		if b.key == k {
			return ebiten.IsKeyPressed(b.eb)
		}
	}
	return false
}
