package forest

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key in the fixed key space InputHandler reads.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyShiftLeft
	KeyControlLeft
	KeyAltLeft
	KeyEqual
	KeyMinus
	KeyBackslash // cycles the input mode
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:     "Unknown",
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeySpace:       "Space",
	KeyShiftLeft:   "ShiftLeft",
	KeyControlLeft: "ControlLeft",
	KeyAltLeft:     "AltLeft",
	KeyEqual:       "Equal",
	KeyMinus:       "Minus",
	KeyBackslash:   "Backslash",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// ParseKey returns the key with the given name, ignoring case.
func ParseKey(name string) (Key, error) {
	for k := KeyUp; k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// EventType identifies a discrete device event.
type EventType uint8

const (
	EventQuit EventType = iota
	EventKeyDown
	EventKeyUp
	EventMouseButtonDown
	EventMouseButtonUp
	EventMouseMotion
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "key down"
	case EventKeyUp:
		return "key up"
	case EventMouseButtonDown:
		return "mouse button down"
	case EventMouseButtonUp:
		return "mouse button up"
	case EventMouseMotion:
		return "mouse motion"
	default:
		return "unknown"
	}
}

// Event is one discrete device event.
type Event struct {
	Type EventType

	// Key fields (valid for EventKeyDown, EventKeyUp)
	Key    Key
	Repeat bool

	// Button is valid for EventMouseButtonDown and EventMouseButtonUp.
	Button MouseButton

	// Relative motion, valid for EventMouseMotion.
	RelX, RelY float32
}

// EventSource is a drainable queue of device events.
type EventSource interface {
	// PollEvent removes and returns the oldest pending event. It reports
	// false when the queue is empty.
	PollEvent() (Event, bool)
}

// KeyState answers whether a key is held right now.
type KeyState interface {
	IsKeyPressed(Key) bool
}

// EventQueue is a FIFO EventSource. The zero value is an empty queue.
type EventQueue struct {
	events []Event
}

// Push appends e to the queue.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// PollEvent implements EventSource.
func (q *EventQueue) PollEvent() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	e := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return e, true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// KeyboardState is a settable KeyState.
type KeyboardState struct {
	held [keyCount]bool
}

// NewKeyboardState returns a KeyboardState with no keys held.
func NewKeyboardState() *KeyboardState {
	return &KeyboardState{}
}

// Press marks k as held.
func (s *KeyboardState) Press(k Key) {
	if k < keyCount {
		s.held[k] = true
	}
}

// Release marks k as not held.
func (s *KeyboardState) Release(k Key) {
	if k < keyCount {
		s.held[k] = false
	}
}

// Reset releases every key.
func (s *KeyboardState) Reset() {
	s.held = [keyCount]bool{}
}

// IsKeyPressed implements KeyState.
func (s *KeyboardState) IsKeyPressed(k Key) bool {
	return k < keyCount && s.held[k]
}
