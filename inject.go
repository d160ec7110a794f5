package forest

// InjectKeyPress queues a key-down edge for k.
func (q *EventQueue) InjectKeyPress(k Key) {
	q.Push(Event{Type: EventKeyDown, Key: k})
}

// InjectKeyRepeat queues an auto-repeat key-down for k, as sent by a device
// while the key stays held.
func (q *EventQueue) InjectKeyRepeat(k Key) {
	q.Push(Event{Type: EventKeyDown, Key: k, Repeat: true})
}

// InjectKeyRelease queues a key-up edge for k.
func (q *EventQueue) InjectKeyRelease(k Key) {
	q.Push(Event{Type: EventKeyUp, Key: k})
}

// InjectMouseButton queues a press or release of button.
func (q *EventQueue) InjectMouseButton(button MouseButton, pressed bool) {
	t := EventMouseButtonUp
	if pressed {
		t = EventMouseButtonDown
	}
	q.Push(Event{Type: t, Button: button})
}

// InjectMouseMotion queues a relative pointer motion.
func (q *EventQueue) InjectMouseMotion(dx, dy float32) {
	q.Push(Event{Type: EventMouseMotion, RelX: dx, RelY: dy})
}

// InjectQuit queues a quit request.
func (q *EventQueue) InjectQuit() {
	q.Push(Event{Type: EventQuit})
}
