package forest

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	Button string  `json:"button,omitempty"`
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`

	key    Key
	button MouseButton
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences scripted input across frames for automated runs of
// the viewer. Call Step once per frame before InputHandler.Update.
//
// Script actions:
//
//	press      {"key"}     hold a key and queue its down edge
//	release    {"key"}     let go of a key and queue its up edge
//	tap        {"key"}     queue a down and up edge without holding
//	mousedown  {"button"}  queue a button press (default left)
//	mouseup    {"button"}  queue a button release (default left)
//	move       {"x","y"}   queue a relative pointer motion
//	wait       {"frames"}  do nothing for the given number of frames
//	screenshot {"label"}   capture the frame drawn after this step
//	quit                   queue a quit request
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	screenshots []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready to
// be stepped.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		if err := script.Steps[i].resolve(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st *testStep) resolve() error {
	switch st.Action {
	case "press", "release", "tap":
		k, err := ParseKey(st.Key)
		if err != nil {
			return err
		}
		st.key = k
	case "mousedown", "mouseup":
		switch st.Button {
		case "", "left":
			st.button = MouseButtonLeft
		case "right":
			st.button = MouseButtonRight
		case "middle":
			st.button = MouseButtonMiddle
		default:
			return fmt.Errorf("unknown button %q", st.Button)
		}
	case "move", "wait", "quit", "screenshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// TakeScreenshots returns the labels of screenshots requested since the last
// call. A renderer captures them after drawing the current frame.
func (r *TestRunner) TakeScreenshots() []string {
	labels := r.screenshots
	r.screenshots = nil
	return labels
}

// Step advances the runner by one frame, queueing events on q and updating
// held keys in keys.
func (r *TestRunner) Step(q *EventQueue, keys *KeyboardState) {
	if r.done {
		return
	}
	// Wait for pending events to drain before advancing.
	if q.Len() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		keys.Press(st.key)
		q.InjectKeyPress(st.key)
	case "release":
		keys.Release(st.key)
		q.InjectKeyRelease(st.key)
	case "tap":
		q.InjectKeyPress(st.key)
		q.InjectKeyRelease(st.key)
	case "mousedown":
		q.InjectMouseButton(st.button, true)
	case "mouseup":
		q.InjectMouseButton(st.button, false)
	case "move":
		q.InjectMouseMotion(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		q.InjectQuit()
	case "screenshot":
		r.screenshots = append(r.screenshots, st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
