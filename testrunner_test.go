package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "press", "key": "Up"},
			{"action": "mousedown", "button": "right"},
			{"action": "move", "x": 4, "y": -2},
			{"action": "wait", "frames": 3},
			{"action": "quit"}
		]
	}`)

	runner, err := LoadTestScript(data)
	require.NoError(t, err)
	require.Len(t, runner.steps, 5)
	assert.Equal(t, KeyUp, runner.steps[0].key)
	assert.Equal(t, MouseButtonRight, runner.steps[1].button)
	assert.Equal(t, float32(4), runner.steps[2].X)
	assert.Equal(t, float32(-2), runner.steps[2].Y)
	assert.Equal(t, 3, runner.steps[3].Frames)
}

func TestLoadTestScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"unknown key", `{"steps": [{"action": "press", "key": "F13"}]}`},
		{"missing key", `{"steps": [{"action": "tap"}]}`},
		{"unknown button", `{"steps": [{"action": "mousedown", "button": "side"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestTestRunnerSteps(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{
		"steps": [
			{"action": "press", "key": "ControlLeft"},
			{"action": "tap", "key": "Backslash"},
			{"action": "wait", "frames": 2},
			{"action": "release", "key": "ControlLeft"}
		]
	}`))
	require.NoError(t, err)

	var q EventQueue
	keys := NewKeyboardState()

	// Frame 1: press.
	runner.Step(&q, keys)
	assert.True(t, keys.IsKeyPressed(KeyControlLeft))
	assert.Equal(t, []Event{{Type: EventKeyDown, Key: KeyControlLeft}}, drain(&q))

	// Frame 2: tap queues both edges without holding.
	runner.Step(&q, keys)
	assert.False(t, keys.IsKeyPressed(KeyBackslash))
	assert.Equal(t, []Event{
		{Type: EventKeyDown, Key: KeyBackslash},
		{Type: EventKeyUp, Key: KeyBackslash},
	}, drain(&q))

	// Frames 3 and 4: wait.
	runner.Step(&q, keys)
	runner.Step(&q, keys)
	assert.Zero(t, q.Len())
	assert.True(t, keys.IsKeyPressed(KeyControlLeft))
	assert.False(t, runner.Done())

	// Frame 5: release, and the script is done.
	runner.Step(&q, keys)
	assert.False(t, keys.IsKeyPressed(KeyControlLeft))
	assert.Equal(t, 1, q.Len())
	assert.True(t, runner.Done())
}

func TestTestRunnerWaitsForDrain(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "x": 1, "y": 1},
		{"action": "quit"}
	]}`))
	require.NoError(t, err)

	var q EventQueue
	keys := NewKeyboardState()
	runner.Step(&q, keys)
	runner.Step(&q, keys) // queue not drained, no advance
	assert.Equal(t, 1, q.Len())

	drain(&q)
	runner.Step(&q, keys)
	assert.Equal(t, []Event{{Type: EventQuit}}, drain(&q))
	assert.True(t, runner.Done())
}

func TestTestRunnerScreenshots(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "start"},
		{"action": "screenshot"}
	]}`))
	require.NoError(t, err)

	var q EventQueue
	keys := NewKeyboardState()
	runner.Step(&q, keys)
	assert.Equal(t, []string{"start"}, runner.TakeScreenshots())
	assert.Empty(t, runner.TakeScreenshots())

	runner.Step(&q, keys)
	assert.Equal(t, []string{""}, runner.TakeScreenshots())
	assert.True(t, runner.Done())
}
