package forest

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	tests := []struct {
		vv, v, q bool
		want     slog.Level
	}{
		{false, false, false, slog.LevelWarn},
		{true, false, false, slog.LevelDebug},
		{false, true, false, slog.LevelInfo},
		{false, false, true, slog.LevelError},
		{true, true, true, slog.LevelDebug},
		{false, true, true, slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFromFlags(tt.vv, tt.v, tt.q), "vv=%v v=%v q=%v", tt.vv, tt.v, tt.q)
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Warn("shown", "id", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown id=3")
}

func TestNilLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		m := NewNodeManager(nil, nil)
		m.SelectNextCamera()
		m.SelectCamera(9)
	})
}
