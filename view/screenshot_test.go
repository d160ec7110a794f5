package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenshotName(t *testing.T) {
	tests := []struct {
		label, want string
	}{
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"after-scale", "after-scale"},
		{"camera mode/1", "camera_mode_1"},
		{" v1.2 ", "v1.2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, screenshotName(tt.label), "label %q", tt.label)
	}
}

func TestUnpremultiply(t *testing.T) {
	src := []byte{
		0, 0, 0, 0, // transparent
		10, 20, 30, 255, // opaque, unchanged
		64, 32, 0, 128, // half alpha
	}
	dst := make([]byte, len(src))
	unpremultiply(dst, src)
	assert.Equal(t, []byte{
		0, 0, 0, 0,
		10, 20, 30, 255,
		127, 63, 0, 128,
	}, dst)
}
