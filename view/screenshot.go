package view

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// capture reads screen into a straight-alpha image.
func capture(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, 4*w*h)
	screen.ReadPixels(pix)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	unpremultiply(img.Pix, pix)
	return img
}

// unpremultiply copies premultiplied RGBA src into straight-alpha dst.
func unpremultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i], dst[i+1], dst[i+2], dst[i+3] = r, g, b, a
	}
}

// saveScreenshots writes one PNG per label into dir and returns the paths
// written. Names are a shared timestamp plus the sanitized label.
func saveScreenshots(screen *ebiten.Image, dir string, labels []string, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	img := capture(screen)
	stamp := now.Format("20060102_150405")
	var paths []string
	for _, label := range labels {
		path := filepath.Join(dir, stamp+"_"+screenshotName(label)+".png")
		if err := writePNG(path, img); err != nil {
			return paths, fmt.Errorf("screenshot: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// screenshotName keeps letters, digits, '-' and '.', replaces everything
// else with '_', and names empty labels "unlabeled".
func screenshotName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, label)
}
