package forest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Config.Validate and LoadConfig for values
// that cannot drive a viewer.
var ErrInvalidConfig = errors.New("invalid config")

// WindowConfig sizes the viewer window. The aspect ratio for projection is
// taken from it.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Aspect returns width/height.
func (w WindowConfig) Aspect() float32 {
	return float32(w.Width) / float32(w.Height)
}

// InputConfig holds the per-frame gesture steps used by InputHandler.
type InputConfig struct {
	// MoveStep is how far a held direction key moves the selected item per frame.
	MoveStep float32 `yaml:"move_step"`
	// CameraStep is how far a held direction key moves the selected camera per frame.
	CameraStep float32 `yaml:"camera_step"`
	// ScaleStep is the per-frame uniform scale delta for Alt+Equal and Alt+Minus.
	ScaleStep float32 `yaml:"scale_step"`
	// ScaleMin floors every render item scale component.
	ScaleMin float32 `yaml:"scale_min"`
	// LookSensitivity scales relative mouse motion fed to mouse-look.
	LookSensitivity float32 `yaml:"look_sensitivity"`
	// RotateSensitivity scales drag motion into item rotation degrees.
	RotateSensitivity float32 `yaml:"rotate_sensitivity"`
}

// DefaultInputConfig returns the stock gesture steps.
func DefaultInputConfig() InputConfig {
	return InputConfig{
		MoveStep:          0.01,
		CameraStep:        0.05,
		ScaleStep:         0.01,
		ScaleMin:          ScaleMin,
		LookSensitivity:   0.333,
		RotateSensitivity: 1,
	}
}

// Config is the full viewer configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera Lens         `yaml:"camera"`
	Input  InputConfig  `yaml:"input"`
	Debug  bool         `yaml:"debug"`
}

// DefaultConfig returns a 1280x720 window, the default lens and the stock
// input steps.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Title: "Unlimited Forest", Width: 1280, Height: 720},
		Camera: DefaultLens,
		Input:  DefaultInputConfig(),
	}
}

// LoadConfig reads a YAML config from path. Fields absent from the file keep
// their defaults. A missing file yields DefaultConfig with no error; a file
// that exists but cannot be parsed or fails validation is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the config describes a usable viewer.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height))
	}
	if !(c.Camera.FovY > 0 && c.Camera.FovY < 180) {
		errs = append(errs, fmt.Errorf("%w: fov_y %v not in (0, 180)", ErrInvalidConfig, c.Camera.FovY))
	}
	if !(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far) {
		errs = append(errs, fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far))
	}
	if !(c.Input.ScaleMin > 0) {
		errs = append(errs, fmt.Errorf("%w: scale_min %v must be positive", ErrInvalidConfig, c.Input.ScaleMin))
	}
	in := c.Input
	if in.MoveStep < 0 || in.CameraStep < 0 || in.ScaleStep < 0 || in.LookSensitivity < 0 || in.RotateSensitivity < 0 {
		errs = append(errs, fmt.Errorf("%w: input steps must not be negative", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
