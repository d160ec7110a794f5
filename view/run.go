package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/unlimitedforest/forest"
)

// RunConfig holds optional settings for Run. Zero window fields fall back to
// the viewer's config.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowHUD bool
	// CaptureCursor hides and locks the pointer so mouse-look is unbounded.
	CaptureCursor bool
	// Script, if set, replaces device input. Run returns once the script is
	// done.
	Script *forest.TestRunner
	// ScreenshotDir receives PNGs requested by the script. Defaults to
	// "screenshots".
	ScreenshotDir string
	// OnFrame, if set, runs after every completed viewer frame.
	OnFrame func()
}

// game implements ebiten.Game around a forest.Viewer.
type game struct {
	viewer   *forest.Viewer
	renderer *Renderer
	device   *Device
	cfg      RunConfig

	queue forest.EventQueue
	keys  *forest.KeyboardState

	screenshots []string

	// closeRequested reports a window close. Polled by Device outside script
	// mode.
	closeRequested func() bool
}

// Run opens a window and drives v one frame per tick until a quit event,
// a finished script, or a window close. The viewer is closed before Run
// returns.
func Run(v *forest.Viewer, r *Renderer, cfg RunConfig) error {
	win := v.Config().Window
	if cfg.Title == "" {
		cfg.Title = win.Title
	}
	if cfg.Width <= 0 {
		cfg.Width = win.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = win.Height
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowClosingHandled(true)
	if cfg.CaptureCursor {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	g := &game{
		viewer:   v,
		renderer: r,
		device:   NewDevice(),
		cfg:      cfg,
		keys:     forest.NewKeyboardState(),

		closeRequested: ebiten.IsWindowBeingClosed,
	}
	err := ebiten.RunGame(g)
	v.Close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *game) Update() error {
	var keys forest.KeyState = g.device
	if g.cfg.Script != nil {
		if g.cfg.Script.Done() && len(g.screenshots) == 0 {
			return ebiten.Termination
		}
		if g.closeRequested() {
			g.queue.InjectQuit()
		}
		g.cfg.Script.Step(&g.queue, g.keys)
		g.screenshots = append(g.screenshots, g.cfg.Script.TakeScreenshots()...)
		keys = g.keys
	} else {
		g.device.Poll(&g.queue)
	}

	g.renderer.Begin()
	if !g.viewer.Frame(&g.queue, keys) {
		return ebiten.Termination
	}
	if g.cfg.OnFrame != nil {
		g.cfg.OnFrame()
	}

	var selected forest.Geometry
	if it := g.viewer.Nodes().RenderItem(); it != nil && g.viewer.Input().Mode() == forest.ModeItem {
		selected = it.Geometry()
	}
	g.renderer.SetHighlight(selected)
	g.renderer.Advance(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.Flush(screen)
	if len(g.screenshots) > 0 {
		paths, err := saveScreenshots(screen, g.cfg.ScreenshotDir, g.screenshots, time.Now())
		if err != nil {
			g.renderer.log.Error("screenshot failed", "err", err)
		}
		for _, p := range paths {
			g.renderer.log.Info("screenshot saved", "path", p)
		}
		g.screenshots = g.screenshots[:0]
	}
	if g.cfg.ShowHUD {
		ebitenutil.DebugPrint(screen, g.hud())
	}
}

// hud returns the overlay text: frame rates and the current input target.
func (g *game) hud() string {
	nodes := g.viewer.Nodes()
	target := "none"
	switch g.viewer.Input().Mode() {
	case forest.ModeItem:
		if it := nodes.RenderItem(); it != nil {
			target = it.String()
		}
	case forest.ModeCamera:
		if c := nodes.Camera(); c != nil {
			target = c.String()
		}
	}
	s := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nmode: %s\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.viewer.Input().Mode(), target)
	if err := g.viewer.Err(); err != nil {
		s += "\nnode errors: " + err.Error()
	}
	return s
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
