package marquee

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// FPSFont is the face the FPS widget uses. Required when ShowFPS is set.
	FPSFont Font
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	w, h  int
}

func (g *game) Update() error {
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

// Run opens a window and drives scene until the window is closed or an
// update returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		sw, sh := scene.Size()
		w, h = int(sw), int(sh)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)

	if cfg.ShowFPS && cfg.FPSFont != nil {
		fps := NewFPSWidget(cfg.FPSFont)
		scene.Root().AddChild(fps)
		// Pin the widget to the top-left corner of the viewport.
		hook := fps.OnUpdate
		fps.OnUpdate = func(dt float64) {
			vp := scene.Viewport()
			fps.SetPosition(vp.X+8, vp.Y+8)
			hook(dt)
		}
	}

	scene.Logger().Info("run: starting", "title", cfg.Title, "width", w, "height", h)
	return ebiten.RunGame(&game{scene: scene, w: w, h: h})
}
