package canopy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// ClearColor fills the screen before Draw. A zero alpha skips the fill.
	ClearColor Color

	// Update runs once per tick before the context is pumped.
	Update func() error

	// Draw renders the frame.
	Draw func(screen *ebiten.Image)

	// ShowFPS overlays the current FPS and TPS.
	ShowFPS bool
}

// Run opens a window and drives ctx from the Ebitengine game loop: each tick
// calls cfg.Update and then Context.Update. It blocks until the window is
// closed or Update returns an error.
func Run(ctx *Context, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{ctx: ctx, cfg: cfg})
}

// game adapts a Context to ebiten.Game.
type game struct {
	ctx *Context
	cfg RunConfig
}

func (g *game) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	g.ctx.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.RGBA())
	}
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
