// Package host runs a keyframe Player inside an Ebitengine game loop.
//
// The keyframe core has no clock; this package supplies one. Each tick the
// game advances the player by 1/TPS seconds, then calls the user's Draw.
//
//	player := keyframe.NewPlayer(anim)
//	err := host.Run(player, host.RunConfig{
//		Title: "Fade", Width: 640, Height: 480,
//		Draw: func(screen *ebiten.Image) { host.DrawNode(screen, box) },
//	})
package host

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/keyframe"
)

// RunConfig configures the window and per-frame hooks for Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	ClearColor keyframe.Color
	// ShowFPS overlays FPS, TPS and the player's time in the top-left corner.
	ShowFPS bool
	// Draw is called every frame after the screen is cleared.
	Draw func(screen *ebiten.Image)
	// Update is called every tick after the player has advanced.
	Update func() error
}

// Run opens a window and drives p until the window is closed or Update
// returns an error.
func Run(p *keyframe.Player, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("host: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(newGame(p, cfg))
}

// game implements ebiten.Game.
type game struct {
	player *keyframe.Player
	cfg    RunConfig
}

func newGame(p *keyframe.Player, cfg RunConfig) *game {
	return &game{player: p, cfg: cfg}
}

func (g *game) Update() error {
	g.player.Update(float32(1.0 / float64(ebiten.TPS())))
	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor)
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nt: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.player.Time))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
