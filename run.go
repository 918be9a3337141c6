package tiltcard

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Background Color
	// ShowFPS draws the actual FPS/TPS in the top-left corner.
	ShowFPS bool
	// Resizable lets the user resize the window. Layout always matches the
	// window size.
	Resizable bool
	// OnUpdate runs after the cards update each tick. Returning an error
	// (ebiten.Termination for a clean exit) stops the loop.
	OnUpdate func() error
	// OnDraw runs after the cards draw each frame.
	OnDraw func(screen *ebiten.Image)
}

// game adapts a set of cards to ebiten.Game.
type game struct {
	cards []*TiltCard
	cfg   RunConfig
}

func (g *game) Update() error {
	for _, c := range g.cards {
		c.Update()
	}
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background.A > 0 {
		screen.Fill(g.cfg.Background.RGBA())
	}
	for _, c := range g.cards {
		c.Draw(screen)
	}
	if g.cfg.OnDraw != nil {
		g.cfg.OnDraw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Resizable {
		return outsideWidth, outsideHeight
	}
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives the given cards until the window closes.
// Cards without a PointerSource get one, so mouse and touch work out of the
// box.
func Run(cfg RunConfig, cards ...*TiltCard) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	for _, c := range cards {
		if c.source == nil {
			c.SetPointerSource(NewPointerSource())
		}
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(&game{cards: cards, cfg: cfg}); err != nil {
		return fmt.Errorf("tiltcard: run: %w", err)
	}
	return nil
}
