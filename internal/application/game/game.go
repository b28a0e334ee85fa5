// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/seojinpark/blade/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates a game loop starting on the given scene. The fixed update
// step is derived from the configured framerate; zero falls back to 60.
// The initial scene's OnEnter is called immediately.
func New(initial scene.Scene, screenW, screenH, framerate int) *Game {
	if framerate <= 0 {
		framerate = 60
	}
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
