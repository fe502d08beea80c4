// Package game provides the ebiten.Game that hosts the current Scene.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/raycaster/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	exited  bool
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// When the scene ends the game, its OnExit runs before the error is returned.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		g.exit()
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Close runs the current scene's OnExit once; used when the window loop returns
func (g *Game) Close() {
	g.exit()
}

func (g *Game) exit() {
	if g.exited {
		return
	}
	g.exited = true
	g.current.OnExit()
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

// SetTPS sets the tick rate used to derive dt.
func (g *Game) SetTPS(tps int) {
	if tps <= 0 {
		return
	}
	g.dt = (time.Second / time.Duration(tps)).Seconds()
}

// DT returns the tick length passed to the scene
func (g *Game) DT() float64 {
	return g.dt
}
