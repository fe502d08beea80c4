// Package scene defines the Scene interface for screens hosted by the ebiten loop.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a screen driven by ebiten's Update and Draw calls.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by one tick.
	// dt is the tick length in seconds (typically 1/60).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game; ebiten.Termination ends it cleanly.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, including when the game ends.
	// Use this for saving recordings or releasing devices.
	OnExit()
}
