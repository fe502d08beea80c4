package state

// GameState represents the run state of the frame loop
type GameState int

const (
	StateRunning GameState = iota
	StatePaused
	StateStopped
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// TogglePause switches between running and paused. A stopped loop stays stopped.
func (s GameState) TogglePause() GameState {
	switch s {
	case StateRunning:
		return StatePaused
	case StatePaused:
		return StateRunning
	default:
		return s
	}
}

// Active reports whether frames are still produced
func (s GameState) Active() bool {
	return s == StateRunning || s == StatePaused
}
