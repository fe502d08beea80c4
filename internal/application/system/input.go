package system

import (
	"github.com/younwookim/raycaster/internal/domain/entity"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

// keyBindings maps keys to the commands they trigger
var keyBindings = map[backend.Key]Command{
	backend.KeyUp:       MoveCommand{Direction: entity.Forward},
	backend.KeyDown:     MoveCommand{Direction: entity.Backward},
	backend.KeyLeft:     StrafeCommand{Direction: entity.Left},
	backend.KeyRight:    StrafeCommand{Direction: entity.Right},
	backend.KeyPageDown: TurnCommand{Direction: entity.Right},
	backend.KeyDelete:   TurnCommand{Direction: entity.Left},
	backend.KeyEscape:   QuitCommand{},
	backend.KeyT:        ToggleCommand{Target: ToggleTextures},
	backend.KeyR:        ToggleCommand{Target: ToggleAutoRotate},
	backend.KeyP:        ToggleCommand{Target: TogglePause},
}

// CommandForKey returns the command bound to a key
func CommandForKey(k backend.Key) (Command, bool) {
	cmd, ok := keyBindings[k]
	return cmd, ok
}

// InputSystem turns backend events into commands and applies them to the player
type InputSystem struct {
	world *entity.WorldMap
	speed entity.SpeedProfile
}

// NewInputSystem creates a new input system
func NewInputSystem(world *entity.WorldMap, speed entity.SpeedProfile) *InputSystem {
	return &InputSystem{
		world: world,
		speed: speed,
	}
}

// Commands maps events to commands in arrival order. Unbound keys are dropped.
func (s *InputSystem) Commands(events []backend.Event) []Command {
	cmds := make([]Command, 0, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case backend.EventQuit:
			cmds = append(cmds, QuitCommand{})
		case backend.EventKeyDown:
			if cmd, ok := CommandForKey(ev.Key); ok {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}

// ApplyResult is the outcome of one command
type ApplyResult struct {
	Player  entity.Player
	Blocked bool // a move ended in a wall and was reverted
}

// Apply applies a movement or turn command. Other commands leave the player unchanged.
func (s *InputSystem) Apply(cmd Command, p entity.Player, fc entity.FrameContext) ApplyResult {
	var next entity.Player

	switch c := cmd.(type) {
	case MoveCommand:
		next = p.Move(c.Direction, s.speed.Move(fc), s.world)
	case StrafeCommand:
		next = p.Strafe(c.Direction, s.speed.Move(fc))
	case TurnCommand:
		return ApplyResult{Player: p.Turn(c.Direction, s.speed.Turn(fc))}
	default:
		return ApplyResult{Player: p}
	}

	// A move that lands in a wall is undone as a whole; the pre-call state is its exact inverse
	if next.InWall(s.world) {
		return ApplyResult{Player: p, Blocked: true}
	}
	return ApplyResult{Player: next}
}

// ApplyAll applies commands in order and reports whether any move was reverted
func (s *InputSystem) ApplyAll(cmds []Command, p entity.Player, fc entity.FrameContext) ApplyResult {
	result := ApplyResult{Player: p}
	for _, cmd := range cmds {
		r := s.Apply(cmd, result.Player, fc)
		result.Player = r.Player
		result.Blocked = result.Blocked || r.Blocked
	}
	return result
}
