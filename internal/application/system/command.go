package system

import (
	"fmt"

	"github.com/younwookim/raycaster/internal/domain/entity"
)

// Command represents an action requested by the player for one frame
type Command interface {
	isCommand()
}

// MoveCommand travels forward or backward along the view direction
type MoveCommand struct {
	Direction entity.MoveDirection
}

func (MoveCommand) isCommand() {}

func (c MoveCommand) String() string { return "Move" + c.Direction.String() }

// StrafeCommand travels sideways along the camera plane
type StrafeCommand struct {
	Direction entity.TurnDirection
}

func (StrafeCommand) isCommand() {}

func (c StrafeCommand) String() string { return "Strafe" + c.Direction.String() }

// TurnCommand rotates the view
type TurnCommand struct {
	Direction entity.TurnDirection
}

func (TurnCommand) isCommand() {}

func (c TurnCommand) String() string { return "Turn" + c.Direction.String() }

// QuitCommand stops the frame loop after the current frame
type QuitCommand struct{}

func (QuitCommand) isCommand() {}

func (QuitCommand) String() string { return "Quit" }

// Toggle names a runtime switch
type Toggle int

const (
	ToggleTextures Toggle = iota
	ToggleAutoRotate
	TogglePause
)

// String returns the string representation of the switch
func (t Toggle) String() string {
	switch t {
	case ToggleTextures:
		return "Textures"
	case ToggleAutoRotate:
		return "AutoRotate"
	case TogglePause:
		return "Pause"
	default:
		return fmt.Sprintf("Toggle(%d)", int(t))
	}
}

// ToggleCommand flips a runtime switch
type ToggleCommand struct {
	Target Toggle
}

func (ToggleCommand) isCommand() {}

func (c ToggleCommand) String() string { return "Toggle" + c.Target.String() }
