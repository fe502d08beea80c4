package entity

// MoveDirection selects forward or backward travel along the view direction
type MoveDirection int

const (
	Forward MoveDirection = iota
	Backward
)

// Opposite returns the reverse direction
func (d MoveDirection) Opposite() MoveDirection {
	if d == Forward {
		return Backward
	}
	return Forward
}

// String returns the string representation of the direction
func (d MoveDirection) String() string {
	switch d {
	case Forward:
		return "Forward"
	case Backward:
		return "Backward"
	default:
		return "Unknown"
	}
}

// TurnDirection selects left or right for strafing and rotation
type TurnDirection int

const (
	Left TurnDirection = iota
	Right
)

// Opposite returns the reverse direction
func (d TurnDirection) Opposite() TurnDirection {
	if d == Left {
		return Right
	}
	return Left
}

// String returns the string representation of the direction
func (d TurnDirection) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Player is the camera state: position, view direction and camera plane.
// The plane length sets the horizontal field of view (0.66 against a unit direction is ~66 degrees).
// All operations return a new value; the receiver is never modified.
type Player struct {
	Position  Vec2
	Direction Vec2
	Plane     Vec2
}

// NewPlayer creates a player state
func NewPlayer(position, direction, plane Vec2) Player {
	return Player{
		Position:  position,
		Direction: direction,
		Plane:     plane,
	}
}

// DefaultPlayer is the reference start: (9,8) looking down -x with a 0.66 plane
func DefaultPlayer() Player {
	return NewPlayer(Vec2{X: 9, Y: 8}, Vec2{X: -1, Y: 0}, Vec2{X: 0, Y: 0.66})
}

// InWall reports whether the player's position lies in a wall cell of m
func (p Player) InWall(m *WorldMap) bool {
	return m.IsWall(p.Position)
}

// Move travels along the view direction. Each axis is updated on its own and only when
// the cell reached by moving along that axis alone is passable, which lets the player
// slide along walls instead of stopping on diagonal contact.
func (p Player) Move(dir MoveDirection, speed float64, m *WorldMap) Player {
	if speed == 0 {
		return p
	}
	if dir == Backward {
		speed = -speed
	}

	step := p.Direction.Scale(speed)
	next := p

	if !m.IsWall(Vec2{X: p.Position.X + step.X, Y: p.Position.Y}) {
		next.Position.X = p.Position.X + step.X
	}
	if !m.IsWall(Vec2{X: p.Position.X, Y: p.Position.Y + step.Y}) {
		next.Position.Y = p.Position.Y + step.Y
	}

	return next
}

// Strafe moves sideways along the camera plane without any collision check
func (p Player) Strafe(dir TurnDirection, speed float64) Player {
	if dir == Left {
		speed = -speed
	}
	next := p
	next.Position = p.Position.Add(p.Plane.Scale(speed))
	return next
}

// Turn rotates direction and plane by the same signed angle. Left is positive.
func (p Player) Turn(dir TurnDirection, angle float64) Player {
	if angle == 0 {
		return p
	}
	if dir == Right {
		angle = -angle
	}
	next := p
	next.Direction = p.Direction.Rotate(angle)
	next.Plane = p.Plane.Rotate(angle)
	return next
}

// RotateCamera is Turn under another name, used by the automatic spin
func (p Player) RotateCamera(dir TurnDirection, angle float64) Player {
	return p.Turn(dir, angle)
}

// FrameContext carries per-frame timing into movement
type FrameContext struct {
	DeltaSeconds float64
}

// SpeedProfile derives movement and turn amounts for a frame.
// With Adaptive unset, the fixed per-event values are used.
type SpeedProfile struct {
	MoveSpeed  float64 // cells per key event
	TurnAngle  float64 // radians per key event
	Adaptive   bool
	MoveFactor float64 // cells per second when adaptive
	TurnFactor float64 // radians per second when adaptive
}

// Move returns the movement distance for the frame
func (s SpeedProfile) Move(fc FrameContext) float64 {
	if s.Adaptive && fc.DeltaSeconds > 0 {
		return fc.DeltaSeconds * s.MoveFactor
	}
	return s.MoveSpeed
}

// Turn returns the turn angle for the frame
func (s SpeedProfile) Turn(fc FrameContext) float64 {
	if s.Adaptive && fc.DeltaSeconds > 0 {
		return fc.DeltaSeconds * s.TurnFactor
	}
	return s.TurnAngle
}
