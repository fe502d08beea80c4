package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/raycaster/internal/domain/entity"
)

// ErrNoWallHit is returned when a ray leaves the grid or exceeds its step budget.
// It only happens on maps whose perimeter is not fully walled.
var ErrNoWallHit = errors.New("ray did not hit a wall")

// Face tells which grid line the ray crossed last
type Face int

const (
	// FaceFront is an x-aligned crossing (the ray stepped along x)
	FaceFront Face = iota
	// FaceSide is a y-aligned crossing (the ray stepped along y)
	FaceSide
)

// String returns the face name
func (f Face) String() string {
	if f == FaceSide {
		return "Side"
	}
	return "Front"
}

// Hit describes the nearest wall along one ray
type Hit struct {
	Col, Row     int
	Material     int
	Face         Face
	PerpDistance float64 // distance along the view axis, free of fisheye
	WallX        float64 // position along the hit face in [0, 1)
	TextureX     int     // texture column in [0, textureWidth)
}

// RayCaster walks rays through a map with grid DDA
type RayCaster struct {
	world        *entity.WorldMap
	textureWidth int
	maxSteps     int
}

// NewRayCaster creates a ray caster for a map and texture width
func NewRayCaster(world *entity.WorldMap, textureWidth int) *RayCaster {
	return &RayCaster{
		world:        world,
		textureWidth: textureWidth,
		// A ray crosses at most one line per column and per row before leaving the grid
		maxSteps: world.Width() + world.Height(),
	}
}

// CameraOffset maps a screen column to [-1, 1)
func CameraOffset(column, width int) float64 {
	return 2*float64(column)/float64(width) - 1
}

// RayDirection returns the direction of the ray through a screen column
func RayDirection(p entity.Player, column, width int) entity.Vec2 {
	return p.Direction.Add(p.Plane.Scale(CameraOffset(column, width)))
}

// deltaDistance is the ray length needed to cross one full grid unit along an axis.
// A zero component never crosses that axis.
func deltaDistance(along, across float64) float64 {
	if along == 0 {
		return math.Inf(1)
	}
	ratio := across / along
	return math.Sqrt(1 + ratio*ratio)
}

// Cast finds the nearest wall along dir from origin
func (rc *RayCaster) Cast(origin, dir entity.Vec2) (Hit, error) {
	col, row := origin.Cell()

	deltaX := deltaDistance(dir.X, dir.Y)
	deltaY := deltaDistance(dir.Y, dir.X)

	var stepX, stepY int
	var sideX, sideY float64

	switch {
	case dir.X < 0:
		stepX = -1
		sideX = (origin.X - float64(col)) * deltaX
	case dir.X > 0:
		stepX = 1
		sideX = (float64(col) + 1 - origin.X) * deltaX
	default:
		stepX = 1
		sideX = math.Inf(1)
	}

	switch {
	case dir.Y < 0:
		stepY = -1
		sideY = (origin.Y - float64(row)) * deltaY
	case dir.Y > 0:
		stepY = 1
		sideY = (float64(row) + 1 - origin.Y) * deltaY
	default:
		stepY = 1
		sideY = math.Inf(1)
	}

	face := FaceFront
	hit := false
	for steps := 0; steps < rc.maxSteps; steps++ {
		if sideX < sideY {
			sideX += deltaX
			col += stepX
			face = FaceFront
		} else {
			sideY += deltaY
			row += stepY
			face = FaceSide
		}

		if !rc.world.InBounds(col, row) {
			break
		}
		if rc.world.CellAt(col, row) != entity.MaterialEmpty {
			hit = true
			break
		}
	}
	if !hit {
		return Hit{}, fmt.Errorf("from (%.3f,%.3f) toward (%.3f,%.3f): %w", origin.X, origin.Y, dir.X, dir.Y, ErrNoWallHit)
	}

	// Distance to the crossed grid line measured along the un-advanced axis formula
	var perp, wallX float64
	if face == FaceFront {
		perp = (float64(col) - origin.X + float64(1-stepX)/2) / dir.X
		wallX = origin.Y + perp*dir.Y
	} else {
		perp = (float64(row) - origin.Y + float64(1-stepY)/2) / dir.Y
		wallX = origin.X + perp*dir.X
	}
	perp = math.Abs(perp)
	wallX -= math.Floor(wallX)

	texX := int(wallX * float64(rc.textureWidth))
	// Mirror so the texture reads left to right on every face
	if (face == FaceFront && dir.X > 0) || (face == FaceSide && dir.Y < 0) {
		texX = rc.textureWidth - texX - 1
	}

	return Hit{
		Col:          col,
		Row:          row,
		Material:     rc.world.CellAt(col, row),
		Face:         face,
		PerpDistance: perp,
		WallX:        wallX,
		TextureX:     entity.Clamp(texX, 0, rc.textureWidth-1),
	}, nil
}

// HeightForWallDistance projects a perpendicular distance to a wall slice height.
// A zero (or non-finite) distance is the degenerate case and yields 0.
func HeightForWallDistance(distance float64, screenHeight int) int {
	if distance == 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return 0
	}
	h := float64(screenHeight) / math.Abs(distance)
	if h >= float64(screenHeight) {
		return screenHeight
	}
	return int(h)
}
