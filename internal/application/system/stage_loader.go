package system

import (
	"errors"
	"fmt"

	"github.com/younwookim/raycaster/internal/domain/entity"
	"github.com/younwookim/raycaster/internal/infrastructure/config"
)

// ErrBadTile is returned for a wall mapping without a material id
var ErrBadTile = errors.New("wall tile needs a positive material")

// LoadStage converts a StageConfig into a WorldMap.
// Characters without a mapping, and mappings of any type other than "wall", are empty cells.
func LoadStage(cfg *config.StageConfig) (*entity.WorldMap, error) {
	rows := make([][]int, len(cfg.Layers.Walls))
	for y, line := range cfg.Layers.Walls {
		row := make([]int, 0, len(line))
		for _, char := range line {
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok || mapping.Type != "wall" {
				row = append(row, entity.MaterialEmpty)
				continue
			}
			if mapping.Material <= 0 {
				return nil, fmt.Errorf("stage %s: tile %q: %w", cfg.ID, char, ErrBadTile)
			}
			row = append(row, mapping.Material)
		}
		rows[y] = row
	}

	world, err := entity.NewWorldMap(rows)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", cfg.ID, err)
	}
	return world, nil
}

// PlayerFromConfig builds the camera state described by cfg
func PlayerFromConfig(cfg config.CameraConfig) entity.Player {
	return entity.NewPlayer(
		entity.Vec2{X: cfg.Position.X, Y: cfg.Position.Y},
		entity.Vec2{X: cfg.Direction.X, Y: cfg.Direction.Y},
		entity.Vec2{X: cfg.Plane.X, Y: cfg.Plane.Y},
	)
}

// StageSpawn returns the stage's own spawn, or fallback when it has none
func StageSpawn(cfg *config.StageConfig, fallback config.CameraConfig) entity.Player {
	if cfg.PlayerSpawn != nil {
		return PlayerFromConfig(*cfg.PlayerSpawn)
	}
	return PlayerFromConfig(fallback)
}

// SpeedFromConfig derives the speed profile for the input system
func SpeedFromConfig(cfg config.MovementConfig) entity.SpeedProfile {
	return entity.SpeedProfile{
		MoveSpeed:  cfg.MoveSpeed,
		TurnAngle:  cfg.TurnAngle,
		Adaptive:   cfg.Adaptive,
		MoveFactor: cfg.MoveFactor,
		TurnFactor: cfg.TurnFactor,
	}
}
