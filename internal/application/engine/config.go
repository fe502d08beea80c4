package engine

import (
	"time"

	"github.com/younwookim/raycaster/internal/application/system"
	"github.com/younwookim/raycaster/internal/domain/entity"
	"github.com/younwookim/raycaster/internal/infrastructure/config"
)

// DefaultMaxDelta caps the measured frame time fed into adaptive speeds
const DefaultMaxDelta = 250 * time.Millisecond

// Config holds the engine settings
type Config struct {
	Width, Height   int
	TextureSize     int
	Textures        bool
	Background      uint32
	SideMultiplier  float64
	Speed           entity.SpeedProfile
	AutoRotate      bool
	AutoRotateAngle float64 // radians per frame, clockwise
	MaxDelta        time.Duration
	FrameInterval   time.Duration // pacing for Run; zero runs unthrottled
}

// ConfigFromDisplay converts display.json into engine settings
func ConfigFromDisplay(d *config.DisplayConfig) Config {
	cfg := Config{
		Width:           d.Screen.Width,
		Height:          d.Screen.Height,
		TextureSize:     d.Render.TextureSize,
		Textures:        d.Render.Textures,
		Background:      d.Render.BackgroundColor(),
		SideMultiplier:  d.Render.SideMultiplier,
		Speed:           system.SpeedFromConfig(d.Movement),
		AutoRotate:      d.Movement.AutoRotate.Enabled,
		AutoRotateAngle: d.Movement.AutoRotate.Angle,
		MaxDelta:        DefaultMaxDelta,
	}
	if d.Screen.Framerate > 0 {
		cfg.FrameInterval = time.Second / time.Duration(d.Screen.Framerate)
	}
	return cfg
}
