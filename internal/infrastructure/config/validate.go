package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidConfig = errors.New("invalid config")
)

// ParseColor parses "#rrggbb" (or "rrggbb") into a packed 0xRRGGBB value
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	return uint32(v), nil
}

// BackgroundColor returns the parsed background color
func (r RenderConfig) BackgroundColor() uint32 {
	// Validate has already checked the format
	c, _ := ParseColor(r.Background)
	return c
}

// Validate checks the values the engine cannot run without
func (c *DisplayConfig) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("screen %dx%d: %w", c.Screen.Width, c.Screen.Height, ErrInvalidConfig)
	case c.Render.TextureSize <= 0:
		return fmt.Errorf("textureSize %d: %w", c.Render.TextureSize, ErrInvalidConfig)
	case c.Render.TextureCount <= 0:
		return fmt.Errorf("textureCount %d: %w", c.Render.TextureCount, ErrInvalidConfig)
	case c.Camera.Direction.X == 0 && c.Camera.Direction.Y == 0:
		return fmt.Errorf("camera direction is zero: %w", ErrInvalidConfig)
	}
	if _, err := ParseColor(c.Render.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sampleRate %d: %w", c.Audio.SampleRate, ErrInvalidConfig)
	}
	return nil
}
