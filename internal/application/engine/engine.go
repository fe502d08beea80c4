// Package engine runs the frame loop: poll input, update the camera, render and present.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/younwookim/raycaster/internal/application/state"
	"github.com/younwookim/raycaster/internal/application/system"
	"github.com/younwookim/raycaster/internal/domain/entity"
	"github.com/younwookim/raycaster/internal/domain/texture"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

// ErrStopped is returned by Step once the loop has been stopped
var ErrStopped = errors.New("engine stopped")

// Sounds receives audio cues
type Sounds interface {
	Bump()
}

// EventObserver sees every polled batch before it is applied
type EventObserver func(frame int, events []backend.Event)

// Stats are per-engine counters
type Stats struct {
	Frames       int
	Blocked      int
	DeltaSeconds float64
	LastFrame    system.FrameStats
}

// Option configures an Engine
type Option func(*Engine)

// WithSounds plays cues through s
func WithSounds(s Sounds) Option {
	return func(e *Engine) { e.sounds = s }
}

// WithPlayer sets the starting camera state
func WithPlayer(p entity.Player) Option {
	return func(e *Engine) { e.player = p }
}

// WithEventObserver registers an observer for polled events
func WithEventObserver(fn EventObserver) Option {
	return func(e *Engine) { e.observer = fn }
}

// Engine owns the camera state and drives one frame per Step
type Engine struct {
	cfg      Config
	out      backend.Backend
	fb       backend.Framebuffer
	input    *system.InputSystem
	renderer *system.Renderer

	player     entity.Player
	state      state.GameState
	autoRotate bool
	sounds     Sounds
	observer   EventObserver

	lastMillis int64
	frame      entity.FrameContext
	stats      Stats
}

// New validates the map against the texture bank and creates the viewport
func New(cfg Config, world *entity.WorldMap, bank *texture.Bank, out backend.Backend, opts ...Option) (*Engine, error) {
	if err := world.ValidateMaterials(bank.Len()); err != nil {
		return nil, fmt.Errorf("map materials: %w", err)
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = DefaultMaxDelta
	}

	e := &Engine{
		cfg:        cfg,
		out:        out,
		input:      system.NewInputSystem(world, cfg.Speed),
		player:     entity.DefaultPlayer(),
		state:      state.StateRunning,
		autoRotate: cfg.AutoRotate,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.player.InWall(world) {
		return nil, fmt.Errorf("start (%.2f,%.2f) is inside a wall", e.player.Position.X, e.player.Position.Y)
	}

	fb, err := out.CreateViewport(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("create viewport: %w", err)
	}
	e.fb = fb

	e.renderer = system.NewRenderer(system.NewRayCaster(world, bank.Size()), bank, out, system.RenderOptions{
		Textures:       cfg.Textures,
		Background:     cfg.Background,
		SideMultiplier: cfg.SideMultiplier,
		Logger:         logger,
	})
	e.lastMillis = out.NowMillis()

	return e, nil
}

// Step runs one frame. Events are drained and applied before rendering;
// the measured frame time feeds the next frame's speeds.
func (e *Engine) Step() error {
	if !e.state.Active() {
		return ErrStopped
	}

	events := e.out.PollEvents()
	if e.observer != nil {
		e.observer(e.stats.Frames, events)
	}
	for _, cmd := range e.input.Commands(events) {
		e.handle(cmd)
	}

	if e.autoRotate && e.state == state.StateRunning {
		e.player = e.player.RotateCamera(entity.Right, e.cfg.AutoRotateAngle)
	}

	e.stats.LastFrame = e.renderer.Render(e.fb, e.player)
	if err := e.out.Present(e.fb); err != nil {
		return fmt.Errorf("present frame %d: %w", e.stats.Frames, err)
	}

	now := e.out.NowMillis()
	dt := time.Duration(now-e.lastMillis) * time.Millisecond
	e.lastMillis = now
	e.frame = entity.FrameContext{DeltaSeconds: entity.Clamp(dt, 0, e.cfg.MaxDelta).Seconds()}
	e.stats.DeltaSeconds = e.frame.DeltaSeconds
	e.stats.Frames++

	return nil
}

func (e *Engine) handle(cmd system.Command) {
	logger.Printf("frame %d: %v", e.stats.Frames, cmd)

	switch c := cmd.(type) {
	case system.QuitCommand:
		e.Stop()
	case system.ToggleCommand:
		e.toggle(c.Target)
	default:
		if e.state != state.StateRunning {
			return
		}
		r := e.input.Apply(cmd, e.player, e.frame)
		e.player = r.Player
		if r.Blocked {
			e.stats.Blocked++
			if e.sounds != nil {
				e.sounds.Bump()
			}
		}
	}
}

func (e *Engine) toggle(t system.Toggle) {
	switch t {
	case system.ToggleTextures:
		e.renderer.SetTextures(!e.renderer.Textures())
	case system.ToggleAutoRotate:
		e.autoRotate = !e.autoRotate
	case system.TogglePause:
		e.state = e.state.TogglePause()
	}
}

// Run steps frames until Stop is called, a step fails or ctx is done.
// The stop flag and ctx are checked at the top of each frame only.
func (e *Engine) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if e.cfg.FrameInterval > 0 {
		ticker := time.NewTicker(e.cfg.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for e.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(); err != nil {
			return err
		}
		if tick != nil && e.Running() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
	return nil
}

// Stop ends the loop after the current frame
func (e *Engine) Stop() {
	e.state = state.StateStopped
}

// Running reports whether the loop should keep producing frames
func (e *Engine) Running() bool {
	return e.state.Active()
}

// State returns the run state
func (e *Engine) State() state.GameState {
	return e.state
}

// Player returns the current camera state
func (e *Engine) Player() entity.Player {
	return e.player
}

// Framebuffer returns the viewport handle
func (e *Engine) Framebuffer() backend.Framebuffer {
	return e.fb
}

// Textures reports whether texturing is on
func (e *Engine) Textures() bool {
	return e.renderer.Textures()
}

// AutoRotate reports whether the camera spins on its own
func (e *Engine) AutoRotate() bool {
	return e.autoRotate
}

// Stats returns the engine counters
func (e *Engine) Stats() Stats {
	return e.stats
}
