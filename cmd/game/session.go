package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"io/fs"
	"log"
	"strings"

	"github.com/younwookim/raycaster/internal/application/engine"
	"github.com/younwookim/raycaster/internal/application/replay"
	"github.com/younwookim/raycaster/internal/application/system"
	"github.com/younwookim/raycaster/internal/domain/entity"
	"github.com/younwookim/raycaster/internal/domain/texture"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
	"github.com/younwookim/raycaster/internal/infrastructure/backend/headless"
	"github.com/younwookim/raycaster/internal/infrastructure/config"
)

// session is everything loaded before a backend is chosen
type session struct {
	display  *config.DisplayConfig
	stage    string
	world    *entity.WorldMap
	bank     *texture.Bank
	engine   engine.Config
	start    entity.Player
	sounds   engine.Sounds
	record   string
	replayer *replay.Replayer
}

// loadSession reads display.json and the named stage from fsys
func loadSession(fsys fs.FS, stage string) (*session, error) {
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}

	stageCfg, err := loader.LoadStage(stage)
	if err != nil {
		if names, listErr := loader.Stages(); listErr == nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
		}
		return nil, err
	}

	world, err := system.LoadStage(stageCfg)
	if err != nil {
		return nil, err
	}

	return &session{
		display: cfg.Display,
		stage:   stage,
		world:   world,
		bank:    texture.Generate(cfg.Display.Render.TextureCount, cfg.Display.Render.TextureSize),
		engine:  engine.ConfigFromDisplay(cfg.Display),
		start:   system.StageSpawn(stageCfg, cfg.Display.Camera),
	}, nil
}

// baseOptions places the player and attaches the sound cues
func (s *session) baseOptions() []engine.Option {
	opts := []engine.Option{engine.WithPlayer(s.start)}
	if s.sounds != nil {
		opts = append(opts, engine.WithSounds(s.sounds))
	}
	return opts
}

// options returns the engine options and the recorder, if recording
func (s *session) options() ([]engine.Option, *replay.Recorder) {
	opts := s.baseOptions()

	var rec *replay.Recorder
	if s.record != "" {
		rec = replay.NewRecorder(s.stage)
		opts = append(opts, engine.WithEventObserver(rec.Observe))
	}
	return opts, rec
}

// input wraps out with the replayer, if replaying
func (s *session) input(out backend.Backend) backend.Backend {
	if s.replayer == nil {
		return out
	}
	return replay.NewBackend(out, s.replayer)
}

// run drives an engine on out until it stops, then saves the recording
func (s *session) run(ctx context.Context, cfg engine.Config, out backend.Backend) (*engine.Engine, error) {
	opts, rec := s.options()
	eng, err := engine.New(cfg, s.world, s.bank, s.input(out), opts...)
	if err != nil {
		return nil, err
	}

	runErr := eng.Run(ctx)
	if rec != nil {
		if err := rec.Save(s.record); err != nil {
			log.Printf("Failed to save recording: %v", err)
		} else {
			log.Printf("Recording saved: %s (%d frames)", s.record, rec.FrameCount())
		}
	}
	return eng, runErr
}

// headlessResult summarises a headless run
type headlessResult struct {
	Frames   int
	Blocked  int
	Player   entity.Player
	Checksum uint64
}

// runHeadless renders up to frames frames in memory with a fixed frame clock
func (s *session) runHeadless(ctx context.Context, frames int) (headlessResult, error) {
	frameMillis := int64(16)
	if s.display.Screen.Framerate > 0 {
		frameMillis = int64(1000 / s.display.Screen.Framerate)
	}
	out := headless.New(frameMillis)

	cfg := s.engine
	cfg.FrameInterval = 0

	limited := &frameLimit{Backend: out, remaining: frames}

	eng, err := s.run(ctx, cfg, limited)
	if err != nil {
		return headlessResult{}, err
	}

	h := fnv.New64a()
	for _, px := range out.Pixels() {
		_, _ = h.Write([]byte{byte(px >> 16), byte(px >> 8), byte(px)})
	}
	return headlessResult{
		Frames:   eng.Stats().Frames,
		Blocked:  eng.Stats().Blocked,
		Player:   eng.Player(),
		Checksum: h.Sum64(),
	}, nil
}

// frameLimit asks the engine to quit once the frame budget is spent
type frameLimit struct {
	*headless.Backend
	remaining int
}

func (f *frameLimit) PollEvents() []backend.Event {
	events := f.Backend.PollEvents()
	f.remaining--
	if f.remaining <= 0 {
		events = append(events, backend.Quit())
	}
	return events
}
