package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/raycaster/internal/application/engine"
	"github.com/younwookim/raycaster/internal/application/game"
	"github.com/younwookim/raycaster/internal/application/replay"
	"github.com/younwookim/raycaster/internal/application/scene/playing"
	"github.com/younwookim/raycaster/internal/infrastructure/audio"
	"github.com/younwookim/raycaster/internal/infrastructure/backend/ebitenbackend"
	"github.com/younwookim/raycaster/internal/infrastructure/backend/termbackend"
	"github.com/younwookim/raycaster/internal/infrastructure/config"
)

func main() {
	// Parse command line flags
	backendFlag := flag.String("backend", "ebiten", "Display backend: ebiten, term or headless")
	stageFlag := flag.String("stage", "reference", "Stage to load from configs/stages")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Replay input from a recorded file")
	framesFlag := flag.Int("frames", 600, "Frames to render with -backend headless")
	verboseFlag := flag.Bool("v", false, "Log key presses and skipped columns")
	muteFlag := flag.Bool("mute", false, "Disable audio cues")
	flag.Parse()

	if *verboseFlag {
		engine.SetLogger(log.New(os.Stderr, "engine: ", log.LstdFlags|log.Lmicroseconds))
	}

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	s, err := loadSession(fsys, *stageFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	s.record = *recordFlag

	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if data.Stage != s.stage {
			log.Printf("Replay was recorded on stage %q, playing it on %q", data.Stage, s.stage)
		}
		s.replayer = replay.NewReplayer(*data)
	}

	if s.display.Audio.Enabled && !*muteFlag && *backendFlag != "headless" {
		sounds := audio.New(s.display.Audio)
		if err := sounds.Initialize(); err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			defer sounds.Close()
			s.sounds = sounds
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *backendFlag {
	case "ebiten":
		err = runEbiten(s)
	case "term":
		err = runTerminal(ctx, s)
	case "headless":
		var res headlessResult
		res, err = s.runHeadless(ctx, *framesFlag)
		if err == nil {
			log.Printf("Rendered %d frames, %d blocked moves, final position (%.3f, %.3f), frame checksum %016x",
				res.Frames, res.Blocked, res.Player.Position.X, res.Player.Position.Y, res.Checksum)
		}
	default:
		log.Fatalf("Unknown backend %q", *backendFlag)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func runEbiten(s *session) error {
	view := ebitenbackend.New()
	p, err := playing.New(s.engine, s.world, s.bank, view, playing.Options{
		Stage:      s.stage,
		RecordPath: s.record,
		Replayer:   s.replayer,
		Engine:     s.baseOptions(),
	})
	if err != nil {
		return err
	}

	screen := s.display.Screen
	g := game.New(p, screen.Width, screen.Height)
	g.SetTPS(screen.Framerate)
	defer g.Close()

	configureWindow(screen)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// configureWindow sizes the window and lets the backend turn a close request into Quit
func configureWindow(screen config.ScreenConfig) {
	scale := max(screen.Scale, 1)
	ebiten.SetWindowSize(screen.Width*scale, screen.Height*scale)
	ebiten.SetWindowTitle(screen.Title)
	ebiten.SetTPS(screen.Framerate)
	ebiten.SetWindowClosingHandled(true)
}

func runTerminal(ctx context.Context, s *session) error {
	tb, err := termbackend.Open()
	if err != nil {
		return err
	}
	defer tb.Close()

	// The terminal decides the viewport size
	cfg := s.engine
	cfg.Width, cfg.Height = tb.PixelSize()

	_, err = s.run(ctx, cfg, tb)
	return err
}
