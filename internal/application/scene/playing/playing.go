// Package playing provides the first-person view scene.
package playing

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/raycaster/internal/application/engine"
	"github.com/younwookim/raycaster/internal/application/replay"
	"github.com/younwookim/raycaster/internal/application/scene"
	"github.com/younwookim/raycaster/internal/application/state"
	"github.com/younwookim/raycaster/internal/domain/entity"
	"github.com/younwookim/raycaster/internal/domain/texture"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

const controlsText = "Up/Down: Move | Left/Right: Strafe | Del/PgDn: Turn | T: Textures | R: Spin | P: Pause | Esc: Quit"

// View is a backend that can also blit its last frame onto an ebiten screen
type View interface {
	backend.Backend
	Draw(screen *ebiten.Image)
}

// Options are the optional parts of the scene
type Options struct {
	Stage      string
	RecordPath string
	Replayer   *replay.Replayer
	Engine     []engine.Option
}

// Playing drives the engine one Step per ebiten tick
type Playing struct {
	engine *engine.Engine
	view   View
	stage  string

	// Input recording
	recorder       *replay.Recorder
	recordFilename string
}

// New creates the scene and its engine.
// If opts.RecordPath is not empty, input will be recorded; with opts.Replayer set,
// recorded input replaces the keyboard.
func New(cfg engine.Config, world *entity.WorldMap, bank *texture.Bank, view View, opts Options) (*Playing, error) {
	p := &Playing{
		view:           view,
		stage:          opts.Stage,
		recordFilename: opts.RecordPath,
	}

	engineOpts := opts.Engine
	if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(opts.Stage)
		engineOpts = append(engineOpts, engine.WithEventObserver(p.recorder.Observe))
		log.Printf("Recording enabled: %s", opts.RecordPath)
	}

	var out backend.Backend = view
	if opts.Replayer != nil {
		out = replay.NewBackend(view, opts.Replayer)
		log.Printf("Replaying %d frames", opts.Replayer.TotalFrames())
	}

	eng, err := engine.New(cfg, world, bank, out, engineOpts...)
	if err != nil {
		return nil, err
	}
	p.engine = eng

	return p, nil
}

// Update steps the engine (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if !p.engine.Running() {
		return nil, ebiten.Termination
	}
	if err := p.engine.Step(); err != nil {
		if errors.Is(err, engine.ErrStopped) {
			return nil, ebiten.Termination
		}
		return nil, err
	}
	return nil, nil // nil = stay on this scene
}

// Draw blits the presented frame and the HUD
func (p *Playing) Draw(screen *ebiten.Image) {
	p.view.Draw(screen)

	ebitenutil.DebugPrint(screen, controlsText+"\n"+p.statusLine())
	if p.engine.State() == state.StatePaused {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		ebitenutil.DebugPrintAt(screen, "PAUSED\n\nPress P to resume", w/2-50, h/2-20)
	}
}

func (p *Playing) statusLine() string {
	pl := p.engine.Player()
	return fmt.Sprintf("TPS %.0f | pos (%.2f, %.2f) | dir (%.2f, %.2f) | textures %v | spin %v",
		ebiten.ActualTPS(), pl.Position.X, pl.Position.Y, pl.Direction.X, pl.Direction.Y,
		p.engine.Textures(), p.engine.AutoRotate())
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	log.Printf("Entering stage %q", p.stage)
}

// OnExit saves the recording, if any
func (p *Playing) OnExit() {
	p.saveRecording()
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Stop()

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Engine returns the engine driven by this scene
func (p *Playing) Engine() *engine.Engine {
	return p.engine
}
