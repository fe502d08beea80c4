// Package ebitenbackend hosts the renderer in an ebiten window.
//
// ebiten owns the game loop, so the backend is passive: the scene calls the engine's
// Step from Update, and blits the last presented frame from Draw.
package ebitenbackend

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

// Key repeat timing in ticks, close to a 100ms delay at 60 TPS
const (
	repeatDelay    = 6
	repeatInterval = 2
)

// keymap is ordered so that events within a tick come out in a stable order
var keymap = []struct {
	ebiten  ebiten.Key
	backend backend.Key
}{
	{ebiten.KeyEscape, backend.KeyEscape},
	{ebiten.KeyArrowUp, backend.KeyUp},
	{ebiten.KeyArrowDown, backend.KeyDown},
	{ebiten.KeyArrowLeft, backend.KeyLeft},
	{ebiten.KeyArrowRight, backend.KeyRight},
	{ebiten.KeyPageDown, backend.KeyPageDown},
	{ebiten.KeyDelete, backend.KeyDelete},
	{ebiten.KeyT, backend.KeyT},
	{ebiten.KeyR, backend.KeyR},
	{ebiten.KeyP, backend.KeyP},
}

// repeating keys generate events while held
var repeating = map[backend.Key]bool{
	backend.KeyUp:       true,
	backend.KeyDown:     true,
	backend.KeyLeft:     true,
	backend.KeyRight:    true,
	backend.KeyPageDown: true,
	backend.KeyDelete:   true,
}

// Backend implements backend.Backend on top of ebiten input and an RGBA byte buffer
type Backend struct {
	start     time.Time
	width     int
	height    int
	back      []byte
	front     []byte
	presented bool
}

// New creates an ebiten backend
func New() *Backend {
	return &Backend{start: time.Now()}
}

// CreateViewport allocates the RGBA buffers. The window itself is created by ebiten.RunGame.
func (b *Backend) CreateViewport(width, height int) (backend.Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return backend.Framebuffer{}, fmt.Errorf("ebiten %dx%d: %w", width, height, backend.ErrViewport)
	}
	b.width = width
	b.height = height
	b.back = make([]byte, width*height*4)
	b.front = make([]byte, width*height*4)
	return backend.Framebuffer{ID: 1, Width: width, Height: height}, nil
}

// PollEvents maps the keys pressed this tick (plus held keys on repeat) to events
func (b *Backend) PollEvents() []backend.Event {
	var events []backend.Event

	if ebiten.IsWindowBeingClosed() {
		events = append(events, backend.Quit())
	}

	for _, km := range keymap {
		if pressedThisTick(inpututil.KeyPressDuration(km.ebiten), repeating[km.backend]) {
			events = append(events, backend.KeyPress(km.backend))
		}
	}

	return events
}

func pressedThisTick(duration int, repeat bool) bool {
	if duration == 1 {
		return true
	}
	if !repeat || duration < repeatDelay {
		return false
	}
	return (duration-repeatDelay)%repeatInterval == 0
}

// WritePixel stores an opaque color into the back buffer
func (b *Backend) WritePixel(fb backend.Framebuffer, column, row int, color uint32) {
	if !fb.Contains(column, row) || column >= b.width || row >= b.height {
		return
	}
	i := (row*b.width + column) * 4
	r, g, bl := backend.RGB(color)
	b.back[i] = r
	b.back[i+1] = g
	b.back[i+2] = bl
	b.back[i+3] = 0xFF
}

// Present swaps the finished back buffer to the front
func (b *Backend) Present(_ backend.Framebuffer) error {
	if b.back == nil {
		return backend.ErrViewport
	}
	b.back, b.front = b.front, b.back
	b.presented = true
	return nil
}

// NowMillis returns milliseconds since the backend was created
func (b *Backend) NowMillis() int64 {
	return time.Since(b.start).Milliseconds()
}

// Frame returns the last presented RGBA frame
func (b *Backend) Frame() []byte {
	return b.front
}

// Draw copies the last presented frame onto the screen
func (b *Backend) Draw(screen *ebiten.Image) {
	if !b.presented {
		return
	}
	screen.WritePixels(b.front)
}

// Size returns the viewport size
func (b *Backend) Size() (int, int) {
	return b.width, b.height
}
