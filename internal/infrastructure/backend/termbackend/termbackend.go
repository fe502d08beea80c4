// Package termbackend renders frames into a terminal with tcell.
//
// Each terminal cell shows two vertically stacked pixels using the upper half block:
// the foreground color is the top pixel, the background color the bottom one.
package termbackend

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

const halfBlock = '▀'

// eventBuffer bounds the events queued between two frames
const eventBuffer = 64

// Screen is the part of tcell.Screen the backend uses
type Screen interface {
	Init() error
	Fini()
	Size() (width, height int)
	HideCursor()
	PollEvent() tcell.Event
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Backend implements backend.Backend on a tcell screen
type Backend struct {
	screen Screen
	start  time.Time
	events chan backend.Event
	once   sync.Once

	width  int
	height int
	pixels []uint32
}

// New wraps an initialised screen and starts pumping its events
func New(screen Screen) *Backend {
	b := &Backend{
		screen: screen,
		start:  time.Now(),
		events: make(chan backend.Event, eventBuffer),
	}
	screen.HideCursor()
	go b.pump()
	return b
}

// Open creates and initialises the default terminal screen
func Open() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	return New(screen), nil
}

// PixelSize returns the framebuffer size that fills the terminal
func (b *Backend) PixelSize() (width, height int) {
	cols, rows := b.screen.Size()
	return cols, rows * 2
}

// Close restores the terminal
func (b *Backend) Close() {
	b.once.Do(b.screen.Fini)
}

// pump forwards screen events until the screen is finalised (PollEvent returns nil)
func (b *Backend) pump() {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		if out, ok := translate(ev); ok {
			select {
			case b.events <- out:
			default:
				// Frame loop is behind; dropping keeps PollEvent non-blocking
			}
		}
	}
}

func translate(ev tcell.Event) (backend.Event, bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return backend.Event{}, false
	}
	if key.Key() == tcell.KeyCtrlC {
		return backend.Quit(), true
	}
	k := translateKey(key.Key(), key.Rune())
	if k == backend.KeyUnknown {
		return backend.Event{}, false
	}
	return backend.KeyPress(k), true
}

func translateKey(k tcell.Key, r rune) backend.Key {
	switch k {
	case tcell.KeyUp:
		return backend.KeyUp
	case tcell.KeyDown:
		return backend.KeyDown
	case tcell.KeyLeft:
		return backend.KeyLeft
	case tcell.KeyRight:
		return backend.KeyRight
	case tcell.KeyPgDn:
		return backend.KeyPageDown
	case tcell.KeyDelete:
		return backend.KeyDelete
	case tcell.KeyEscape:
		return backend.KeyEscape
	case tcell.KeyRune:
		switch r {
		case 't', 'T':
			return backend.KeyT
		case 'r', 'R':
			return backend.KeyR
		case 'p', 'P':
			return backend.KeyP
		}
	}
	return backend.KeyUnknown
}

// CreateViewport allocates the pixel buffer
func (b *Backend) CreateViewport(width, height int) (backend.Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return backend.Framebuffer{}, fmt.Errorf("terminal %dx%d: %w", width, height, backend.ErrViewport)
	}
	b.width = width
	b.height = height
	b.pixels = make([]uint32, width*height)
	return backend.Framebuffer{ID: 1, Width: width, Height: height}, nil
}

// PollEvents drains the events queued since the last call
func (b *Backend) PollEvents() []backend.Event {
	var out []backend.Event
	for {
		select {
		case ev := <-b.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// WritePixel stores a color
func (b *Backend) WritePixel(fb backend.Framebuffer, column, row int, color uint32) {
	if !fb.Contains(column, row) || column >= b.width || row >= b.height {
		return
	}
	b.pixels[row*b.width+column] = color
}

// Present draws the buffer as half-block cells and shows the screen
func (b *Backend) Present(_ backend.Framebuffer) error {
	if b.pixels == nil {
		return backend.ErrViewport
	}
	for y := 0; y < b.height; y += 2 {
		for x := 0; x < b.width; x++ {
			top := b.pixels[y*b.width+x]
			bottom := top
			if y+1 < b.height {
				bottom = b.pixels[(y+1)*b.width+x]
			}
			b.screen.SetContent(x, y/2, halfBlock, nil, cellStyle(top, bottom))
		}
	}
	b.screen.Show()
	return nil
}

func cellStyle(top, bottom uint32) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toColor(top)).
		Background(toColor(bottom))
}

func toColor(c uint32) tcell.Color {
	r, g, b := backend.RGB(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// NowMillis returns milliseconds since the backend was created
func (b *Backend) NowMillis() int64 {
	return time.Since(b.start).Milliseconds()
}
