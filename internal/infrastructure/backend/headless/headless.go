// Package headless provides an in-memory backend with scripted input and a manual clock.
package headless

import (
	"fmt"

	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

// Backend renders into memory. Events are queued per frame: each PollEvents call
// returns the next queued batch. The clock advances by FrameMillis on every Present.
type Backend struct {
	FrameMillis int64

	width    int
	height   int
	pixels   []uint32
	created  bool
	batches  [][]backend.Event
	now      int64
	presents int
	failNext error
}

// New creates a headless backend whose clock advances frameMillis per presented frame
func New(frameMillis int64) *Backend {
	return &Backend{FrameMillis: frameMillis}
}

// FailViewport makes the next CreateViewport call return err
func (b *Backend) FailViewport(err error) {
	b.failNext = err
}

// CreateViewport allocates the pixel buffer
func (b *Backend) CreateViewport(width, height int) (backend.Framebuffer, error) {
	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return backend.Framebuffer{}, fmt.Errorf("headless %dx%d: %w", width, height, err)
	}
	if width <= 0 || height <= 0 {
		return backend.Framebuffer{}, fmt.Errorf("headless %dx%d: %w", width, height, backend.ErrViewport)
	}

	b.width = width
	b.height = height
	b.pixels = make([]uint32, width*height)
	b.created = true
	return backend.Framebuffer{ID: 1, Width: width, Height: height}, nil
}

// Queue appends a batch of events delivered by one PollEvents call
func (b *Backend) Queue(events ...backend.Event) {
	b.batches = append(b.batches, events)
}

// PollEvents returns the next queued batch, or nothing
func (b *Backend) PollEvents() []backend.Event {
	if len(b.batches) == 0 {
		return nil
	}
	batch := b.batches[0]
	b.batches = b.batches[1:]
	return batch
}

// WritePixel stores a color
func (b *Backend) WritePixel(fb backend.Framebuffer, column, row int, color uint32) {
	if !b.created || !fb.Contains(column, row) {
		return
	}
	b.pixels[row*b.width+column] = color
}

// Present counts the frame and advances the clock
func (b *Backend) Present(_ backend.Framebuffer) error {
	if !b.created {
		return backend.ErrViewport
	}
	b.presents++
	b.now += b.FrameMillis
	return nil
}

// NowMillis returns the manual clock
func (b *Backend) NowMillis() int64 {
	return b.now
}

// Advance moves the clock forward
func (b *Backend) Advance(ms int64) {
	b.now += ms
}

// Pixel returns the stored color at (column, row)
func (b *Backend) Pixel(column, row int) uint32 {
	return b.pixels[row*b.width+column]
}

// Pixels returns a copy of the buffer, row by row
func (b *Backend) Pixels() []uint32 {
	out := make([]uint32, len(b.pixels))
	copy(out, b.pixels)
	return out
}

// Presents returns how many frames were presented
func (b *Backend) Presents() int {
	return b.presents
}
