// Package backend defines the narrow display/input capability the renderer draws through.
//
// The core never touches window, surface or terminal APIs directly: it asks a Backend
// for a viewport, writes packed pixels into it, presents it, and drains input events.
package backend

import "errors"

// ErrViewport is returned when a backend cannot create a viewport
var ErrViewport = errors.New("cannot create viewport")

// Framebuffer is a handle to a backend-owned pixel buffer
type Framebuffer struct {
	ID     int
	Width  int
	Height int
}

// Contains reports whether (column, row) addresses a pixel of the framebuffer
func (fb Framebuffer) Contains(column, row int) bool {
	return column >= 0 && column < fb.Width && row >= 0 && row < fb.Height
}

// EventKind distinguishes input events
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventQuit
)

// Key is a backend-neutral key code
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageDown
	KeyDelete
	KeyEscape
	KeyT
	KeyR
	KeyP
)

// String returns the key name
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyPageDown:
		return "PageDown"
	case KeyDelete:
		return "Delete"
	case KeyEscape:
		return "Escape"
	case KeyT:
		return "T"
	case KeyR:
		return "R"
	case KeyP:
		return "P"
	default:
		return "Unknown"
	}
}

// ParseKey returns the key with the given name, or KeyUnknown
func ParseKey(name string) Key {
	for k := KeyUp; k <= KeyP; k++ {
		if k.String() == name {
			return k
		}
	}
	return KeyUnknown
}

// Event is a discrete input event
type Event struct {
	Kind EventKind
	Key  Key
}

// KeyPress builds a key press event
func KeyPress(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// Quit builds a quit event
func Quit() Event {
	return Event{Kind: EventQuit}
}

// Backend is implemented by the display/input host
type Backend interface {
	// CreateViewport allocates a framebuffer of the given size.
	CreateViewport(width, height int) (Framebuffer, error)

	// PollEvents returns every pending event without blocking.
	PollEvents() []Event

	// WritePixel stores a packed 0xRRGGBB color. Out-of-range writes are ignored.
	WritePixel(fb Framebuffer, column, row int, color uint32)

	// Present pushes the completed frame to the display.
	Present(fb Framebuffer) error

	// NowMillis returns a monotonic clock in milliseconds.
	NowMillis() int64
}

// RGB splits a packed color into channels
func RGB(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Pack builds a packed color from channels
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
