package headless

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

func TestBackend_WriteAndPresent(t *testing.T) {
	b := New(16)
	fb, err := b.CreateViewport(4, 3)
	require.NoError(t, err)

	b.WritePixel(fb, 2, 1, 0xABCDEF)
	b.WritePixel(fb, 10, 10, 0xFFFFFF) // ignored

	assert.Equal(t, uint32(0xABCDEF), b.Pixel(2, 1))
	assert.Len(t, b.Pixels(), 12)

	require.NoError(t, b.Present(fb))
	assert.Equal(t, 1, b.Presents())
	assert.Equal(t, int64(16), b.NowMillis())

	b.Advance(4)
	assert.Equal(t, int64(20), b.NowMillis())
}

func TestBackend_PollEvents(t *testing.T) {
	b := New(0)
	b.Queue(backend.KeyPress(backend.KeyUp), backend.KeyPress(backend.KeyUp))
	b.Queue(backend.Quit())

	assert.Len(t, b.PollEvents(), 2)
	assert.Equal(t, []backend.Event{backend.Quit()}, b.PollEvents())
	assert.Empty(t, b.PollEvents())
}

func TestBackend_CreateViewportErrors(t *testing.T) {
	b := New(0)

	_, err := b.CreateViewport(0, 10)
	assert.ErrorIs(t, err, backend.ErrViewport)

	boom := errors.New("boom")
	b.FailViewport(boom)
	_, err = b.CreateViewport(10, 10)
	assert.ErrorIs(t, err, boom)

	_, err = b.CreateViewport(10, 10)
	assert.NoError(t, err, "failure is one-shot")
}

func TestBackend_PresentWithoutViewport(t *testing.T) {
	b := New(0)
	assert.ErrorIs(t, b.Present(backend.Framebuffer{}), backend.ErrViewport)
}
