package termbackend

import (
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

type cell struct {
	r     rune
	style tcell.Style
}

// fakeScreen records cells and blocks PollEvent until finalised
type fakeScreen struct {
	mu     sync.Mutex
	cols   int
	rows   int
	cells  map[[2]int]cell
	shows  int
	closed chan struct{}
	finis  int
}

func newFakeScreen(cols, rows int) *fakeScreen {
	return &fakeScreen{
		cols:   cols,
		rows:   rows,
		cells:  make(map[[2]int]cell),
		closed: make(chan struct{}),
	}
}

func (s *fakeScreen) Init() error            { return nil }
func (s *fakeScreen) Size() (int, int)       { return s.cols, s.rows }
func (s *fakeScreen) HideCursor()            {}
func (s *fakeScreen) PollEvent() tcell.Event { <-s.closed; return nil }
func (s *fakeScreen) Show()                  { s.shows++ }

func (s *fakeScreen) Fini() {
	s.finis++
	close(s.closed)
}

func (s *fakeScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[[2]int{x, y}] = cell{r: primary, style: style}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want backend.Key
	}{
		{"up", tcell.KeyUp, 0, backend.KeyUp},
		{"down", tcell.KeyDown, 0, backend.KeyDown},
		{"left", tcell.KeyLeft, 0, backend.KeyLeft},
		{"right", tcell.KeyRight, 0, backend.KeyRight},
		{"page down", tcell.KeyPgDn, 0, backend.KeyPageDown},
		{"delete", tcell.KeyDelete, 0, backend.KeyDelete},
		{"escape", tcell.KeyEscape, 0, backend.KeyEscape},
		{"t", tcell.KeyRune, 't', backend.KeyT},
		{"R", tcell.KeyRune, 'R', backend.KeyR},
		{"p", tcell.KeyRune, 'p', backend.KeyP},
		{"unbound rune", tcell.KeyRune, 'x', backend.KeyUnknown},
		{"unbound key", tcell.KeyF1, 0, backend.KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateKey(tt.key, tt.r))
		})
	}
}

func TestBackend_PresentHalfBlocks(t *testing.T) {
	screen := newFakeScreen(2, 2)
	b := New(screen)
	defer b.Close()

	w, h := b.PixelSize()
	assert.Equal(t, 2, w)
	assert.Equal(t, 4, h)

	fb, err := b.CreateViewport(2, 3)
	require.NoError(t, err)

	b.WritePixel(fb, 0, 0, 0xFF0000)
	b.WritePixel(fb, 0, 1, 0x0000FF)
	b.WritePixel(fb, 1, 2, 0x00FF00)
	require.NoError(t, b.Present(fb))

	assert.Equal(t, 1, screen.shows)

	screen.mu.Lock()
	defer screen.mu.Unlock()

	require.Len(t, screen.cells, 4)
	top := screen.cells[[2]int{0, 0}]
	assert.Equal(t, halfBlock, top.r)
	assert.Equal(t, cellStyle(0xFF0000, 0x0000FF), top.style)

	// Odd height: last row repeats the top pixel
	last := screen.cells[[2]int{1, 1}]
	assert.Equal(t, cellStyle(0x00FF00, 0x00FF00), last.style)
}

func TestBackend_PollEventsDrains(t *testing.T) {
	b := New(newFakeScreen(1, 1))
	defer b.Close()

	b.events <- backend.KeyPress(backend.KeyUp)
	b.events <- backend.Quit()

	assert.Equal(t, []backend.Event{backend.KeyPress(backend.KeyUp), backend.Quit()}, b.PollEvents())
	assert.Empty(t, b.PollEvents())
}

func TestBackend_CloseOnce(t *testing.T) {
	screen := newFakeScreen(1, 1)
	b := New(screen)

	b.Close()
	b.Close()
	assert.Equal(t, 1, screen.finis)
}

func TestBackend_ViewportErrors(t *testing.T) {
	b := New(newFakeScreen(1, 1))
	defer b.Close()

	_, err := b.CreateViewport(0, 1)
	assert.ErrorIs(t, err, backend.ErrViewport)
	assert.ErrorIs(t, b.Present(backend.Framebuffer{}), backend.ErrViewport)
}

func TestBackend_NowMillis(t *testing.T) {
	b := New(newFakeScreen(1, 1))
	defer b.Close()

	first := b.NowMillis()
	time.Sleep(2 * time.Millisecond)
	assert.Greater(t, b.NowMillis(), first)
}
