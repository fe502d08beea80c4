package system

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/raycaster/internal/domain/entity"
	"github.com/younwookim/raycaster/internal/domain/texture"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
	"github.com/younwookim/raycaster/internal/infrastructure/backend/headless"
)

const testBackground uint32 = 0x101010

// countingWriter records how many times each pixel is written
type countingWriter struct {
	width  int
	counts []int
}

func newCountingWriter(width, height int) *countingWriter {
	return &countingWriter{width: width, counts: make([]int, width*height)}
}

func (w *countingWriter) WritePixel(_ backend.Framebuffer, column, row int, _ uint32) {
	w.counts[row*w.width+column]++
}

func createTestRenderer(t testing.TB, world *entity.WorldMap, out PixelWriter, textures bool) *Renderer {
	t.Helper()
	return NewRenderer(NewRayCaster(world, texture.DefaultSize), texture.Generate(3, texture.DefaultSize), out, RenderOptions{
		Textures:       textures,
		Background:     testBackground,
		SideMultiplier: 0.75,
	})
}

func createTestViewport(t testing.TB, width, height int) (*headless.Backend, backend.Framebuffer) {
	t.Helper()
	b := headless.New(16)
	fb, err := b.CreateViewport(width, height)
	require.NoError(t, err)
	return b, fb
}

func TestRenderer_WritesEveryPixelOnce(t *testing.T) {
	for _, textures := range []bool{true, false} {
		w := newCountingWriter(64, 48)
		r := createTestRenderer(t, entity.ReferenceMap(), w, textures)
		fb := backend.Framebuffer{ID: 1, Width: 64, Height: 48}

		stats := r.Render(fb, entity.DefaultPlayer())

		assert.Equal(t, 64, stats.Columns)
		assert.Zero(t, stats.SkippedColumns)
		assert.Positive(t, stats.WallPixels)
		for i, c := range w.counts {
			require.Equal(t, 1, c, "pixel %d (textures=%v)", i, textures)
		}
	}
}

func TestRenderer_ReferenceColumnFlat(t *testing.T) {
	b, fb := createTestViewport(t, 800, 600)
	r := createTestRenderer(t, entity.ReferenceMap(), b, false)

	r.Render(fb, entity.DefaultPlayer())

	// Height 75 at distance 8, so the slice spans rows [262, 337)
	assert.Equal(t, testBackground, b.Pixel(400, 0))
	assert.Equal(t, testBackground, b.Pixel(400, 261))
	assert.Equal(t, flatRed, b.Pixel(400, 262))
	assert.Equal(t, flatRed, b.Pixel(400, 300))
	assert.Equal(t, flatRed, b.Pixel(400, 336))
	assert.Equal(t, testBackground, b.Pixel(400, 337))
	assert.Equal(t, testBackground, b.Pixel(400, 599))
}

func TestRenderer_ReferenceColumnTextured(t *testing.T) {
	b, fb := createTestViewport(t, 800, 600)
	world := entity.ReferenceMap()
	r := createTestRenderer(t, world, b, true)
	bank := texture.Generate(3, texture.DefaultSize)
	p := entity.DefaultPlayer()

	r.Render(fb, p)

	hit, err := NewRayCaster(world, texture.DefaultSize).Cast(p.Position, RayDirection(p, 400, 800))
	require.NoError(t, err)

	for row := 262; row < 337; row++ {
		expected, err := bank.Sample(hit.Material, hit.TextureX, TextureRow(row, 600, 75, texture.DefaultSize))
		require.NoError(t, err)
		assert.Equal(t, expected, b.Pixel(400, row), "row %d", row)
	}
}

func TestRenderer_SideShading(t *testing.T) {
	world := createTestWorld(t)
	// Facing north from (2.5,2.5): the center ray hits the top wall on a side face at distance 1.5
	p := entity.NewPlayer(entity.Vec2{X: 2.5, Y: 2.5}, entity.Vec2{X: 0, Y: -1}, entity.Vec2{X: 0.66, Y: 0})

	t.Run("flat", func(t *testing.T) {
		b, fb := createTestViewport(t, 800, 600)
		r := createTestRenderer(t, world, b, false)
		r.Render(fb, p)

		assert.Equal(t, uint32(0xBF0000), b.Pixel(400, 300))
		assert.Equal(t, testBackground, b.Pixel(400, 99))
		assert.Equal(t, uint32(0xBF0000), b.Pixel(400, 100))
	})

	t.Run("textured", func(t *testing.T) {
		b, fb := createTestViewport(t, 800, 600)
		r := createTestRenderer(t, world, b, true)
		r.Render(fb, p)

		hit, err := NewRayCaster(world, texture.DefaultSize).Cast(p.Position, RayDirection(p, 400, 800))
		require.NoError(t, err)
		require.Equal(t, FaceSide, hit.Face)

		bank := texture.Generate(3, texture.DefaultSize)
		raw, err := bank.Sample(1, hit.TextureX, TextureRow(300, 600, 400, texture.DefaultSize))
		require.NoError(t, err)
		assert.Equal(t, DarkenSide(raw), b.Pixel(400, 300))
	})
}

func TestRenderer_FlatColors(t *testing.T) {
	r := createTestRenderer(t, createTestWorld(t), newCountingWriter(1, 1), false)

	tests := []struct {
		material int
		face     Face
		expected uint32
	}{
		{1, FaceFront, flatRed},
		{2, FaceFront, flatGreen},
		{3, FaceFront, flatBlue},
		{7, FaceFront, flatBlue},
		{2, FaceSide, 0x00BF00},
		{5, FaceSide, 0x0000BF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, r.flatColor(Hit{Material: tt.material, Face: tt.face}))
	}
}

func TestRenderer_SkipsFailedColumns(t *testing.T) {
	var buf bytes.Buffer
	b, fb := createTestViewport(t, 32, 24)
	r := NewRenderer(NewRayCaster(createTestWorld(t), 64), texture.Generate(3, 64), b, RenderOptions{
		Textures:   true,
		Background: testBackground,
		Logger:     log.New(&buf, "", 0),
	})

	// Standing outside the grid looking away from it, no ray can hit a wall
	p := entity.NewPlayer(entity.Vec2{X: -5, Y: 2.5}, entity.Vec2{X: -1, Y: 0}, entity.Vec2{X: 0, Y: 0.66})
	stats := r.Render(fb, p)

	assert.Equal(t, 32, stats.SkippedColumns)
	assert.Zero(t, stats.WallPixels)
	for _, px := range b.Pixels() {
		assert.Equal(t, testBackground, px)
	}
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), "skipped 32 columns")
}

func TestRenderer_UnknownMaterialSkipsColumn(t *testing.T) {
	w := newCountingWriter(16, 12)
	// Only one texture for a map that uses three materials
	r := NewRenderer(NewRayCaster(createTestWorld(t), 64), texture.Generate(1, 64), w, RenderOptions{Textures: true})
	p := entity.NewPlayer(entity.Vec2{X: 2.5, Y: 2.5}, entity.Vec2{X: 1, Y: 0}, entity.Vec2{X: 0, Y: 0.66})

	stats := r.Render(backend.Framebuffer{Width: 16, Height: 12}, p)

	assert.Positive(t, stats.SkippedColumns)
	for _, c := range w.counts {
		assert.Equal(t, 1, c)
	}
}

func TestRenderer_SetTextures(t *testing.T) {
	r := createTestRenderer(t, createTestWorld(t), newCountingWriter(1, 1), true)
	assert.True(t, r.Textures())

	r.SetTextures(false)
	assert.False(t, r.Textures())
}

func TestTextureRow(t *testing.T) {
	// Slice filling the screen maps the first and last rows to the texture edges
	assert.Equal(t, 0, TextureRow(0, 600, 600, 64))
	assert.Equal(t, 63, TextureRow(599, 600, 600, 64))
	assert.Equal(t, 32, TextureRow(300, 600, 600, 64))

	for row := 0; row < 600; row++ {
		v := TextureRow(row, 600, 75, 64)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 64)
	}

	assert.Equal(t, 0, TextureRow(10, 600, 0, 64))
}

func TestShading(t *testing.T) {
	assert.Equal(t, uint32(0x7F7F7F), DarkenSide(0xFFFFFF))
	assert.Equal(t, uint32(0x000000), DarkenSide(0x010101))
	assert.Equal(t, uint32(0x604020), DarkenSide(0xC08040))

	assert.Equal(t, uint32(0x0000BF), ScaleColor(0x0000FF, 0.75))
	assert.Equal(t, uint32(0x804020), ScaleColor(0x804020, 1))
	assert.Equal(t, uint32(0xFFFFFF), ScaleColor(0x808080, 4))
}
