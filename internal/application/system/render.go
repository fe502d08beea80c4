package system

import (
	"io"
	"log"

	"github.com/younwookim/raycaster/internal/domain/entity"
	"github.com/younwookim/raycaster/internal/domain/texture"
	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

// Flat wall colors by material when texturing is off
const (
	flatRed   uint32 = 0xFF0000
	flatGreen uint32 = 0x00FF00
	flatBlue  uint32 = 0x0000FF
)

// PixelWriter is the part of the backend the renderer needs
type PixelWriter interface {
	WritePixel(fb backend.Framebuffer, column, row int, color uint32)
}

// RenderOptions controls shading
type RenderOptions struct {
	Textures       bool
	Background     uint32
	SideMultiplier float64 // flat shading factor for side faces
	Logger         *log.Logger
}

// FrameStats summarises one rendered frame
type FrameStats struct {
	Columns        int
	SkippedColumns int
	WallPixels     int
}

// Renderer draws one vertical wall slice per screen column
type Renderer struct {
	caster *RayCaster
	bank   *texture.Bank
	out    PixelWriter
	opts   RenderOptions
}

// NewRenderer creates a renderer writing through out
func NewRenderer(caster *RayCaster, bank *texture.Bank, out PixelWriter, opts RenderOptions) *Renderer {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Renderer{
		caster: caster,
		bank:   bank,
		out:    out,
		opts:   opts,
	}
}

// SetTextures switches between textured and flat shading
func (r *Renderer) SetTextures(enabled bool) {
	r.opts.Textures = enabled
}

// Textures reports whether texturing is enabled
func (r *Renderer) Textures() bool {
	return r.opts.Textures
}

// Render writes every pixel of fb exactly once for the given camera
func (r *Renderer) Render(fb backend.Framebuffer, p entity.Player) FrameStats {
	stats := FrameStats{Columns: fb.Width}
	var firstErr error

	for column := 0; column < fb.Width; column++ {
		hit, err := r.caster.Cast(p.Position, RayDirection(p, column, fb.Width))
		if err == nil {
			var wall int
			wall, err = r.drawColumn(fb, column, hit)
			stats.WallPixels += wall
		}
		if err != nil {
			stats.SkippedColumns++
			if firstErr == nil {
				firstErr = err
			}
			r.fillColumn(fb, column, 0, fb.Height)
		}
	}

	if firstErr != nil {
		r.opts.Logger.Printf("skipped %d columns: %v", stats.SkippedColumns, firstErr)
	}
	return stats
}

func (r *Renderer) fillColumn(fb backend.Framebuffer, column, from, to int) {
	for row := from; row < to; row++ {
		r.out.WritePixel(fb, column, row, r.opts.Background)
	}
}

func (r *Renderer) drawColumn(fb backend.Framebuffer, column int, hit Hit) (int, error) {
	height := HeightForWallDistance(hit.PerpDistance, fb.Height)
	top := (fb.Height - height) / 2
	bottom := top + height

	var tex *texture.Texture
	var flat uint32
	if r.opts.Textures {
		var err error
		if tex, err = r.bank.Texture(hit.Material); err != nil {
			return 0, err
		}
	} else {
		flat = r.flatColor(hit)
	}

	r.fillColumn(fb, column, 0, top)
	for row := top; row < bottom; row++ {
		color := flat
		if tex != nil {
			color = tex.At(hit.TextureX, TextureRow(row, fb.Height, height, tex.Size()))
			if hit.Face == FaceSide {
				color = DarkenSide(color)
			}
		}
		r.out.WritePixel(fb, column, row, color)
	}
	r.fillColumn(fb, column, bottom, fb.Height)

	return height, nil
}

func (r *Renderer) flatColor(hit Hit) uint32 {
	var c uint32
	switch hit.Material {
	case 1:
		c = flatRed
	case 2:
		c = flatGreen
	default:
		c = flatBlue
	}
	if hit.Face == FaceSide {
		c = ScaleColor(c, r.opts.SideMultiplier)
	}
	return c
}

// TextureRow maps a screen row inside a wall slice to a texture row using 8-bit fixed point
func TextureRow(row, screenHeight, sliceHeight, textureHeight int) int {
	if sliceHeight <= 0 {
		return 0
	}
	d := row*256 - screenHeight*128 + sliceHeight*128
	v := (d * textureHeight / sliceHeight) / 256
	return entity.Clamp(v, 0, textureHeight-1)
}

// DarkenSide halves every channel of a packed color
func DarkenSide(c uint32) uint32 {
	return (c >> 1) & 0x7F7F7F
}

// ScaleColor multiplies every channel of a packed color by f
func ScaleColor(c uint32, f float64) uint32 {
	r, g, b := backend.RGB(c)
	scale := func(v uint8) uint8 {
		return uint8(entity.Clamp(float64(v)*f, 0, 255))
	}
	return backend.Pack(scale(r), scale(g), scale(b))
}
