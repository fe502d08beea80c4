// Package texture generates the procedural wall textures sampled by the renderer.
//
// Textures are pure functions of pixel coordinates and material id, so two banks
// generated with the same parameters are bit-identical.
package texture

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/raycaster/internal/domain/entity"
)

// DefaultSize is the reference width and height of a texture in pixels
const DefaultSize = 64

// ErrUnknownTexture is returned when a material id has no generated texture
var ErrUnknownTexture = errors.New("unknown texture")

// Texture is a square grid of packed 0xRRGGBB pixels, stored row by row
type Texture struct {
	size   int
	pixels []uint32
}

// Size returns the width (and height) in pixels
func (t *Texture) Size() int {
	return t.size
}

// At returns the pixel at (u, v), clamping both coordinates into the texture
func (t *Texture) At(u, v int) uint32 {
	u = entity.Clamp(u, 0, t.size-1)
	v = entity.Clamp(v, 0, t.size-1)
	return t.pixels[v*t.size+u]
}

// Bank holds one texture per wall material. Material ids are 1-based.
type Bank struct {
	size     int
	textures []*Texture
}

// Generate builds count textures of size x size pixels
func Generate(count, size int) *Bank {
	b := &Bank{
		size:     size,
		textures: make([]*Texture, count),
	}
	for i := range b.textures {
		b.textures[i] = generate(i, size)
	}
	return b
}

// Len returns the number of textures
func (b *Bank) Len() int {
	return len(b.textures)
}

// Size returns the texture width (and height) in pixels
func (b *Bank) Size() int {
	return b.size
}

// Texture returns the texture for a material id
func (b *Bank) Texture(material int) (*Texture, error) {
	if material < 1 || material > len(b.textures) {
		return nil, fmt.Errorf("material %d: %w", material, ErrUnknownTexture)
	}
	return b.textures[material-1], nil
}

// Sample returns the pixel at (u, v) of the texture for a material id
func (b *Bank) Sample(material, u, v int) (uint32, error) {
	tex, err := b.Texture(material)
	if err != nil {
		return 0, err
	}
	return tex.At(u, v), nil
}

// Equal reports whether both banks hold identical pixels
func (b *Bank) Equal(other *Bank) bool {
	if other == nil || b.size != other.size || len(b.textures) != len(other.textures) {
		return false
	}
	for i, tex := range b.textures {
		for j, px := range tex.pixels {
			if other.textures[i].pixels[j] != px {
				return false
			}
		}
	}
	return true
}

// Pattern is a pixel function of texture coordinates
type Pattern func(x, y, size int) uint32

// Patterns used by the first materials; later ids reuse them with a tint
var Patterns = []Pattern{
	XOR,
	Grid,
	Stripes,
}

// XOR is a grey XOR pattern
func XOR(x, y, size int) uint32 {
	c := uint32((x*256/size)^(y*256/size)) & 0xFF
	return c<<16 | c<<8 | c
}

// Grid is red with a black line every 16 pixels
func Grid(x, y, _ int) uint32 {
	if x%16 == 0 || y%16 == 0 {
		return 0
	}
	return 192 << 16
}

// Stripes is vertical blue sine stripes
func Stripes(x, _, _ int) uint32 {
	c := 128 + 128*math.Sin(float64(x)/8)
	return uint32(entity.Clamp(int(c), 0, 255))
}

func generate(index, size int) *Texture {
	pattern := Patterns[index%len(Patterns)]
	// Rounds past the base patterns rotate the color channels
	shift := uint(index/len(Patterns)%3) * 8

	tex := &Texture{
		size:   size,
		pixels: make([]uint32, size*size),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px := pattern(x, y, size)
			if shift != 0 {
				px = (px<<shift | px>>(24-shift)) & 0xFFFFFF
			}
			tex.pixels[y*size+x] = px
		}
	}
	return tex
}
