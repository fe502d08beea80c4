package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramebuffer_Contains(t *testing.T) {
	fb := Framebuffer{Width: 4, Height: 3}

	assert.True(t, fb.Contains(0, 0))
	assert.True(t, fb.Contains(3, 2))
	assert.False(t, fb.Contains(4, 0))
	assert.False(t, fb.Contains(0, 3))
	assert.False(t, fb.Contains(-1, 1))
}

func TestRGBPack(t *testing.T) {
	r, g, b := RGB(0x123456)
	assert.Equal(t, uint8(0x12), r)
	assert.Equal(t, uint8(0x34), g)
	assert.Equal(t, uint8(0x56), b)
	assert.Equal(t, uint32(0x123456), Pack(r, g, b))
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "Up", KeyUp.String())
	assert.Equal(t, "PageDown", KeyPageDown.String())
	assert.Equal(t, "Unknown", Key(99).String())
}

func TestEventConstructors(t *testing.T) {
	assert.Equal(t, Event{Kind: EventKeyDown, Key: KeyEscape}, KeyPress(KeyEscape))
	assert.Equal(t, EventQuit, Quit().Kind)
}

func TestParseKey(t *testing.T) {
	for k := KeyUp; k <= KeyP; k++ {
		assert.Equal(t, k, ParseKey(k.String()))
	}
	assert.Equal(t, KeyUnknown, ParseKey("F13"))
	assert.Equal(t, KeyUnknown, ParseKey(""))
}
