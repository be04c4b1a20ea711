/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramebufferZeroValue(t *testing.T) {
	var f Framebuffer
	for y := range Height {
		for x := range Width {
			assert.Equal(t, byte(0), f.Pixel(x, y))
		}
	}
}

func TestDrawSpriteBitOrder(t *testing.T) {
	f := NewFramebuffer()
	collision := f.DrawSprite(0, 0, []byte{0b1010_0001})

	assert.False(t, collision)
	assert.Equal(t, byte(1), f.Pixel(0, 0))
	assert.Equal(t, byte(0), f.Pixel(1, 0))
	assert.Equal(t, byte(1), f.Pixel(2, 0))
	assert.Equal(t, byte(0), f.Pixel(6, 0))
	assert.Equal(t, byte(1), f.Pixel(7, 0))
	assert.Equal(t, byte(0), f.Pixel(8, 0))
}

func TestDrawSpriteWraps(t *testing.T) {
	f := NewFramebuffer()
	f.DrawSprite(62, 31, []byte{0xFF, 0x80})

	// First row straddles the right edge on the last line.
	assert.Equal(t, byte(1), f.Pixel(62, 31))
	assert.Equal(t, byte(1), f.Pixel(63, 31))
	for x := range 6 {
		assert.Equal(t, byte(1), f.Pixel(x, 31), "column %d", x)
	}
	assert.Equal(t, byte(0), f.Pixel(6, 31))

	// Second row wraps to the top.
	assert.Equal(t, byte(1), f.Pixel(62, 0))
	assert.Equal(t, byte(0), f.Pixel(63, 0))
}

func TestDrawSpriteWrapsLargeCoordinates(t *testing.T) {
	f := NewFramebuffer()
	f.DrawSprite(64+3, 32+2, []byte{0x80})
	assert.Equal(t, byte(1), f.Pixel(3, 2))
}

func TestDrawSpriteCollision(t *testing.T) {
	f := NewFramebuffer()
	assert.False(t, f.DrawSprite(4, 4, []byte{0xF0}))

	// Overlapping by one pixel turns it off.
	assert.True(t, f.DrawSprite(7, 4, []byte{0x80}))
	assert.Equal(t, byte(0), f.Pixel(7, 4))

	// Drawing onto unlit pixels only does not collide.
	assert.False(t, f.DrawSprite(7, 4, []byte{0x80}))
	assert.Equal(t, byte(1), f.Pixel(7, 4))
}

func TestDrawSpriteTwiceRestores(t *testing.T) {
	f := NewFramebuffer()
	f.DrawSprite(0, 0, []byte{0x0F})
	before := f.String()

	sprite := []byte{0x3C, 0x42, 0x81, 0xFF, 0x81, 0x42, 0x3C, 0x18}
	// The top row overlaps the pixels drawn above.
	assert.True(t, f.DrawSprite(2, 0, sprite))
	assert.True(t, f.DrawSprite(2, 0, sprite))
	assert.Equal(t, before, f.String())
}

func TestClear(t *testing.T) {
	f := NewFramebuffer()
	f.DrawSprite(10, 10, []byte{0xFF, 0xFF, 0xFF})
	f.Clear()
	assert.Equal(t, strings.Repeat(strings.Repeat(".", Width)+"\n", Height), f.String())
}

func TestString(t *testing.T) {
	f := NewFramebuffer()
	f.DrawSprite(1, 0, []byte{0xC0})

	lines := strings.Split(strings.TrimSuffix(f.String(), "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, ".##"+strings.Repeat(".", Width-3), lines[0])
}
