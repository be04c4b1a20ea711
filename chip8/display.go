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

import "strings"

const (
	Width  int = 64
	Height int = 32
	Area   int = Width * Height
)

// Framebuffer is the 64x32 monochrome display. Every cell is either 0 or 1.
// The zero value is a cleared display.
type Framebuffer struct {
	pixels [Area]byte
}

func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

func (f *Framebuffer) Clear() {
	for i := range f.pixels {
		f.pixels[i] = 0
	}
}

// Pixel returns the cell at column x, row y. Coordinates are not wrapped.
func (f *Framebuffer) Pixel(x, y int) byte {
	return f.pixels[y*Width+x]
}

// DrawSprite XORs sprite onto the display with its top-left corner at (x, y).
// Each byte is one row, most significant bit leftmost. Rows and columns that
// run past an edge wrap around to the opposite side. The result reports
// whether any pixel was switched off.
func (f *Framebuffer) DrawSprite(x, y uint8, sprite []byte) bool {
	var collision bool

	for row, bits := range sprite {
		py := (int(y) + row) % Height

		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := (int(x) + col) % Width
			index := py*Width + px

			if f.pixels[index] == 1 {
				// Pixel was already on. This indicates a graphical object collision.
				collision = true
			}
			f.pixels[index] ^= 1
		}
	}

	return collision
}

// String renders the display one row per line, '#' for set pixels and '.'
// for clear ones.
func (f *Framebuffer) String() string {
	var b strings.Builder
	b.Grow(Area + Height)

	for y := range Height {
		for x := range Width {
			if f.Pixel(x, y) == 1 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
