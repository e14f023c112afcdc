// Package display provides the 64x32 monochrome framebuffer of the
// CHIP-8. Sprites are XORed onto the buffer; a pixel turned off by a
// draw is reported as a collision.
//
// The buffer is written by the emulation goroutine and read by the
// host's render goroutine, so all access goes through a lock and
// readers only ever see whole frames via Snapshot.
package display

import (
	"strings"
	"sync"

	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/bits"
)

const (
	// Width of the display in pixels.
	Width = types.ScreenWidth
	// Height of the display in pixels.
	Height = types.ScreenHeight
)

// Frame is a copy of the display at a point in time, indexed [y][x].
type Frame [Height][Width]bool

// Buffer is the framebuffer.
type Buffer struct {
	pixels Frame
	dirty  bool
	clip   bool

	mu sync.RWMutex
}

// New returns a blank buffer. When clip is set sprites are cut off at
// the edges of the screen instead of wrapping around.
func New(clip bool) *Buffer {
	return &Buffer{clip: clip}
}

// SetClip changes how sprites crossing the edge are handled.
func (b *Buffer) SetClip(clip bool) {
	b.mu.Lock()
	b.clip = clip
	b.mu.Unlock()
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.pixels = Frame{}
	b.dirty = true
	b.mu.Unlock()
}

// Fill turns every pixel on.
func (b *Buffer) Fill() {
	b.mu.Lock()
	for y := range b.pixels {
		for x := range b.pixels[y] {
			b.pixels[y][x] = true
		}
	}
	b.dirty = true
	b.mu.Unlock()
}

// DrawSprite XORs the rows of a sprite onto the buffer with its top
// left corner at (x mod Width, y mod Height). Each row is 8 pixels
// wide, most significant bit leftmost. It returns true if any pixel
// was turned off.
func (b *Buffer) DrawSprite(x, y uint8, rows []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	x0, y0 := int(x)%Width, int(y)%Height
	collided := false
	for row, data := range rows {
		py := y0 + row
		if py >= Height {
			if b.clip {
				break
			}
			py %= Height
		}
		for col := 0; col < 8; col++ {
			if !bits.Test(data, uint8(7-col)) {
				continue
			}
			px := x0 + col
			if px >= Width {
				if b.clip {
					break
				}
				px %= Width
			}

			if b.pixels[py][px] {
				collided = true
			}
			b.pixels[py][px] = !b.pixels[py][px]
		}
	}
	b.dirty = true

	return collided
}

// Pixel reports whether the pixel at (x, y) is on. Out of range
// coordinates report false.
func (b *Buffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pixels[y][x]
}

// TogglePixel flips the pixel at (x, y). Out of range coordinates
// are ignored.
func (b *Buffer) TogglePixel(x, y int) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	b.mu.Lock()
	b.pixels[y][x] = !b.pixels[y][x]
	b.dirty = true
	b.mu.Unlock()
}

// Snapshot returns a consistent copy of the buffer.
func (b *Buffer) Snapshot() Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pixels
}

// Load replaces the contents of the buffer.
func (b *Buffer) Load(f Frame) {
	b.mu.Lock()
	b.pixels = f
	b.dirty = true
	b.mu.Unlock()
}

// Dirty reports whether the buffer has changed since the last call
// to ClearDirty.
func (b *Buffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// ClearDirty marks the buffer as unchanged.
func (b *Buffer) ClearDirty() {
	b.mu.Lock()
	b.dirty = false
	b.mu.Unlock()
}

// Colour is an RGB triple used when rendering a frame.
type Colour [3]uint8

var (
	// On is the default colour of a lit pixel.
	On = Colour{0xFF, 0xFF, 0xFF}
	// Off is the default colour of an unlit pixel.
	Off = Colour{0x00, 0x00, 0x00}
)

// RGB renders the frame as packed RGB888 rows, top to bottom.
func (f *Frame) RGB(on, off Colour) []byte {
	out := make([]byte, Width*Height*3)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := off
			if f[y][x] {
				c = on
			}
			i := (y*Width + x) * 3
			out[i], out[i+1], out[i+2] = c[0], c[1], c[2]
		}
	}
	return out
}

// Bytes packs the frame one bit per pixel, row major, most significant
// bit first.
func (f *Frame) Bytes() []byte {
	out := make([]byte, Width*Height/8)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f[y][x] {
				i := y*Width + x
				out[i/8] |= 1 << (7 - uint(i%8))
			}
		}
	}
	return out
}

// FrameFromBytes is the inverse of Frame.Bytes.
func FrameFromBytes(b []byte) Frame {
	var f Frame
	for i := 0; i < Width*Height && i/8 < len(b); i++ {
		if b[i/8]&(1<<(7-uint(i%8))) != 0 {
			f[i/Width][i%Width] = true
		}
	}
	return f
}

// String renders the frame for a terminal, lit pixels as '#'.
func (f *Frame) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", Width) + "+\n"
	sb.WriteString(border)
	for y := 0; y < Height; y++ {
		sb.WriteByte('|')
		for x := 0; x < Width; x++ {
			if f[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
