// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package display is an optional SDL2 window that mirrors the guest's
// framebuffer, for a host that wants to watch a running program rather
// than just inspect its final register state. It is entirely separate
// from the CPU: a caller polls memory between ticks and hands the
// bytes over, the same way the teacher's windows poll a television's
// pixel buffer.
package display

import (
	"fmt"

	"github.com/armbox/armbox/arm"
	"github.com/armbox/armbox/armconfig"
	"github.com/armbox/armbox/armlog"
	"github.com/veandco/go-sdl2/sdl"
)

const logTag = "display"

// Window owns an SDL window, renderer and streaming texture sized to
// the guest's configured screen geometry.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width, height int
	bpp           uint8
}

// New opens a window sized cfg.ScreenWidth x cfg.ScreenHeight, scaled
// up by scale for visibility on a modern display.
func New(title string, cfg armconfig.Config, scale int) (*Window, error) {
	if cfg.ScreenWidth == 0 || cfg.ScreenHeight == 0 {
		return nil, fmt.Errorf("display: screen geometry is zero, nothing to show")
	}
	if scale < 1 {
		scale = 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("display: sdl init: %w", err)
	}

	w := int(cfg.ScreenWidth)
	h := int(cfg.ScreenHeight)

	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w*scale), int32(h*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("display: create window: %w", err)
	}

	ren, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("display: create renderer: %w", err)
	}

	tex, err := ren.CreateTexture(sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		ren.Destroy()
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("display: create texture: %w", err)
	}

	armlog.Logf(logTag, "window opened: %dx%d at scale %d, bpp=%d", w, h, scale, cfg.ScreenBPP)

	return &Window{window: win, renderer: ren, texture: tex, width: w, height: h, bpp: cfg.ScreenBPP}, nil
}

// Destroy releases every SDL resource the window holds.
func (win *Window) Destroy() {
	win.texture.Destroy()
	win.renderer.Destroy()
	win.window.Destroy()
	sdl.Quit()
}

// Update reads the framebuffer out of mem at the address recorded in
// cfg, converts it to RGBA8888 assuming a BPP-sized packed pixel
// format, and presents it.
func (win *Window) Update(mem *arm.Memory, cfg armconfig.Config) error {
	pixels, pitch, err := win.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("display: lock texture: %w", err)
	}
	defer win.texture.Unlock()

	stride := int(cfg.ScreenBPP) / 8
	if stride == 0 {
		stride = 1
	}

	base := cfg.FramebufferAddr
	for y := 0; y < win.height; y++ {
		row := pixels[y*pitch : y*pitch+win.width*4]
		for x := 0; x < win.width; x++ {
			addr := base + uint32((y*win.width+x)*stride)
			r, g, b, a := win.readPixel(mem, addr, stride)
			row[x*4+0] = r
			row[x*4+1] = g
			row[x*4+2] = b
			row[x*4+3] = a
		}
	}

	win.renderer.Clear()
	win.renderer.Copy(win.texture, nil, nil)
	win.renderer.Present()
	return nil
}

// readPixel decodes one guest pixel. A one-byte stride is treated as
// 8-bit greyscale; anything wider is read as a little-endian word
// whose low three bytes are red, green and blue. Alpha is always
// opaque; the word's top byte is ignored.
func (win *Window) readPixel(mem *arm.Memory, addr uint32, stride int) (r, g, b, a byte) {
	if stride <= 1 {
		v := mem.ReadByte(addr)
		return v, v, v, 0xFF
	}
	word := mem.ReadWord(addr)
	return byte(word), byte(word >> 8), byte(word >> 16), 0xFF
}

// PollQuit drains the SDL event queue and reports whether the user
// asked to close the window.
func PollQuit() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			return true
		}
	}
	return false
}
