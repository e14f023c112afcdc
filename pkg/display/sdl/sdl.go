// Package sdl provides a display driver using an SDL window and
// renderer.
package sdl

import (
	"runtime"
	"time"

	chipdisplay "github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	width  = chipdisplay.Width
	height = chipdisplay.Height
)

func init() {
	// SDL events must be handled on the main thread
	runtime.LockOSThread()

	driver := &sdlDriver{Logger: log.New(false)}
	display.Install("sdl", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     12.0,
			Value:       &driver.scale,
			Description: "Scale the window by this factor",
		},
	})
}

type sdlDriver struct {
	scale float64

	emu display.Emulator
	log.Logger

	window   *sdl.Window
	renderer *sdl.Renderer
}

func (s *sdlDriver) Initialize(e display.Emulator) {
	s.emu = e
}

// Start opens the window and renders frames until the window is
// closed or a Quit event is received.
func (s *sdlDriver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}

	var err error
	s.window, err = sdl.CreateWindow("gochip8", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width*s.scale), int32(height*s.scale), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return err
	}
	defer s.window.Destroy()

	s.renderer, err = sdl.CreateRenderer(s.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return err
	}
	defer s.renderer.Destroy()
	if err := s.renderer.SetLogicalSize(width, height); err != nil {
		return err
	}

	poll := time.NewTicker(time.Second / 60)
	defer poll.Stop()
	for {
		select {
		case f := <-fb:
			if err := s.draw(f); err != nil {
				return err
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				s.window.SetTitle(e.Data.(string))
			case event.Halt:
				s.Errorf("machine halted: %v", e.Data)
			case event.Quit:
				return nil
			}
		case <-poll.C:
			if quit := s.pollEvents(pressed, released); quit {
				s.emu.SendCommand(display.Close)
				return nil
			}
		}
	}
}

// pollEvents drains the SDL event queue, and reports whether the
// window was closed.
func (s *sdlDriver) pollEvents(pressed, released chan<- keypad.Key) bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch t := e.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if t.Repeat != 0 {
				continue
			}
			// SDL key codes for letters and digits are lower case ASCII
			if k, ok := display.KeyForRune(rune(t.Keysym.Sym)); ok {
				if t.Type == sdl.KEYDOWN {
					pressed <- k
				} else {
					released <- k
				}
				continue
			}
			if t.Type != sdl.KEYDOWN {
				continue
			}
			switch t.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_PAUSE:
				if s.emu.Paused() {
					s.emu.SendCommand(display.Resume)
				} else {
					s.emu.SendCommand(display.Pause)
				}
			case sdl.K_F5:
				s.emu.SendCommand(display.Reset)
			}
		}
	}
	return false
}

// draw paints a packed RGB frame, one logical pixel per CHIP-8
// pixel.
func (s *sdlDriver) draw(f []byte) error {
	if err := s.renderer.SetDrawColor(f[0], f[1], f[2], 0xFF); err != nil {
		return err
	}
	if err := s.renderer.Clear(); err != nil {
		return err
	}
	for i := 1; i < width*height && i*3+2 < len(f); i++ {
		if f[i*3] == f[0] && f[i*3+1] == f[1] && f[i*3+2] == f[2] {
			continue
		}
		s.renderer.SetDrawColor(f[i*3], f[i*3+1], f[i*3+2], 0xFF)
		s.renderer.DrawPoint(int32(i%width), int32(i/width))
	}
	s.renderer.Present()
	return nil
}

// Stop stops the display driver.
func (s *sdlDriver) Stop() error {
	sdl.Quit()
	return nil
}
