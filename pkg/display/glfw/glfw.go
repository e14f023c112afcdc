// Package glfw provides a display driver using GLFW and the OpenGL
// API.
package glfw

import (
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	chipdisplay "github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/log"
)

const (
	width       = chipdisplay.Width
	height      = chipdisplay.Height
	aspectRatio = float32(width) / float32(height)
)

func init() {
	// GLFW: this is needed to arrange for main to run on main thread
	runtime.LockOSThread()

	driver := &glfwDriver{Logger: log.New(false)}
	display.Install("glfw", driver, []display.DriverOption{
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &driver.fullscreen,
			Description: "Run in fullscreen mode",
		},
		{
			Name:        "scale",
			Default:     12.0,
			Value:       &driver.scale,
			Description: "Scale the window by this factor",
		},
		{
			Name:        "maintain-aspect-ratio",
			Default:     true,
			Value:       &driver.maintainAspectRatio,
			Description: "Force the window to maintain the correct aspect ratio",
		},
	})
}

var mon *glfw.Monitor

// glfwDriver implements a barebones display driver using GLFW
// and the OpenGL API.
type glfwDriver struct {
	fullscreen          bool
	scale               float64
	maintainAspectRatio bool

	emu display.Emulator
	log.Logger

	windowSettings struct {
		width      int
		height     int
		xPos, yPos int
	}
}

func (g *glfwDriver) Initialize(e display.Emulator) {
	g.emu = e
}

// Start starts the display driver.
func (g *glfwDriver) Start(frames <-chan []byte, evts <-chan event.Event, pressed, released chan<- keypad.Key) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	if err := gl.Init(); err != nil {
		return err
	}
	mon = glfw.GetPrimaryMonitor()

	window, err := glfw.CreateWindow(int(width*g.scale), int(height*g.scale), "gochip8", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()

	if g.maintainAspectRatio {
		window.SetAspectRatio(width, height)
	}
	if g.fullscreen {
		bestMode := getBestMode()
		window.SetMonitor(mon, 0, 0, bestMode.Width, bestMode.Height, bestMode.RefreshRate)
	}

	window.MakeContextCurrent()

	g.windowSettings.width, g.windowSettings.height = window.GetSize()
	g.windowSettings.xPos, g.windowSettings.yPos = window.GetPos()

	var texture uint32
	{
		gl.GenTextures(1, &texture)

		gl.BindTexture(gl.TEXTURE_2D, texture)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)

		gl.BindImageTexture(0, texture, 0, false, 0, gl.WRITE_ONLY, gl.RGB8)
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		// glfw key codes for letters and digits are their ASCII values
		if k, ok := display.KeyForRune(rune(key)); ok {
			switch action {
			case glfw.Press:
				pressed <- k
			case glfw.Release:
				released <- k
			}
		}

		if action == glfw.Press {
			switch key {
			case glfw.KeyF11:
				if g.fullscreen {
					window.SetMonitor(nil, g.windowSettings.xPos, g.windowSettings.yPos, g.windowSettings.width, g.windowSettings.height, 60)
				} else {
					g.windowSettings.width, g.windowSettings.height = window.GetSize()
					g.windowSettings.xPos, g.windowSettings.yPos = window.GetPos()

					bestMode := getBestMode()
					window.SetMonitor(mon, 0, 0, bestMode.Width, bestMode.Height, bestMode.RefreshRate)
				}

				g.fullscreen = !g.fullscreen
			case glfw.KeyEscape, glfw.KeyPause:
				if g.emu.Paused() {
					g.emu.SendCommand(display.Resume)
				} else {
					g.emu.SendCommand(display.Pause)
				}
			case glfw.KeyF5:
				g.emu.SendCommand(display.Reset)
			}
		}
	})

	var fb uint32
	{
		gl.GenFramebuffers(1, &fb)
		gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)

		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb)
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	}

	targetWidth := int32(width * g.scale)
	targetHeight := int32(height * g.scale)
	var offsetX, offsetY int32
	window.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		if float32(w)/float32(h) > aspectRatio {
			targetWidth = int32(float32(h) * aspectRatio)
			targetHeight = int32(h)
		} else {
			targetWidth = int32(w)
			targetHeight = int32(float32(w) / aspectRatio)
		}

		offsetX = (int32(w) - targetWidth) / 2
		offsetY = (int32(h) - targetHeight) / 2
	})

	// frames only arrive when the display changes
	pollTicker := time.NewTicker(time.Second / 60)
	defer pollTicker.Stop()
	for {
		select {
		case f := <-frames:
			gl.Clear(gl.COLOR_BUFFER_BIT)

			gl.BindTexture(gl.TEXTURE_2D, texture)
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, width, height, 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(f))

			gl.BlitFramebuffer(0, 0, width, height, offsetX, offsetY+targetHeight, offsetX+targetWidth, offsetY, gl.COLOR_BUFFER_BIT, gl.NEAREST)

			window.SwapBuffers()
		case e := <-evts:
			switch e.Type {
			case event.Title:
				window.SetTitle(e.Data.(string))
			case event.Halt:
				g.Errorf("machine halted: %v", e.Data)
			case event.Quit:
				return nil
			}
		case <-pollTicker.C:
			glfw.PollEvents()
			if window.ShouldClose() {
				g.emu.SendCommand(display.Close)
				return nil
			}
		}
	}
}

// Stop stops the display driver.
func (g *glfwDriver) Stop() error {
	glfw.Terminate()

	return nil
}

// getBestMode returns the best video mode for the current monitor
// by choosing the highest resolution that is the closest match to
// the native aspect ratio of the monitor.
func getBestMode() *glfw.VidMode {
	sizeX, sizeY := mon.GetPhysicalSize()
	monAspectRatio := float32(sizeX) / float32(sizeY)
	closestMatch := float32(0)

	var best *glfw.VidMode
	for _, vm := range mon.GetVideoModes() {
		if vm.RefreshRate != 60 {
			continue
		}

		vmAspectRatio := float32(vm.Width) / float32(vm.Height)
		if monAspectRatio-vmAspectRatio > closestMatch {
			continue
		}

		closestMatch = vmAspectRatio - monAspectRatio
		best = vm
	}

	return best
}
