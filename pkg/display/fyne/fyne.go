//go:build !test

// Package fyne provides a display driver built on the fyne toolkit,
// with a menu bar and additional windows for inspecting the machine.
package fyne

import (
	"fmt"
	"image"
	"io"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	chipdisplay "github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/display/fyne/themes"
	"github.com/thelolagemann/gochip8/pkg/display/fyne/views"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// speeds are the instruction rates offered by the speed menu.
var speeds = []uint32{350, 500, 700, 1000, 1400, 2800}

func init() {
	driver := &fyneDriver{Logger: log.New(false)}
	display.Install("fyne", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     12.0,
			Value:       &driver.scale,
			Description: "Scale the window by this factor",
		},
	})
}

type viewWindow struct {
	fyne.Window
	view   View
	events chan event.Event
}

type fyneDriver struct {
	scale float64

	emu display.Emulator
	log.Logger

	app    fyne.App
	main   fyne.Window
	img    *image.RGBA
	raster *canvas.Raster

	mu    sync.Mutex
	views []*viewWindow
	last  []byte
}

func (f *fyneDriver) Initialize(e display.Emulator) {
	f.emu = e
}

// Start opens the main window and runs the application until it is
// closed or a Quit event is received.
func (f *fyneDriver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	f.app = app.NewWithID("io.github.thelolagemann.gochip8")
	f.app.Settings().SetTheme(themes.Phosphor{})

	f.main = f.app.NewWindow("gochip8")
	f.main.SetMaster()
	f.main.SetPadded(false)
	f.main.Resize(fyne.NewSize(float32(chipdisplay.Width*f.scale), float32(chipdisplay.Height*f.scale)))

	f.img = image.NewRGBA(image.Rect(0, 0, chipdisplay.Width, chipdisplay.Height))
	f.raster = canvas.NewRasterFromImage(f.img)
	f.raster.ScaleMode = canvas.ImageScalePixels
	f.raster.SetMinSize(fyne.NewSize(chipdisplay.Width, chipdisplay.Height))
	f.main.SetContent(f.raster)
	f.main.SetMainMenu(f.mainMenu())

	if desk, ok := f.main.Canvas().(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if k, ok := keyFor(e.Name); ok {
				pressed <- k
			}
		})
		desk.SetOnKeyUp(func(e *fyne.KeyEvent) {
			if k, ok := keyFor(e.Name); ok {
				released <- k
			}
		})
	}
	f.main.SetOnClosed(func() {
		f.emu.SendCommand(display.Close)
	})

	done := make(chan struct{})
	defer close(done)
	go f.dispatch(fb, events, done)

	f.main.ShowAndRun()
	return nil
}

// dispatch copies frames to the main window and fans events out to
// the open views.
func (f *fyneDriver) dispatch(fb <-chan []byte, events <-chan event.Event, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case frame := <-fb:
			for i := 0; i < chipdisplay.Width*chipdisplay.Height; i++ {
				f.img.Pix[i*4] = frame[i*3]
				f.img.Pix[i*4+1] = frame[i*3+1]
				f.img.Pix[i*4+2] = frame[i*3+2]
				f.img.Pix[i*4+3] = 0xFF
			}
			f.mu.Lock()
			f.last = frame
			f.mu.Unlock()
			f.raster.Refresh()
		case e := <-events:
			switch e.Type {
			case event.Title:
				f.main.SetTitle(e.Data.(string))
			case event.Halt:
				dialog.ShowError(e.Data.(error), f.main)
			case event.Quit:
				f.app.Quit()
				return
			}
			f.mu.Lock()
			for _, w := range f.views {
				select {
				case w.events <- e:
				default:
				}
			}
			f.mu.Unlock()
		}
	}
}

func keyFor(name fyne.KeyName) (keypad.Key, bool) {
	if len(name) != 1 {
		return 0, false
	}
	return display.KeyForRune(rune(name[0]))
}

func (f *fyneDriver) mainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open ROM...", f.openROM),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save State...", f.saveState),
		fyne.NewMenuItem("Load State...", f.loadState),
	)

	speed := fyne.NewMenuItem("Speed", nil)
	speed.ChildMenu = fyne.NewMenu("")
	for _, hz := range speeds {
		hz := hz
		item := fyne.NewMenuItem(fmt.Sprintf("%d Hz", hz), nil)
		item.Checked = f.emu.Speed() == float64(hz)
		item.Action = func() {
			if f.command(emulator.SpeedPacket(hz)) != nil {
				return
			}
			for _, i := range speed.ChildMenu.Items {
				i.Checked = i == item
			}
		}
		speed.ChildMenu.Items = append(speed.ChildMenu.Items, item)
	}

	emuMenu := fyne.NewMenu("Emulation",
		NewCustomizedMenuItem("Pause", nil, Checked(f.emu.Paused(), func(paused bool) {
			if paused {
				f.emu.SendCommand(display.Pause)
			} else {
				f.emu.SendCommand(display.Resume)
			}
		})),
		fyne.NewMenuItem("Reset", func() {
			f.command(display.Reset)
		}),
		speed,
	)

	videoMenu := fyne.NewMenu("Video",
		fyne.NewMenuItem("Copy Screenshot", func() {
			f.showError(utils.CopyImage(f.screenshot()))
		}),
		fyne.NewMenuItem("Save Screenshot...", func() {
			f.showError(utils.SaveImage(f.screenshot()))
		}),
	)

	debugMenu := fyne.NewMenu("Debug",
		fyne.NewMenuItem("Performance", func() {
			f.openView(&views.Performance{})
		}),
	)

	return fyne.NewMainMenu(fileMenu, emuMenu, videoMenu, debugMenu)
}

// command sends p to the emulator, showing any error.
func (f *fyneDriver) command(p emulator.CommandPacket) error {
	resp := f.emu.SendCommand(p)
	f.showError(resp.Error)
	return resp.Error
}

func (f *fyneDriver) showError(err error) {
	if err != nil {
		dialog.ShowError(err, f.main)
	}
}

func (f *fyneDriver) screenshot() image.Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	return utils.FrameImage(f.last, 8)
}

func (f *fyneDriver) openROM() {
	path, err := utils.AskForFile("Open ROM", ".")
	if err != nil {
		return // cancelled
	}
	rom, err := utils.LoadFile(path)
	if err != nil {
		f.showError(err)
		return
	}
	f.command(emulator.CommandPacket{Command: emulator.CommandLoadROM, Data: rom})
}

func (f *fyneDriver) saveState() {
	resp := f.emu.SendCommand(emulator.CommandPacket{Command: emulator.CommandSaveState})
	if resp.Error != nil {
		f.showError(resp.Error)
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			f.showError(err)
			return
		}
		defer w.Close()
		_, err = w.Write(resp.Data)
		f.showError(err)
	}, f.main)
	d.SetFileName("gochip8.state")
	d.Show()
}

func (f *fyneDriver) loadState() {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			f.showError(err)
			return
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			f.showError(err)
			return
		}
		f.command(emulator.CommandPacket{Command: emulator.CommandLoadState, Data: b})
	}, f.main)
}

// openView opens view in a new window, unless a window for it is
// already open.
func (f *fyneDriver) openView(view View) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.views {
		if w.view.Title() == view.Title() {
			w.RequestFocus()
			return
		}
	}

	w := &viewWindow{
		Window: f.app.NewWindow(view.Title()),
		view:   view,
		events: make(chan event.Event, 64),
	}
	w.SetOnClosed(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, v := range f.views {
			if v == w {
				f.views = append(f.views[:i], f.views[i+1:]...)
				break
			}
		}
		close(w.events)
	})
	f.views = append(f.views, w)

	if err := view.Run(w, w.events); err != nil {
		f.Errorf("opening %s: %v", view.Title(), err)
	}
	w.Show()
}

// Stop stops the display driver.
func (f *fyneDriver) Stop() error {
	if f.app != nil {
		f.app.Quit()
	}
	return nil
}
