// Package web provides a display driver that streams frames to
// browsers over websockets and takes key presses back.
package web

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/bits"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/log"
)

func init() {
	driver := &webDriver{Logger: log.New(false)}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &driver.addr,
			Description: "Address to serve clients on",
		},
		{
			Name:        "compression",
			Default:     true,
			Value:       &driver.compression,
			Description: "Compress frames with brotli",
		},
	})
}

type webDriver struct {
	addr        string
	compression bool

	emu display.Emulator
	log.Logger

	settings settings
	halted   bool
	srv      *http.Server
}

func (w *webDriver) Initialize(e display.Emulator) {
	w.emu = e
}

// Start serves clients until a Quit event is received or the server
// fails.
func (w *webDriver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	w.settings = defaultSettings
	w.settings.compression = w.compression

	h := newHub(w.Logger)
	go h.run()
	defer h.close()

	w.srv = &http.Server{Addr: w.addr, Handler: h}
	defer w.srv.Close()
	errs := make(chan error, 1)
	go func() {
		errs <- w.srv.ListenAndServe()
	}()
	w.Infof("serving clients on %s", w.addr)

	p := newPlayer()
	for {
		select {
		case f := <-fb:
			msgs, err := p.encode(f, w.settings)
			if err != nil {
				w.Errorf("encoding frame: %v", err)
			}
			for _, m := range msgs {
				h.broadcast <- m
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				h.broadcast <- append([]byte{Title}, e.Data.(string)...)
			case event.Sound:
				on := byte(0)
				if e.Data.(bool) {
					on = 1
				}
				h.broadcast <- []byte{Sound, on}
			case event.Halt:
				w.halted = true
				h.broadcast <- append([]byte{Halted}, e.Data.(error).Error()...)
			case event.Quit:
				return nil
			}
		case c := <-h.joined:
			m, err := p.sync()
			if err != nil {
				w.Errorf("syncing client %d: %v", c.id, err)
				continue
			}
			h.broadcast <- w.clientInfo()
			h.broadcast <- m
		case m := <-h.input:
			if w.handle(m, pressed, released) {
				h.broadcast <- w.clientInfo()
			}
		case err := <-errs:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return errors.Wrap(err, "web")
		}
	}
}

// handle applies a message from a client, and reports whether the
// shared settings changed.
func (w *webDriver) handle(m message, pressed, released chan<- keypad.Key) bool {
	data := m.data
	switch data[0] {
	case KeyDown, KeyUp:
		if len(data) < 2 || data[1] > 0xF {
			return false
		}
		if data[0] == KeyDown {
			pressed <- keypad.Key(data[1])
		} else {
			released <- keypad.Key(data[1])
		}
		return false
	case PausePlay:
		if w.emu.Paused() {
			w.emu.SendCommand(display.Resume)
		} else {
			w.emu.SendCommand(display.Pause)
		}
	case Reset:
		w.halted = false
		w.emu.SendCommand(display.Reset)
	case Compression, FramePatching, FrameSkipping, CompressionLevel:
		if len(data) < 2 {
			return false
		}
		switch data[0] {
		case Compression:
			w.settings.compression = data[1] == 1
		case FramePatching:
			w.settings.framePatching = data[1] == 1
		case FrameSkipping:
			w.settings.frameSkipping = data[1] == 1
		case CompressionLevel:
			if data[1] > 11 {
				return false
			}
			w.settings.compressionLevel = int(data[1])
		}
	default:
		w.Debugf("client %d: unknown message %d", m.from.id, data[0])
		return false
	}
	return true
}

// clientInfo returns the info message describing the shared
// settings. The info byte is constructed as follows:
//
//	Bit 0: Running
//	Bit 1: Compression enabled
//	Bit 2: Frame patching enabled
//	Bit 3: Frame skipping enabled
//	Bit 4: Halted on a fault
func (w *webDriver) clientInfo() []byte {
	info := uint8(0)
	if !w.emu.Paused() {
		info = bits.Set(info, 0)
	}
	if w.settings.compression {
		info = bits.Set(info, 1)
	}
	if w.settings.framePatching {
		info = bits.Set(info, 2)
	}
	if w.settings.frameSkipping {
		info = bits.Set(info, 3)
	}
	if w.halted {
		info = bits.Set(info, 4)
	}
	return []byte{ClientInfo, info, uint8(w.settings.compressionLevel)}
}

// Stop shuts the server down.
func (w *webDriver) Stop() error {
	if w.srv == nil {
		return nil
	}
	return w.srv.Close()
}
