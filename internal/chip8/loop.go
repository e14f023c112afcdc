package chip8

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// maxFrameTime caps the time emulated by a single frame, so a
// stalled host does not cause a burst of catch up instructions.
const maxFrameTime = 250 * time.Millisecond

// ErrRunning is returned by Start if the loop is already running.
var ErrRunning = errors.New("chip8: loop already running")

type request struct {
	packet   emulator.CommandPacket
	response chan emulator.ResponsePacket
}

// Start runs the emulation loop until ctx is cancelled or a
// CommandClose is received. Once per 60Hz frame it drains key
// events from pressed and released, runs the machine for the time
// since the previous frame and, if the display changed, sends an
// RGB frame to fb. Sends to fb and events never block; a slow
// driver drops frames. Either channel may be nil.
func (m *Machine) Start(ctx context.Context, fb chan<- []byte, events chan<- event.Event, pressed, released <-chan keypad.Key) error {
	m.mu.Lock()
	if m.loopDone != nil {
		m.mu.Unlock()
		return ErrRunning
	}
	done := make(chan struct{})
	m.loopDone = done
	if m.status == emulator.Idle {
		m.status = emulator.Running
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loopDone = nil
		m.mu.Unlock()
		close(done)
		if m.beeper != nil {
			m.beeper.Beep(false)
		}
	}()

	send := func(e event.Event) {
		select {
		case events <- e:
		default:
		}
	}

	ticker := time.NewTicker(timer.Interval)
	defer ticker.Stop()

	last := time.Now()
	second := last
	frames, instructions := 0, 0
	sound := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-m.commands:
			req.response <- m.handle(req.packet)
			if req.packet.Command == emulator.CommandClose {
				send(event.Event{Type: event.Quit})
				return nil
			}
		case k := <-pressed:
			m.Keypad.Press(k)
		case k := <-released:
			m.Keypad.Release(k)
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if elapsed > maxFrameTime {
				elapsed = maxFrameTime
			}

			n, err := m.RunFor(elapsed)
			if err != nil {
				send(event.Event{Type: event.Halt, Data: err})
			}
			instructions += n
			frames++
			send(event.Event{Type: event.Instructions, Data: n})

			if m.Display.Dirty() {
				f := m.Display.Snapshot()
				m.Display.ClearDirty()
				select {
				case fb <- f.RGB(display.On, display.Off):
				default:
				}
			}

			if s := m.SoundActive(); s != sound {
				sound = s
				if m.beeper != nil {
					m.beeper.Beep(s)
				}
				send(event.Event{Type: event.Sound, Data: s})
			}

			if since := now.Sub(second); since >= time.Second {
				send(event.Event{Type: event.FrameTime, Data: since / time.Duration(frames)})
				send(event.Event{Type: event.Title, Data: fmt.Sprintf("gochip8 | %s | IPS: %d | FPS: %d", m.Status(), instructions, frames)})
				second = now
				frames, instructions = 0, 0
			}
		}
	}
}

// SendCommand sends a command packet to the machine. While the loop
// is running the command is applied by the loop goroutine between
// frames; otherwise it is applied immediately.
func (m *Machine) SendCommand(p emulator.CommandPacket) emulator.ResponsePacket {
	m.mu.Lock()
	done := m.loopDone
	m.mu.Unlock()
	if done == nil {
		return m.handle(p)
	}

	req := request{packet: p, response: make(chan emulator.ResponsePacket, 1)}
	select {
	case m.commands <- req:
		return <-req.response
	case <-done:
		return m.handle(p)
	}
}

func (m *Machine) handle(p emulator.CommandPacket) emulator.ResponsePacket {
	resp := emulator.ResponsePacket{Command: p.Command}
	switch p.Command {
	case emulator.CommandPause:
		m.Pause()
	case emulator.CommandResume:
		m.Resume()
	case emulator.CommandClose:
		m.Stop()
	case emulator.CommandReset:
		resp.Error = m.Reset()
	case emulator.CommandLoadROM:
		resp.Error = m.LoadROM(p.Data)
	case emulator.CommandLoadState:
		resp.Error = m.LoadState(p.Data)
	case emulator.CommandSaveState:
		resp.Data, resp.Error = m.SaveState()
	case emulator.CommandSetSpeed:
		if len(p.Data) != 4 {
			resp.Error = errors.Errorf("set-speed: expected 4 bytes, got %d", len(p.Data))
			break
		}
		resp.Error = m.SetSpeed(int(binary.BigEndian.Uint32(p.Data)))
	default:
		resp.Error = errors.Errorf("unknown command %d", p.Command)
	}
	if resp.Error != nil {
		m.Errorf("%s: %v", p.Command, resp.Error)
	}
	return resp
}
