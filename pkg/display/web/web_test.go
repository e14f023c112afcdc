package web

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
)

type fakeEmulator struct {
	paused   bool
	commands []emulator.Command
}

func (f *fakeEmulator) SendCommand(p emulator.CommandPacket) emulator.ResponsePacket {
	f.commands = append(f.commands, p.Command)
	switch p.Command {
	case emulator.CommandPause:
		f.paused = true
	case emulator.CommandResume:
		f.paused = false
	}
	return emulator.ResponsePacket{Command: p.Command}
}

func (f *fakeEmulator) Speed() float64          { return 700 }
func (f *fakeEmulator) Status() emulator.Status { return emulator.Running }
func (f *fakeEmulator) Paused() bool            { return f.paused }

func newTestDriver() (*webDriver, *fakeEmulator) {
	emu := &fakeEmulator{}
	w := &webDriver{Logger: log.NewNullLogger(), settings: defaultSettings}
	w.Initialize(emu)
	return w, emu
}

func TestWebDriver_Handle(t *testing.T) {
	w, emu := newTestDriver()
	pressed, released := make(chan keypad.Key, 1), make(chan keypad.Key, 1)
	from := &client{id: 1}

	if w.handle(message{from, []byte{KeyDown, 0xA}}, pressed, released) {
		t.Error("expected key events to leave the settings alone")
	}
	if k := <-pressed; k != 0xA {
		t.Errorf("expected key A pressed, got %X", k)
	}
	w.handle(message{from, []byte{KeyUp, 0xA}}, pressed, released)
	if k := <-released; k != 0xA {
		t.Errorf("expected key A released, got %X", k)
	}
	w.handle(message{from, []byte{KeyDown, 0x10}}, pressed, released)
	if len(pressed) != 0 {
		t.Error("expected out of range keys to be dropped")
	}

	w.handle(message{from, []byte{PausePlay}}, pressed, released)
	w.handle(message{from, []byte{PausePlay}}, pressed, released)
	w.handle(message{from, []byte{Reset}}, pressed, released)
	want := []emulator.Command{emulator.CommandPause, emulator.CommandResume, emulator.CommandReset}
	if len(emu.commands) != len(want) {
		t.Fatalf("expected commands %v, got %v", want, emu.commands)
	}
	for i := range want {
		if emu.commands[i] != want[i] {
			t.Errorf("expected commands %v, got %v", want, emu.commands)
		}
	}

	if !w.handle(message{from, []byte{Compression, 0}}, pressed, released) || w.settings.compression {
		t.Error("expected compression to be disabled")
	}
	if w.handle(message{from, []byte{CompressionLevel, 12}}, pressed, released) {
		t.Error("expected an invalid compression level to be rejected")
	}
	if w.handle(message{from, []byte{0x80}}, pressed, released) {
		t.Error("expected an unknown message to be ignored")
	}
}

func TestWebDriver_ClientInfo(t *testing.T) {
	w, emu := newTestDriver()
	if info := w.clientInfo(); info[0] != ClientInfo || info[1] != 0b1111 || info[2] != 7 {
		t.Errorf("expected running with every setting on, got % x", info)
	}

	emu.paused = true
	w.halted = true
	w.settings.compression = false
	if info := w.clientInfo(); info[1] != 0b11100 {
		t.Errorf("expected paused, halted and uncompressed, got %05b", info[1])
	}
}

func TestHub(t *testing.T) {
	h := newHub(log.NewNullLogger())
	go h.run()
	defer h.close()

	srv := httptest.NewServer(h)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	select {
	case c := <-h.joined:
		if c.id != 1 {
			t.Errorf("expected client 1, got %d", c.id)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the client to join")
	}

	h.broadcast <- []byte{Title, 'h', 'i'}
	conn.SetReadDeadline(time.Now().Add(time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		// server info may arrive first
		if data[0] == ServerInfo {
			continue
		}
		if string(data) != string([]byte{Title, 'h', 'i'}) {
			t.Errorf("unexpected message % x", data)
		}
		break
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{KeyDown, 0x5}); err != nil {
		t.Fatal(err)
	}
	select {
	case m := <-h.input:
		if m.data[0] != KeyDown || m.data[1] != 0x5 {
			t.Errorf("unexpected input % x", m.data)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the key to reach the hub")
	}
}

func TestHub_JoinBurst(t *testing.T) {
	h := newHub(log.NewNullLogger())
	go h.run()
	defer h.close()

	const joins = 10
	clients := make([]*client, joins)
	for i := range clients {
		clients[i] = &client{hub: h, id: uint8(i + 1), send: make(chan []byte, 256)}
	}

	// nothing reads joined until every client has registered and
	// every frame has been broadcast
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, c := range clients {
			h.register <- c
		}
		for i := 0; i < 32; i++ {
			h.broadcast <- []byte{FrameSkip}
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the hub to keep accepting broadcasts during a burst of joins")
	}

	for i := 0; i < joins; i++ {
		select {
		case c := <-h.joined:
			if c != clients[i] {
				t.Errorf("expected client %d to join, got %d", clients[i].id, c.id)
			}
		case <-time.After(time.Second):
			t.Fatalf("expected %d joins, got %d", joins, i)
		}
	}
}
