package chip8

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mgutz/ansi"
	"github.com/thelolagemann/gochip8/internal/disasm"
)

func TestMachine_PrintRegisters(t *testing.T) {
	m := newTestMachine(t, nil, disasm.LDI(0xA, 0x5C), disasm.CALL(0x300))
	m.Keypad.Press(0xB)

	var buf bytes.Buffer
	if err := m.PrintRegisters(&buf, true); err != nil {
		t.Fatal(err)
	}
	want := "V0: 00\tV1: 00\tV2: 00\tV3: 00\n"
	if !strings.HasPrefix(buf.String(), want) {
		t.Errorf("expected output to start with %q, got %q", want, buf.String())
	}
	if strings.Contains(buf.String(), ansi.Reset) {
		t.Error("expected the first dump to have no highlights")
	}
	if !strings.Contains(buf.String(), "PC: 0200\t I: 0000\n") || !strings.Contains(buf.String(), "Key: B\n") {
		t.Errorf("unexpected dump %q", buf.String())
	}

	m.Step()
	m.Step()
	buf.Reset()
	m.PrintRegisters(&buf, true)
	if !strings.Contains(buf.String(), "VA: "+changed+"5c"+ansi.Reset) {
		t.Errorf("expected VA to be highlighted, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "V0: 00") {
		t.Errorf("expected V0 not to be highlighted, got %q", buf.String())
	}

	buf.Reset()
	m.Keypad.Release(0xB)
	m.PrintRegisters(&buf, false)
	if !strings.Contains(buf.String(), "PC: 0300") || !strings.Contains(buf.String(), "SP: 01") || !strings.Contains(buf.String(), "Key: NONE") {
		t.Errorf("unexpected dump %q", buf.String())
	}
}

func TestMachine_PrintMemory(t *testing.T) {
	m := newTestMachine(t, nil, disasm.LDI(0x1, 0x23))
	var buf bytes.Buffer
	if err := m.PrintMemory(&buf, 0x201, 0x210); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], " hex   0  1  2") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != " 200     23 00 00 00 00 00 00 00 00 00 00 00 00 00 00 " {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestMachine_PrintStack(t *testing.T) {
	m := newTestMachine(t, nil, disasm.CALL(0x204), disasm.CLS(), disasm.CALL(0x208), disasm.CLS(), disasm.CLS())

	var buf bytes.Buffer
	m.PrintStack(&buf)
	if buf.String() != "|     |\n+-----+\n" {
		t.Errorf("unexpected empty stack %q", buf.String())
	}

	m.Step()
	m.Step()
	buf.Reset()
	m.PrintStack(&buf)
	if buf.String() != "| 206 |\n| 202 |\n+-----+\n" {
		t.Errorf("unexpected stack %q", buf.String())
	}
}

func TestMachine_PrintDisassembly(t *testing.T) {
	m := newTestMachine(t, nil, disasm.LDI(0x0, 0x0A), disasm.JP(0x202))
	m.Step()

	var buf bytes.Buffer
	m.PrintDisassembly(&buf, 0x200, 0x204)
	want := "200\t600a\tLD V0, 0a\n202 [=]\t1202\tJP 202\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestMachine_PrintScreen(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Display.TogglePixel(0, 0)

	var buf bytes.Buffer
	m.PrintScreen(&buf)
	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 35 || !strings.HasPrefix(lines[1], "|#   ") {
		t.Errorf("unexpected screen %q", buf.String())
	}
}
