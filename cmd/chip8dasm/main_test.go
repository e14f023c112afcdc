package main

import (
	"bytes"
	"testing"

	"github.com/thelolagemann/gochip8/internal/disasm"
	"github.com/thelolagemann/gochip8/internal/types"
)

func TestDump(t *testing.T) {
	var b bytes.Buffer
	program := append(disasm.Assemble(disasm.LDI(0x0, 0x0A), disasm.JP(0x202)), 0x00)
	if err := dump(&b, program, 0x200); err != nil {
		t.Fatal(err)
	}

	want := "200\t600a\tLD V0, 0a\n202\t1202\tJP 202\n204\t0000\tSYS 000\n"
	if b.String() != want {
		t.Errorf("expected %q, got %q", want, b.String())
	}
}

func TestDump_TooLarge(t *testing.T) {
	if err := dump(&bytes.Buffer{}, make([]byte, 0x10), 0xFF8); types.KindOf(err) != types.ProgramTooLarge {
		t.Errorf("expected ProgramTooLarge, got %v", err)
	}
}
