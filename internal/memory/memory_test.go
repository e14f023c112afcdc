package memory

import (
	"bytes"
	"testing"

	"github.com/thelolagemann/gochip8/internal/types"
)

func TestMemory_ReadWrite(t *testing.T) {
	m := New()
	for addr := 0; addr < types.MemorySize; addr++ {
		v := byte(addr*7 + 3)
		if err := m.Write(uint16(addr), v); err != nil {
			t.Fatalf("unexpected error writing 0x%03X: %v", addr, err)
		}
		got, err := m.Read(uint16(addr))
		if err != nil {
			t.Fatalf("unexpected error reading 0x%03X: %v", addr, err)
		}
		if got != v {
			t.Errorf("expected 0x%02X at 0x%03X, got 0x%02X", v, addr, got)
		}
	}
}

func TestMemory_OutOfBounds(t *testing.T) {
	m := New()
	for _, addr := range []uint16{0x1000, 0x1001, 0xFFFF} {
		if _, err := m.Read(addr); types.KindOf(err) != types.OutOfBounds {
			t.Errorf("expected OutOfBounds reading 0x%04X, got %v", addr, err)
		}
		if err := m.Write(addr, 0xFF); types.KindOf(err) != types.OutOfBounds {
			t.Errorf("expected OutOfBounds writing 0x%04X, got %v", addr, err)
		}
	}

	// a word straddling the end of memory is also out of bounds
	if _, err := m.Read16(0xFFF); types.KindOf(err) != types.OutOfBounds {
		t.Errorf("expected OutOfBounds reading word at 0xFFF, got %v", err)
	}
}

func TestMemory_LoadProgram(t *testing.T) {
	m := New()
	program := []byte{0x60, 0x0A, 0x12, 0x02}
	if err := m.LoadProgram(program, types.ProgramStart); err != nil {
		t.Fatal(err)
	}
	if got := m.Slice(0x200, 0x204); !bytes.Equal(got, program) {
		t.Errorf("expected % X, got % X", program, got)
	}
	if w, _ := m.Read16(0x200); w != 0x600A {
		t.Errorf("expected opcode 0x600A, got 0x%04X", w)
	}

	// exactly filling memory is fine
	if err := m.LoadProgram(make([]byte, types.MemorySize-0x200), 0x200); err != nil {
		t.Errorf("expected program to fit, got %v", err)
	}
	if err := m.LoadProgram(make([]byte, types.MemorySize-0x200+1), 0x200); types.KindOf(err) != types.ProgramTooLarge {
		t.Errorf("expected ProgramTooLarge, got %v", err)
	}
}

func TestMemory_Font(t *testing.T) {
	m := New()
	for digit := uint8(0); digit < 16; digit++ {
		addr := FontAddress(digit)
		for row := 0; row < types.GlyphSize; row++ {
			got, _ := m.Read(addr + uint16(row))
			if want := Font[int(digit)*types.GlyphSize+row]; got != want {
				t.Errorf("digit %X row %d: expected 0x%02X, got 0x%02X", digit, row, want, got)
			}
		}
	}

	// only the low nibble selects a glyph
	if FontAddress(0x1A) != FontAddress(0xA) {
		t.Errorf("expected 0x1A to map to glyph A, got 0x%03X", FontAddress(0x1A))
	}

	_ = m.Write(types.FontAddress, 0)
	m.Reset()
	if v, _ := m.Read(types.FontAddress); v != 0xF0 {
		t.Errorf("expected font to be reloaded on reset, got 0x%02X", v)
	}
}
