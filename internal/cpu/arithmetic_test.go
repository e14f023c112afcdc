package cpu

import (
	"testing"

	"github.com/thelolagemann/gochip8/internal/disasm"
)

func TestInstruction_Add(t *testing.T) {
	tests := []struct {
		name     string
		x, y     uint8
		want     uint8
		wantFlag uint8
	}{
		{"no carry", 0x10, 0x20, 0x30, 0},
		{"exactly 0xFF", 0xF0, 0x0F, 0xFF, 0},
		{"carry", 0xFF, 0x01, 0x00, 1},
		{"carry wraps", 0xC8, 0x64, 0x2C, 1}, // 200 + 100 = 300 mod 256
		{"max", 0xFF, 0xFF, 0xFE, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, disasm.ADD(0x1, 0x2))
			c.V[0x1], c.V[0x2] = tt.x, tt.y
			steps(t, c, 1)

			if c.V[0x1] != tt.want {
				t.Errorf("expected V1 to be 0x%02X, got 0x%02X", tt.want, c.V[0x1])
			}
			if c.V[VF] != tt.wantFlag {
				t.Errorf("expected VF to be %d, got %d", tt.wantFlag, c.V[VF])
			}
		})
	}
}

func TestInstruction_AddImmediate(t *testing.T) {
	c := newTestCPU(t, disasm.ADDI(0x1, 0x02))
	c.V[0x1] = 0xFF
	c.V[VF] = 0x7
	steps(t, c, 1)

	if c.V[0x1] != 0x01 {
		t.Errorf("expected V1 to wrap to 0x01, got 0x%02X", c.V[0x1])
	}
	if c.V[VF] != 0x7 {
		t.Errorf("expected VF to be untouched, got 0x%02X", c.V[VF])
	}
}

func TestInstruction_Sub(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		x, y     uint8
		want     uint8
		wantFlag uint8
	}{
		{"SUB no borrow", disasm.SUB(0x1, 0x2), 0x30, 0x10, 0x20, 1},
		{"SUB equal", disasm.SUB(0x1, 0x2), 0x30, 0x30, 0x00, 1},
		{"SUB borrow", disasm.SUB(0x1, 0x2), 0x10, 0x30, 0xE0, 0},
		{"SUBN no borrow", disasm.SUBN(0x1, 0x2), 0x10, 0x30, 0x20, 1},
		{"SUBN equal", disasm.SUBN(0x1, 0x2), 0x30, 0x30, 0x00, 1},
		{"SUBN borrow", disasm.SUBN(0x1, 0x2), 0x30, 0x10, 0xE0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, tt.opcode)
			c.V[0x1], c.V[0x2] = tt.x, tt.y
			steps(t, c, 1)

			if c.V[0x1] != tt.want {
				t.Errorf("expected V1 to be 0x%02X, got 0x%02X", tt.want, c.V[0x1])
			}
			if c.V[VF] != tt.wantFlag {
				t.Errorf("expected VF to be %d, got %d", tt.wantFlag, c.V[VF])
			}
		})
	}
}

func TestInstruction_FlagRegisterAsDestination(t *testing.T) {
	// the flag is written after the result, so it wins
	c := newTestCPU(t, disasm.ADD(0xF, 0x1))
	c.V[0xF], c.V[0x1] = 0x10, 0x02
	steps(t, c, 1)
	if c.V[VF] != 0 {
		t.Errorf("expected VF to hold the carry rather than the sum, got 0x%02X", c.V[VF])
	}
}

func TestInstruction_AddIndex(t *testing.T) {
	c := newTestCPU(t, disasm.ADDIndex(0x3))
	c.I = 0x0FFE
	c.V[0x3] = 0x04
	steps(t, c, 1)
	if c.I != 0x1002 {
		t.Errorf("expected I to be 0x1002, got 0x%04X", c.I)
	}
	if c.V[VF] != 0 {
		t.Errorf("expected VF to be untouched, got %d", c.V[VF])
	}
}
