package cpu

import (
	"bytes"
	"testing"

	"github.com/thelolagemann/gochip8/internal/disasm"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/types"
)

func TestInstruction_Loads(t *testing.T) {
	c := newTestCPU(t,
		disasm.LDI(0x3, 0x99),
		disasm.LD(0x4, 0x3),
		disasm.LDIndex(0x123),
	)
	steps(t, c, 3)
	if c.V[0x3] != 0x99 || c.V[0x4] != 0x99 {
		t.Errorf("expected V3 and V4 to be 0x99, got 0x%02X and 0x%02X", c.V[0x3], c.V[0x4])
	}
	if c.I != 0x123 {
		t.Errorf("expected I to be 0x123, got 0x%03X", c.I)
	}
}

func TestInstruction_BCD(t *testing.T) {
	tests := []struct {
		v    uint8
		want []byte
	}{
		{0, []byte{0, 0, 0}},
		{9, []byte{0, 0, 9}},
		{42, []byte{0, 4, 2}},
		{255, []byte{2, 5, 5}},
	}
	for _, tt := range tests {
		c := newTestCPU(t, disasm.LDBCD(0x5))
		c.V[0x5] = tt.v
		c.I = 0x400
		steps(t, c, 1)
		if got := c.Memory().Slice(0x400, 0x403); !bytes.Equal(got, tt.want) {
			t.Errorf("%d: expected %v, got %v", tt.v, tt.want, got)
		}
	}

	// the last digit would land past the end of memory
	c := newTestCPU(t, disasm.LDBCD(0x5))
	c.I = 0xFFE
	if err := c.Step(); types.KindOf(err) != types.OutOfBounds {
		t.Errorf("expected OutOfBounds, got %v", err)
	}
	if got := c.Memory().Slice(0xFFE, 0x1000); !bytes.Equal(got, []byte{0, 0}) {
		t.Errorf("expected memory to be untouched, got %v", got)
	}
}

func TestInstruction_StoreLoadRegisters(t *testing.T) {
	for _, increment := range []bool{true, false} {
		c := newTestCPU(t, disasm.Store(0x3), disasm.LDIndex(0x400), disasm.Load(0x2))
		c.Quirks.IncrementIndex = increment
		c.V = [16]uint8{0x10, 0x11, 0x12, 0x13, 0x14}
		c.I = 0x400
		steps(t, c, 1)

		if got := c.Memory().Slice(0x400, 0x405); !bytes.Equal(got, []byte{0x10, 0x11, 0x12, 0x13, 0x00}) {
			t.Errorf("expected V0-V3 to be stored, got % X", got)
		}
		if want := map[bool]uint16{true: 0x404, false: 0x400}[increment]; c.I != want {
			t.Errorf("increment %v: expected I to be 0x%03X, got 0x%03X", increment, want, c.I)
		}

		c.V = [16]uint8{}
		steps(t, c, 2)
		if c.V[0] != 0x10 || c.V[1] != 0x11 || c.V[2] != 0x12 || c.V[3] != 0 {
			t.Errorf("expected V0-V2 to be loaded, got % X", c.V[:4])
		}
		if want := map[bool]uint16{true: 0x403, false: 0x400}[increment]; c.I != want {
			t.Errorf("increment %v: expected I to be 0x%03X, got 0x%03X", increment, want, c.I)
		}
	}
}

func TestInstruction_StoreOutOfBounds(t *testing.T) {
	c := newTestCPU(t, disasm.Store(0xF))
	c.I = 0xFF8
	for i := range c.V {
		c.V[i] = 0xAA
	}
	if err := c.Step(); types.KindOf(err) != types.OutOfBounds {
		t.Fatalf("expected OutOfBounds, got %v", err)
	}
	if got := c.Memory().Slice(0xFF8, 0x1000); !bytes.Equal(got, make([]byte, 8)) {
		t.Errorf("expected memory to be untouched, got % X", got)
	}
	if c.I != 0xFF8 {
		t.Errorf("expected I to be untouched, got 0x%03X", c.I)
	}
}

func TestInstruction_Font(t *testing.T) {
	c := newTestCPU(t, disasm.LDFont(0x1))
	c.V[0x1] = 0x1B // only the low nibble is used
	steps(t, c, 1)
	if c.I != memory.FontAddress(0xB) {
		t.Errorf("expected I to be 0x%03X, got 0x%03X", memory.FontAddress(0xB), c.I)
	}
}
