package cpu

import (
	"testing"

	"github.com/thelolagemann/gochip8/internal/disasm"
	"github.com/thelolagemann/gochip8/internal/types"
)

func TestInstruction_Jump(t *testing.T) {
	c := newTestCPU(t, disasm.JP(0x345))
	steps(t, c, 1)
	if c.PC != 0x345 {
		t.Errorf("expected PC to be 0x345, got 0x%03X", c.PC)
	}
}

func TestInstruction_JumpOffset(t *testing.T) {
	tests := []struct {
		name       string
		jumpUsesVX bool
		want       uint16
	}{
		{"V0", false, 0x310},
		{"VX", true, 0x320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, disasm.JPV0(0x300))
			c.Quirks.JumpUsesVX = tt.jumpUsesVX
			c.V[0x0], c.V[0x3] = 0x10, 0x20
			steps(t, c, 1)
			if c.PC != tt.want {
				t.Errorf("expected PC to be 0x%03X, got 0x%03X", tt.want, c.PC)
			}
		})
	}

	// nnn + V0 can point past the end of memory
	c := newTestCPU(t, disasm.JPV0(0xFFF))
	c.V[0x0] = 0x01
	err := c.Step()
	if types.KindOf(err) != types.OutOfBounds {
		t.Errorf("expected OutOfBounds, got %v", err)
	}
	if c.PC != 0x200 {
		t.Errorf("expected PC to be untouched, got 0x%03X", c.PC)
	}
}

func TestInstruction_CallReturn(t *testing.T) {
	// a chain of N nested calls followed by N returns:
	//   0x200: CALL 0x300
	//   0x300: CALL 0x302
	//   ...
	//   0x300+2(N-1): RET ...
	const n = types.StackDepth
	c := newTestCPU(t, disasm.CALL(0x300))
	mem := c.Memory()
	for i := 0; i < n-1; i++ {
		addr := uint16(0x300 + i*2)
		_ = mem.LoadProgram(disasm.Assemble(disasm.CALL(addr+2)), addr)
	}
	_ = mem.LoadProgram(disasm.Assemble(disasm.RET()), uint16(0x300+(n-1)*2))

	var pcs []uint16
	for i := 0; i < n; i++ {
		pcs = append(pcs, c.PC)
		steps(t, c, 1)
	}
	if c.SP != n {
		t.Fatalf("expected stack depth %d, got %d", n, c.SP)
	}

	// unwind: the final RET lives at the deepest address, and each
	// return lands on the instruction after a CALL, so patch those
	// with RETs too
	for i := 0; i < n-1; i++ {
		_ = mem.LoadProgram(disasm.Assemble(disasm.RET()), uint16(0x300+i*2+2))
	}
	for i := n - 1; i >= 0; i-- {
		steps(t, c, 1)
		if want := pcs[i] + 2; c.PC != want {
			t.Fatalf("expected return to 0x%03X, got 0x%03X", want, c.PC)
		}
	}
	if c.SP != 0 {
		t.Errorf("expected empty stack, got depth %d", c.SP)
	}
	if c.PC != 0x202 {
		t.Errorf("expected to return to 0x202, got 0x%03X", c.PC)
	}
}

func TestInstruction_StackOverflow(t *testing.T) {
	c := newTestCPU(t, disasm.CALL(0x200)) // calls itself forever
	steps(t, c, types.StackDepth)

	before := c.Stack
	err := c.Step()
	if e, ok := types.AsError(err); !ok || e.Kind != types.StackOverflow || e.PC != 0x200 {
		t.Fatalf("expected StackOverflow at 0x200, got %v", err)
	}
	if c.Stack != before || c.PC != 0x200 {
		t.Error("expected a failed call to leave the stack and PC untouched")
	}
}

func TestInstruction_StackUnderflow(t *testing.T) {
	c := newTestCPU(t, disasm.RET())
	err := c.Step()
	if types.KindOf(err) != types.StackUnderflow {
		t.Errorf("expected StackUnderflow, got %v", err)
	}
	if c.PC != 0x200 {
		t.Errorf("expected PC to be untouched, got 0x%03X", c.PC)
	}
}

func TestInstruction_Skips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		skip   bool
	}{
		{"SE Vx, kk equal", disasm.SEI(0x1, 0x42), true},
		{"SE Vx, kk not equal", disasm.SEI(0x1, 0x43), false},
		{"SNE Vx, kk equal", disasm.SNEI(0x1, 0x42), false},
		{"SNE Vx, kk not equal", disasm.SNEI(0x1, 0x43), true},
		{"SE Vx, Vy equal", disasm.SE(0x1, 0x2), true},
		{"SE Vx, Vy not equal", disasm.SE(0x1, 0x3), false},
		{"SNE Vx, Vy equal", disasm.SNE(0x1, 0x2), false},
		{"SNE Vx, Vy not equal", disasm.SNE(0x1, 0x3), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, tt.opcode)
			c.V[0x1], c.V[0x2], c.V[0x3] = 0x42, 0x42, 0x00
			steps(t, c, 1)

			want := uint16(0x202)
			if tt.skip {
				want = 0x204
			}
			if c.PC != want {
				t.Errorf("expected PC to be 0x%03X, got 0x%03X", want, c.PC)
			}
		})
	}
}
