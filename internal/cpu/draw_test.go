package cpu

import (
	"testing"

	"github.com/thelolagemann/gochip8/internal/disasm"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/types"
)

func TestInstruction_Draw(t *testing.T) {
	c := newTestCPU(t,
		disasm.LDFont(0x0),
		disasm.DRW(0x1, 0x2, types.GlyphSize),
		disasm.DRW(0x1, 0x2, types.GlyphSize),
		disasm.CLS(),
	)
	c.V[0x0], c.V[0x1], c.V[0x2] = 0x8, 62, 30 // glyph 8 at the bottom right corner

	steps(t, c, 2)
	if c.V[VF] != 0 {
		t.Errorf("expected no collision on the first draw, got VF %d", c.V[VF])
	}
	if !c.display.Pixel(62, 30) || !c.display.Pixel(1, 0) {
		t.Error("expected glyph to be drawn and wrap around the edges")
	}

	steps(t, c, 1)
	if c.V[VF] != 1 {
		t.Errorf("expected a collision on the second draw, got VF %d", c.V[VF])
	}
	if c.display.Pixel(62, 30) || c.display.Pixel(1, 0) {
		t.Error("expected the second draw to erase the glyph")
	}

	c.display.Fill()
	steps(t, c, 1)
	if c.display.Pixel(0, 0) {
		t.Error("expected CLS to clear the display")
	}
	if c.I != memory.FontAddress(0x8) {
		t.Errorf("expected I to be untouched by DRW, got 0x%03X", c.I)
	}
}

func TestInstruction_DrawOutOfBounds(t *testing.T) {
	c := newTestCPU(t, disasm.DRW(0x0, 0x0, 0xF))
	c.I = 0xFF8
	if err := c.Step(); types.KindOf(err) != types.OutOfBounds {
		t.Fatalf("expected OutOfBounds, got %v", err)
	}
	if c.display.Dirty() {
		t.Error("expected the display to be untouched")
	}
}

func TestInstruction_DisplayWait(t *testing.T) {
	c := newTestCPU(t, disasm.DRW(0x0, 0x0, 1), disasm.LDI(0x1, 0x01))
	c.Quirks.DisplayWait = true
	c.I = memory.FontAddress(0)

	steps(t, c, 3)
	if !c.WaitingForVBlank() || c.PC != 0x202 || c.V[0x1] != 0 {
		t.Fatalf("expected CPU to hold after the draw, PC 0x%03X", c.PC)
	}
	c.TickTimers()
	steps(t, c, 1)
	if c.V[0x1] != 0x01 {
		t.Error("expected CPU to resume after a timer tick")
	}
}
