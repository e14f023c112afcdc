package cpu

import (
	"github.com/thelolagemann/gochip8/internal/memory"
)

// loadFont points I at the glyph for the low nibble of Vx.
//
//	LD F, Vx
func (c *CPU) loadFont(x Register) {
	c.I = memory.FontAddress(c.V[x])
}

// storeBCD writes the hundreds, tens and ones digits of Vx to I, I+1
// and I+2.
//
//	LD B, Vx
func (c *CPU) storeBCD(x Register) error {
	if err := c.mem.Check(int(c.I), 3); err != nil {
		return err
	}
	v := c.V[x]
	for i, digit := range [3]uint8{v / 100, v / 10 % 10, v % 10} {
		if err := c.mem.Write(c.I+uint16(i), digit); err != nil {
			return err
		}
	}
	return nil
}

// storeRegisters writes V0 through Vx to memory starting at I.
//
//	LD [I], Vx
//
// With the IncrementIndex quirk enabled I is left at I + x + 1.
func (c *CPU) storeRegisters(x Register) error {
	if err := c.mem.Check(int(c.I), int(x)+1); err != nil {
		return err
	}
	for r := uint16(0); r <= uint16(x); r++ {
		if err := c.mem.Write(c.I+r, c.V[r]); err != nil {
			return err
		}
	}
	if c.Quirks.IncrementIndex {
		c.I += uint16(x) + 1
	}
	return nil
}

// loadRegisters reads V0 through Vx from memory starting at I.
//
//	LD Vx, [I]
//
// With the IncrementIndex quirk enabled I is left at I + x + 1.
func (c *CPU) loadRegisters(x Register) error {
	if err := c.mem.Check(int(c.I), int(x)+1); err != nil {
		return err
	}
	for r := uint16(0); r <= uint16(x); r++ {
		v, err := c.mem.Read(c.I + r)
		if err != nil {
			return err
		}
		c.V[r] = v
	}
	if c.Quirks.IncrementIndex {
		c.I += uint16(x) + 1
	}
	return nil
}
