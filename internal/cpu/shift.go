package cpu

import "github.com/thelolagemann/gochip8/pkg/bits"

// shiftRight shifts a register right by one bit and stores the result
// in Vx. The source is Vy when the ShiftUsesVY quirk is enabled,
// otherwise Vx itself.
//
//	SHR Vx {, Vy}
//
// Flags affected:
//
//	VF - Set to the bit shifted out.
func (c *CPU) shiftRight(x, y Register) {
	src := c.shiftSource(x, y)
	c.V[x] = src >> 1
	c.V[VF] = bits.Val(src, 0)
}

// shiftLeft shifts a register left by one bit and stores the result
// in Vx. The source is selected as in shiftRight.
//
//	SHL Vx {, Vy}
//
// Flags affected:
//
//	VF - Set to the bit shifted out.
func (c *CPU) shiftLeft(x, y Register) {
	src := c.shiftSource(x, y)
	c.V[x] = src << 1
	c.V[VF] = bits.Val(src, 7)
}

func (c *CPU) shiftSource(x, y Register) uint8 {
	if c.Quirks.ShiftUsesVY {
		return c.V[y]
	}
	return c.V[x]
}
