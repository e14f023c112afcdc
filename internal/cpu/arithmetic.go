package cpu

// add adds Vy to Vx, wrapping at 8 bits.
//
//	ADD Vx, Vy
//
// Flags affected:
//
//	VF - Set if the sum exceeded 0xFF, reset otherwise.
func (c *CPU) add(x, y Register) {
	sum := uint16(c.V[x]) + uint16(c.V[y])
	c.V[x] = uint8(sum)
	c.setFlag(sum > 0xFF)
}

// sub subtracts Vy from Vx, wrapping at 8 bits.
//
//	SUB Vx, Vy
//
// Flags affected:
//
//	VF - Set if Vx >= Vy (no borrow), reset otherwise.
func (c *CPU) sub(x, y Register) {
	vx, vy := c.V[x], c.V[y]
	c.V[x] = vx - vy
	c.setFlag(vx >= vy)
}

// subn sets Vx to Vy minus Vx, wrapping at 8 bits.
//
//	SUBN Vx, Vy
//
// Flags affected:
//
//	VF - Set if Vy >= Vx (no borrow), reset otherwise.
func (c *CPU) subn(x, y Register) {
	vx, vy := c.V[x], c.V[y]
	c.V[x] = vy - vx
	c.setFlag(vy >= vx)
}

// setFlag sets VF to 1 if cond holds, 0 otherwise. It is always
// written after the result, so when VF is also the destination the
// flag wins.
func (c *CPU) setFlag(cond bool) {
	if cond {
		c.V[VF] = 1
	} else {
		c.V[VF] = 0
	}
}
