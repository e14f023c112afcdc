package cpu

// or sets Vx to Vx | Vy.
//
//	OR Vx, Vy
//
// Flags affected:
//
//	VF - Reset if the ResetVF quirk is enabled, otherwise not affected.
func (c *CPU) or(x, y Register) {
	c.V[x] |= c.V[y]
	c.resetFlag()
}

// and sets Vx to Vx & Vy.
//
//	AND Vx, Vy
//
// Flags affected:
//
//	VF - Reset if the ResetVF quirk is enabled, otherwise not affected.
func (c *CPU) and(x, y Register) {
	c.V[x] &= c.V[y]
	c.resetFlag()
}

// xor sets Vx to Vx ^ Vy.
//
//	XOR Vx, Vy
//
// Flags affected:
//
//	VF - Reset if the ResetVF quirk is enabled, otherwise not affected.
func (c *CPU) xor(x, y Register) {
	c.V[x] ^= c.V[y]
	c.resetFlag()
}

func (c *CPU) resetFlag() {
	if c.Quirks.ResetVF {
		c.V[VF] = 0
	}
}
