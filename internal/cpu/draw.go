package cpu

// draw XORs an n byte sprite read from I onto the display at (Vx, Vy).
//
//	DRW Vx, Vy, n
//
// Flags affected:
//
//	VF - Set if any lit pixel was turned off, reset otherwise.
//
// With the DisplayWait quirk enabled the CPU holds after the draw
// until the next timer tick.
func (c *CPU) draw(x, y Register, n uint8) error {
	if err := c.mem.Check(int(c.I), int(n)); err != nil {
		return err
	}
	sprite := c.mem.Slice(int(c.I), int(c.I)+int(n))

	collided := c.display.DrawSprite(c.V[x], c.V[y], sprite)
	c.setFlag(collided)
	c.PC += 2

	if c.Quirks.DisplayWait {
		c.waitingVBlank = true
	}
	return nil
}
