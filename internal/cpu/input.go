package cpu

// waitKey arms a key wait for Fx0A. The program counter stays on the
// instruction until Step observes a key, at which point the key is
// stored in Vx.
//
//	LD Vx, K
func (c *CPU) waitKey(x Register) {
	c.waitingKey = true
	c.waitReg = x
	c.keypad.BeginWait(c.Quirks.ReleaseWait)
}

// WaitRegister returns the register Fx0A will store the key in.
func (c *CPU) WaitRegister() Register {
	return c.waitReg
}

// RestoreWait re-arms a key wait into register x, used when loading a
// saved state taken while waiting.
func (c *CPU) RestoreWait(x Register) {
	c.waitKey(x)
}
