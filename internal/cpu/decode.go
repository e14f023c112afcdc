package cpu

import "github.com/thelolagemann/gochip8/internal/types"

// execute dispatches a decoded instruction. The leading nibble selects
// the group; groups 0x0, 0x8, 0xE and 0xF are further decoded by their
// low nibble or byte. Encodings that match nothing are InvalidOpcode.
func (c *CPU) execute(in Instruction) error {
	switch in.Op {
	case 0x0:
		switch in.Opcode {
		case 0x00E0: // CLS
			c.display.Clear()
			c.PC += 2
		case 0x00EE: // RET
			return c.ret()
		default: // SYS nnn - machine code routines aren't supported, so this is ignored
			c.PC += 2
		}
	case 0x1: // JP nnn
		return c.jump(in.NNN)
	case 0x2: // CALL nnn
		return c.call(in.NNN)
	case 0x3: // SE Vx, kk
		c.skipIf(c.V[in.X] == in.KK)
	case 0x4: // SNE Vx, kk
		c.skipIf(c.V[in.X] != in.KK)
	case 0x5: // SE Vx, Vy
		if in.N != 0 {
			return invalid()
		}
		c.skipIf(c.V[in.X] == c.V[in.Y])
	case 0x6: // LD Vx, kk
		c.V[in.X] = in.KK
		c.PC += 2
	case 0x7: // ADD Vx, kk
		c.V[in.X] += in.KK
		c.PC += 2
	case 0x8:
		return c.executeALU(in)
	case 0x9: // SNE Vx, Vy
		if in.N != 0 {
			return invalid()
		}
		c.skipIf(c.V[in.X] != c.V[in.Y])
	case 0xA: // LD I, nnn
		c.I = in.NNN
		c.PC += 2
	case 0xB: // JP V0, nnn
		if c.Quirks.JumpUsesVX {
			return c.jump(in.NNN + uint16(c.V[in.X]))
		}
		return c.jump(in.NNN + uint16(c.V[0]))
	case 0xC: // RND Vx, kk
		c.V[in.X] = c.Random() & in.KK
		c.PC += 2
	case 0xD: // DRW Vx, Vy, n
		return c.draw(in.X, in.Y, in.N)
	case 0xE:
		switch in.KK {
		case 0x9E: // SKP Vx
			c.skipIf(c.keypad.IsPressed(c.V[in.X] & 0xF))
		case 0xA1: // SKNP Vx
			c.skipIf(!c.keypad.IsPressed(c.V[in.X] & 0xF))
		default:
			return invalid()
		}
	case 0xF:
		return c.executeMisc(in)
	}

	return nil
}

// executeALU dispatches the 8xy_ register to register group.
func (c *CPU) executeALU(in Instruction) error {
	switch in.N {
	case 0x0: // LD Vx, Vy
		c.V[in.X] = c.V[in.Y]
	case 0x1: // OR Vx, Vy
		c.or(in.X, in.Y)
	case 0x2: // AND Vx, Vy
		c.and(in.X, in.Y)
	case 0x3: // XOR Vx, Vy
		c.xor(in.X, in.Y)
	case 0x4: // ADD Vx, Vy
		c.add(in.X, in.Y)
	case 0x5: // SUB Vx, Vy
		c.sub(in.X, in.Y)
	case 0x6: // SHR Vx {, Vy}
		c.shiftRight(in.X, in.Y)
	case 0x7: // SUBN Vx, Vy
		c.subn(in.X, in.Y)
	case 0xE: // SHL Vx {, Vy}
		c.shiftLeft(in.X, in.Y)
	default:
		return invalid()
	}

	c.PC += 2
	return nil
}

// executeMisc dispatches the Fx__ group.
func (c *CPU) executeMisc(in Instruction) error {
	switch in.KK {
	case 0x07: // LD Vx, DT
		c.V[in.X] = c.DT
	case 0x0A: // LD Vx, K
		c.waitKey(in.X)
		return nil // PC advances once a key arrives
	case 0x15: // LD DT, Vx
		c.DT = c.V[in.X]
	case 0x18: // LD ST, Vx
		c.ST = c.V[in.X]
	case 0x1E: // ADD I, Vx
		c.I += uint16(c.V[in.X])
	case 0x29: // LD F, Vx
		c.loadFont(in.X)
	case 0x33: // LD B, Vx
		if err := c.storeBCD(in.X); err != nil {
			return err
		}
	case 0x55: // LD [I], Vx
		if err := c.storeRegisters(in.X); err != nil {
			return err
		}
	case 0x65: // LD Vx, [I]
		if err := c.loadRegisters(in.X); err != nil {
			return err
		}
	default:
		return invalid()
	}

	c.PC += 2
	return nil
}

func invalid() error {
	return types.NewError(types.InvalidOpcode, 0)
}
