package cpu

import "github.com/thelolagemann/gochip8/internal/types"

// jump sets the program counter to addr.
//
//	JP nnn
//	JP V0, nnn
//
// The target is validated before the program counter is changed.
func (c *CPU) jump(addr uint16) error {
	if int(addr) >= types.MemorySize {
		return types.NewError(types.OutOfBounds, int(addr))
	}
	c.PC = addr
	return nil
}

// call pushes the address of the next instruction and jumps to addr.
//
//	CALL nnn
//
// The target and the stack are both validated before anything is
// modified, so a failed call leaves the CPU as it was.
func (c *CPU) call(addr uint16) error {
	if int(addr) >= types.MemorySize {
		return types.NewError(types.OutOfBounds, int(addr))
	}
	if c.Stack.Full() {
		return types.NewError(types.StackOverflow, int(addr))
	}
	if err := c.Stack.Push(c.PC + 2); err != nil {
		return err
	}
	c.PC = addr
	return nil
}

// ret pops a return address into the program counter.
//
//	RET
func (c *CPU) ret() error {
	addr, err := c.Stack.Pop()
	if err != nil {
		return err
	}
	c.PC = addr
	return nil
}
