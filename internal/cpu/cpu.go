// Package cpu provides the CHIP-8 interpreter: the register file,
// the call stack, and the fetch/decode/dispatch of the 35 classic
// instructions.
package cpu

import (
	"math/rand"

	"github.com/thelolagemann/gochip8/internal/disasm"
	"github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/log"
)

// CPU represents the CHIP-8 interpreter. It is responsible for
// executing instructions against memory, the display and the
// keypad.
type CPU struct {
	// Registers contains V0-VF, I, PC and the two timers.
	Registers
	// Stack holds the return addresses of CALL.
	Stack

	// Quirks selects between historical instruction behaviours.
	Quirks types.Quirks

	// Debug enables tracing of every executed instruction.
	Debug bool
	log.Logger

	mem     *memory.Memory
	display *display.Buffer
	keypad  *keypad.State
	rand    *rand.Rand

	// waitingKey is set while Fx0A waits for a key, waitReg is its X.
	waitingKey bool
	waitReg    uint8
	// waitingVBlank is set after a draw when the display wait quirk
	// is enabled, and cleared by the next timer tick.
	waitingVBlank bool
	// lastRandom is the last value produced by RND.
	lastRandom uint8
}

// NewCPU creates a new CPU attached to the given memory, display and
// keypad. The program counter starts at pc.
func NewCPU(mem *memory.Memory, disp *display.Buffer, pad *keypad.State, pc uint16, quirks types.Quirks, src rand.Source) *CPU {
	c := &CPU{
		Quirks:  quirks,
		Logger:  log.NewNullLogger(),
		mem:     mem,
		display: disp,
		keypad:  pad,
		rand:    rand.New(src),
	}
	c.PC = pc
	return c
}

// Reset clears the registers, stack and any pending wait, and sets
// the program counter to pc.
func (c *CPU) Reset(pc uint16) {
	c.Registers = Registers{PC: pc}
	c.Stack = Stack{}
	c.waitingKey = false
	c.waitReg = 0
	c.waitingVBlank = false
}

// WaitingForKey reports whether the CPU is blocked on Fx0A.
func (c *CPU) WaitingForKey() bool {
	return c.waitingKey
}

// WaitingForVBlank reports whether the CPU is holding after a draw
// until the next timer tick.
func (c *CPU) WaitingForVBlank() bool {
	return c.waitingVBlank
}

// ReleaseDisplay releases a CPU held after a draw without ticking
// the timers.
func (c *CPU) ReleaseDisplay() {
	c.waitingVBlank = false
}

// TickTimers decrements the delay and sound timers and releases a
// CPU held after a draw. It is called at 60Hz by the timer clock.
func (c *CPU) TickTimers() {
	c.Registers.TickTimers()
	c.waitingVBlank = false
}

// SetRandom replaces the source used by RND.
func (c *CPU) SetRandom(src rand.Source) {
	c.rand = rand.New(src)
}

// Random returns a random byte from the CPU's source.
func (c *CPU) Random() uint8 {
	c.lastRandom = uint8(c.rand.Intn(256))
	return c.lastRandom
}

// LastRandom returns the last value produced by RND.
func (c *CPU) LastRandom() uint8 {
	return c.lastRandom
}

// Fetch returns the opcode at the program counter.
func (c *CPU) Fetch() (uint16, error) {
	op, err := c.mem.Read16(c.PC)
	if err != nil {
		if e, ok := types.AsError(err); ok {
			return 0, e.At(c.PC, 0)
		}
		return 0, err
	}
	return op, nil
}

// Step executes a single instruction. If the CPU is waiting on a key
// it instead checks whether the wait has completed, and if it is
// waiting on the display it does nothing.
//
// Step either fully executes an instruction or leaves the machine
// untouched; errors are detected before any state is modified, and
// are returned as a *types.Error attributed to the faulting
// instruction.
func (c *CPU) Step() error {
	if c.waitingKey {
		if key, ok := c.keypad.Poll(); ok {
			c.V[c.waitReg] = key
			c.waitingKey = false
			c.PC += 2
		}
		return nil
	}
	if c.waitingVBlank {
		return nil
	}

	opcode, err := c.Fetch()
	if err != nil {
		return err
	}
	if c.Debug {
		c.Debugf("%03X  %04X  %s", c.PC, opcode, disasm.Disassemble(opcode))
	}

	if err := c.execute(Decode(opcode)); err != nil {
		if e, ok := types.AsError(err); ok {
			return e.At(c.PC, opcode)
		}
		return err
	}
	return nil
}

// Memory returns the memory attached to the CPU.
func (c *CPU) Memory() *memory.Memory {
	return c.mem
}

// skipIf advances the program counter past the next instruction if
// cond holds.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC += 4
	} else {
		c.PC += 2
	}
}
