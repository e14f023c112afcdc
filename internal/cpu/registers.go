package cpu

import "fmt"

// Register is an index into V0-VF.
type Register = uint8

// VF is the flag register, set by arithmetic, shifts and draws.
const VF Register = 0xF

// Registers represents the register file of the CHIP-8.
type Registers struct {
	// V holds the general purpose registers V0-VF.
	V [16]uint8
	// I is the index register, used to address memory.
	I uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// DT is the delay timer.
	DT uint8
	// ST is the sound timer. A tone plays while it is non-zero.
	ST uint8
}

// TickTimers decrements the delay and sound timers, stopping at 0.
func (r *Registers) TickTimers() {
	if r.DT > 0 {
		r.DT--
	}
	if r.ST > 0 {
		r.ST--
	}
}

// RegisterName returns the name of a general purpose register.
func RegisterName(reg Register) string {
	return fmt.Sprintf("V%X", reg&0xF)
}
