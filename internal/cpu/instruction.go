package cpu

import "github.com/thelolagemann/gochip8/internal/types"

// Instruction is a decoded opcode. Every field is extracted up front;
// which of them an instruction uses depends on its group.
//
//	Op  - the leading nibble, selecting the instruction group
//	X   - the second nibble, usually a register
//	Y   - the third nibble, usually a register
//	N   - the lowest nibble
//	KK  - the lowest byte, usually an immediate
//	NNN - the lowest 12 bits, an address
type Instruction struct {
	Opcode uint16
	Op     uint8
	X      uint8
	Y      uint8
	N      uint8
	KK     uint8
	NNN    uint16
}

// Decode splits an opcode into its fields.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Op:     types.Nibble(opcode, 3),
		X:      types.Nibble(opcode, 2),
		Y:      types.Nibble(opcode, 1),
		N:      types.Nibble(opcode, 0),
		KK:     types.LowByte(opcode),
		NNN:    types.Addr(opcode),
	}
}
