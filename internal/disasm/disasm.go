// Package disasm renders CHIP-8 opcodes as assembly mnemonics.
package disasm

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/gochip8/internal/types"
)

// Reader reads big-endian words from memory.
type Reader interface {
	Read16(address uint16) (uint16, error)
}

// Disassemble returns the mnemonic for an opcode, or INVALID followed
// by the opcode if it doesn't decode.
func Disassemble(opcode uint16) string {
	addr := types.Addr(opcode)
	kk := types.LowByte(opcode)
	vx := fmt.Sprintf("V%X", types.Nibble(opcode, 2))
	vy := fmt.Sprintf("V%X", types.Nibble(opcode, 1))
	n := types.Nibble(opcode, 0)

	switch types.Nibble(opcode, 3) {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		default:
			return fmt.Sprintf("SYS %03x", addr)
		}
	case 0x1:
		return fmt.Sprintf("JP %03x", addr)
	case 0x2:
		return fmt.Sprintf("CALL %03x", addr)
	case 0x3:
		return fmt.Sprintf("SE %s, %02x", vx, kk)
	case 0x4:
		return fmt.Sprintf("SNE %s, %02x", vx, kk)
	case 0x5:
		if n == 0 {
			return fmt.Sprintf("SE %s, %s", vx, vy)
		}
	case 0x6:
		return fmt.Sprintf("LD %s, %02x", vx, kk)
	case 0x7:
		return fmt.Sprintf("ADD %s, %02x", vx, kk)
	case 0x8:
		if op, ok := aluOps[n]; ok {
			return fmt.Sprintf(op, vx, vy)
		}
	case 0x9:
		if n == 0 {
			return fmt.Sprintf("SNE %s, %s", vx, vy)
		}
	case 0xA:
		return fmt.Sprintf("LD I, %03x", addr)
	case 0xB:
		return fmt.Sprintf("JP V0, %03x", addr)
	case 0xC:
		return fmt.Sprintf("RND %s, %02x", vx, kk)
	case 0xD:
		return fmt.Sprintf("DRW %s, %s, %d", vx, vy, n)
	case 0xE:
		switch kk {
		case 0x9E:
			return "SKP " + vx
		case 0xA1:
			return "SKNP " + vx
		}
	case 0xF:
		if op, ok := miscOps[kk]; ok {
			return fmt.Sprintf(op, vx)
		}
	}

	return fmt.Sprintf("INVALID %04x", opcode)
}

var aluOps = map[uint8]string{
	0x0: "LD %s, %s",
	0x1: "OR %s, %s",
	0x2: "AND %s, %s",
	0x3: "XOR %s, %s",
	0x4: "ADD %s, %s",
	0x5: "SUB %s, %s",
	0x6: "SHR %s (, %s)",
	0x7: "SUBN %s, %s",
	0xE: "SHL %s (, %s)",
}

var miscOps = map[uint8]string{
	0x07: "LD %s, DT",
	0x0A: "LD %s, K",
	0x15: "LD DT, %s",
	0x18: "LD ST, %s",
	0x1E: "ADD I, %s",
	0x29: "LD F, %s",
	0x33: "LD B, %s",
	0x55: "LD [I], %s",
	0x65: "LD %s, [I]",
}

// Valid reports whether opcode decodes to an instruction.
func Valid(opcode uint16) bool {
	return !strings.HasPrefix(Disassemble(opcode), "INVALID")
}

// Line renders a single disassembly line. The line for the current
// program counter is marked with [=].
func Line(addr, opcode uint16, current bool) string {
	if current {
		return fmt.Sprintf("%03x [=]\t%04x\t%s", addr, opcode, Disassemble(opcode))
	}
	return fmt.Sprintf("%03x\t%04x\t%s", addr, opcode, Disassemble(opcode))
}

// Range disassembles the words in [begin, end), marking pc. It stops
// early at the end of memory.
func Range(r Reader, begin, end, pc uint16) []string {
	var lines []string
	for addr := begin; addr < end; addr += 2 {
		opcode, err := r.Read16(addr)
		if err != nil {
			break
		}
		lines = append(lines, Line(addr, opcode, addr == pc))
		if addr >= 0xFFFE {
			break
		}
	}
	return lines
}
