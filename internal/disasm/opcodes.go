package disasm

// The functions below assemble opcodes. They are used to build small
// programs in tests and from the debugger; arguments are masked to
// the width of their field.

func xy(op, x, y, n uint8) uint16 {
	return uint16(op&0xF)<<12 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

func xkk(op, x, kk uint8) uint16 {
	return uint16(op&0xF)<<12 | uint16(x&0xF)<<8 | uint16(kk)
}

func nnn(op uint8, addr uint16) uint16 {
	return uint16(op&0xF)<<12 | addr&0x0FFF
}

func CLS() uint16 { return 0x00E0 }
func RET() uint16 { return 0x00EE }
func SYS(addr uint16) uint16 { return nnn(0x0, addr) }
func JP(addr uint16) uint16 { return nnn(0x1, addr) }
func CALL(addr uint16) uint16 { return nnn(0x2, addr) }
func SEI(x, kk uint8) uint16 { return xkk(0x3, x, kk) }
func SNEI(x, kk uint8) uint16 { return xkk(0x4, x, kk) }
func SE(x, y uint8) uint16 { return xy(0x5, x, y, 0) }
func LDI(x, kk uint8) uint16 { return xkk(0x6, x, kk) }
func ADDI(x, kk uint8) uint16 { return xkk(0x7, x, kk) }
func LD(x, y uint8) uint16 { return xy(0x8, x, y, 0x0) }
func OR(x, y uint8) uint16 { return xy(0x8, x, y, 0x1) }
func AND(x, y uint8) uint16 { return xy(0x8, x, y, 0x2) }
func XOR(x, y uint8) uint16 { return xy(0x8, x, y, 0x3) }
func ADD(x, y uint8) uint16 { return xy(0x8, x, y, 0x4) }
func SUB(x, y uint8) uint16 { return xy(0x8, x, y, 0x5) }
func SHR(x, y uint8) uint16 { return xy(0x8, x, y, 0x6) }
func SUBN(x, y uint8) uint16 { return xy(0x8, x, y, 0x7) }
func SHL(x, y uint8) uint16 { return xy(0x8, x, y, 0xE) }
func SNE(x, y uint8) uint16 { return xy(0x9, x, y, 0) }
func LDIndex(addr uint16) uint16 { return nnn(0xA, addr) }
func JPV0(addr uint16) uint16 { return nnn(0xB, addr) }
func RND(x, kk uint8) uint16 { return xkk(0xC, x, kk) }
func DRW(x, y, n uint8) uint16 { return xy(0xD, x, y, n) }
func SKP(x uint8) uint16 { return xkk(0xE, x, 0x9E) }
func SKNP(x uint8) uint16 { return xkk(0xE, x, 0xA1) }
func LDDelay(x uint8) uint16 { return xkk(0xF, x, 0x07) }
func LDKey(x uint8) uint16 { return xkk(0xF, x, 0x0A) }
func SetDelay(x uint8) uint16 { return xkk(0xF, x, 0x15) }
func SetSound(x uint8) uint16 { return xkk(0xF, x, 0x18) }
func ADDIndex(x uint8) uint16 { return xkk(0xF, x, 0x1E) }
func LDFont(x uint8) uint16 { return xkk(0xF, x, 0x29) }
func LDBCD(x uint8) uint16 { return xkk(0xF, x, 0x33) }
func Store(x uint8) uint16 { return xkk(0xF, x, 0x55) }
func Load(x uint8) uint16 { return xkk(0xF, x, 0x65) }

// Assemble packs opcodes into a big-endian program image.
func Assemble(opcodes ...uint16) []byte {
	out := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		out = append(out, byte(op>>8), byte(op))
	}
	return out
}
