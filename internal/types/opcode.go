package types

// Nibble returns the i'th nibble of an opcode, counting from the
// least significant. Nibble(0xABCD, 3) == 0xA.
func Nibble(opcode uint16, i uint8) uint8 {
	return uint8(opcode>>(i*4)) & 0xF
}

// LowByte returns the kk field of an opcode.
func LowByte(opcode uint16) uint8 {
	return uint8(opcode)
}

// Addr returns the nnn field of an opcode.
func Addr(opcode uint16) Address {
	return opcode & 0x0FFF
}
