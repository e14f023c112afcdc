// Package bits provides helpers for testing and setting single bits
// of the small unsigned integers the CHIP-8 deals in.
package bits

// Unsigned is a byte, or a word such as an opcode or key mask.
type Unsigned interface {
	~uint8 | ~uint16
}

// Val returns the value of the bit at the given index.
func Val[T Unsigned](b T, i uint8) uint8 {
	return uint8((b >> i) & 1)
}

// Reset resets the bit at the given index.
func Reset[T Unsigned](b T, i uint8) T {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set[T Unsigned](b T, i uint8) T {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test[T Unsigned](b T, i uint8) bool {
	return (b>>i)&1 != 0
}
