// Package memory provides the 4KB address space of the CHIP-8.
// Every access is bounds checked; nothing wraps silently.
package memory

import (
	"github.com/thelolagemann/gochip8/internal/types"
)

// Memory represents the flat byte-addressable memory of the CHIP-8.
// Addresses 0x000 - 0x1FF are reserved for the interpreter, which
// only uses them to hold the font.
type Memory struct {
	data [types.MemorySize]byte
}

// New returns a new Memory with the font loaded.
func New() *Memory {
	m := &Memory{}
	m.LoadFont()
	return m
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if int(address) >= types.MemorySize {
		return 0, types.NewError(types.OutOfBounds, int(address))
	}
	return m.data[address], nil
}

// Read16 returns the big-endian word at the given address.
func (m *Memory) Read16(address uint16) (uint16, error) {
	if err := m.Check(int(address), 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Write writes value to the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if int(address) >= types.MemorySize {
		return types.NewError(types.OutOfBounds, int(address))
	}
	m.data[address] = value
	return nil
}

// Check returns an OutOfBounds error if any address in
// [address, address+length) lies outside of memory. The
// error reports the first offending address.
func (m *Memory) Check(address, length int) error {
	if address < 0 || address >= types.MemorySize {
		return types.NewError(types.OutOfBounds, address)
	}
	if end := address + length; end > types.MemorySize {
		return types.NewError(types.OutOfBounds, types.MemorySize)
	}
	return nil
}

// Slice returns a copy of [begin, end), clamped to memory.
func (m *Memory) Slice(begin, end int) []byte {
	if begin < 0 {
		begin = 0
	}
	if end > types.MemorySize {
		end = types.MemorySize
	}
	if begin >= end {
		return []byte{}
	}
	out := make([]byte, end-begin)
	copy(out, m.data[begin:end])
	return out
}

// LoadProgram copies program into memory starting at address. The
// image must fit entirely between address and the end of memory.
func (m *Memory) LoadProgram(program []byte, address uint16) error {
	if err := Fits(len(program), address); err != nil {
		return err
	}
	copy(m.data[address:], program)
	return nil
}

// Fits returns an error if a program of size bytes cannot be loaded
// at address.
func Fits(size int, address uint16) error {
	if int(address) >= types.MemorySize {
		return types.NewError(types.OutOfBounds, int(address))
	}
	if int(address)+size > types.MemorySize {
		return types.NewError(types.ProgramTooLarge, int(address)+size)
	}
	return nil
}

// Reset zeroes memory and reloads the font.
func (m *Memory) Reset() {
	m.data = [types.MemorySize]byte{}
	m.LoadFont()
}

// Load replaces the entire contents of memory.
func (m *Memory) Load(data [types.MemorySize]byte) {
	m.data = data
}

// Raw returns a copy of the entire contents of memory.
func (m *Memory) Raw() [types.MemorySize]byte {
	return m.data
}
