package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an emulation fault.
type Kind uint8

const (
	// OutOfBounds is returned when an address falls outside of memory.
	OutOfBounds Kind = iota + 1
	// InvalidOpcode is returned when an opcode doesn't decode to any
	// known instruction.
	InvalidOpcode
	// StackOverflow is returned when a call is made with a full stack.
	StackOverflow
	// StackUnderflow is returned when a return is made with an empty stack.
	StackUnderflow
	// ProgramTooLarge is returned when a program image doesn't fit
	// between its load address and the end of memory.
	ProgramTooLarge
)

var kindNames = map[Kind]string{
	OutOfBounds:     "OutOfBounds",
	InvalidOpcode:   "InvalidOpcode",
	StackOverflow:   "StackOverflow",
	StackUnderflow:  "StackUnderflow",
	ProgramTooLarge: "ProgramTooLarge",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Error is an unrecoverable emulation fault. PC and Opcode are filled
// in by the CPU when the fault occurs during execution; memory level
// faults only know the Address.
type Error struct {
	Kind    Kind
	PC      Address
	Opcode  uint16
	Address int
	// HasPC is set once the fault has been attributed to an instruction.
	HasPC bool
}

// NewError returns a fault of the given kind at the given address.
func NewError(kind Kind, address int) *Error {
	return &Error{Kind: kind, Address: address}
}

func (e *Error) Error() string {
	switch {
	case e.HasPC && e.Kind == InvalidOpcode:
		return fmt.Sprintf("%s: opcode 0x%04X at PC 0x%03X", e.Kind, e.Opcode, e.PC)
	case e.HasPC:
		return fmt.Sprintf("%s: address 0x%X (opcode 0x%04X at PC 0x%03X)", e.Kind, e.Address, e.Opcode, e.PC)
	default:
		return fmt.Sprintf("%s: address 0x%X", e.Kind, e.Address)
	}
}

// At attributes the fault to the instruction at pc.
func (e *Error) At(pc Address, opcode uint16) *Error {
	e.PC = pc
	e.Opcode = opcode
	e.HasPC = true
	return e
}

// AsError unwraps err into an *Error, if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or 0 if err isn't an emulation fault.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return 0
}
