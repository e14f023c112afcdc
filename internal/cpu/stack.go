package cpu

import "github.com/thelolagemann/gochip8/internal/types"

// Stack is the call stack. It holds up to types.StackDepth return
// addresses; pushing onto a full stack or popping an empty one is a
// fault rather than being clamped.
type Stack struct {
	Entries [types.StackDepth]uint16
	SP      uint8
}

// Push pushes addr onto the stack.
func (s *Stack) Push(addr uint16) error {
	if int(s.SP) >= types.StackDepth {
		return types.NewError(types.StackOverflow, int(addr))
	}
	s.Entries[s.SP] = addr
	s.SP++
	return nil
}

// Pop pops the most recently pushed address.
func (s *Stack) Pop() (uint16, error) {
	if s.SP == 0 {
		return 0, types.NewError(types.StackUnderflow, 0)
	}
	s.SP--
	return s.Entries[s.SP], nil
}

// Full reports whether another Push would overflow.
func (s *Stack) Full() bool {
	return int(s.SP) >= types.StackDepth
}

// Empty reports whether a Pop would underflow.
func (s *Stack) Empty() bool {
	return s.SP == 0
}

// Frames returns the addresses on the stack, oldest first.
func (s *Stack) Frames() []uint16 {
	out := make([]uint16, s.SP)
	copy(out, s.Entries[:s.SP])
	return out
}
