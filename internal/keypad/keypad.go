// Package keypad provides an implementation of the CHIP-8 hex
// keypad. Keys are pressed and released by the host's input
// goroutine and read by the CPU, so the state is guarded by a
// mutex.
//
// The keypad is laid out as follows:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
package keypad

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/bits"
)

// Key represents one of the 16 keys, 0x0 - 0xF.
type Key = uint8

// State represents the state of the keypad.
type State struct {
	// pressed holds one bit per key, set while the key is held down.
	pressed uint16

	waiting     bool
	releaseWait bool
	candidate   int // key pressed during a release wait
	done        int // key that completed the wait

	mu sync.Mutex
}

// New returns a keypad with no keys held.
func New() *State {
	return &State{candidate: -1, done: -1}
}

// Press presses a key. Keys outside of 0x0 - 0xF are ignored.
func (s *State) Press(key Key) {
	if key >= types.KeyCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if bits.Test(s.pressed, key) {
		return // already held, not a transition
	}
	s.pressed = bits.Set(s.pressed, key)

	if !s.waiting || s.done >= 0 {
		return
	}
	if s.releaseWait {
		if s.candidate < 0 {
			s.candidate = int(key)
		}
	} else {
		s.done = int(key)
	}
}

// Release releases a key.
func (s *State) Release(key Key) {
	if key >= types.KeyCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !bits.Test(s.pressed, key) {
		return
	}
	s.pressed = bits.Reset(s.pressed, key)

	if s.waiting && s.releaseWait && s.done < 0 && s.candidate == int(key) {
		s.done = int(key)
	}
}

// IsPressed reports whether key is held down.
func (s *State) IsPressed(key Key) bool {
	if key >= types.KeyCount {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return bits.Test(s.pressed, key)
}

// Held returns the lowest key currently held down.
func (s *State) Held() (Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := Key(0); k < types.KeyCount; k++ {
		if bits.Test(s.pressed, k) {
			return k, true
		}
	}
	return 0, false
}

// Clear releases every key. An armed wait stays armed, so a key
// pressed afterwards still completes it.
func (s *State) Clear() {
	s.mu.Lock()
	s.pressed = 0
	s.candidate = -1
	s.mu.Unlock()
}

// Reset releases every key and cancels any pending wait.
func (s *State) Reset() {
	s.mu.Lock()
	s.pressed = 0
	s.waiting = false
	s.candidate, s.done = -1, -1
	s.mu.Unlock()
}

// BeginWait arms a key wait. Only transitions observed after this
// call complete the wait; keys already held must be pressed again.
// When onRelease is set the wait completes when the pressed key is
// released rather than when it goes down.
func (s *State) BeginWait(onRelease bool) {
	s.mu.Lock()
	s.waiting = true
	s.releaseWait = onRelease
	s.candidate, s.done = -1, -1
	s.mu.Unlock()
}

// Waiting reports whether a key wait is armed.
func (s *State) Waiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting
}

// Poll returns the key that completed the armed wait, disarming it.
// It returns false while the wait is still pending.
func (s *State) Poll() (Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.waiting || s.done < 0 {
		return 0, false
	}
	k := Key(s.done)
	s.waiting = false
	s.candidate, s.done = -1, -1
	return k, true
}

// Mask returns the held keys as a bitmask, bit n for key n.
func (s *State) Mask() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pressed
}

// Load replaces the held keys with mask.
func (s *State) Load(mask uint16) {
	s.mu.Lock()
	s.pressed = mask
	s.mu.Unlock()
}

// ParseKey parses a single hex digit into a Key.
func ParseKey(str string) (Key, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(str), "0x"), 16, 8)
	if err != nil || v >= types.KeyCount {
		return 0, fmt.Errorf("invalid key: %q", str)
	}
	return Key(v), nil
}
