package chip8

import (
	"math/rand"

	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/log"
)

// Opt is a function that modifies a Machine
// instance.
type Opt func(m *Machine)

// Beeper plays a tone while the sound timer is running.
type Beeper interface {
	Beep(on bool)
}

// Debug enables instruction tracing through the machine's logger.
func Debug() Opt {
	return func(m *Machine) {
		m.CPU.Debug = true
	}
}

// WithLogger sets the logger the machine reports through.
func WithLogger(log log.Logger) Opt {
	return func(m *Machine) {
		m.Logger = log
	}
}

// WithQuirks sets the quirks used by the interpreter, replacing
// those of any earlier WithVariant.
func WithQuirks(q types.Quirks) Opt {
	return func(m *Machine) {
		m.quirks = q
	}
}

// WithVariant sets the quirks to those of the given variant.
func WithVariant(v types.Variant) Opt {
	return func(m *Machine) {
		m.quirks = v.Quirks()
	}
}

// WithClockSpeed sets the instruction rate in Hz. Values <= 0 are
// ignored.
func WithClockSpeed(hz int) Opt {
	return func(m *Machine) {
		if hz > 0 {
			m.clockSpeed = hz
		}
	}
}

// WithLoadAddress sets the address the program is loaded at, and
// where the program counter starts.
func WithLoadAddress(addr uint16) Opt {
	return func(m *Machine) {
		m.loadAddress = addr
	}
}

// WithRandom sets the source used by RND, for reproducible runs.
func WithRandom(src rand.Source) Opt {
	return func(m *Machine) {
		m.CPU.SetRandom(src)
	}
}

// WithState restores a save state once the program is loaded.
func WithState(b []byte) Opt {
	return func(m *Machine) {
		m.state = b
	}
}

// WithBeeper sets the beeper driven by the sound timer.
func WithBeeper(b Beeper) Opt {
	return func(m *Machine) {
		m.beeper = b
	}
}
