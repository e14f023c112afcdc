// Package chip8 provides an emulation of a CHIP-8 interpreter.
//
// A Machine owns its memory, CPU, display, keypad and timer clock.
// There is no package level state, so any number of machines can
// run side by side.
package chip8

import (
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
)

// ErrHalted is returned when stepping a machine that has halted.
var ErrHalted = errors.New("chip8: machine is halted")

// Machine represents a CHIP-8. It contains all the components of
// the interpreter and is the main entry point for the emulator.
type Machine struct {
	CPU     *cpu.CPU
	Memory  *memory.Memory
	Display *display.Buffer
	Keypad  *keypad.State
	Clock   *timer.Clock

	log.Logger

	program     []byte
	loadAddress uint16
	quirks      types.Quirks
	beeper      Beeper
	state       []byte // save state to restore once loaded

	// carry is the fraction of an instruction owed from the
	// previous call to RunFor.
	carry float64

	// last holds the registers as of the previous dump, used to
	// highlight changes.
	last    cpu.Registers
	lastSP  uint8
	hasLast bool

	mu         sync.Mutex
	status     emulator.Status
	paused     bool
	err        error
	clockSpeed int
	sound      bool

	commands chan request
	loopDone chan struct{}
}

// New returns a new Machine with program loaded at the load address.
// The machine starts Idle.
func New(program []byte, opts ...Opt) (*Machine, error) {
	m := &Machine{
		Memory:      memory.New(),
		Display:     display.New(false),
		Keypad:      keypad.New(),
		Logger:      log.NewNullLogger(),
		loadAddress: types.ProgramStart,
		quirks:      types.DefaultQuirks(),
		clockSpeed:  types.DefaultClockSpeed,
		commands:    make(chan request),
	}
	m.CPU = cpu.NewCPU(m.Memory, m.Display, m.Keypad, m.loadAddress, m.quirks, rand.NewSource(time.Now().UnixNano()))
	m.Clock = timer.NewClock(m.CPU)

	for _, opt := range opts {
		opt(m)
	}
	m.CPU.Logger = m.Logger
	m.CPU.Quirks = m.quirks

	if err := m.LoadROM(program); err != nil {
		return nil, err
	}
	if m.state != nil {
		if err := m.LoadState(m.state); err != nil {
			return nil, err
		}
		m.state = nil
	}

	return m, nil
}

// LoadROM replaces the program and resets the machine.
func (m *Machine) LoadROM(program []byte) error {
	if err := memory.Fits(len(program), m.loadAddress); err != nil {
		return errors.Wrap(err, "load program")
	}
	m.program = append([]byte(nil), program...)
	return m.Reset()
}

// Program returns a copy of the loaded program image.
func (m *Machine) Program() []byte {
	return append([]byte(nil), m.program...)
}

// LoadAddress returns the address the program is loaded at.
func (m *Machine) LoadAddress() uint16 {
	return m.loadAddress
}

// Quirks returns the quirks the machine was configured with.
func (m *Machine) Quirks() types.Quirks {
	return m.quirks
}

// Reset reloads memory with the font and program, and clears the
// registers, display, keypad and clock. The machine returns to Idle.
func (m *Machine) Reset() error {
	m.Memory.Reset()
	if err := m.Memory.LoadProgram(m.program, m.loadAddress); err != nil {
		return errors.Wrap(err, "load program")
	}
	m.CPU.Reset(m.loadAddress)
	m.Display.SetClip(m.quirks.ClipSprites)
	m.Display.Clear()
	m.Keypad.Reset()
	m.Clock.Reset()
	m.carry = 0
	m.hasLast = false

	m.mu.Lock()
	m.status = emulator.Idle
	m.err = nil
	m.sound = false
	m.mu.Unlock()

	m.Infof("loaded %d byte program at 0x%03X", len(m.program), m.loadAddress)
	return nil
}

// Step executes a single instruction without advancing the timers.
// A hold after a draw is released first, so single stepping never
// stalls on the display wait quirk. A fault halts the machine and
// is returned.
func (m *Machine) Step() error {
	if m.Status() == emulator.Halted {
		return ErrHalted
	}
	m.CPU.ReleaseDisplay()
	if err := m.CPU.Step(); err != nil {
		m.halt(err)
		return err
	}
	m.sync()
	return nil
}

// RunFor runs the machine for elapsed emulated time. The number of
// instructions executed is clockSpeed * elapsed, with the fractional
// remainder carried into the next call. The timer clock is advanced
// by the same elapsed time in step with the instructions, so timers
// keep ticking while the CPU waits for a key.
//
// RunFor returns the number of instructions executed, and the fault
// that halted the machine, if any. A halted or paused machine does
// nothing.
func (m *Machine) RunFor(elapsed time.Duration) (int, error) {
	m.mu.Lock()
	if m.status == emulator.Halted || m.paused {
		m.mu.Unlock()
		return 0, nil
	}
	if m.status == emulator.Idle {
		m.status = emulator.Running
	}
	hz := float64(m.clockSpeed)
	m.mu.Unlock()

	executed := 0
	for elapsed > 0 {
		slice := m.Clock.UntilNext()
		if slice <= 0 || slice > elapsed {
			slice = elapsed
		}

		m.carry += hz * slice.Seconds()
		for ; m.carry >= 1; m.carry-- {
			blocked := m.CPU.WaitingForKey() || m.CPU.WaitingForVBlank()
			if err := m.CPU.Step(); err != nil {
				m.carry = 0
				m.halt(err)
				return executed, err
			}
			if !blocked {
				executed++
			}
		}

		m.Clock.Advance(slice)
		elapsed -= slice
	}

	m.sync()
	return executed, nil
}

// Stop halts the machine. It can be restarted with Reset or LoadROM.
func (m *Machine) Stop() {
	m.mu.Lock()
	m.status = emulator.Halted
	m.mu.Unlock()
}

// Pause suspends RunFor until Resume is called.
func (m *Machine) Pause() {
	m.mu.Lock()
	m.paused = true
	m.mu.Unlock()
}

// Resume resumes a paused machine.
func (m *Machine) Resume() {
	m.mu.Lock()
	m.paused = false
	m.mu.Unlock()
}

// Paused reports whether the machine is paused.
func (m *Machine) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Status returns the state of the emulation loop.
func (m *Machine) Status() emulator.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Err returns the fault that halted the machine, or nil.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Speed returns the instruction rate in Hz.
func (m *Machine) Speed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.clockSpeed)
}

// SetSpeed sets the instruction rate in Hz.
func (m *Machine) SetSpeed(hz int) error {
	if hz <= 0 {
		return errors.Errorf("invalid clock speed %d", hz)
	}
	m.mu.Lock()
	m.clockSpeed = hz
	m.mu.Unlock()
	return nil
}

// SoundActive reports whether the sound timer is non-zero, as of
// the last instruction batch.
func (m *Machine) SoundActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sound
}

// halt moves the machine to Halted, recording err.
func (m *Machine) halt(err error) {
	m.mu.Lock()
	m.status = emulator.Halted
	m.err = err
	m.sound = false
	m.mu.Unlock()
	m.Errorf("halted: %v", err)
}

// sync updates the externally visible state from the CPU.
func (m *Machine) sync() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == emulator.Halted {
		return
	}
	if m.CPU.WaitingForKey() {
		m.status = emulator.WaitingForKey
	} else {
		m.status = emulator.Running
	}
	m.sound = m.CPU.ST > 0
}
