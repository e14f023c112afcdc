package emulator

// Status represents the status of the emulation loop. It
// can be one of the following:
//
//   - Idle
//   - Running
//   - WaitingForKey
//   - Halted
type Status int

const (
	// Idle represents the status of a machine that has
	// been loaded or reset, but not yet started.
	Idle Status = iota
	// Running represents the status of the machine
	// when it is executing instructions.
	Running
	// WaitingForKey represents the status of the machine
	// when it is blocked on a key wait. Timers continue
	// to tick.
	WaitingForKey
	// Halted represents the status of the machine after
	// a fatal error or a stop request. No instructions
	// execute until the machine is reset or reloaded.
	Halted
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case WaitingForKey:
		return "WaitingForKey"
	case Halted:
		return "Halted"
	default:
		return "Unknown"
	}
}

func (s Status) IsIdle() bool {
	return s == Idle
}

func (s Status) IsRunning() bool {
	return s == Running
}

func (s Status) IsWaiting() bool {
	return s == WaitingForKey
}

func (s Status) IsHalted() bool {
	return s == Halted
}
