package emulator

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandClose closes the emulator.
	CommandClose
	// CommandReset resets the emulator.
	CommandReset
	// CommandLoadROM loads a program image, carried in Data.
	CommandLoadROM
	// CommandLoadState restores a save state, carried in Data.
	CommandLoadState
	// CommandSaveState takes a save state, returned in the
	// response Data.
	CommandSaveState
	// CommandSetSpeed sets the instruction rate in Hz, carried
	// in Data as a big-endian uint32.
	CommandSetSpeed
)

var commandNames = map[Command]string{
	CommandPause:     "pause",
	CommandResume:    "resume",
	CommandClose:     "close",
	CommandReset:     "reset",
	CommandLoadROM:   "load-rom",
	CommandLoadState: "load-state",
	CommandSaveState: "save-state",
	CommandSetSpeed:  "set-speed",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

// SpeedPacket returns a CommandSetSpeed packet for hz.
func SpeedPacket(hz uint32) CommandPacket {
	return CommandPacket{
		Command: CommandSetSpeed,
		Data:    []byte{byte(hz >> 24), byte(hz >> 16), byte(hz >> 8), byte(hz)},
	}
}
