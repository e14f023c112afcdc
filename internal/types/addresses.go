package types

// Address is a location in the CHIP-8's 4KB address space.
type Address = uint16

const (
	// MemorySize is the size of the addressable memory, 0x000 - 0xFFF.
	MemorySize = 0x1000
	// FontAddress is where the built-in hex glyphs are loaded. The
	// interpreter area (0x000 - 0x1FF) is otherwise unused.
	FontAddress Address = 0x050
	// GlyphSize is the height in rows (and size in bytes) of a font glyph.
	GlyphSize = 5
	// ProgramStart is the conventional load address of a program image.
	ProgramStart Address = 0x200
	// MaxAddress is the highest valid address.
	MaxAddress Address = MemorySize - 1
)

const (
	// ScreenWidth is the width of the display in pixels.
	ScreenWidth = 64
	// ScreenHeight is the height of the display in pixels.
	ScreenHeight = 32
	// StackDepth is the number of return addresses the stack can hold.
	StackDepth = 16
	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16
	// TimerFrequency is the rate in Hz at which the delay and sound
	// timers count down.
	TimerFrequency = 60
	// DefaultClockSpeed is the default number of instructions executed
	// per second.
	DefaultClockSpeed = 700
)
