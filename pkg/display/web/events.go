package web

// Type is the first byte of a message sent to clients.
type Type = uint8

const (
	// Frame carries a cache index and a full RGBA frame.
	Frame Type = iota
	// FramePatch carries a cache index and an RGBA frame in which
	// only the changed pixels are opaque.
	FramePatch
	// FrameSkip carries the number of unchanged frames skipped.
	FrameSkip
	// FrameCache repeats a frame from the frame cache by index.
	FrameCache
	// PatchCache repeats a patch from the patch cache by index.
	PatchCache
	// FrameSync carries the current frame, always compressed, for a
	// newly connected client.
	FrameSync
	// ClientInfo carries the info byte and compression level.
	ClientInfo
	// ServerInfo carries the ID and latency of every client.
	ServerInfo
	// Title carries the window title.
	Title
	// Sound carries 1 while the tone should play.
	Sound
	// Halted carries the fault that stopped the machine.
	Halted
)

// Event is the first byte of a message received from a client.
type Event = uint8

const (
	_ Event = iota
	Compression
	CompressionLevel
	FramePatching
	FrameSkipping
	KeyDown
	KeyUp
	PausePlay
	Reset
	Closing Event = 255
)
