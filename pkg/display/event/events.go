// Package event defines the various event types that can
// be sent to a display.Driver. This package is separate from
// the display package to avoid circular dependencies.
package event

// Type defines the various event types
// that can be sent to a display.Driver. The event type
// indicates to the display.Driver what action should be
// taken.
type Type int

const (
	// Quit is sent when the machine has halted or been
	// closed, and the display.Driver should shut down.
	Quit Type = iota
	// FrameTime is periodically sent to the display.Driver
	// to indicate the average time between frames. Data is
	// a time.Duration.
	FrameTime
	// Instructions is sent once per frame with the number
	// of instructions executed during that frame. Data is
	// an int.
	Instructions
	// Title is sent to the display.Driver to change the
	// title of the window. This can be used to display
	// custom information in the title bar, such as the
	// current program, or FPS.
	Title
	// Sound is sent when the sound timer starts or stops.
	// Data is a bool, true while the tone should play.
	Sound
	// Halt is sent when the machine stops on a fatal error.
	// Data is the error.
	Halt
)

// Event is the data structure that is sent to the display.Driver
// to indicate an event has occurred. Data may or may not
// contain any data, depending on the event type.
type Event struct {
	// Type is the type of event
	Type Type
	// Data is the data of the event
	Data interface{}
}
