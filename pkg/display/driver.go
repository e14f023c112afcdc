// Package display provides the registry of display drivers that
// present a running machine to the user, along with the pieces they
// share.
package display

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Initialize initializes the display driver by attaching it to
	// the emulator that is using it.
	Initialize(emu Emulator)
	// Start the display driver. Frames arrive on fb as packed RGB
	// rows, and key transitions are sent on pressed and released.
	// Start blocks until the driver is closed or a Quit event is
	// received.
	Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error
	// Stop the display driver.
	Stop() error
}

// Emulator is the interface that wraps the basic methods for an
// emulator to implement in order for the driver to be able to
// interact with it. This is used to allow the driver to
// control the emulator. The emulator is passed to the driver
// during initialization.
type Emulator interface {
	// SendCommand sends a command packet to the emulator.
	SendCommand(command emulator.CommandPacket) emulator.ResponsePacket
	// Speed returns the speed of the emulator.
	Speed() float64
	// Status returns the status of the emulator.
	Status() emulator.Status
	// Paused reports whether the emulator has been paused.
	Paused() bool
}

// Common command packets sent by drivers.
var (
	Pause  = emulator.CommandPacket{Command: emulator.CommandPause}
	Resume = emulator.CommandPacket{Command: emulator.CommandResume}
	Reset  = emulator.CommandPacket{Command: emulator.CommandReset}
	Close  = emulator.CommandPacket{Command: emulator.CommandClose}
)

// DriverOption is a display driver option, exposed as a command
// line flag. Value must be a *string, *bool or *float64 and is set to
// Default when the flags are registered.
type DriverOption struct {
	Name        string
	Default     any
	Value       any
	Description string
}

// InstalledDriver is a driver registered under a name.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers lists the installed drivers in the order they were
// installed. Drivers call Install from their init function.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver with the given name, or nil if no
// driver with that name is installed. "auto" selects the first
// installed driver.
func GetDriver(name string) Driver {
	for _, d := range InstalledDrivers {
		if name == "auto" || d.Name == name {
			return d.Driver
		}
	}
	return nil
}

// Install registers a display driver with the given name.
func Install(name string, driver Driver, options []DriverOption) {
	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// RegisterFlags registers the keymap and every driver option with
// the flag package. An option name used by more than one driver
// becomes a single flag that sets all of them, otherwise the flag is
// prefixed with the driver name, e.g. -glfw-fullscreen.
func RegisterFlags() {
	registerFlags(flag.CommandLine)
}

func registerFlags(fs *flag.FlagSet) {
	fs.Var(keymapValue{}, "keymap", "Keyboard keys for the keypad, given in keypad order 123C456D789EA0BF")

	uses := make(map[string]int)
	for _, d := range InstalledDrivers {
		for _, opt := range d.Options {
			uses[opt.Name]++
		}
	}

	registered := make(map[string]*optionValue)
	for _, d := range InstalledDrivers {
		for _, opt := range d.Options {
			if err := setOption(opt.Value, fmt.Sprint(opt.Default)); err != nil {
				panic(fmt.Sprintf("display: bad default for %s option %q: %v", d.Name, opt.Name, err))
			}

			name := opt.Name
			if uses[name] == 1 {
				name = d.Name + "-" + name
			}
			if v, ok := registered[name]; ok {
				v.targets = append(v.targets, opt.Value)
				continue
			}
			v := &optionValue{targets: []any{opt.Value}}
			registered[name] = v
			fs.Var(v, name, opt.Description)
		}
	}
}

// optionValue is a flag.Value that sets one or more driver options.
type optionValue struct {
	targets []any
}

func (o *optionValue) String() string {
	if o == nil || len(o.targets) == 0 {
		return ""
	}
	switch v := o.targets[0].(type) {
	case *string:
		return *v
	case *bool:
		return strconv.FormatBool(*v)
	case *float64:
		return strconv.FormatFloat(*v, 'g', -1, 64)
	}
	return ""
}

func (o *optionValue) Set(s string) error {
	for _, t := range o.targets {
		if err := setOption(t, s); err != nil {
			return err
		}
	}
	return nil
}

func (o *optionValue) IsBoolFlag() bool {
	if len(o.targets) == 0 {
		return false
	}
	_, ok := o.targets[0].(*bool)
	return ok
}

// setOption parses s into the option pointed to by ptr.
func setOption(ptr any, s string) error {
	switch v := ptr.(type) {
	case *string:
		*v = s
	case *bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*v = b
	case *float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*v = f
	default:
		return fmt.Errorf("unsupported option type %T", ptr)
	}
	return nil
}
