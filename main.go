package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/gochip8/internal/chip8"
	"github.com/thelolagemann/gochip8/internal/debugger"
	chipdisplay "github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/audio"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	_ "github.com/thelolagemann/gochip8/pkg/display/fyne"
	_ "github.com/thelolagemann/gochip8/pkg/display/glfw"
	_ "github.com/thelolagemann/gochip8/pkg/display/sdl"
	_ "github.com/thelolagemann/gochip8/pkg/display/web"
	"github.com/thelolagemann/gochip8/pkg/emu"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

var (
	_ display.Emulator = &chip8.Machine{}
)

// quirkFlags binds the -quirk-* flags to the quirk they override.
var quirkFlags = map[string]func(q *types.Quirks) *bool{
	"quirk-shift":        func(q *types.Quirks) *bool { return &q.ShiftUsesVY },
	"quirk-index":        func(q *types.Quirks) *bool { return &q.IncrementIndex },
	"quirk-vf-reset":     func(q *types.Quirks) *bool { return &q.ResetVF },
	"quirk-display-wait": func(q *types.Quirks) *bool { return &q.DisplayWait },
	"quirk-jump":         func(q *types.Quirks) *bool { return &q.JumpUsesVX },
	"quirk-clip":         func(q *types.Quirks) *bool { return &q.ClipSprites },
	"quirk-release-wait": func(q *types.Quirks) *bool { return &q.ReleaseWait },
}

func main() {
	var logger = log.New(false)

	if len(display.InstalledDrivers) == 0 {
		logger.Fatalf("No display drivers installed. Please compile with at least one display driver")
	}

	romFile := flag.String("rom", "", "The program to load")
	rate := flag.Int("rate", types.DefaultClockSpeed, "Instructions executed per second")
	variant := flag.String("variant", "modern", "The interpreter to emulate. Can be modern, cosmac or schip")
	loadAddress := flag.String("load-address", "0x200", "The address the program is loaded at")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, sdl, glfw, fyne or web")
	debug := flag.Bool("debug", false, "Start the interactive debug shell instead of running")
	trace := flag.Bool("trace", false, "Log every executed instruction")
	state := flag.String("state", "", "The state file to load, or latest for the newest save of the program")
	save := flag.Bool("save", false, "Save the state of the program on exit")
	saves := flag.String("saves", emu.DefaultFolder, "The folder save states are kept in")
	mute := flag.Bool("mute", false, "Disable sound")
	overrides := map[string]*bool{}
	for name := range quirkFlags {
		overrides[name] = flag.Bool(name, false, "Override the "+name[len("quirk-"):]+" quirk of the variant")
	}

	display.RegisterFlags()
	flag.Parse()

	if *romFile == "" {
		path, err := utils.AskForFile("Open ROM", ".")
		if err != nil {
			logger.Fatalf("no program given: %v", err)
		}
		*romFile = path
	}
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatalf("loading %s: %v", *romFile, err)
	}

	v, ok := types.StringToVariant(*variant)
	if !ok {
		logger.Fatalf("unknown variant %q", *variant)
	}
	quirks := v.Quirks()
	flag.Visit(func(f *flag.Flag) {
		if bind, ok := quirkFlags[f.Name]; ok {
			*bind(&quirks) = *overrides[f.Name]
		}
	})

	addr, err := strconv.ParseUint(*loadAddress, 0, 16)
	if err != nil {
		logger.Fatalf("invalid load address %q", *loadAddress)
	}

	opts := []chip8.Opt{
		chip8.WithLogger(logger),
		chip8.WithQuirks(quirks),
		chip8.WithClockSpeed(*rate),
		chip8.WithLoadAddress(uint16(addr)),
	}
	if *trace {
		opts = append(opts, chip8.Debug(), chip8.WithLogger(log.New(true)))
	}

	switch *state {
	case "":
	case "latest":
		s, err := emu.Latest(*saves, rom)
		if err != nil {
			logger.Fatalf("loading save: %v", err)
		}
		if s != nil {
			logger.Infof("loading save %s", s.Path)
			opts = append(opts, chip8.WithState(s.Bytes()))
		}
	default:
		b, err := utils.LoadFile(*state)
		if err != nil {
			logger.Fatalf("loading state: %v", err)
		}
		opts = append(opts, chip8.WithState(b))
	}

	if !*mute && !*debug {
		beeper, err := audio.Open()
		if err != nil {
			logger.Errorf("unable to open audio device: %v", err)
		} else {
			defer beeper.Close()
			opts = append(opts, chip8.WithBeeper(beeper))
		}
	}

	m, err := chip8.New(rom, opts...)
	if err != nil {
		fail(err)
	}

	driverSet := false
	flag.Visit(func(f *flag.Flag) {
		driverSet = driverSet || f.Name == "driver"
	})

	var driver display.Driver
	if !*debug || driverSet {
		if driver = display.GetDriver(*displayDriver); driver == nil {
			logger.Fatalf("invalid display driver %q", *displayDriver)
		}
		driver.Initialize(m)
	}

	if *debug {
		runDebugger(m, driver, logger)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fb := make(chan []byte, 60)
	events := make(chan event.Event, 60)
	pressed := make(chan keypad.Key, 10)
	released := make(chan keypad.Key, 10)

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- m.Start(ctx, fb, events, pressed, released)
	}()
	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			// the loop sends Quit to the driver as it closes
			m.SendCommand(display.Close)
		case <-finished:
		}
	}()

	if err := driver.Start(fb, events, pressed, released); err != nil {
		logger.Errorf("display: %v", err)
	}
	close(finished)
	driver.Stop()
	m.SendCommand(display.Close)
	<-loopDone

	if *save {
		b, err := m.SaveState()
		if err != nil {
			logger.Errorf("saving state: %v", err)
		} else if s, err := emu.NewSave(*saves, m.Program(), b); err != nil {
			logger.Errorf("saving state: %v", err)
		} else {
			logger.Infof("saved state to %s", s.Path)
		}
	}

	if err := m.Err(); err != nil {
		fail(err)
	}
}

// runDebugger runs the debug shell on m. If a driver is given it runs
// on the main thread, and the screen command mirrors the display
// into it.
func runDebugger(m *chip8.Machine, driver display.Driver, logger log.Logger) {
	var mirror atomic.Bool
	cfg := debugger.Config{Colour: true}
	if driver != nil {
		cfg.Screen = func(on bool) error {
			mirror.Store(on)
			return nil
		}
	}

	shell, err := debugger.New(m, cfg)
	if err != nil {
		logger.Fatalf("debugger: %v", err)
	}

	if driver == nil {
		shell.Run()
		return
	}

	fb := make(chan []byte, 1)
	events := make(chan event.Event, 1)
	pressed := make(chan keypad.Key, 10)
	released := make(chan keypad.Key, 10)

	go func() {
		defer func() { events <- event.Event{Type: event.Quit} }()
		shell.Run()
	}()
	go func() {
		ticker := time.NewTicker(time.Second / 60)
		defer ticker.Stop()
		for {
			select {
			case k := <-pressed:
				m.Keypad.Press(k)
			case k := <-released:
				m.Keypad.Release(k)
			case <-ticker.C:
				if !mirror.Load() || !m.Display.Dirty() {
					continue
				}
				f := m.Display.Snapshot()
				m.Display.ClearDirty()
				select {
				case fb <- f.RGB(chipdisplay.On, chipdisplay.Off):
				default:
				}
			}
		}
	}()

	if err := driver.Start(fb, events, pressed, released); err != nil {
		logger.Errorf("display: %v", err)
	}
}

// fail prints err and exits with status 1.
func fail(err error) {
	fmt.Fprintln(os.Stderr, faultMessage(err))
	os.Exit(1)
}

// faultMessage describes err, naming the faulting instruction for
// emulation faults.
func faultMessage(err error) string {
	e, ok := types.AsError(err)
	if !ok {
		return fmt.Sprintf("error: %v", err)
	}
	if !e.HasPC {
		return fmt.Sprintf("error: %s at address 0x%03x", e.Kind, e.Address)
	}
	return fmt.Sprintf("error: %s at PC=0x%03x (opcode 0x%04x)", e.Kind, e.PC, e.Opcode)
}
