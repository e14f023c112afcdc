package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/keypad"
)

// Command is a debug shell command.
type Command interface {
	Usage() string
	Describe() string
	Run(s *Shell, args []string) error
}

type commandBlob struct {
	usage string
	desc  string
	f     func(s *Shell, args []string) error
}

func newCommand(usage, desc string, f func(s *Shell, args []string) error) Command {
	return &commandBlob{usage: usage, desc: desc, f: f}
}

func (c *commandBlob) Usage() string    { return c.usage }
func (c *commandBlob) Describe() string { return c.desc }

func (c *commandBlob) Run(s *Shell, args []string) error {
	return c.f(s, args)
}

// commands maps command names to commands, and commandOrder lists
// them in the order help prints them.
var (
	commands     map[string]Command
	commandOrder []string
)

func register(name string, c Command) {
	commands[name] = c
	commandOrder = append(commandOrder, name)
}

func init() {
	commands = make(map[string]Command)

	register("regs", newCommand("regs", "Print all registers", cmdRegs))
	register("set", newCommand("set [reg] [value]", "Set value of register", cmdSet))
	register("mem", newCommand("mem [begin] [end]", "Print memory", cmdMem))
	register("dasm", newCommand("dasm [begin] [end]", "Disassemble instructions", cmdDasm))
	register("si", newCommand("si [count]", "Execute instructions", cmdStep))
	register("stk", newCommand("stk", "Print the stack", func(s *Shell, _ []string) error {
		return s.m.PrintStack(s.out)
	}))
	register("push", newCommand("push [addr]", "Push an address to the stack", cmdPush))
	register("pop", newCommand("pop", "Pop an address from the stack", func(s *Shell, _ []string) error {
		addr, err := s.m.CPU.Pop()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%03x\n", addr)
		return nil
	}))
	register("rnd", newCommand("rnd", "Generate a random byte", func(s *Shell, _ []string) error {
		fmt.Fprintf(s.out, "%02x\n", s.m.CPU.Random())
		return nil
	}))
	register("press", newCommand("press [key|NONE]", "Press a key", cmdPress))
	register("display", newCommand("display", "Display screen state in terminal", func(s *Shell, _ []string) error {
		return s.m.PrintScreen(s.out)
	}))
	register("screen", newCommand("screen [on|off]", "Attach the live display window", cmdScreen))
	register("clear", newCommand("clear", "Clear all pixels on screen", func(s *Shell, _ []string) error {
		s.m.Display.Clear()
		return nil
	}))
	register("full", newCommand("full", "Fill all pixels on screen", func(s *Shell, _ []string) error {
		s.m.Display.Fill()
		return nil
	}))
	register("pixel", newCommand("pixel [x] [y]", "Toggle pixel at (x, y)", cmdPixel))
	register("rom", newCommand("rom [path]", "Load rom into memory", cmdROM))
	register("exit", newCommand("exit", "Exit", func(s *Shell, _ []string) error {
		s.done = true
		return nil
	}))
	register("help", newCommand("help", "Print this menu", cmdHelp))
}

// parseHex parses a hex number with an optional 0x prefix.
func parseHex(str string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(str), "0x"), 16, bits)
	if err != nil {
		return 0, ErrSyntax
	}
	return v, nil
}

// hexArgs parses up to len(defaults) hex arguments, falling back to
// the defaults for those not given.
func hexArgs(args []string, defaults ...uint64) ([]uint64, error) {
	out := append([]uint64(nil), defaults...)
	for i := 0; i < len(args) && i < len(out); i++ {
		v, err := parseHex(args[i], 16)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func cmdRegs(s *Shell, _ []string) error {
	return s.m.PrintRegisters(s.out, s.cfg.Colour)
}

func cmdSet(s *Shell, args []string) error {
	if len(args) != 2 {
		return ErrSyntax
	}
	v, err := parseHex(args[1], 16)
	if err != nil {
		return err
	}

	c := s.m.CPU
	switch reg := strings.ToUpper(args[0]); {
	case len(reg) == 2 && reg[0] == 'V':
		n, err := strconv.ParseUint(reg[1:], 16, 4)
		if err != nil {
			return errors.New("Invalid register")
		}
		c.V[n] = uint8(v)
	case reg == "PC":
		c.PC = uint16(v) & 0xFFF
	case reg == "I":
		c.I = uint16(v) & 0xFFF
	case reg == "DT":
		c.DT = uint8(v)
	case reg == "ST":
		c.ST = uint8(v)
	default:
		return errors.New("Invalid register")
	}
	return nil
}

func cmdMem(s *Shell, args []string) error {
	v, err := hexArgs(args, 0x200, 0)
	if err != nil {
		return err
	}
	begin, end := v[0], v[1]
	if begin > end {
		end = begin + 0x40
	}
	return s.m.PrintMemory(s.out, int(begin&0xFFF0), int(end&0xFFF0))
}

func cmdDasm(s *Shell, args []string) error {
	begin := uint64(s.m.CPU.PC)
	if begin >= 4 {
		begin -= 4
	}
	v, err := hexArgs(args, begin, 0)
	if err != nil {
		return err
	}
	begin, end := v[0], v[1]
	if begin >= end {
		end = begin + 0x10
	}
	return s.m.PrintDisassembly(s.out, uint16(begin&0xFFF), uint16(end&0x1FFF))
}

func cmdStep(s *Shell, args []string) error {
	count := uint64(1)
	if len(args) > 0 {
		n, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return ErrSyntax
		}
		count = n
	}
	for i := uint64(0); i < count; i++ {
		if err := s.m.Step(); err != nil {
			return err
		}
	}
	return nil
}

func cmdPush(s *Shell, args []string) error {
	v, err := hexArgs(args, 0)
	if err != nil {
		return err
	}
	return s.m.CPU.Push(uint16(v[0]) & 0xFFF)
}

func cmdPress(s *Shell, args []string) error {
	if len(args) != 1 {
		return ErrSyntax
	}
	if args[0] == "NONE" {
		s.m.Keypad.Clear()
		return nil
	}
	key, err := keypad.ParseKey(args[0])
	if err != nil {
		return errors.New("Invalid key!")
	}
	s.m.Keypad.Clear()
	s.m.Keypad.Press(key)
	return nil
}

func cmdScreen(s *Shell, args []string) error {
	if s.cfg.Screen == nil {
		return errors.New("no display driver attached")
	}
	on := true
	if len(args) > 0 {
		switch args[0] {
		case "on":
		case "off":
			on = false
		default:
			return ErrSyntax
		}
	}
	return s.cfg.Screen(on)
}

func cmdPixel(s *Shell, args []string) error {
	if len(args) != 2 {
		return ErrSyntax
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		return ErrSyntax
	}
	if x >= 0 && x < display.Width && y >= 0 && y < display.Height {
		s.m.Display.TogglePixel(x, y)
	}
	return nil
}

func cmdROM(s *Shell, args []string) error {
	if len(args) != 1 {
		return ErrSyntax
	}
	b, err := s.cfg.LoadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "Invalid rom file path")
	}
	return s.m.LoadROM(b)
}

func cmdHelp(s *Shell, _ []string) error {
	fmt.Fprintln(s.out, "Available commands")
	for _, name := range commandOrder {
		c := commands[name]
		fmt.Fprintf(s.out, "  %-20s %s\n", c.Usage(), c.Describe())
	}
	return nil
}
