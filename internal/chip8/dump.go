package chip8

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mgutz/ansi"
	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/disasm"
)

var changed = ansi.ColorCode("default+bu:default")

// PrintRegisters writes V0-VF, PC, I, SP, the last random byte, the
// timers and the held key to w. When colour is set, values that
// changed since the previous call are highlighted.
func (m *Machine) PrintRegisters(w io.Writer, colour bool) error {
	r := m.CPU.Registers
	diff := colour && m.hasLast
	hex := func(width int, v, old uint16) string {
		s := fmt.Sprintf("%0*x", width, v)
		if diff && v != old {
			return changed + s + ansi.Reset
		}
		return s
	}

	bw := bufio.NewWriter(w)
	for i := 0; i < len(r.V); i += 2 {
		sep := "\t"
		if i%4 == 2 {
			sep = "\n"
		}
		fmt.Fprintf(bw, "%s: %s\t%s: %s%s",
			cpu.RegisterName(cpu.Register(i)), hex(2, uint16(r.V[i]), uint16(m.last.V[i])),
			cpu.RegisterName(cpu.Register(i+1)), hex(2, uint16(r.V[i+1]), uint16(m.last.V[i+1])),
			sep)
	}
	fmt.Fprintf(bw, "PC: %s\t I: %s\n", hex(4, r.PC, m.last.PC), hex(4, r.I, m.last.I))
	fmt.Fprintf(bw, "SP: %s\t\t R: %02x\n", hex(2, uint16(m.CPU.SP), uint16(m.lastSP)), m.CPU.LastRandom())
	fmt.Fprintf(bw, "DT: %s\t\tST: %s\n", hex(2, uint16(r.DT), uint16(m.last.DT)), hex(2, uint16(r.ST), uint16(m.last.ST)))
	if key, ok := m.Keypad.Held(); ok {
		fmt.Fprintf(bw, "Key: %X\n", key)
	} else {
		fmt.Fprintln(bw, "Key: NONE")
	}

	m.last, m.lastSP, m.hasLast = r, m.CPU.SP, true
	return bw.Flush()
}

// PrintMemory writes a 16 column hex table of [begin, end) to w. Rows
// are aligned to 16 bytes; addresses before begin on the first row
// are left blank.
func (m *Machine) PrintMemory(w io.Writer, begin, end int) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(" hex  ")
	for i := 0; i < 0x10; i++ {
		fmt.Fprintf(bw, "%2x ", i)
	}

	data := m.Memory.Slice(0, end)
	for addr := begin &^ 0xF; addr < end && addr < len(data); addr++ {
		if addr&0xF == 0 {
			fmt.Fprintf(bw, "\n %02x0  ", addr>>4)
		}
		if addr < begin {
			bw.WriteString("   ")
		} else {
			fmt.Fprintf(bw, "%02x ", data[addr])
		}
	}
	bw.WriteString("\n")
	return bw.Flush()
}

// PrintStack writes the call stack to w, most recent frame first.
func (m *Machine) PrintStack(w io.Writer) error {
	bw := bufio.NewWriter(w)
	frames := m.CPU.Frames()
	if len(frames) == 0 {
		bw.WriteString("|     |\n")
	}
	for i := len(frames) - 1; i >= 0; i-- {
		fmt.Fprintf(bw, "| %03x |\n", frames[i])
	}
	bw.WriteString("+-----+\n")
	return bw.Flush()
}

// PrintDisassembly writes the instructions in [begin, end) to w, marking
// the one at the program counter.
func (m *Machine) PrintDisassembly(w io.Writer, begin, end uint16) error {
	for _, line := range disasm.Range(m.Memory, begin, end, m.CPU.PC) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintScreen writes the display to w as text.
func (m *Machine) PrintScreen(w io.Writer) error {
	f := m.Display.Snapshot()
	_, err := io.WriteString(w, f.String())
	return err
}
