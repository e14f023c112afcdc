// Command chip8dasm prints the disassembly of a CHIP-8 program.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/thelolagemann/gochip8/internal/disasm"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

func main() {
	logger := log.New(false)

	loadAddress := flag.String("load-address", "0x200", "The address the program is loaded at")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] program\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	addr, err := strconv.ParseUint(*loadAddress, 0, 16)
	if err != nil {
		logger.Fatalf("invalid load address %q", *loadAddress)
	}
	program, err := utils.LoadFile(flag.Arg(0))
	if err != nil {
		logger.Fatalf("loading %s: %v", flag.Arg(0), err)
	}

	if err := dump(os.Stdout, program, uint16(addr)); err != nil {
		logger.Fatalf("%v", err)
	}
}

// dump writes the disassembly of program, loaded at addr, to w. A
// trailing odd byte is disassembled as the high byte of a word.
func dump(w io.Writer, program []byte, addr uint16) error {
	mem := memory.New()
	if err := mem.LoadProgram(program, addr); err != nil {
		return err
	}

	end := int(addr) + len(program) + len(program)%2
	if end > 0x1000 {
		end = 0x1000
	}

	bw := bufio.NewWriter(w)
	for _, line := range disasm.Range(mem, addr, uint16(end), 0xFFFF) {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}
