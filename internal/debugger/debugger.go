// Package debugger provides an interactive shell for inspecting and
// stepping a chip8.Machine.
package debugger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"github.com/thelolagemann/gochip8/internal/chip8"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// ErrSyntax is printed when a command is given bad arguments.
var ErrSyntax = errors.New("Invalid syntax...")

// Config configures a Shell.
type Config struct {
	// In is read for commands, defaulting to stdin. When In is not
	// stdin, line editing and history are disabled.
	In io.Reader
	// Out and Err receive command output and errors, defaulting
	// to stdout and stderr.
	Out, Err io.Writer
	// Colour highlights changed registers.
	Colour bool
	// Screen attaches (true) or detaches (false) a live display
	// window. If nil the screen command is unavailable.
	Screen func(on bool) error
	// LoadFile reads program images for the rom command, defaulting
	// to utils.LoadFile.
	LoadFile func(path string) ([]byte, error)
}

// Shell is an interactive debug shell attached to a machine.
type Shell struct {
	m   *chip8.Machine
	rl  *readline.Instance
	cfg Config

	out, err io.Writer
	done     bool
}

// New returns a shell for m.
func New(m *chip8.Machine, cfg Config) (*Shell, error) {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Err == nil {
		cfg.Err = os.Stderr
	}
	if cfg.LoadFile == nil {
		cfg.LoadFile = utils.LoadFile
	}

	rlConfig := &readline.Config{
		InterruptPrompt: "\n",
		EOFPrompt:       "\n",
		Stdout:          cfg.Out,
		Stderr:          cfg.Err,
	}
	if cfg.In == nil || cfg.In == os.Stdin {
		rlConfig.HistoryFile = historyPath()
	} else {
		noop := func() error { return nil }
		rlConfig.Stdin = io.NopCloser(cfg.In)
		rlConfig.FuncIsTerminal = func() bool { return false }
		rlConfig.FuncMakeRaw = noop
		rlConfig.FuncExitRaw = noop
		rlConfig.FuncOnWidthChanged = func(func()) {}
		rlConfig.FuncGetWidth = func() int { return 80 }
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, errors.Wrap(err, "readline")
	}

	return &Shell{m: m, rl: rl, cfg: cfg, out: cfg.Out, err: cfg.Err}, nil
}

// historyPath returns the path of the history file, or "" if the
// cache folder cannot be created.
func historyPath() string {
	configDirs := configdir.New("gochip8", "debugger")
	cacheDir := configDirs.QueryCacheFolder()
	if err := cacheDir.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cacheDir.Path, "history")
}

// Run reads and executes commands until exit or the end of input.
func (s *Shell) Run() error {
	defer s.rl.Close()
	fmt.Fprintln(s.out, "Interactive debug shell!")

	for !s.done {
		s.rl.SetPrompt(fmt.Sprintf("%03x> ", s.m.CPU.PC))
		ln := s.rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}
		s.Exec(ln.Line)
	}

	fmt.Fprintln(s.out, "exiting...")
	return nil
}

// Exec executes a single command line. Errors are printed rather
// than returned, as the shell keeps running.
func (s *Shell) Exec(line string) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintln(s.err, "Invalid command...")
		return
	}
	if err := cmd.Run(s, args[1:]); err != nil {
		fmt.Fprintln(s.err, err)
	}
}

// Close releases the terminal.
func (s *Shell) Close() error {
	return s.rl.Close()
}

// Done reports whether the exit command has been run.
func (s *Shell) Done() bool {
	return s.done
}
