package chip8

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/display"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/bits"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// save state format:
//
// header
// uint32(magic "CH8S")
// uint32(format version)
// uint32(crc32 of compressed data)
// uint32(length of compressed data)
// remainder is gzip-compressed machineState
const (
	stateMagic   = 0x43483853
	stateVersion = 1
)

// ErrInvalidState is returned when a save state cannot be decoded.
var ErrInvalidState = errors.New("chip8: invalid save state")

var stateOptions = &struc.Options{Order: binary.BigEndian}

type stateHeader struct {
	Magic   uint32
	Version uint32
	CRC     uint32
	Length  uint32
}

type machineState struct {
	Memory []byte   `struc:"[4096]uint8"`
	V      []byte   `struc:"[16]uint8"`
	I      uint16
	PC     uint16
	Stack  []uint16 `struc:"[16]uint16"`
	SP     uint8
	DT     uint8
	ST     uint8

	Display []byte `struc:"[256]uint8"`
	Keys    uint16

	Status     uint8
	WaitingKey bool
	WaitReg    uint8
	Quirks     uint8

	LoadAddress uint16
	ProgramSize uint16 `struc:"uint16,sizeof=Program"`
	Program     []byte
}

// quirk bits, in the order of types.Quirks
var quirkFields = []func(q *types.Quirks) *bool{
	func(q *types.Quirks) *bool { return &q.ShiftUsesVY },
	func(q *types.Quirks) *bool { return &q.IncrementIndex },
	func(q *types.Quirks) *bool { return &q.ResetVF },
	func(q *types.Quirks) *bool { return &q.DisplayWait },
	func(q *types.Quirks) *bool { return &q.JumpUsesVX },
	func(q *types.Quirks) *bool { return &q.ClipSprites },
	func(q *types.Quirks) *bool { return &q.ReleaseWait },
}

func packQuirks(q types.Quirks) uint8 {
	var b uint8
	for i, f := range quirkFields {
		if *f(&q) {
			b = bits.Set(b, uint8(i))
		}
	}
	return b
}

func unpackQuirks(b uint8) types.Quirks {
	var q types.Quirks
	for i, f := range quirkFields {
		*f(&q) = bits.Test(b, uint8(i))
	}
	return q
}

// SaveState returns a snapshot of the machine that can be restored
// with LoadState.
func (m *Machine) SaveState() ([]byte, error) {
	mem := m.Memory.Raw()
	frame := m.Display.Snapshot()
	s := machineState{
		Memory:      mem[:],
		V:           append([]byte(nil), m.CPU.V[:]...),
		I:           m.CPU.I,
		PC:          m.CPU.PC,
		Stack:       append([]uint16(nil), m.CPU.Entries[:]...),
		SP:          m.CPU.SP,
		DT:          m.CPU.DT,
		ST:          m.CPU.ST,
		Display:     frame.Bytes(),
		Keys:        m.Keypad.Mask(),
		Status:      uint8(m.Status()),
		WaitingKey:  m.CPU.WaitingForKey(),
		WaitReg:     m.CPU.WaitRegister(),
		Quirks:      packQuirks(m.quirks),
		LoadAddress: m.loadAddress,
		Program:     m.program,
	}

	// build compressed body
	var body bytes.Buffer
	gz := gzip.NewWriter(&body)
	if err := struc.PackWithOptions(gz, &s, stateOptions); err != nil {
		return nil, errors.Wrap(err, "pack state")
	}
	if err := gz.Close(); err != nil {
		return nil, errors.Wrap(err, "compress state")
	}
	data := body.Bytes()

	// write header
	var out bytes.Buffer
	h := stateHeader{
		Magic:   stateMagic,
		Version: stateVersion,
		CRC:     crc32.ChecksumIEEE(data),
		Length:  uint32(len(data)),
	}
	if err := struc.PackWithOptions(&out, &h, stateOptions); err != nil {
		return nil, errors.Wrap(err, "pack header")
	}
	out.Write(data)
	return out.Bytes(), nil
}

// LoadState restores a snapshot taken by SaveState. The machine is
// left untouched if the snapshot is invalid.
func (m *Machine) LoadState(b []byte) error {
	r := bytes.NewReader(b)
	var h stateHeader
	if err := struc.UnpackWithOptions(r, &h, stateOptions); err != nil {
		return errors.Wrap(ErrInvalidState, err.Error())
	}
	if h.Magic != stateMagic || h.Version != stateVersion {
		return errors.Wrapf(ErrInvalidState, "bad magic 0x%08X version %d", h.Magic, h.Version)
	}
	data := make([]byte, h.Length)
	if _, err := io.ReadFull(r, data); err != nil {
		return errors.Wrap(ErrInvalidState, "truncated")
	}
	if crc32.ChecksumIEEE(data) != h.CRC {
		return errors.Wrap(ErrInvalidState, "checksum mismatch")
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(ErrInvalidState, err.Error())
	}
	var s machineState
	if err := struc.UnpackWithOptions(gz, &s, stateOptions); err != nil {
		return errors.Wrap(ErrInvalidState, err.Error())
	}
	if int(s.SP) > types.StackDepth || emulator.Status(s.Status) > emulator.Halted || s.WaitReg > 0xF {
		return errors.Wrap(ErrInvalidState, "registers out of range")
	}
	if err := memory.Fits(len(s.Program), s.LoadAddress); err != nil {
		return errors.Wrap(ErrInvalidState, err.Error())
	}

	var mem [types.MemorySize]byte
	copy(mem[:], s.Memory)
	m.Memory.Load(mem)

	m.CPU.Reset(s.PC)
	copy(m.CPU.V[:], s.V)
	m.CPU.I = s.I
	copy(m.CPU.Entries[:], s.Stack)
	m.CPU.SP = s.SP
	m.CPU.DT, m.CPU.ST = s.DT, s.ST

	m.quirks = unpackQuirks(s.Quirks)
	m.CPU.Quirks = m.quirks
	m.Display.SetClip(m.quirks.ClipSprites)
	m.Display.Load(display.FrameFromBytes(s.Display))

	m.Keypad.Reset()
	m.Keypad.Load(s.Keys)
	if s.WaitingKey {
		m.CPU.RestoreWait(cpu.Register(s.WaitReg))
	}

	m.loadAddress = s.LoadAddress
	m.program = append([]byte(nil), s.Program...)
	m.Clock.Reset()
	m.carry = 0
	m.hasLast = false

	m.mu.Lock()
	m.status = emulator.Status(s.Status)
	m.err = nil
	m.sound = m.CPU.ST > 0
	m.mu.Unlock()
	return nil
}
