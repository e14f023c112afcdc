package cpu

import (
	"testing"

	"github.com/thelolagemann/gochip8/internal/disasm"
)

func TestInstruction_Logic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   uint8
	}{
		{"OR", disasm.OR(0x1, 0x2), 0b1110},
		{"AND", disasm.AND(0x1, 0x2), 0b1000},
		{"XOR", disasm.XOR(0x1, 0x2), 0b0110},
	}
	for _, tt := range tests {
		for _, resetVF := range []bool{true, false} {
			c := newTestCPU(t, tt.opcode)
			c.Quirks.ResetVF = resetVF
			c.V[0x1], c.V[0x2], c.V[VF] = 0b1100, 0b1010, 0x55
			steps(t, c, 1)

			if c.V[0x1] != tt.want {
				t.Errorf("%s: expected V1 to be %04b, got %04b", tt.name, tt.want, c.V[0x1])
			}
			wantFlag := uint8(0x55)
			if resetVF {
				wantFlag = 0
			}
			if c.V[VF] != wantFlag {
				t.Errorf("%s (reset VF %v): expected VF to be 0x%02X, got 0x%02X", tt.name, resetVF, wantFlag, c.V[VF])
			}
		}
	}
}
