package bits

import "testing"

func TestBits(t *testing.T) {
	if Val(uint8(0x81), 7) != 1 || Val(uint8(0x81), 0) != 1 || Val(uint8(0x81), 3) != 0 {
		t.Error("expected Val to extract bits 7 and 0 of 0x81")
	}

	var mask uint16
	mask = Set(mask, 15)
	mask = Set(mask, 5)
	if mask != 0x8020 {
		t.Errorf("expected mask to be 0x8020, got 0x%04X", mask)
	}
	if !Test(mask, 15) || Test(mask, 14) {
		t.Error("expected only bits 15 and 5 to be set")
	}
	if mask = Reset(mask, 15); mask != 0x0020 {
		t.Errorf("expected mask to be 0x0020, got 0x%04X", mask)
	}
}
