package keypad

import "testing"

func TestState_PressRelease(t *testing.T) {
	s := New()
	s.Press(0x5)
	s.Press(0xF)
	s.Press(0x10) // ignored

	if !s.IsPressed(0x5) || !s.IsPressed(0xF) || s.IsPressed(0x0) {
		t.Errorf("expected keys 5 and F to be held, got mask 0x%04X", s.Mask())
	}
	if k, ok := s.Held(); !ok || k != 0x5 {
		t.Errorf("expected key 5 to be the lowest held key, got %X (%v)", k, ok)
	}

	s.Release(0x5)
	if s.IsPressed(0x5) {
		t.Error("expected key 5 to be released")
	}

	s.Clear()
	if s.Mask() != 0 {
		t.Errorf("expected no keys held, got mask 0x%04X", s.Mask())
	}
}

func TestState_Wait(t *testing.T) {
	s := New()
	s.Press(0x3) // held before the wait begins
	s.BeginWait(false)

	if _, ok := s.Poll(); ok {
		t.Fatal("expected wait to be pending")
	}
	s.Press(0x3) // still held, not a transition
	if _, ok := s.Poll(); ok {
		t.Fatal("expected held key not to complete the wait")
	}

	s.Press(0x5)
	k, ok := s.Poll()
	if !ok || k != 0x5 {
		t.Fatalf("expected key 5 to complete the wait, got %X (%v)", k, ok)
	}
	if s.Waiting() {
		t.Error("expected wait to be disarmed after polling")
	}
}

func TestState_WaitForRelease(t *testing.T) {
	s := New()
	s.BeginWait(true)

	s.Press(0xA)
	if _, ok := s.Poll(); ok {
		t.Fatal("expected wait to be pending until release")
	}
	s.Press(0xB)
	s.Release(0xB) // not the first key pressed
	if _, ok := s.Poll(); ok {
		t.Fatal("expected only the first key's release to complete the wait")
	}
	s.Release(0xA)
	if k, ok := s.Poll(); !ok || k != 0xA {
		t.Errorf("expected key A to complete the wait, got %X (%v)", k, ok)
	}
}

func TestState_ClearKeepsWait(t *testing.T) {
	s := New()
	s.Press(0x2)
	s.BeginWait(false)
	s.Clear()

	if !s.Waiting() {
		t.Fatal("expected the wait to stay armed after clear")
	}
	s.Press(0x7)
	if k, ok := s.Poll(); !ok || k != 0x7 {
		t.Errorf("expected key 7 to complete the wait, got %X (%v)", k, ok)
	}
}

func TestState_Reset(t *testing.T) {
	s := New()
	s.BeginWait(false)
	s.Press(0x4)
	s.Reset()

	if s.Waiting() {
		t.Error("expected reset to cancel the wait")
	}
	if s.Mask() != 0 {
		t.Errorf("expected no keys held, got mask 0x%04X", s.Mask())
	}
	if _, ok := s.Poll(); ok {
		t.Error("expected no key after reset")
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{"5", 5, false},
		{"f", 0xF, false},
		{"0xA", 0xA, false},
		{"10", 0, true},
		{"z", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: expected error %v, got %v", tt.in, tt.wantErr, err)
		}
		if got != tt.want {
			t.Errorf("%q: expected %X, got %X", tt.in, tt.want, got)
		}
	}
}
