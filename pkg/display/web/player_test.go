package web

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/gochip8/internal/display"
)

func frameWith(lit ...[2]int) []byte {
	var f display.Frame
	for _, p := range lit {
		f[p[1]][p[0]] = true
	}
	return f.RGB(display.On, display.Off)
}

func TestCache(t *testing.T) {
	c := newCache(2)
	if c.index(0) != -1 {
		t.Error("expected empty entries to never match")
	}
	if i := c.add(1, []byte{1}); i != 0 {
		t.Errorf("expected index 0, got %d", i)
	}
	c.add(2, []byte{2})
	c.add(3, []byte{3})
	if c.index(1) != -1 {
		t.Error("expected the oldest entry to be evicted")
	}
	if c.index(3) != 0 || c.index(2) != 1 {
		t.Errorf("expected 3 at 0 and 2 at 1, got %d and %d", c.index(3), c.index(2))
	}
}

func TestPlayer_Encode(t *testing.T) {
	s := defaultSettings
	s.compression = false
	p := newPlayer()

	// the first frame only lights one pixel, so it is a patch
	msgs, err := p.encode(frameWith([2]int{1, 0}), s)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0][0] != FramePatch {
		t.Fatalf("expected a single patch, got %v", msgs)
	}
	patch := msgs[0][3:]
	if len(patch) != frameSize {
		t.Fatalf("expected a %d byte patch, got %d", frameSize, len(patch))
	}
	if !bytes.Equal(patch[4:8], []byte{0xFF, 0xFF, 0xFF, 0xFF}) || patch[3] != 0 {
		t.Errorf("expected only pixel 1 to be opaque, got % x", patch[:8])
	}

	// unchanged frames are skipped
	for i := 0; i < 3; i++ {
		if msgs, _ := p.encode(frameWith([2]int{1, 0}), s); msgs != nil {
			t.Fatalf("expected an unchanged frame to be skipped, got %v", msgs)
		}
	}

	// the skip count is flushed before the next change
	msgs, _ = p.encode(frameWith(), s)
	if len(msgs) != 2 || msgs[0][0] != FrameSkip {
		t.Fatalf("expected a skip and a patch, got %d messages", len(msgs))
	}
	if n := binary.LittleEndian.Uint32(msgs[0][1:]); n != 3 {
		t.Errorf("expected 3 skipped frames, got %d", n)
	}

	// the same change again is served from the patch cache
	p.encode(frameWith([2]int{1, 0}), s)
	msgs, _ = p.encode(frameWith(), s)
	if len(msgs) != 1 || msgs[0][0] != PatchCache {
		t.Fatalf("expected a patch cache hit, got %v", msgs)
	}
	if idx := binary.LittleEndian.Uint16(msgs[0][1:]); idx != 1 {
		t.Errorf("expected cache index 1, got %d", idx)
	}
}

func TestPlayer_FullFrame(t *testing.T) {
	s := defaultSettings
	s.compression = false
	s.frameSkipping = false
	p := newPlayer()

	var f display.Frame
	for y := range f {
		for x := range f[y] {
			f[y][x] = true
		}
	}
	msgs, err := p.encode(f.RGB(display.On, display.Off), s)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0][0] != Frame {
		t.Fatalf("expected a full frame, got %v", msgs)
	}

	msgs, _ = p.encode(f.RGB(display.On, display.Off), s)
	if len(msgs) != 1 || msgs[0][0] != PatchCache && msgs[0][0] != FramePatch {
		t.Fatalf("expected an empty patch without frame skipping, got %v", msgs)
	}
}

func TestPlayer_Compression(t *testing.T) {
	s := defaultSettings
	s.framePatching = false
	p := newPlayer()

	msgs, err := p.encode(frameWith([2]int{0, 0}), s)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0][0] != Frame {
		t.Fatalf("expected a full frame, got %v", msgs)
	}
	decoded, err := cbrotli.Decode(msgs[0][3:])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, p.current) {
		t.Error("expected the decoded frame to match the current frame")
	}

	sync, err := p.sync()
	if err != nil {
		t.Fatal(err)
	}
	if sync[0] != FrameSync {
		t.Fatalf("expected a frame sync, got %d", sync[0])
	}
	if p.frameCache.index(0) != -1 {
		t.Error("expected sync to reset the caches")
	}
}
