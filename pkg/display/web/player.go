package web

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/gochip8/internal/display"
)

const (
	pixels    = display.Width * display.Height
	frameSize = pixels * 4
	cacheSize = 64
)

// settings control how frames are encoded for clients.
type settings struct {
	compression      bool
	compressionLevel int
	framePatching    bool
	// framePatchRatio is the share of the frame, in tenths, that may
	// change before a full frame is sent instead of a patch.
	framePatchRatio int
	frameSkipping   bool
}

var defaultSettings = settings{
	compression:      true,
	compressionLevel: 7,
	framePatching:    true,
	framePatchRatio:  5,
	frameSkipping:    true,
}

// player turns the RGB frames of a machine into messages for
// clients, tracking the frame they currently show.
type player struct {
	current []byte
	dirty   []byte

	patchCache, frameCache *cache
	skipped                int
}

func newPlayer() *player {
	p := &player{
		current:    make([]byte, frameSize),
		dirty:      make([]byte, frameSize),
		patchCache: newCache(cacheSize),
		frameCache: newCache(cacheSize),
	}
	for i := 3; i < frameSize; i += 4 {
		p.current[i] = 0xFF
	}
	return p
}

// encode updates the current frame from rgb and returns the messages
// that bring clients up to date. It returns no messages when frame
// skipping is on and nothing changed.
func (p *player) encode(rgb []byte, s settings) ([][]byte, error) {
	for i := range p.dirty {
		p.dirty[i] = 0
	}
	dirtied := 0
	for i := 0; i < pixels && i*3+2 < len(rgb); i++ {
		r, g, b := rgb[i*3], rgb[i*3+1], rgb[i*3+2]
		if p.current[i*4] != r || p.current[i*4+1] != g || p.current[i*4+2] != b {
			p.dirty[i*4], p.dirty[i*4+1], p.dirty[i*4+2], p.dirty[i*4+3] = r, g, b, 0xFF
			dirtied++
		}
		p.current[i*4], p.current[i*4+1], p.current[i*4+2] = r, g, b
	}

	if dirtied == 0 && s.frameSkipping {
		p.skipped++
		return nil, nil
	}

	var msgs [][]byte
	if p.skipped > 0 && s.frameSkipping {
		skip := make([]byte, 4)
		binary.LittleEndian.PutUint32(skip, uint32(p.skipped))
		msgs = append(msgs, append([]byte{FrameSkip}, skip...))
		p.skipped = 0
	}

	t, buffer, c := Frame, p.current, p.frameCache
	if s.framePatching && dirtied*10 < s.framePatchRatio*pixels {
		t, buffer, c = FramePatch, p.dirty, p.patchCache
	}

	output := append([]byte(nil), buffer...)
	if s.compression {
		var err error
		output, err = cbrotli.Encode(buffer, cbrotli.WriterOptions{Quality: s.compressionLevel})
		if err != nil {
			return msgs, err
		}
	}

	idx := make([]byte, 2)
	hash := xxhash.Sum64(output)
	if i := c.index(hash); i != -1 {
		binary.LittleEndian.PutUint16(idx, uint16(i))
		if t == Frame {
			return append(msgs, append([]byte{FrameCache}, idx...)), nil
		}
		return append(msgs, append([]byte{PatchCache}, idx...)), nil
	}

	binary.LittleEndian.PutUint16(idx, uint16(c.add(hash, output)))
	return append(msgs, append(append([]byte{t}, idx...), output...)), nil
}

// sync returns the message that gives a newly connected client the
// current frame. The caches are not replayed; both are reset instead,
// so every entry referred to afterwards has been broadcast to all
// clients.
func (p *player) sync() ([]byte, error) {
	frame, err := cbrotli.Encode(p.current, cbrotli.WriterOptions{Quality: 9})
	if err != nil {
		return nil, err
	}
	p.patchCache = newCache(cacheSize)
	p.frameCache = newCache(cacheSize)
	return append([]byte{FrameSync}, frame...), nil
}
