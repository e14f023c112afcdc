//go:build !test

// Package audio provides the beeper that plays while the sound timer
// is active.
package audio

import (
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	bufferSize = 1024
	// tone is the frequency of the beep in Hz.
	tone = 440
	// lead is how much audio is kept queued ahead of playback.
	lead = sampleRate / 15
)

// Beeper plays a square wave through an SDL audio device while the
// beep is on.
type Beeper struct {
	dev  sdl.AudioDeviceID
	wave []byte

	mu   sync.Mutex
	on   bool
	stop chan struct{}
	done chan struct{}
}

// Open opens the default audio device.
func Open() (*Beeper, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	dev, err := sdl.OpenAudioDevice("", false, &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  bufferSize,
	}, nil, 0)
	if err != nil {
		return nil, err
	}

	b := &Beeper{
		dev:  dev,
		wave: squareWave(tone, sampleRate, bufferSize, 24),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go b.fill()
	return b, nil
}

// Beep starts or stops the tone.
func (b *Beeper) Beep(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if on == b.on {
		return
	}
	b.on = on
	if !on {
		sdl.ClearQueuedAudio(b.dev)
	}
	sdl.PauseAudioDevice(b.dev, !on)
}

// fill keeps the device queue topped up while the beep is on.
func (b *Beeper) fill() {
	defer close(b.done)
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.mu.Lock()
			if b.on && sdl.GetQueuedAudioSize(b.dev) < lead {
				sdl.QueueAudio(b.dev, b.wave)
			}
			b.mu.Unlock()
		}
	}
}

// Close stops the tone and closes the device.
func (b *Beeper) Close() {
	close(b.stop)
	<-b.done
	b.Beep(false)
	sdl.CloseAudioDevice(b.dev)
}
