package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/dinojump/internal/core"
)

// ErrUnavailable is returned when audio is disabled or no output device
// could be opened.
var ErrUnavailable = errors.New("audio: unavailable")

// bufferDuration is the speaker buffer length. Shorter buffers reduce the
// delay between a key press and the cue.
const bufferDuration = 50 * time.Millisecond

// Options configures a Player.
type Options struct {
	Enabled    bool
	Volume     float64 // Linear, clamped to [0, 1]
	SampleRate beep.SampleRate
}

// Player plays jump cues on the system speaker. The speaker is opened on
// the first cue; a failed open is remembered and never retried.
type Player struct {
	mu      sync.Mutex
	opts    Options
	ready   bool
	initErr error

	// Replaced in tests.
	initSpeaker func(rate beep.SampleRate, bufferSize int) error
	play        func(s beep.Streamer)
}

// NewPlayer creates a player. No device is touched until the first cue.
func NewPlayer(opts Options) *Player {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	opts.Volume = core.ClampF(opts.Volume, 0, 1)
	return &Player{
		opts:        opts,
		initSpeaker: speaker.Init,
		play:        func(s beep.Streamer) { speaker.Play(s) },
	}
}

// PlayJumpCue starts a jump cue and returns immediately.
func (p *Player) PlayJumpCue() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.opts.Enabled {
		return ErrUnavailable
	}
	if err := p.initLocked(); err != nil {
		return err
	}
	p.play(NewJumpCue(p.opts.SampleRate, p.opts.Volume))
	return nil
}

func (p *Player) initLocked() error {
	if p.ready {
		return nil
	}
	if p.initErr != nil {
		return p.initErr
	}
	rate := p.opts.SampleRate
	if err := p.initSpeaker(rate, rate.N(bufferDuration)); err != nil {
		p.initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
		return p.initErr
	}
	p.ready = true
	return nil
}

// Close stops playback and releases the device if it was opened.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}

// Silent is a cue that never makes a sound.
type Silent struct{}

// PlayJumpCue does nothing.
func (Silent) PlayJumpCue() error { return nil }
