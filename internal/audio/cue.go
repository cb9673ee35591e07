// Package audio synthesizes the jump cue and plays it on the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Jump cue shape.
const (
	CueFrequency = 200.0
	CueDuration  = 300 * time.Millisecond
	CueStartGain = 0.3
	CueEndGain   = 0.01
)

// DefaultSampleRate is used when the configuration does not set one.
const DefaultSampleRate = beep.SampleRate(44100)

// jumpCue is a decaying sine tone. Gain falls exponentially from
// CueStartGain to CueEndGain over the length of the cue.
type jumpCue struct {
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

// NewJumpCue returns a fresh streamer for one jump cue at the given volume
// in [0, 1]. Every jump needs its own streamer.
func NewJumpCue(rate beep.SampleRate, volume float64) beep.Streamer {
	cue := &jumpCue{rate: rate, total: rate.N(CueDuration)}
	return withVolume(cue, volume)
}

func (c *jumpCue) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.total {
			return i, i > 0
		}
		val := cueGain(c.rate.D(c.position)) * math.Sin(2*math.Pi*c.phase)
		samples[i][0] = val
		samples[i][1] = val

		c.phase += CueFrequency / float64(c.rate)
		c.phase -= math.Floor(c.phase)
		c.position++
	}
	return len(samples), true
}

func (c *jumpCue) Err() error { return nil }

// cueGain returns the envelope value at offset d into the cue.
func cueGain(d time.Duration) float64 {
	progress := d.Seconds() / CueDuration.Seconds()
	return CueStartGain * math.Pow(CueEndGain/CueStartGain, progress)
}

// withVolume scales s linearly by vol. Log2 of zero is -Inf, so zero
// volume maps to a silenced stream.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
