package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/story-knights/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a tone of the given length
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a stream linearly to silence over its length
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func newDecay(s beep.Streamer, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, total: max(rate.N(duration), 1)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume applies a linear gain, zero is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newDecay(NewOscillator(freq, d, wave, rate), d, rate)
}

// Streamer builds the sound for a cue, nil for CueNone
func (c Cue) Streamer(rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueSwing:
		s = tone(parameter.AudioHitFreq/2, parameter.AudioCueDuration/2, WaveSaw, rate)
	case CueHit:
		s = tone(parameter.AudioHitFreq, parameter.AudioCueDuration, WaveSquare, rate)
	case CueBlock:
		s = tone(parameter.AudioBlockFreq, parameter.AudioCueDuration, WaveSine, rate)
	case CueKill:
		s = beep.Seq(
			tone(parameter.AudioKillFreq*2, parameter.AudioCueDuration, WaveSaw, rate),
			tone(parameter.AudioKillFreq, parameter.AudioKillDuration, WaveSaw, rate),
		)
	case CueVictory:
		s = beep.Seq(
			tone(523.25, parameter.AudioCueDuration*2, WaveSine, rate),
			tone(659.25, parameter.AudioCueDuration*2, WaveSine, rate),
			tone(783.99, parameter.AudioKillDuration, WaveSine, rate),
		)
	case CueDefeat:
		s = beep.Seq(
			tone(392.00, parameter.AudioCueDuration*2, WaveSine, rate),
			tone(261.63, parameter.AudioKillDuration, WaveSine, rate),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}
