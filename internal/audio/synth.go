package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// note is one segment of an effect.
type note struct {
	freq   float64
	length time.Duration
	square bool
}

// recipes describe each effect as a note sequence.
var recipes = map[SoundFX][]note{
	SoundJump:     {{freq: 523, length: 40 * time.Millisecond}, {freq: 784, length: 60 * time.Millisecond}},
	SoundScore:    {{freq: 988, length: 80 * time.Millisecond}, {freq: 1319, length: 160 * time.Millisecond}},
	SoundHit:      {{freq: 140, length: 120 * time.Millisecond, square: true}},
	SoundGameOver: {{freq: 440, length: 120 * time.Millisecond}, {freq: 330, length: 120 * time.Millisecond}, {freq: 220, length: 240 * time.Millisecond, square: true}},
}

// Synthesize renders fx into a buffer at the given sample rate.
func Synthesize(fx SoundFX, rate beep.SampleRate) (*beep.Buffer, error) {
	notes, ok := recipes[fx]
	if !ok {
		return nil, fmt.Errorf("audio: no recipe for %s", fx)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		var src beep.Streamer
		if n.square {
			src = &squareWave{freq: n.freq, rate: rate}
		} else {
			tone, err := generators.SineTone(rate, n.freq)
			if err != nil {
				return nil, fmt.Errorf("audio: %s tone %gHz: %w", fx, n.freq, err)
			}
			src = tone
		}
		samples := rate.N(n.length)
		parts = append(parts, newEnvelope(beep.Take(samples, src), samples, rate.N(5*time.Millisecond)))
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(newVolume(beep.Seq(parts...), 0.5))
	return buf, nil
}

// squareWave is an endless square oscillator.
type squareWave struct {
	freq  float64
	rate  beep.SampleRate
	phase float64
}

func (o *squareWave) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		val := -1.0
		if o.phase < 0.5 {
			val = 1.0
		}
		samples[i][0] = val * 0.5
		samples[i][1] = val * 0.5
		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *squareWave) Err() error { return nil }

// envelope fades the first and last ramp samples of a finite stream to
// avoid clicks.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	ramp     int
}

func newEnvelope(s beep.Streamer, total, ramp int) beep.Streamer {
	if ramp*2 > total {
		ramp = total / 2
	}
	return &envelope{streamer: s, total: total, ramp: ramp}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.ramp > 0 {
			if e.pos < e.ramp {
				vol = float64(e.pos) / float64(e.ramp)
			} else if rem := e.total - e.pos; rem < e.ramp {
				vol = float64(rem) / float64(e.ramp)
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume applies a linear gain. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
