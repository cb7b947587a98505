package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
)

const (
	humBaseFreq  = 90.0
	humRangeFreq = 140.0
	humAmplitude = 0.12
)

// HumGenerator is the motor drone. Its pitch glides toward a target set
// from another goroutine, so the stream never clicks on a sudden change.
type HumGenerator struct {
	sr     beep.SampleRate
	target atomic.Uint64 // math.Float64bits of the target frequency
	freq   float64
	phase  float64
}

func NewHumGenerator(sr beep.SampleRate) *HumGenerator {
	g := &HumGenerator{sr: sr, freq: humBaseFreq}
	g.SetThrottle(0)
	return g
}

// SetThrottle maps a throttle in [-1, 1] to the hum frequency. Descending
// sounds the same as hovering.
func (g *HumGenerator) SetThrottle(throttle float64) {
	g.target.Store(math.Float64bits(HumFrequency(throttle)))
}

func (g *HumGenerator) Target() float64 {
	return math.Float64frombits(g.target.Load())
}

func HumFrequency(throttle float64) float64 {
	t := math.Abs(throttle)
	if t > 1 {
		t = 1
	}
	if throttle < 0 {
		t *= 0.5
	}
	return humBaseFreq + humRangeFreq*t
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	target := g.Target()
	glide := 1 - math.Exp(-1/(0.05*float64(g.sr)))
	for i := range samples {
		g.freq += (target - g.freq) * glide
		g.phase += g.freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		// fundamental plus a rotor buzz harmonic
		s := math.Sin(2*math.Pi*g.phase) + 0.3*math.Sin(4*math.Pi*g.phase)
		s *= humAmplitude

		samples[i][0] = s
		samples[i][1] = s
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error {
	return nil
}

// ChirpGenerator sweeps from one frequency to another over its duration
// and then holds the end frequency. Wrap it in beep.Take to bound it.
type ChirpGenerator struct {
	sr       beep.SampleRate
	from, to float64
	samples  int
	pos      int
	phase    float64
}

func NewChirpGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *ChirpGenerator {
	return &ChirpGenerator{
		sr:      sr,
		from:    from,
		to:      to,
		samples: sr.N(d),
	}
}

// Connected rises, disconnected falls.
func NewConnectChirp(sr beep.SampleRate, connected bool) beep.Streamer {
	d := 180 * time.Millisecond
	if connected {
		return beep.Take(sr.N(d), NewChirpGenerator(sr, 440, 880, d))
	}
	return beep.Take(sr.N(d), NewChirpGenerator(sr, 660, 220, d))
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := 1.0
		if g.samples > 0 && g.pos < g.samples {
			p = float64(g.pos) / float64(g.samples)
		}
		freq := g.from + (g.to-g.from)*p

		// short attack, then linear fade
		envelope := math.Min(float64(g.pos)/float64(g.sr)/0.005, 1) * (1 - p)

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		s := 0.3 * envelope * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}
