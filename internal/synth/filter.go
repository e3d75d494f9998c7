package synth

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// newVolume wraps s in a linear gain. math.Log2(0) is -Inf, so zero gain is
// expressed as a silent volume.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain), Silent: false}
}

// lowPass is a resonant two-pole low-pass biquad applied per channel
type lowPass struct {
	s                  beep.Streamer
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func newLowPass(s beep.Streamer, cutoff, q float64, rate beep.SampleRate) *lowPass {
	w0 := 2 * math.Pi * cutoff / float64(rate)
	alpha := math.Sin(w0) / (2 * q)
	cosw := math.Cos(w0)
	a0 := 1 + alpha

	return &lowPass{
		s:  s,
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *lowPass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := range samples[:n] {
		for c := 0; c < 2; c++ {
			x := samples[i][c]
			y := f.b0*x + f.b1*f.x1[c] + f.b2*f.x2[c] - f.a1*f.y1[c] - f.a2*f.y2[c]
			f.x2[c], f.x1[c] = f.x1[c], x
			f.y2[c], f.y1[c] = f.y1[c], y
			samples[i][c] = y
		}
	}
	return n, ok
}

func (f *lowPass) Err() error { return f.s.Err() }

// comb delays in seconds, mutually prime at common sample rates
var combDelays = [...]float64{0.0297, 0.0371, 0.0411, 0.0437}

const combFeedback = 0.77

// reverb mixes a bank of feedback combs into the dry signal
type reverb struct {
	s     beep.Streamer
	wet   float64
	lines [len(combDelays)][][2]float64
	idx   [len(combDelays)]int
}

func newReverb(s beep.Streamer, wet float64, rate beep.SampleRate) *reverb {
	r := &reverb{s: s, wet: clamp01(wet)}
	for i, d := range combDelays {
		n := rate.N(secondsToDuration(d))
		if n < 1 {
			n = 1
		}
		r.lines[i] = make([][2]float64, n)
	}
	return r
}

func (r *reverb) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.s.Stream(samples)
	for i := range samples[:n] {
		for c := 0; c < 2; c++ {
			dry := samples[i][c]
			var tail float64
			for k := range r.lines {
				line := r.lines[k]
				delayed := line[r.idx[k]][c]
				line[r.idx[k]][c] = dry + delayed*combFeedback
				tail += delayed
			}
			tail /= float64(len(r.lines))
			samples[i][c] = dry*(1-r.wet) + tail*r.wet
		}
		for k := range r.idx {
			r.idx[k] = (r.idx[k] + 1) % len(r.lines[k])
		}
	}
	return n, ok
}

func (r *reverb) Err() error { return r.s.Err() }
