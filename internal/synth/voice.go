package synth

import (
	"github.com/gopxl/beep"
	"github.com/minikomi/keysynth/internal/envelope"
)

// Voice is one sounding oscillator shaped by a gain timeline. Positions are
// absolute frames on the engine's clock.
type Voice struct {
	osc    beep.Streamer
	freq   float64
	gain   *envelope.Automation
	rate   beep.SampleRate
	pos    int
	stopAt int // -1 until stopped
	done   bool
}

func newVoice(freq float64, wave Waveform, gain *envelope.Automation, rate beep.SampleRate, start int) (*Voice, error) {
	osc, err := NewOscillator(freq, wave, rate)
	if err != nil {
		return nil, err
	}
	return &Voice{
		osc:    osc,
		freq:   freq,
		gain:   gain,
		rate:   rate,
		pos:    start,
		stopAt: -1,
	}, nil
}

// Frequency returns the oscillator frequency in Hz.
func (v *Voice) Frequency() float64 {
	return v.freq
}

// StopAt ends the voice at the given frame. An earlier stop wins.
func (v *Voice) StopAt(frame int) {
	if frame < 0 {
		frame = 0
	}
	if v.stopAt >= 0 && v.stopAt <= frame {
		return
	}
	v.stopAt = frame
}

// Done reports whether the voice has reached its stop frame.
func (v *Voice) Done() bool {
	return v.done
}

func (v *Voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.done {
		return 0, false
	}

	n = len(samples)
	if v.stopAt >= 0 && v.pos+n >= v.stopAt {
		n = max(v.stopAt-v.pos, 0)
		v.done = true
	}

	n, _ = v.osc.Stream(samples[:n])
	for i := range samples[:n] {
		g := v.gain.ValueAt(v.rate.D(v.pos))
		samples[i][0] *= g
		samples[i][1] *= g
		v.pos++
	}
	return n, n > 0
}

func (v *Voice) Err() error { return nil }
