package synth

import (
	"fmt"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Waveform defines oscillator wave shapes
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

var waveformNames = [...]string{"sine", "square", "sawtooth", "triangle"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform accepts the names used by String, plus "saw" and "tri".
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	case "triangle", "tri":
		return Triangle, nil
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

// NewOscillator returns an endless tone at freq with values in [-1, 1].
// freq must be below half the sample rate.
func NewOscillator(freq float64, wave Waveform, rate beep.SampleRate) (beep.Streamer, error) {
	switch wave {
	case Sine:
		return generators.SineTone(rate, freq)
	case Square:
		return generators.SquareTone(rate, freq)
	case Sawtooth:
		return generators.SawtoothTone(rate, freq)
	case Triangle:
		tri, err := generators.TriangleTone(rate, freq)
		if err != nil {
			return nil, err
		}
		return bipolar(tri), nil
	}
	return nil, fmt.Errorf("unknown waveform %v", wave)
}

// bipolar maps a [0, 1] tone onto [-1, 1]. beep's triangle peaks at 1 and
// bottoms out at 0.
func bipolar(s beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		n, ok = s.Stream(samples)
		for i := range samples[:n] {
			samples[i][0] = 2*samples[i][0] - 1
			samples[i][1] = 2*samples[i][1] - 1
		}
		return n, ok
	})
}
