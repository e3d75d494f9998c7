// Package synth renders pressed notes as enveloped oscillator voices through a
// gain, low-pass and reverb chain.
package synth

import (
	"fmt"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/minikomi/keysynth/internal/envelope"
)

// Engine mixes voices on its own sample clock. It is a beep.Streamer and is
// safe to drive from a UI goroutine while the speaker pulls samples.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	rate   beep.SampleRate
	clock  int // frames rendered so far
	mixer  *beep.Mixer
	master beep.Streamer
	held   map[string]*Voice
	voices []*Voice
}

// NewEngine builds an engine from cfg. The envelope is validated here so
// that a bad configuration fails before any key is pressed.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("synth config: %w", err)
	}

	rate := beep.SampleRate(cfg.SampleRate)
	e := &Engine{
		cfg:   *cfg,
		rate:  rate,
		mixer: &beep.Mixer{},
		held:  make(map[string]*Voice),
	}

	var chain beep.Streamer = newVolume(e.mixer, cfg.MasterVolume)
	if cfg.Cutoff > 0 {
		chain = newLowPass(chain, cfg.Cutoff, cfg.Resonance, rate)
	}
	if cfg.Reverb > 0 {
		chain = newReverb(chain, cfg.Reverb, rate)
	}
	e.master = chain

	return e, nil
}

// SampleRate returns the engine's sample rate.
func (e *Engine) SampleRate() beep.SampleRate {
	return e.rate
}

// Now returns the engine clock, the time of the next frame to be rendered.
func (e *Engine) Now() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate.D(e.clock)
}

// Press starts a voice at freq under id. It returns false if id is already
// held or freq is not a usable frequency, including one at or above half the
// sample rate.
func (e *Engine) Press(id string, freq float64) bool {
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.held[id]; ok {
		return false
	}

	now := e.rate.D(e.clock)
	gain := envelope.NewAutomation(e.cfg.InitialGain)
	gain.SetValueAtTime(e.cfg.InitialGain, now)
	if _, err := e.cfg.Envelope.Apply(gain, now); err != nil {
		log.Printf("synth: envelope for %s: %v", id, err)
		return false
	}

	v, err := newVoice(freq, e.cfg.Waveform, gain, e.rate, e.clock)
	if err != nil {
		log.Printf("synth: voice for %s: %v", id, err)
		return false
	}
	e.held[id] = v
	e.voices = append(e.voices, v)
	e.mixer.Add(v)
	return true
}

// Release lets go of id. Its voice keeps sounding for the release delay and
// is then stopped. The stop belongs to that voice alone, so pressing id again
// in the meantime starts an independent voice.
func (e *Engine) Release(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.held[id]
	if !ok {
		return false
	}
	delete(e.held, id)
	v.StopAt(e.clock + e.rate.N(e.cfg.ReleaseDelay))
	return true
}

// ReleaseAll releases every held id.
func (e *Engine) ReleaseAll() {
	for _, id := range e.Held() {
		e.Release(id)
	}
}

// Held returns the held ids in sorted order.
func (e *Engine) Held() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.held))
	for id := range e.held {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Active returns the number of voices still sounding, held or releasing.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voices)
}

func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, _ = e.master.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	e.clock += len(samples)

	live := e.voices[:0]
	for _, v := range e.voices {
		if !v.Done() {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(e.voices); i++ {
		e.voices[i] = nil
	}
	e.voices = live

	return len(samples), true
}

func (e *Engine) Err() error { return nil }

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
