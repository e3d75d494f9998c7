package synth

import (
	"math"
	"testing"
	"time"

	"github.com/minikomi/keysynth/internal/envelope"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.SampleRate = 8000
	cfg.MasterVolume = 1.0
	return cfg
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// render pulls d worth of frames and returns the peak absolute amplitude
func render(e *Engine, d time.Duration) float64 {
	buf := make([][2]float64, e.SampleRate().N(d))
	e.Stream(buf)
	peak := 0.0
	for _, s := range buf {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	return peak
}

func TestEngineSilentWhenIdle(t *testing.T) {
	e := newTestEngine(t, testConfig())

	if peak := render(e, 100*time.Millisecond); peak != 0 {
		t.Errorf("Expected silence, got peak %v", peak)
	}
	if e.Now() != 100*time.Millisecond {
		t.Errorf("Expected clock at 100ms, got %v", e.Now())
	}
}

func TestEnginePressPlaysEnvelope(t *testing.T) {
	e := newTestEngine(t, testConfig())

	if !e.Press("A", 440) {
		t.Fatal("Expected press to start a voice")
	}

	// attack to 0.1 over 10ms
	attack := render(e, 20*time.Millisecond)
	if attack < 0.05 || attack > 0.1+1e-9 {
		t.Errorf("Expected attack peak near 0.1, got %v", attack)
	}

	render(e, 2*time.Second)
	tail := render(e, 100*time.Millisecond)
	if tail > 0.0001 {
		t.Errorf("Expected released level below 0.0001 after 2s, got %v", tail)
	}
	if e.Active() != 1 {
		t.Errorf("Expected held voice to stay active, got %d", e.Active())
	}
}

func TestEngineIgnoresRepeatPress(t *testing.T) {
	e := newTestEngine(t, testConfig())

	if !e.Press("A", 440) {
		t.Fatal("Expected first press to succeed")
	}
	if e.Press("A", 440) {
		t.Error("Expected repeat press of a held key to be ignored")
	}
	if e.Active() != 1 {
		t.Errorf("Expected 1 voice, got %d", e.Active())
	}
}

func TestEngineRejectsBadFrequency(t *testing.T) {
	e := newTestEngine(t, testConfig())

	// 4kHz is half the 8kHz test rate
	for _, f := range []float64{0, -440, math.NaN(), math.Inf(1), 4000} {
		if e.Press("X", f) {
			t.Errorf("Expected press at %v Hz to be rejected", f)
		}
	}
	if len(e.Held()) != 0 {
		t.Errorf("Expected nothing held, got %v", e.Held())
	}
}

func TestEngineReleaseStopsAfterDelay(t *testing.T) {
	cfg := testConfig()
	cfg.ReleaseDelay = 500 * time.Millisecond
	e := newTestEngine(t, cfg)

	e.Press("A", 440)
	render(e, 10*time.Millisecond)

	if !e.Release("A") {
		t.Fatal("Expected release of held key")
	}
	if e.Release("A") {
		t.Error("Expected second release to be ignored")
	}

	render(e, 400*time.Millisecond)
	if e.Active() != 1 {
		t.Errorf("Expected voice to sound during the release delay, got %d", e.Active())
	}

	render(e, 200*time.Millisecond)
	if e.Active() != 0 {
		t.Errorf("Expected voice stopped after the release delay, got %d", e.Active())
	}
	if peak := render(e, 50*time.Millisecond); peak != 0 {
		t.Errorf("Expected silence after stop, got %v", peak)
	}
}

func TestEngineRepressSurvivesEarlierRelease(t *testing.T) {
	cfg := testConfig()
	cfg.ReleaseDelay = 300 * time.Millisecond
	cfg.Envelope = envelope.New(0.5, 0.5, 0.5, 0, 0, 10, 0)
	e := newTestEngine(t, cfg)

	e.Press("A", 440)
	render(e, 50*time.Millisecond)
	e.Release("A")
	render(e, 100*time.Millisecond)

	if !e.Press("A", 440) {
		t.Fatal("Expected re-press during release delay to start a new voice")
	}
	if e.Active() != 2 {
		t.Errorf("Expected releasing and new voice, got %d", e.Active())
	}

	// past the first voice's stop
	render(e, 400*time.Millisecond)
	if e.Active() != 1 {
		t.Errorf("Expected only the re-pressed voice left, got %d", e.Active())
	}
	if peak := render(e, 50*time.Millisecond); peak < 0.4 {
		t.Errorf("Expected re-pressed voice still sounding, got peak %v", peak)
	}
	if held := e.Held(); len(held) != 1 || held[0] != "A" {
		t.Errorf("Expected A held, got %v", held)
	}
}

func TestEngineMasterVolume(t *testing.T) {
	cfg := testConfig()
	cfg.Waveform = Square
	cfg.Envelope = envelope.New(1, 1, 1, 0, 0, 10, 0)

	cfg.MasterVolume = 0.2
	quiet := newTestEngine(t, cfg)
	quiet.Press("A", 100)
	if peak := render(quiet, 50*time.Millisecond); math.Abs(peak-0.2) > 1e-9 {
		t.Errorf("Expected peak 0.2, got %v", peak)
	}

	cfg.MasterVolume = 0
	muted := newTestEngine(t, cfg)
	muted.Press("A", 100)
	if peak := render(muted, 50*time.Millisecond); peak != 0 {
		t.Errorf("Expected silence at zero volume, got %v", peak)
	}
}

func TestEngineReleaseAll(t *testing.T) {
	cfg := testConfig()
	cfg.ReleaseDelay = 0
	e := newTestEngine(t, cfg)

	e.Press("A", 440)
	e.Press("S", 494)
	e.Press("D", 523)
	if held := e.Held(); len(held) != 3 || held[0] != "A" || held[2] != "S" {
		t.Errorf("Expected sorted [A D S], got %v", held)
	}

	e.ReleaseAll()
	render(e, 10*time.Millisecond)
	if e.Active() != 0 || len(e.Held()) != 0 {
		t.Errorf("Expected everything stopped, got %d active, %v held", e.Active(), e.Held())
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing envelope field", func(c *Config) { c.Envelope.Decay = nil }},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"cutoff above nyquist", func(c *Config) { c.Cutoff = float64(c.SampleRate) }},
		{"negative release delay", func(c *Config) { c.ReleaseDelay = -time.Second }},
		{"huge release delay", func(c *Config) { c.ReleaseDelay = time.Duration(math.MaxInt64) }},
		{"envelope longer than a duration", func(c *Config) { c.Envelope = envelope.New(0.1, 0.01, 0.001, 5e9, 5e9, 0, 0) }},
		{"zero initial gain", func(c *Config) { c.InitialGain = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			if _, err := NewEngine(cfg); err == nil {
				t.Error("Expected NewEngine to fail")
			}
		})
	}
}

func TestEngineWithFilterAndReverb(t *testing.T) {
	cfg := testConfig()
	cfg.Cutoff = 1000
	cfg.Reverb = 0.3
	e := newTestEngine(t, cfg)

	e.Press("A", 440)
	if peak := render(e, 100*time.Millisecond); peak == 0 || math.IsNaN(peak) {
		t.Errorf("Expected finite non-zero output, got %v", peak)
	}
}

func TestEngineReleaseAtMaxDelay(t *testing.T) {
	cfg := testConfig()
	cfg.ReleaseDelay = MaxReleaseDelay
	e := newTestEngine(t, cfg)

	e.Press("A", 440)
	e.Release("A")
	render(e, time.Second)
	if e.Active() != 1 {
		t.Errorf("Expected voice still releasing, got %d active", e.Active())
	}
}
