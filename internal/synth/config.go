package synth

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/minikomi/keysynth/internal/envelope"
)

// Config holds the voice engine settings
type Config struct {
	Enabled      bool
	SampleRate   int
	BufferSize   time.Duration
	MasterVolume float64 // 0.0-1.0
	Waveform     Waveform
	Envelope     envelope.Params
	InitialGain  float64       // gain a voice starts from before its attack
	ReleaseDelay time.Duration // key-up to voice stop
	Cutoff       float64       // low-pass cutoff in Hz, 0 disables the filter
	Resonance    float64       // low-pass Q
	Reverb       float64       // wet mix 0.0-1.0, 0 disables the reverb
}

// DefaultConfig returns the settings of the original toy: a triangle wave
// through a 0.2 master gain, released two seconds after key-up.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		SampleRate:   48000,
		BufferSize:   50 * time.Millisecond,
		MasterVolume: 0.2,
		Waveform:     Triangle,
		Envelope:     envelope.Default(),
		InitialGain:  0.0001,
		ReleaseDelay: 2 * time.Second,
		Cutoff:       0,
		Resonance:    0.707,
		Reverb:       0,
	}
}

// LoadConfig applies KEYSYNTH_* environment variables to the defaults.
// Malformed scalars are ignored; a malformed envelope is an error.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if enabled := os.Getenv("KEYSYNTH_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv("KEYSYNTH_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("KEYSYNTH_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if wave := os.Getenv("KEYSYNTH_WAVEFORM"); wave != "" {
		if w, err := ParseWaveform(wave); err == nil {
			cfg.Waveform = w
		}
	}

	if env := os.Getenv("KEYSYNTH_ENVELOPE"); env != "" {
		var p envelope.Params
		if err := json.Unmarshal([]byte(env), &p); err != nil {
			return nil, fmt.Errorf("KEYSYNTH_ENVELOPE: %w", err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("KEYSYNTH_ENVELOPE: %w", err)
		}
		cfg.Envelope = p
	}

	return cfg, nil
}

// MaxReleaseDelay bounds the key-up to voice stop delay.
const MaxReleaseDelay = time.Hour

// Validate checks the settings an engine cannot run without.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.InitialGain <= 0 {
		return fmt.Errorf("initial gain must be positive, got %v", c.InitialGain)
	}
	if c.ReleaseDelay < 0 || c.ReleaseDelay > MaxReleaseDelay {
		return fmt.Errorf("release delay %v outside 0..%v", c.ReleaseDelay, MaxReleaseDelay)
	}
	if c.Cutoff < 0 || (c.Cutoff > 0 && c.Cutoff >= float64(c.SampleRate)/2) {
		return fmt.Errorf("cutoff %v Hz outside 0..%d", c.Cutoff, c.SampleRate/2)
	}
	if c.Cutoff > 0 && c.Resonance <= 0 {
		return fmt.Errorf("resonance must be positive, got %v", c.Resonance)
	}
	if err := c.Envelope.Validate(); err != nil {
		return err
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
