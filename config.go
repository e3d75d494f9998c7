package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/minikomi/keysynth/internal/envelope"
	"github.com/minikomi/keysynth/internal/keyboard"
	"github.com/minikomi/keysynth/internal/synth"
)

var (
	waveFlag     = flag.String("wave", "triangle", "Oscillator waveform: sine, square, sawtooth, triangle")
	volumeFlag   = flag.Int("volume", 20, "Master volume 0-100")
	octaveFlag   = flag.Int("octave", keyboard.DefaultOctave, "Starting octave of the home row")
	envelopeFlag = flag.String("envelope", "", "JSON file with peak, mid, end, attack, decay, sustain and release")
	cutoffFlag   = flag.Float64("cutoff", 0, "Low-pass cutoff in Hz, 0 to disable")
	reverbFlag   = flag.Float64("reverb", 0, "Reverb wet mix 0.0-1.0, 0 to disable")
	releaseFlag  = flag.Duration("release-delay", 2*time.Second, "Time a voice keeps sounding after key-up")
	midiOutFlag  = flag.Int("midi-out", -1, "MIDI output port to mirror notes to, -1 to disable")
	noAudioFlag  = flag.Bool("no-audio", false, "Disable the built-in synth")
	fontFlag     = flag.String("font", "", "TTF font for octave labels")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/keysynth.log")
)

// buildConfig layers flags that were set explicitly over the environment
// over the defaults.
func buildConfig() (*synth.Config, error) {
	cfg, err := synth.LoadConfig()
	if err != nil {
		return nil, err
	}

	var ferr error
	flag.Visit(func(f *flag.Flag) {
		if ferr != nil {
			return
		}
		switch f.Name {
		case "wave":
			cfg.Waveform, ferr = synth.ParseWaveform(*waveFlag)
		case "volume":
			if *volumeFlag < 0 || *volumeFlag > 100 {
				ferr = fmt.Errorf("volume %d outside 0-100", *volumeFlag)
			}
			cfg.MasterVolume = float64(*volumeFlag) / 100.0
		case "envelope":
			cfg.Envelope, ferr = loadEnvelope(*envelopeFlag)
		case "cutoff":
			cfg.Cutoff = *cutoffFlag
		case "reverb":
			cfg.Reverb = *reverbFlag
		case "release-delay":
			cfg.ReleaseDelay = *releaseFlag
		case "no-audio":
			cfg.Enabled = !*noAudioFlag
		}
	})
	if ferr != nil {
		return nil, ferr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvelope reads envelope parameters from a JSON file. Unknown keys and
// missing parameters are both errors.
func loadEnvelope(path string) (envelope.Params, error) {
	var p envelope.Params

	f, err := os.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
