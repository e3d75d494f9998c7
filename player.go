package main

import (
	"log"

	"github.com/minikomi/keysynth/internal/midiout"
	"github.com/minikomi/keysynth/internal/note"
	"github.com/minikomi/keysynth/internal/synth"
)

// player sends every press and release to the synth and the MIDI mirror,
// whichever are enabled.
type player struct {
	engine *synth.Engine
	mirror *midiout.Mirror
}

func (pl *player) noteOn(id string, p note.Pitch) {
	log.Printf("pressed %s %v (%.2f Hz)", id, p, p.Frequency())
	if pl.engine != nil {
		pl.engine.Press(id, p.Frequency())
	}
	// the mouse and a key can hold the same pitch
	if pl.mirror != nil && !pl.mirror.Running(p) {
		if err := pl.mirror.NoteOn(p); err != nil {
			log.Printf("midi: %v", err)
		}
	}
}

func (pl *player) noteOff(id string, p note.Pitch) {
	log.Printf("released %s %v", id, p)
	if pl.engine != nil {
		pl.engine.Release(id)
	}
	if pl.mirror != nil && pl.mirror.Running(p) {
		if err := pl.mirror.NoteOff(p); err != nil {
			log.Printf("midi: %v", err)
		}
	}
}

func (pl *player) close() {
	if pl.mirror != nil {
		if err := pl.mirror.AllOff(); err != nil {
			log.Printf("midi: %v", err)
		}
	}
}
