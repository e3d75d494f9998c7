package main

import (
	"log"
	"unicode"

	"github.com/minikomi/keysynth/internal/keyboard"
	"github.com/minikomi/keysynth/internal/layout"
	"github.com/minikomi/keysynth/internal/note"
	"github.com/veandco/go-sdl2/sdl"
)

const mouseID = "mouse"

// keyboy is the interactive state: the computer keyboard plus the key held
// down with the mouse, if any.
type keyboy struct {
	kb    *keyboard.Keyboard
	pl    *player
	mouse *note.Pitch
}

func keyID(r rune) string {
	return "key:" + string(r)
}

// SDL keycodes for printable keys are their characters
func keyRune(kc sdl.Keycode) rune {
	return unicode.ToLower(rune(kc))
}

func logKeyEvent(ev *sdl.KeyboardEvent) {
	log.Printf("[%d ms] Keyboard\ttype:%d\tsym:%c\tmodifiers:%d\tstate:%d\trepeat:%d",
		ev.Timestamp, ev.Type, ev.Keysym.Sym, ev.Keysym.Mod, ev.State, ev.Repeat)
}

// HandleKeyEvent plays, releases or runs the command bound to the key. It
// reports whether anything visible changed.
func (k *keyboy) HandleKeyEvent(ev *sdl.KeyboardEvent) bool {
	r := keyRune(ev.Keysym.Sym)

	switch {
	// first keydown = ev.State = 1, ev.Repeat = 0
	case ev.State == sdl.PRESSED && ev.Repeat == 0:
		if k.kb.Command(r) {
			log.Printf("octave %d", k.kb.Octave)
			return true
		}
		if p, ok := k.kb.Press(r); ok {
			k.pl.noteOn(keyID(r), p)
			return true
		}
		logKeyEvent(ev)
	case ev.State == sdl.RELEASED:
		if p, ok := k.kb.Release(r); ok {
			k.pl.noteOff(keyID(r), p)
			return true
		}
	}
	return false
}

// HandleMouseEvent plays the clicked key until the button is released, and
// moves the home row when an octave label is clicked.
func (k *keyboy) HandleMouseEvent(ev *sdl.MouseButtonEvent) bool {
	if ev.Button != sdl.BUTTON_LEFT {
		return false
	}

	switch ev.State {
	case sdl.PRESSED:
		if o, ok := layout.OctaveAt(ev.X, ev.Y); ok {
			k.kb.SetOctave(o)
			log.Printf("octave %d", k.kb.Octave)
			return true
		}
		p, ok := layout.PitchAt(ev.X, ev.Y)
		if !ok || k.mouse != nil {
			return false
		}
		k.mouse = &p
		k.pl.noteOn(mouseID, p)
		return true
	case sdl.RELEASED:
		if k.mouse == nil {
			return false
		}
		k.pl.noteOff(mouseID, *k.mouse)
		k.mouse = nil
		return true
	}
	return false
}

// releaseAll lets go of every held key, for when the window loses focus.
func (k *keyboy) releaseAll() {
	for r := range k.kb.Active {
		if p, ok := k.kb.Release(r); ok {
			k.pl.noteOff(keyID(r), p)
		}
	}
	if k.mouse != nil {
		k.pl.noteOff(mouseID, *k.mouse)
		k.mouse = nil
	}
}

func (k *keyboy) pressed(p note.Pitch) bool {
	return k.kb.IsHeld(p) || (k.mouse != nil && *k.mouse == p)
}
