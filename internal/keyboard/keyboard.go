// Package keyboard maps computer keys onto a piano layout and tracks which
// keys are held.
package keyboard

import (
	"github.com/minikomi/keysynth/internal/note"
)

// Octave range the home row can be shifted across. The upper keys reach one
// octave further.
const (
	MinOctave     = 1
	MaxOctave     = 7
	DefaultOctave = 5
)

// Binding is the note a key plays relative to the current octave.
type Binding struct {
	Name   note.Name
	Octave int // added to the current octave
}

// Layout maps home-row and upper-row keys onto one and a bit octaves.
var Layout = map[rune]Binding{
	'a': {note.C, 0},
	'w': {note.CSharp, 0},
	's': {note.D, 0},
	'e': {note.DSharp, 0},
	'd': {note.E, 0},
	'f': {note.F, 0},
	't': {note.FSharp, 0},
	'g': {note.G, 0},
	'y': {note.GSharp, 0},
	'h': {note.A, 0},
	'u': {note.ASharp, 0},
	'j': {note.B, 0},
	// high octave
	'k': {note.C, 1},
	'o': {note.CSharp, 1},
	'l': {note.D, 1},
}

// Command keys
const (
	OctaveDownKey = ','
	OctaveUpKey   = '.'
)

// Keyboard holds the octave and the pitch of every held key.
type Keyboard struct {
	Octave int
	Active map[rune]note.Pitch
}

// New returns a keyboard at the default octave.
func New() *Keyboard {
	return &Keyboard{
		Octave: DefaultOctave,
		Active: map[rune]note.Pitch{},
	}
}

// Pitch returns the pitch key plays at the current octave.
func (k *Keyboard) Pitch(key rune) (note.Pitch, bool) {
	b, ok := Layout[key]
	if !ok {
		return note.Pitch{}, false
	}
	return note.Pitch{Name: b.Name, Octave: k.Octave + b.Octave}, true
}

// Press holds key and returns its pitch. Unmapped and already held keys
// report false.
func (k *Keyboard) Press(key rune) (note.Pitch, bool) {
	if _, held := k.Active[key]; held {
		return note.Pitch{}, false
	}
	p, ok := k.Pitch(key)
	if !ok {
		return note.Pitch{}, false
	}
	k.Active[key] = p
	return p, true
}

// Release lets go of key and returns the pitch it was pressed with, which
// differs from Pitch(key) if the octave moved while it was held.
func (k *Keyboard) Release(key rune) (note.Pitch, bool) {
	p, ok := k.Active[key]
	if ok {
		delete(k.Active, key)
	}
	return p, ok
}

// IsHeld reports whether any held key plays p.
func (k *Keyboard) IsHeld(p note.Pitch) bool {
	for _, a := range k.Active {
		if a == p {
			return true
		}
	}
	return false
}

// SetOctave moves the home row to octave, clamped to MinOctave..MaxOctave.
func (k *Keyboard) SetOctave(octave int) {
	switch {
	case octave < MinOctave:
		octave = MinOctave
	case octave > MaxOctave:
		octave = MaxOctave
	}
	k.Octave = octave
}

func (k *Keyboard) OctaveUp() {
	k.SetOctave(k.Octave + 1)
}

func (k *Keyboard) OctaveDown() {
	k.SetOctave(k.Octave - 1)
}

// Command runs an octave command key and reports whether key was one.
func (k *Keyboard) Command(key rune) bool {
	switch key {
	case OctaveDownKey:
		k.OctaveDown()
	case OctaveUpKey:
		k.OctaveUp()
	default:
		return false
	}
	return true
}
