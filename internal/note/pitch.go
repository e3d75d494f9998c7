package note

import "strconv"

// AbsoluteNote is a MIDI key number. C4 is 60 and A4 is 69.
type AbsoluteNote uint8

// Pitch is a pitch class in a specific octave.
type Pitch struct {
	Name   Name
	Octave int
}

// FromMIDI returns the pitch of a MIDI key number.
func FromMIDI(key AbsoluteNote) Pitch {
	oct, rem := floorDiv(int(key), numNames)
	return Pitch{Name: Name(rem), Octave: oct - 1}
}

// MIDI returns the MIDI key number of p. Pitches outside 0..127 are clamped.
func (p Pitch) MIDI() AbsoluteNote {
	k := numNames*(p.Octave+1) + int(p.Name)
	switch {
	case k < 0:
		return 0
	case k > 127:
		return 127
	}
	return AbsoluteNote(k)
}

// Frequency returns the frequency of p in Hz.
func (p Pitch) Frequency() float64 {
	return Frequency(p.Name, p.Octave)
}

// Transpose moves p by the given number of semitones.
func (p Pitch) Transpose(semitones int) Pitch {
	oct, rem := floorDiv(int(p.Name)+semitones, numNames)
	return Pitch{Name: Name(rem), Octave: p.Octave + oct}
}

func (p Pitch) String() string {
	return p.Name.String() + strconv.Itoa(p.Octave)
}
