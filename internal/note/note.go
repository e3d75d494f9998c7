// Package note names the twelve pitch classes and converts them to
// equal-tempered frequencies.
package note

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Name is one of the twelve pitch classes of an octave, counted from C.
type Name uint8

const (
	C = Name(iota)
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B

	numNames = 12
)

// Flat spellings share the value of their sharp equivalent.
const (
	DFlat = CSharp
	EFlat = DSharp
	GFlat = FSharp
	AFlat = GSharp
	BFlat = ASharp
)

// A4 is the reference pitch.
const (
	ReferenceFrequency = 440.0
	ReferenceOctave    = 4
)

// ErrUnknownNote is returned when a string does not spell a pitch class.
var ErrUnknownNote = errors.New("unknown note name")

var sharpNames = [numNames]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [numNames]string{"", "Db", "", "Eb", "", "", "Gb", "", "Ab", "", "Bb", ""}

var byName = func() map[string]Name {
	m := make(map[string]Name, 17)
	for i := Name(0); i < numNames; i++ {
		m[sharpNames[i]] = i
		if flatNames[i] != "" {
			m[flatNames[i]] = i
		}
	}
	return m
}()

// Valid reports whether n is one of the twelve pitch classes.
func (n Name) Valid() bool {
	return n < numNames
}

func (n Name) String() string {
	if !n.Valid() {
		return "Name(" + strconv.Itoa(int(n)) + ")"
	}
	return sharpNames[n]
}

// Alias returns the flat spelling of an accidental, or "" for naturals.
func (n Name) Alias() string {
	if !n.Valid() {
		return ""
	}
	return flatNames[n]
}

// Accidental reports whether n is a black key.
func (n Name) Accidental() bool {
	return n.Alias() != ""
}

// semitonesFromA is N in f = 440 * 2^((N + 12*(octave-4))/12).
func (n Name) semitonesFromA() int {
	return int(n) - int(A)
}

// Parse reads a note spelling such as "A", "c#", "Bb" or "E♭".
// Unknown spellings are rejected with ErrUnknownNote.
func Parse(s string) (Name, error) {
	key := strings.TrimSpace(s)
	if key == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnknownNote)
	}
	key = strings.ToUpper(key[:1]) + key[1:]
	key = strings.NewReplacer("♯", "#", "♭", "b").Replace(key)
	n, ok := byName[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, s)
	}
	return n, nil
}

// Frequency returns the equal-tempered frequency in Hz of n in the given
// octave, with A4 at 440 Hz. Octaves follow scientific pitch notation, so
// C4 is middle C. An invalid Name yields 0.
func Frequency(n Name, octave int) float64 {
	if !n.Valid() {
		return 0
	}
	semis := n.semitonesFromA() + numNames*(octave-ReferenceOctave)
	octs, rem := floorDiv(semis, numNames)
	return math.Ldexp(ReferenceFrequency*math.Pow(2, float64(rem)/numNames), octs)
}

// Hz parses name and returns its frequency in the given octave.
func Hz(name string, octave int) (float64, error) {
	n, err := Parse(name)
	if err != nil {
		return 0, err
	}
	return Frequency(n, octave), nil
}

func floorDiv(a, b int) (q, r int) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
