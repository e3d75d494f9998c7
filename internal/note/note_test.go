package note

import (
	"errors"
	"math"
	"testing"
)

func TestFrequencyReference(t *testing.T) {
	if got := Frequency(A, 4); got != 440.0 {
		t.Errorf("Expected A4 = 440, got %v", got)
	}
	if got := Frequency(A, 5); got != 880.0 {
		t.Errorf("Expected A5 = 880, got %v", got)
	}
	if got := Frequency(A, 3); got != 220.0 {
		t.Errorf("Expected A3 = 220, got %v", got)
	}
	if got, err := Hz("A", 4); err != nil || got != 440.0 {
		t.Errorf("Expected Hz(A, 4) = 440, got %v (%v)", got, err)
	}
	if got, err := Hz("C", 4); err != nil || math.Abs(got-261.63) > 0.01 {
		t.Errorf("Expected Hz(C, 4) ≈ 261.63, got %v (%v)", got, err)
	}
}

func TestFrequencyKnownPitches(t *testing.T) {
	tests := []struct {
		name   Name
		octave int
		want   float64
	}{
		{C, 4, 261.63},
		{CSharp, 4, 277.18},
		{E, 4, 329.63},
		{G, 4, 392.00},
		{B, 4, 493.88},
		{C, 5, 523.25},
		{D, 6, 1174.66},
		{C, 0, 16.35},
		{ASharp, -1, 14.57},
	}

	for _, tt := range tests {
		got := Frequency(tt.name, tt.octave)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("%v%d: expected %.2f, got %.4f", tt.name, tt.octave, tt.want, got)
		}
	}
}

func TestEnharmonicEquivalents(t *testing.T) {
	pairs := []struct {
		sharp, flat string
	}{
		{"C#", "Db"},
		{"D#", "Eb"},
		{"F#", "Gb"},
		{"G#", "Ab"},
		{"A#", "Bb"},
	}

	for _, p := range pairs {
		for oct := 0; oct < 9; oct++ {
			s, err := Hz(p.sharp, oct)
			if err != nil {
				t.Fatalf("Hz(%q): %v", p.sharp, err)
			}
			f, err := Hz(p.flat, oct)
			if err != nil {
				t.Fatalf("Hz(%q): %v", p.flat, err)
			}
			if s != f {
				t.Errorf("Expected %s%d == %s%d, got %v and %v", p.sharp, oct, p.flat, oct, s, f)
			}
		}
	}

	if Frequency(CSharp, 4) != Frequency(DFlat, 4) {
		t.Error("Expected CSharp and DFlat to share a frequency")
	}
}

func TestFrequencyIncreasesWithOctave(t *testing.T) {
	for n := C; n <= B; n++ {
		prev := Frequency(n, -2)
		for oct := -1; oct <= 10; oct++ {
			f := Frequency(n, oct)
			if f <= prev {
				t.Errorf("%v: expected octave %d (%v) above octave %d (%v)", n, oct, f, oct-1, prev)
			}
			prev = f
		}
	}
}

func TestFrequencyIncreasesAcrossNames(t *testing.T) {
	prev := 0.0
	for oct := 2; oct <= 6; oct++ {
		for n := C; n <= B; n++ {
			f := Frequency(n, oct)
			if f <= prev {
				t.Errorf("Expected %v%d above previous semitone, got %v <= %v", n, oct, f, prev)
			}
			prev = f
		}
	}
}

func TestFrequencyInvalidName(t *testing.T) {
	if got := Frequency(Name(12), 4); got != 0 {
		t.Errorf("Expected 0 for invalid name, got %v", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{"A", A},
		{"a", A},
		{" C ", C},
		{"C#", CSharp},
		{"c#", CSharp},
		{"Db", DFlat},
		{"E♭", EFlat},
		{"F♯", FSharp},
		{"Bb", ASharp},
		{"B", B},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "H", "X#", "E#", "Cb", "A##", "440", "Bbb"} {
		if _, err := Parse(in); !errors.Is(err, ErrUnknownNote) {
			t.Errorf("Parse(%q): expected ErrUnknownNote, got %v", in, err)
		}
		if f, err := Hz(in, 4); err == nil || f != 0 {
			t.Errorf("Hz(%q): expected rejection, got %v, %v", in, f, err)
		}
	}
}

func TestNameStrings(t *testing.T) {
	if CSharp.String() != "C#" || CSharp.Alias() != "Db" {
		t.Errorf("Expected C#/Db, got %s/%s", CSharp.String(), CSharp.Alias())
	}
	if E.Alias() != "" || E.Accidental() {
		t.Error("Expected E to be a natural without alias")
	}
	if !BFlat.Accidental() {
		t.Error("Expected Bb to be an accidental")
	}
	if Name(20).String() != "Name(20)" {
		t.Errorf("Expected Name(20), got %s", Name(20).String())
	}
}
