// Package layout places piano keys on screen and maps window positions back
// to pitches and octave labels.
package layout

import (
	"github.com/minikomi/keysynth/internal/keyboard"
	"github.com/minikomi/keysynth/internal/note"
)

const (
	MarginLeft  int32 = 10
	LabelHeight int32 = 16
	WhiteW      int32 = 20
	WhiteH      int32 = 90
	BlackW      int32 = 12
	BlackH      int32 = 55
	MarkerH     int32 = 4
	OctaveW           = WhiteW * 7

	FirstOctave = keyboard.MinOctave
	// the upper keys reach one octave past MaxOctave
	NumOctaves = keyboard.MaxOctave - keyboard.MinOctave + 2

	Width  = MarginLeft*2 + OctaveW*NumOctaves
	Height = LabelHeight + WhiteH + MarkerH + 10
)

// Rect mirrors sdl.Rect so the geometry stays free of SDL.
type Rect struct {
	X, Y, W, H int32
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// WhiteNames are the naturals in drawing order.
var WhiteNames = [7]note.Name{note.C, note.D, note.E, note.F, note.G, note.A, note.B}

// BlackNames are the accidentals in drawing order.
var BlackNames = [5]note.Name{note.CSharp, note.DSharp, note.FSharp, note.GSharp, note.ASharp}

// whiteSlot is the position of a natural among WhiteNames, or for an
// accidental the natural just below it.
func whiteSlot(n note.Name) int32 {
	slot := int32(0)
	for _, w := range WhiteNames[1:] {
		if w > n {
			break
		}
		slot++
	}
	return slot
}

// OctaveLeft returns the x of the left edge of an octave block.
func OctaveLeft(octave int) int32 {
	return MarginLeft + int32(octave-FirstOctave)*OctaveW
}

func inRange(octave int) bool {
	return octave >= FirstOctave && octave < FirstOctave+NumOctaves
}

// KeyRect returns the on-screen rectangle of p.
func KeyRect(p note.Pitch) (Rect, bool) {
	if !p.Name.Valid() || !inRange(p.Octave) {
		return Rect{}, false
	}
	left := OctaveLeft(p.Octave) + whiteSlot(p.Name)*WhiteW
	if p.Name.Accidental() {
		return Rect{X: left + WhiteW - BlackW/2, Y: LabelHeight, W: BlackW, H: BlackH}, true
	}
	return Rect{X: left, Y: LabelHeight, W: WhiteW, H: WhiteH}, true
}

// PitchAt returns the key under a window position. Black keys sit on top of
// the white ones.
func PitchAt(x, y int32) (note.Pitch, bool) {
	if x < MarginLeft || y < LabelHeight || y >= LabelHeight+WhiteH {
		return note.Pitch{}, false
	}
	o := (x - MarginLeft) / OctaveW
	if o >= NumOctaves {
		return note.Pitch{}, false
	}
	octave := FirstOctave + int(o)

	for _, name := range BlackNames {
		p := note.Pitch{Name: name, Octave: octave}
		if r, _ := KeyRect(p); r.Contains(x, y) {
			return p, true
		}
	}
	local := x - OctaveLeft(octave)
	return note.Pitch{Name: WhiteNames[local/WhiteW], Octave: octave}, true
}

// OctaveAt returns the octave whose label is under a window position.
func OctaveAt(x, y int32) (int, bool) {
	if x < MarginLeft || y < 0 || y >= LabelHeight {
		return 0, false
	}
	o := (x - MarginLeft) / OctaveW
	if o >= NumOctaves {
		return 0, false
	}
	return FirstOctave + int(o), true
}

// Marker underlines the home row, C of octave through D of the next.
func Marker(octave int) Rect {
	return Rect{X: OctaveLeft(octave), Y: LabelHeight + WhiteH + 2, W: OctaveW + 2*WhiteW, H: MarkerH}
}
