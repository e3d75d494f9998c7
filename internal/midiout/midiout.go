// Package midiout mirrors played notes to a MIDI output port.
package midiout

import (
	"fmt"
	"io"

	"github.com/gomidi/connect"
	"github.com/gomidi/midi"
	"github.com/gomidi/midi/midimessage/channel"
	"github.com/gomidi/midi/midiwriter"
	"github.com/minikomi/keysynth/internal/note"
)

// Velocity is sent with every NoteOn.
const Velocity = 90

// Mirror writes NoteOn/NoteOff messages on one channel and keeps the
// running state of every key, refusing a NoteOn for a running key or a
// NoteOff for a silent one.
type Mirror struct {
	wr      midi.Writer
	ch      channel.Channel
	running [128]bool
}

// New returns a mirror writing raw MIDI bytes to dest.
func New(dest io.Writer, options ...midiwriter.Option) *Mirror {
	options = append(
		[]midiwriter.Option{
			midiwriter.NoRunningStatus(),
		}, options...)

	return &Mirror{
		wr: midiwriter.New(dest, options...),
		ch: channel.Channel0,
	}
}

type portWriter struct {
	out connect.Out
}

func (w *portWriter) Write(b []byte) (int, error) {
	return len(b), w.out.Send(b)
}

// ToPort returns a mirror sending to an opened output port.
func ToPort(out connect.Out) *Mirror {
	return New(&portWriter{out})
}

// NoteOn starts p.
func (m *Mirror) NoteOn(p note.Pitch) error {
	return m.Write(m.ch.NoteOn(uint8(p.MIDI()), Velocity))
}

// NoteOff stops p.
func (m *Mirror) NoteOff(p note.Pitch) error {
	return m.Write(m.ch.NoteOff(uint8(p.MIDI())))
}

// Running reports whether p has been started and not yet stopped.
func (m *Mirror) Running(p note.Pitch) bool {
	return m.running[p.MIDI()]
}

// AllOff stops every running key.
func (m *Mirror) AllOff() error {
	for k, on := range m.running {
		if !on {
			continue
		}
		if err := m.Write(m.ch.NoteOff(uint8(k))); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mirror) Write(msg midi.Message) error {
	switch v := msg.(type) {
	case channel.NoteOn:
		if v.Velocity() > 0 && m.running[v.Key()] {
			return fmt.Errorf("can't write %s: note already running", msg)
		}
		if v.Velocity() == 0 && !m.running[v.Key()] {
			return fmt.Errorf("can't write %s: note is not running", msg)
		}
		m.running[v.Key()] = v.Velocity() > 0
	case channel.NoteOff:
		if !m.running[v.Key()] {
			return fmt.Errorf("can't write %s: note is not running", msg)
		}
		m.running[v.Key()] = false
	}
	return m.wr.Write(msg)
}

// ListPorts prints the numbered input and output ports.
func ListPorts(w io.Writer, ins []connect.In, outs []connect.Out) {
	fmt.Fprintf(w, "MIDI IN Ports\n")
	for _, port := range ins {
		fmt.Fprintf(w, "[%v] %s\n", port.Number(), port.String())
	}
	fmt.Fprintf(w, "\nMIDI OUT Ports\n")
	for _, port := range outs {
		fmt.Fprintf(w, "[%v] %s\n", port.Number(), port.String())
	}
}
