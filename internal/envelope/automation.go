package envelope

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrRampTarget is returned for exponential ramp targets that are not
// finite and strictly positive.
var ErrRampTarget = errors.New("exponential ramp target must be finite and positive")

// Param is a scheduled control value such as a voice's gain.
type Param interface {
	SetValueAtTime(v float64, at time.Duration)
	ExponentialRampToValueAtTime(v float64, at time.Duration) error
}

type eventKind uint8

const (
	setValue eventKind = iota
	expRamp
)

type event struct {
	kind  eventKind
	value float64
	at    time.Duration
}

// Automation is a timeline of value changes. A ramp runs from the previous
// event's value and time to its own target, and the last event's value is
// held afterwards.
type Automation struct {
	initial float64
	events  []event
}

// NewAutomation returns a timeline holding initial until its first event.
func NewAutomation(initial float64) *Automation {
	return &Automation{initial: initial}
}

func (a *Automation) insert(e event) {
	// events at the same time keep insertion order
	i := sort.Search(len(a.events), func(i int) bool { return a.events[i].at > e.at })
	a.events = append(a.events, event{})
	copy(a.events[i+1:], a.events[i:])
	a.events[i] = e
}

// SetValueAtTime jumps to v at the given time.
func (a *Automation) SetValueAtTime(v float64, at time.Duration) {
	a.insert(event{kind: setValue, value: v, at: at})
}

// ExponentialRampToValueAtTime schedules an exponential approach to v,
// arriving exactly at the given time.
func (a *Automation) ExponentialRampToValueAtTime(v float64, at time.Duration) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrRampTarget, v)
	}
	a.insert(event{kind: expRamp, value: v, at: at})
	return nil
}

// ValueAt returns the value of the timeline at t.
func (a *Automation) ValueAt(t time.Duration) float64 {
	next := sort.Search(len(a.events), func(i int) bool { return a.events[i].at > t })
	prev := next - 1

	if next < len(a.events) && a.events[next].kind == expRamp {
		v0, t0 := a.initial, time.Duration(0)
		if prev >= 0 {
			v0, t0 = a.events[prev].value, a.events[prev].at
		}
		e := a.events[next]
		return expInterp(v0, t0, e.value, e.at, t)
	}
	if prev >= 0 {
		return a.events[prev].value
	}
	return a.initial
}

func expInterp(v0 float64, t0 time.Duration, v1 float64, t1, t time.Duration) float64 {
	if t1 <= t0 {
		return v1
	}
	if v0 <= 0 {
		return v0
	}
	frac := float64(t-t0) / float64(t1-t0)
	return v0 * math.Pow(v1/v0, frac)
}
