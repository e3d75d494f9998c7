// Package envelope schedules attack/decay/sustain/release gain curves built
// from exponential ramps.
package envelope

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Params describes an ADSR curve. Levels are gain values and durations are
// in seconds. A nil field is missing and fails validation.
type Params struct {
	Peak    *float64 `json:"peak"`
	Mid     *float64 `json:"mid"`
	End     *float64 `json:"end"`
	Attack  *float64 `json:"attack"`
	Decay   *float64 `json:"decay"`
	Sustain *float64 `json:"sustain"`
	Release *float64 `json:"release"`
}

// New returns a complete set of parameters.
func New(peak, mid, end, attack, decay, sustain, release float64) Params {
	return Params{
		Peak:    &peak,
		Mid:     &mid,
		End:     &end,
		Attack:  &attack,
		Decay:   &decay,
		Sustain: &sustain,
		Release: &release,
	}
}

// Default is a short pluck: 0.1 after 10ms, 0.001 at one second and
// silence at two.
func Default() Params {
	return New(0.1, 0.001, 0.00001, 0.01, 0.99, 0, 1)
}

// MissingError lists the parameters absent from a call.
type MissingError struct {
	Fields []string
}

func (e *MissingError) Error() string {
	return "envelope: missing " + strings.Join(e.Fields, ", ")
}

// InvalidError reports a parameter that is present but unusable.
type InvalidError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("envelope: %s = %v: %s", e.Field, e.Value, e.Reason)
}

type field struct {
	name  string
	v     *float64
	level bool
}

func (p Params) fields() []field {
	return []field{
		{"peak", p.Peak, true},
		{"mid", p.Mid, true},
		{"end", p.End, true},
		{"attack", p.Attack, false},
		{"decay", p.Decay, false},
		{"sustain", p.Sustain, false},
		{"release", p.Release, false},
	}
}

// longest duration representable as a time.Duration, in seconds
var maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// Validate checks that every parameter is present, finite and non-negative.
// Levels must also be above zero since an exponential ramp cannot reach it,
// and the whole curve must fit in a time.Duration.
func (p Params) Validate() error {
	var missing []string
	for _, f := range p.fields() {
		if f.v == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Fields: missing}
	}

	for _, f := range p.fields() {
		v := *f.v
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return &InvalidError{f.name, v, "not a number"}
		case v < 0:
			return &InvalidError{f.name, v, "negative"}
		case f.level && v == 0:
			return &InvalidError{f.name, v, "exponential ramp cannot reach zero"}
		case !f.level && v >= maxSeconds:
			return &InvalidError{f.name, v, "too long"}
		}
	}

	if total := *p.Attack + *p.Decay + *p.Sustain + *p.Release; total >= maxSeconds {
		return &InvalidError{"length", total, "too long"}
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// Length returns the time from the start of the attack to the end of the
// release. It is zero for parameters that fail validation.
func (p Params) Length() time.Duration {
	if p.Validate() != nil {
		return 0
	}
	return p.length()
}

func (p Params) length() time.Duration {
	return seconds(*p.Attack) + seconds(*p.Decay) + seconds(*p.Sustain) + seconds(*p.Release)
}

// Apply schedules the curve on target starting at the given time and returns
// the time at which the release reaches the end level. Nothing is scheduled
// when the parameters are incomplete or invalid, or when the curve would end
// past the longest time.Duration.
func (p Params) Apply(target Param, at time.Duration) (time.Duration, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if at < 0 || at > math.MaxInt64-p.length() {
		return 0, &InvalidError{"start", at.Seconds(), "curve ends past the longest duration"}
	}

	t := at + seconds(*p.Attack)
	if err := target.ExponentialRampToValueAtTime(*p.Peak, t); err != nil {
		return 0, fmt.Errorf("attack: %w", err)
	}
	t += seconds(*p.Decay)
	if err := target.ExponentialRampToValueAtTime(*p.Mid, t); err != nil {
		return 0, fmt.Errorf("decay: %w", err)
	}
	t += seconds(*p.Sustain)
	if err := target.ExponentialRampToValueAtTime(*p.Mid, t); err != nil {
		return 0, fmt.Errorf("sustain: %w", err)
	}
	t += seconds(*p.Release)
	if err := target.ExponentialRampToValueAtTime(*p.End, t); err != nil {
		return 0, fmt.Errorf("release: %w", err)
	}
	return t, nil
}
