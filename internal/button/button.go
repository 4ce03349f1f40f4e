// Package button debounces a polled digital input into short and long
// press classifications.
package button

import "time"

// Press is the debounced classification of one completed press.
type Press int

const (
	PressNone Press = iota
	PressShort
	PressLong
)

func (p Press) String() string {
	switch p {
	case PressShort:
		return "short"
	case PressLong:
		return "long"
	default:
		return "none"
	}
}

// Debounce thresholds. Anything shorter than the bounce window is
// electrical noise; anything held past the long threshold is a long
// press regardless of what it looked like earlier.
const (
	BounceMin = 50 * time.Millisecond
	LongMin   = 1000 * time.Millisecond
)

// Input is a raw button sampled once per render tick.
type Input interface {
	// Pressed reports whether the button is held down right now.
	Pressed() bool
}

// Debouncer turns raw samples into at most one Press per release.
type Debouncer struct {
	in     Input
	down   bool
	downAt time.Time
}

func NewDebouncer(in Input) *Debouncer {
	return &Debouncer{in: in}
}

// Poll samples the input at now and returns a classification on the
// release edge. Held presses keep returning PressNone until released.
func (d *Debouncer) Poll(now time.Time) Press {
	pressed := d.in.Pressed()
	switch {
	case pressed && !d.down:
		d.down = true
		d.downAt = now
	case !pressed && d.down:
		d.down = false
		held := now.Sub(d.downAt)
		if held < BounceMin {
			return PressNone
		}
		if held >= LongMin {
			return PressLong
		}
		return PressShort
	}
	return PressNone
}
