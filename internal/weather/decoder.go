package weather

import (
	"errors"
	"fmt"

	"github.com/coreman2200/weatherlamp/internal/render"
)

// ErrTruncated reports a payload too short for the declared stride and
// slot count. The whole update is discarded; the lamp keeps rendering
// from its last-known-good state.
var ErrTruncated = errors.New("truncated payload")

// Format selects the wire shape of the fetched payload.
type Format int

const (
	// FormatStops16 is a 16x3-byte stride: one RGB triple per palette stop.
	FormatStops16 Format = iota
	// FormatSlots4 is an Nx4-byte stride: RGB plus one reserved byte
	// (wind data upstream) per LED slot.
	FormatSlots4
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "palette", "stops":
		return FormatStops16, nil
	case "slots", "direct":
		return FormatSlots4, nil
	}
	return FormatStops16, fmt.Errorf("unknown payload format %q", s)
}

// Update is one successfully decoded fetch result. Exactly one of the
// fields is set, depending on the requested format.
type Update struct {
	Stops *render.Palette
	Slots []render.Color
}

// Decode parses raw according to f. It never reads past len(raw).
func Decode(raw []byte, slots int, f Format) (Update, error) {
	switch f {
	case FormatSlots4:
		s, err := DecodeSlots(raw, slots)
		if err != nil {
			return Update{}, err
		}
		return Update{Slots: s}, nil
	default:
		p, err := DecodeStops(raw)
		if err != nil {
			return Update{}, err
		}
		return Update{Stops: &p}, nil
	}
}

// DecodeStops reads 16 palette stops at a 3-byte stride.
func DecodeStops(raw []byte) (render.Palette, error) {
	var p render.Palette
	need := len(p) * 3
	if len(raw) < need {
		return p, fmt.Errorf("%w: got %d bytes, want %d", ErrTruncated, len(raw), need)
	}
	for i := range p {
		p[i] = render.Color{R: raw[i*3], G: raw[i*3+1], B: raw[i*3+2]}
	}
	return p, nil
}

// DecodeSlots reads slots direct RGB values at a 4-byte stride. The
// fourth byte of each group is reserved and skipped.
func DecodeSlots(raw []byte, slots int) ([]render.Color, error) {
	need := slots * 4
	if len(raw) < need {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %d slots", ErrTruncated, len(raw), need, slots)
	}
	out := make([]render.Color, slots)
	for i := range out {
		out[i] = render.Color{R: raw[i*4], G: raw[i*4+1], B: raw[i*4+2]}
	}
	return out, nil
}
