package render

// Color is one 8-bit-per-channel RGB LED value.
type Color struct{ R, G, B uint8 }

// Palette is a 16-stop gradient table, sampled cyclically at positions 0..255.
type Palette [16]Color

// Blend selects how palette positions between two stops are resolved.
type Blend int

const (
	// NoBlend snaps to the nearest lower stop.
	NoBlend Blend = iota
	// LinearBlend interpolates linearly between adjacent stops.
	LinearBlend
)

// Generator produces one frame into dst each tick. Generators may keep
// state across calls (phase indices, heat fields); dst is owned by the
// render loop and reused between ticks.
type Generator interface {
	Name() string
	Render(dst []Color)
}

// Scale multiplies each channel by s/255.
func Scale(c Color, s uint8) Color {
	if s == 255 {
		return c
	}
	return Color{
		R: uint8(uint16(c.R) * uint16(s) / 255),
		G: uint8(uint16(c.G) * uint16(s) / 255),
		B: uint8(uint16(c.B) * uint16(s) / 255),
	}
}

// lerp8 interpolates a..b by frac/256.
func lerp8(a, b uint8, frac uint8) uint8 {
	return uint8(int(a) + (int(b)-int(a))*int(frac)/256)
}

// qsub8 is a saturating subtraction, floored at 0.
func qsub8(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}

// qadd8 is a saturating addition, capped at 255.
func qadd8(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}
