package render

import (
	"math/rand"
)

// Defaults for the fire automaton. Higher cooling shortens the flames;
// higher sparking makes the fire denser.
const (
	DefaultCooling  uint8 = 55
	DefaultSparking uint8 = 120
)

// FireSimulator is a one-dimensional heat-diffusion cellular automaton.
// The heat field persists across frames; each Render call cools every
// cell, drifts heat up from the base, maybe ignites a new spark near the
// base, then maps heat through a black-body ramp into the frame.
type FireSimulator struct {
	heat       []uint8
	cooling    uint8
	sparking   uint8
	reverse    bool
	brightness uint8
	rng        *rand.Rand
}

func NewFireSimulator(n int, brightness uint8, seed int64) *FireSimulator {
	return &FireSimulator{
		heat:       make([]uint8, n),
		cooling:    DefaultCooling,
		sparking:   DefaultSparking,
		brightness: brightness,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (f *FireSimulator) Name() string { return "fire" }

func (f *FireSimulator) SetCooling(c uint8)    { f.cooling = c }
func (f *FireSimulator) SetSparking(s uint8)   { f.sparking = s }
func (f *FireSimulator) SetReverse(r bool)     { f.reverse = r }
func (f *FireSimulator) SetBrightness(b uint8) { f.brightness = b }

// Heat exposes the current heat field. The returned slice is live.
func (f *FireSimulator) Heat() []uint8 { return f.heat }

func (f *FireSimulator) Render(dst []Color) {
	n := len(f.heat)
	if n == 0 {
		return
	}

	// 1) Cool every cell a random amount in [0, cooling*10/n + 2].
	maxCool := int(f.cooling)*10/n + 2
	for i := range f.heat {
		f.heat[i] = qsub8(f.heat[i], uint8(f.rng.Intn(maxCool+1)))
	}

	// 2) Drift heat upward; each cell blends from the two below it.
	for k := n - 1; k >= 2; k-- {
		f.heat[k] = uint8((int(f.heat[k-1]) + 2*int(f.heat[k-2])) / 3)
	}

	// 3) Randomly ignite a spark near the base.
	if uint8(f.rng.Intn(256)) < f.sparking {
		limit := 7
		if limit > n {
			limit = n
		}
		pos := f.rng.Intn(limit)
		f.heat[pos] = qadd8(f.heat[pos], uint8(160+f.rng.Intn(96)))
	}

	// 4) Map heat to color.
	for j := 0; j < n && j < len(dst); j++ {
		c := Scale(HeatColor(f.heat[j]), f.brightness)
		if f.reverse {
			dst[n-1-j] = c
		} else {
			dst[j] = c
		}
	}
}

// HeatColor maps a heat value (0..255) onto a black -> red -> orange ->
// white ramp approximating black-body radiation.
func HeatColor(h uint8) Color {
	// Scale into three ramp sections of 64 each.
	t192 := uint8(uint16(h) * 191 / 255)
	ramp := (t192 & 0x3F) << 2
	switch {
	case t192&0x80 != 0: // hottest third: full red+green, ramp blue
		return Color{R: 255, G: 255, B: ramp}
	case t192&0x40 != 0: // middle third: full red, ramp green
		return Color{R: 255, G: ramp, B: 0}
	default: // coolest third: ramp red
		return Color{R: ramp, G: 0, B: 0}
	}
}
