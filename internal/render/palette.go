package render

// PaletteEngine fills a frame by sampling a 16-stop palette at a moving
// phase offset. The phase index persists across calls; a non-zero motion
// increment animates the pattern along the strip.
type PaletteEngine struct {
	pal        Palette
	blend      Blend
	phase      uint8
	motion     uint8
	brightness uint8
}

func NewPaletteEngine(p Palette, brightness uint8) *PaletteEngine {
	return &PaletteEngine{
		pal:        p,
		blend:      LinearBlend,
		brightness: brightness,
	}
}

func (e *PaletteEngine) Name() string { return "palette" }

// SetPalette replaces the palette wholesale.
func (e *PaletteEngine) SetPalette(p Palette) { e.pal = p }

func (e *PaletteEngine) SetBrightness(b uint8) { e.brightness = b }

func (e *PaletteEngine) SetBlend(b Blend) { e.blend = b }

// SetMotion sets the per-frame phase advance. Zero freezes the pattern.
func (e *PaletteEngine) SetMotion(m uint8) { e.motion = m }

func (e *PaletteEngine) Render(dst []Color) {
	n := len(dst)
	if n == 0 {
		return
	}
	step := 256 / n
	idx := int(e.phase)
	for i := range dst {
		dst[i] = Sample(e.pal, uint8(idx), e.brightness, e.blend)
		idx = (idx + step) % 256
	}
	e.phase += e.motion
}

// Sample looks up palette position index (0..255) with optional linear
// interpolation between adjacent stops, scaled by brightness.
func Sample(p Palette, index, brightness uint8, b Blend) Color {
	hi := index >> 4
	lo := index & 0x0F
	c1 := p[hi]
	if b == NoBlend || lo == 0 {
		return Scale(c1, brightness)
	}
	c2 := p[(hi+1)&0x0F]
	frac := lo << 4
	c := Color{
		R: lerp8(c1.R, c2.R, frac),
		G: lerp8(c1.G, c2.G, frac),
		B: lerp8(c1.B, c2.B, frac),
	}
	return Scale(c, brightness)
}
