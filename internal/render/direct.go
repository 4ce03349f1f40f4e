package render

// Direct copies the last decoded per-slot weather colors straight onto
// the strip. Slots beyond the sample stay black until the next update.
type Direct struct {
	sample     []Color
	brightness uint8
}

func NewDirect(brightness uint8) *Direct {
	return &Direct{brightness: brightness}
}

func (d *Direct) Name() string { return "weather" }

// SetSample replaces the slot colors wholesale with a private copy.
func (d *Direct) SetSample(s []Color) {
	d.sample = make([]Color, len(s))
	copy(d.sample, s)
}

func (d *Direct) SetBrightness(b uint8) { d.brightness = b }

func (d *Direct) Render(dst []Color) {
	for i := range dst {
		if i < len(d.sample) {
			dst[i] = Scale(d.sample[i], d.brightness)
		} else {
			dst[i] = Color{}
		}
	}
}
