package render

// Solid fills the whole strip with a single color.
type Solid struct {
	c          Color
	brightness uint8
}

func NewSolid(c Color, brightness uint8) *Solid {
	return &Solid{c: c, brightness: brightness}
}

func (s *Solid) Name() string { return "solid" }

func (s *Solid) SetColor(c Color)      { s.c = c }
func (s *Solid) SetBrightness(b uint8) { s.brightness = b }

func (s *Solid) Render(dst []Color) {
	c := Scale(s.c, s.brightness)
	for i := range dst {
		dst[i] = c
	}
}
