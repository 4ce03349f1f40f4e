package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/weatherlamp/internal/render"
)

// WS2812-class strips refresh at 800kHz; the NRZ encoding triples the
// bit rate on the SPI wire.
const refreshRate physic.Frequency = 800

// NRZ drives a WS2812-class strip over SPI via periph's nrzled device.
// When no SPI port can be opened it falls back to a console screen so
// headless development still shows frames.
type NRZ struct {
	d    display.Drawer
	img  *image.NRGBA
	vals int
}

// NewNRZ opens the named SPI port (empty selects the first available)
// for a strip of n pixels.
func NewNRZ(port string, n int) (*NRZ, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid slot count: %d", n)
	}
	p, err := spireg.Open(port)
	if err != nil {
		return &NRZ{d: screen.New(n), img: image.NewNRGBA(image.Rect(0, 0, n, 1)), vals: n}, nil
	}
	opts := nrzled.Opts{
		NumPixels: n,
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	}
	d, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		return nil, fmt.Errorf("init nrzled: %w", err)
	}
	d.Halt()
	return &NRZ{d: d, img: image.NewNRGBA(image.Rect(0, 0, n, 1)), vals: n}, nil
}

// newNRZDrawer wires an arbitrary drawer. Used by tests.
func newNRZDrawer(d display.Drawer, n int) *NRZ {
	return &NRZ{d: d, img: image.NewNRGBA(image.Rect(0, 0, n, 1)), vals: n}
}

func (n *NRZ) Write(frame []render.Color) error {
	for i := 0; i < n.vals && i < len(frame); i++ {
		c := frame[i]
		n.img.SetNRGBA(i, 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	return n.d.Draw(n.d.Bounds(), n.img, image.Point{})
}

func (n *NRZ) Close() error {
	if h, ok := n.d.(interface{ Halt() error }); ok {
		return h.Halt()
	}
	return nil
}
