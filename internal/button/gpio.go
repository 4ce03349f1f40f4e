package button

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Pin reads a physical button wired active-low with a pull-up.
type Pin struct {
	p gpio.PinIO
}

// OpenPin looks up a GPIO pin by name (e.g. "GPIO4"). periph's host
// driver must be initialized first.
func OpenPin(name string) (*Pin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no such gpio pin: %s", name)
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure %s as input: %w", name, err)
	}
	return &Pin{p: p}, nil
}

func (p *Pin) Pressed() bool {
	return p.p.Read() == gpio.Low
}
