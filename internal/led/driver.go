// Package led abstracts the physical strip output.
package led

import "github.com/coreman2200/weatherlamp/internal/render"

// Driver is an LED output sink. Write pushes one full frame; the buffer
// is owned by the render loop and must not be retained.
type Driver interface {
	Write(frame []render.Color) error
	Close() error
}
