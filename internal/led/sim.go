package led

import (
	"sync"

	"github.com/coreman2200/weatherlamp/internal/render"
)

// Sim is a headless driver for development and tests. It keeps the last
// frame and a frame counter.
type Sim struct {
	mu     sync.Mutex
	last   []render.Color
	frames int
}

func NewSim() *Sim { return &Sim{} }

func (s *Sim) Write(frame []render.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.last) != len(frame) {
		s.last = make([]render.Color, len(frame))
	}
	copy(s.last, frame)
	s.frames++
	return nil
}

func (s *Sim) Close() error { return nil }

// Frames reports how many frames have been written.
func (s *Sim) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Last returns a copy of the most recent frame.
func (s *Sim) Last() []render.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]render.Color, len(s.last))
	copy(out, s.last)
	return out
}
