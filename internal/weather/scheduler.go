package weather

import "time"

// Scheduler gates fetches to at most one per interval, measured from the
// last fire rather than aligned to the wall clock. Failed fetches are
// not retried early; the next attempt is the next scheduled interval.
type Scheduler struct {
	interval time.Duration
	last     time.Time
	fired    bool
}

func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{interval: interval}
}

// Tick reports whether a fetch is due at now. The first call always
// fires so a freshly booted lamp shows data as soon as possible.
func (s *Scheduler) Tick(now time.Time) bool {
	if !s.fired || now.Sub(s.last) >= s.interval {
		s.fired = true
		s.last = now
		return true
	}
	return false
}
