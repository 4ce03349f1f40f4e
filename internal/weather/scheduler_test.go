package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerFixedInterval(t *testing.T) {
	base := time.Unix(1700000000, 0)
	s := NewScheduler(10 * time.Second)

	var fired []int
	for _, ms := range []int{0, 5000, 10000, 15000} {
		if s.Tick(base.Add(time.Duration(ms) * time.Millisecond)) {
			fired = append(fired, ms)
		}
	}
	assert.Equal(t, []int{0, 10000}, fired)
}

func TestSchedulerMeasuresFromLastFire(t *testing.T) {
	base := time.Unix(1700000000, 0)
	s := NewScheduler(10 * time.Second)

	assert.True(t, s.Tick(base))
	// A late tick fires and resets the window from its own time.
	assert.True(t, s.Tick(base.Add(13*time.Second)))
	assert.False(t, s.Tick(base.Add(20*time.Second)))
	assert.True(t, s.Tick(base.Add(23*time.Second)))
}
