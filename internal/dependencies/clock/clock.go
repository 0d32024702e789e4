package clock

import "time"

// Clock abstracts the system time so services can be tested with a fixed
// or advancing clock.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the real system time.
type SystemClock struct{}

// New creates a SystemClock.
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
