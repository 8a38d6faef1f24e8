// Package clock abstracts time lookups so code that stamps records or
// measures durations can be tested against a pinned clock.
package clock

import "time"

// Clock yields the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// New creates a RealClock.
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
