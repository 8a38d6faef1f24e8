package mocks

import (
	"time"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/clock"
)

var _ clock.Clock = (*MockClock)(nil)

// MockClock is a Clock pinned to a settable instant. It only moves when a
// test tells it to.
type MockClock struct {
	CurrentTime time.Time
}

// NewMockClock creates a MockClock pinned to t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set pins the clock to t.
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
