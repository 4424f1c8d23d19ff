package ratelimit

import "time"

// Clock abstracts time.Now so limiter refill can be driven from tests.
type Clock interface {
	Now() time.Time
}

// RealClock is the production clock.
type RealClock struct{}

// Now returns the wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }
