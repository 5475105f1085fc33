package model

//
// Clock and ambient environment
//

import "time"

// Clock returns the current time. We use this interface instead of
// calling time.Now directly so tests can use a deterministic clock.
type Clock interface {
	// Now behaves like time.Now.
	Now() time.Time
}

// ClockFunc adapts a func to be a [Clock].
type ClockFunc func() time.Time

// Now implements Clock.
func (fx ClockFunc) Now() time.Time {
	return fx()
}

// ValidClockOrDefault is a factory that either returns the clock
// provided as argument, if not nil, or the system clock.
func ValidClockOrDefault(clock Clock) Clock {
	if clock != nil {
		return clock
	}
	return ClockFunc(time.Now)
}
