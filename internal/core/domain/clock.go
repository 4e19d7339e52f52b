package domain

import "time"

// Clock abstracts wall-clock reads so week-offset and rollover decisions
// stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
