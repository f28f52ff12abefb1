package kernel

import "time"

// Clock returns the current instant. Services take a Clock instead of calling
// time.Now so tests can pin or advance time without sleeping.
type Clock func() time.Time

// SystemClock reads the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
