package clock

import (
	"sync"
	"time"
)

// Clock supplies the reference time used to evaluate promotion windows.
type Clock interface {
	Now() time.Time
}

// RealClock returns the wall-clock time.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant. It backs the
// PRICING_REFERENCE_TIME override so a whole deployment can price
// "as of" a past or future moment.
type FixedClock struct {
	at time.Time
}

// NewFixed returns a FixedClock pinned to t.
func NewFixed(t time.Time) FixedClock {
	return FixedClock{at: t.UTC()}
}

func (f FixedClock) Now() time.Time {
	return f.at
}

// FromReference picks FixedClock when ref is set, RealClock otherwise.
func FromReference(ref *time.Time) Clock {
	if ref == nil || ref.IsZero() {
		return RealClock{}
	}
	return NewFixed(*ref)
}

// FakeClock is a controllable clock for tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a FakeClock set to the given time (expected in UTC).
func NewFake(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

// Now returns the fake current time.
func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set sets the fake clock to a specific time.
func (f *FakeClock) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the fake clock forward by duration d.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
