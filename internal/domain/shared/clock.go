package shared

import "time"

// Clock abstracts wall-clock time so schedule arithmetic can be driven by a
// fake in tests. All production times are UTC.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock is the production Clock backed by the system time.
type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

func (r *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// MockClock is a controllable Clock for tests. Sleep advances the clock
// instantly instead of blocking.
type MockClock struct {
	CurrentTime time.Time
}

// NewMockClock creates a MockClock starting at startTime, or at the current
// time when startTime is zero.
func NewMockClock(startTime time.Time) *MockClock {
	if startTime.IsZero() {
		startTime = time.Now().UTC()
	}
	return &MockClock{CurrentTime: startTime}
}

func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

func (m *MockClock) Sleep(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// Advance moves the clock forward without counting as a sleep.
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// SetTime pins the clock to a specific instant.
func (m *MockClock) SetTime(t time.Time) {
	m.CurrentTime = t
}
