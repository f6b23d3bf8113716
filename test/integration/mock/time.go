package mock

import (
	"sync"
	"time"
)

// Time is a clock frozen at a settable instant. It satisfies the
// application's Clock port.
type Time struct {
	mu      sync.RWMutex
	current time.Time
}

// NewTime creates a clock frozen at the current wall time.
func NewTime() *Time {
	return &Time{current: time.Now().UTC()}
}

// SetCurrentTime freezes the clock at currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime.UTC()
}

// Reset freezes the clock at the current wall time again.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Today returns the frozen date as UTC midnight.
func (t *Time) Today() time.Time {
	y, m, d := t.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
