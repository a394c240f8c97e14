package mock

import (
	"sync"
	"time"
)

// Time is a settable clock shared by every device in a scenario.
type Time struct {
	mu      sync.Mutex
	current time.Time
}

func NewTime() *Time {
	return &Time{current: time.Now().UTC()}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime.UTC()
}

func (t *Time) Advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = t.current.Add(d)
}

func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
