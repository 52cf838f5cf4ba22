package mock

import "time"

// Time is a controllable clock for scenarios. It only moves when a step
// moves it, so pace and ETA assertions are exact.
type Time struct {
	current time.Time
}

func NewTime() *Time {
	return &Time{current: time.Now().UTC()}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.current = currentTime.UTC()
}

func (t *Time) Advance(d time.Duration) {
	t.current = t.current.Add(d)
}

func (t *Time) Now() time.Time {
	return t.current
}
