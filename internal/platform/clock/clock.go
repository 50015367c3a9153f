package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// LocalClock reports wall-clock time in the machine's local zone. Calendar-day
// bookkeeping uses it so that "today" matches what the user sees.
type LocalClock struct{}

func (LocalClock) Now() time.Time {
	return time.Now()
}
