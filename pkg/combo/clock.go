package combo

import "time"

// Timer is a cancellable single-shot callback.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was stopped.
	Stop() bool
}

// Clock provides time and deferred callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// realClock uses wall time and runtime timers.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
