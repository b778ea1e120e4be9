package domain

import "github.com/jonboulle/clockwork"

// Clock is the package time source. Production code uses the real
// clock; tests inject a fake via SetClock for deterministic fallback
// timestamps.
var Clock clockwork.Clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		Clock = clockwork.NewRealClock()
		return
	}
	Clock = c
}
