package indicator

import "time"

// CancelFunc cancels a scheduled callback. After it returns the callback is
// guaranteed not to run. Calling it more than once is harmless.
type CancelFunc func()

// Scheduler schedules one-shot callbacks onto the UI loop. All indicator
// timing (debounce, auto-collapse) goes through this interface so the core
// stays testable without a running main loop.
//
// Callbacks must be delivered on the same cooperative context as every other
// controller mutation; ordering between two pending callbacks follows their
// expiry order.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}
