package indicator

import "time"

// Debouncer coalesces rapid state change requests into a single delayed
// application. Only the latest request inside the debounce window survives;
// issuing a new request discards the pending one.
//
// Not safe for concurrent use; all calls must happen on the UI loop.
type Debouncer struct {
	sched  Scheduler
	delay  time.Duration
	apply  func(State)
	cancel CancelFunc
}

// NewDebouncer creates a debouncer that invokes apply on the UI loop after
// delay has elapsed without a newer request.
func NewDebouncer(sched Scheduler, delay time.Duration, apply func(State)) *Debouncer {
	return &Debouncer{
		sched: sched,
		delay: delay,
		apply: apply,
	}
}

// Request schedules application of state, replacing any pending request.
func (d *Debouncer) Request(state State) {
	d.CancelAll()

	d.cancel = d.sched.AfterFunc(d.delay, func() {
		d.cancel = nil
		d.apply(state)
	})
}

// Pending reports whether a request is waiting to be applied.
func (d *Debouncer) Pending() bool {
	return d.cancel != nil
}

// CancelAll discards any pending request. Idempotent; after it returns no
// scheduled callback can fire.
func (d *Debouncer) CancelAll() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
