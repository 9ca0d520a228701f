package indicator

import "time"

// CollapseTimer is the one-shot timer that folds an expanded offline bar into
// its collapsed form after a fixed delay. The fire callback is expected to
// check that the expanded state is still current; a stale fire must be a
// no-op on the caller's side.
//
// Not safe for concurrent use; all calls must happen on the UI loop.
type CollapseTimer struct {
	sched  Scheduler
	delay  time.Duration
	fire   func()
	cancel CancelFunc
}

// NewCollapseTimer creates a disarmed collapse timer.
func NewCollapseTimer(sched Scheduler, delay time.Duration, fire func()) *CollapseTimer {
	return &CollapseTimer{
		sched: sched,
		delay: delay,
		fire:  fire,
	}
}

// Arm starts the timer. Re-arming replaces the previous timer, it never
// stacks; at most one timer is armed per controller.
func (t *CollapseTimer) Arm() {
	t.Disarm()

	t.cancel = t.sched.AfterFunc(t.delay, func() {
		t.cancel = nil
		t.fire()
	})
}

// Armed reports whether the timer is currently armed.
func (t *CollapseTimer) Armed() bool {
	return t.cancel != nil
}

// Disarm cancels an armed timer. Idempotent; must be called on disposal and
// whenever a non-expanded state is applied so the timer never outlives its
// relevance.
func (t *CollapseTimer) Disarm() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
