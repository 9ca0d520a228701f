package bar

import (
	"time"

	"github.com/gotk3/gotk3/glib"

	"github.com/oxidane/netbar/internal/indicator"
)

// MainLoopScheduler implements indicator.Scheduler on top of the GTK main
// loop: the delay runs on a wall-clock timer and the callback is marshalled
// onto the main loop before it touches any controller state.
type MainLoopScheduler struct{}

// AfterFunc schedules fn after d. The returned cancel is effective even
// against a callback the timer has already queued: the canceled flag is only
// read and written on the main loop, so a cancel that runs before the idle
// callback wins.
func (MainLoopScheduler) AfterFunc(d time.Duration, fn func()) indicator.CancelFunc {
	canceled := false

	timer := time.AfterFunc(d, func() {
		glib.IdleAdd(func() {
			if !canceled {
				fn()
			}
		})
	})

	return func() {
		canceled = true
		timer.Stop()
	}
}

// IdleDispatch marshals fn onto the GTK main loop. Used as the connectivity
// watcher's dispatch function.
func IdleDispatch(fn func()) {
	glib.IdleAdd(fn)
}

func timeoutAdd(intervalMS uint, fn func() bool) {
	glib.TimeoutAdd(intervalMS, fn)
}
