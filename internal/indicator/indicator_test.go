package indicator

import "time"

// fakeScheduler drives scheduled callbacks with manually advanced time so
// the timing behavior is deterministic under test.
type fakeScheduler struct {
	now   time.Duration
	tasks []*fakeTask
}

type fakeTask struct {
	due      time.Duration
	fn       func()
	canceled bool
	fired    bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	task := &fakeTask{due: s.now + d, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() { task.canceled = true }
}

// advance moves the clock forward, firing due tasks in expiry order.
func (s *fakeScheduler) advance(d time.Duration) {
	target := s.now + d

	for {
		var next *fakeTask
		for _, task := range s.tasks {
			if task.canceled || task.fired || task.due > target {
				continue
			}
			if next == nil || task.due < next.due {
				next = task
			}
		}
		if next == nil {
			break
		}
		s.now = next.due
		next.fired = true
		next.fn()
	}

	s.now = target
}

func (s *fakeScheduler) pendingCount() int {
	n := 0
	for _, task := range s.tasks {
		if !task.canceled && !task.fired {
			n++
		}
	}
	return n
}

type renderCall struct {
	state    State
	animated bool
}

// fakeView records render calls and reads back the last rendered state.
type fakeView struct {
	calls []renderCall
}

func (v *fakeView) Update(state State, animated bool) {
	v.calls = append(v.calls, renderCall{state: state, animated: animated})
}

func (v *fakeView) State() State {
	if len(v.calls) == 0 {
		return StateUnset
	}
	return v.calls[len(v.calls)-1].state
}

// fakeDelegate supplies fixed preferences and records height notifications.
type fakeDelegate struct {
	prefs       *Preferences
	heightCalls []State
}

func (d *fakeDelegate) Preferences() *Preferences {
	return d.prefs
}

func (d *fakeDelegate) DidChangeHeight(c *Controller, animated bool, state State) {
	d.heightCalls = append(d.heightCalls, state)
}
