package indicator

import (
	"testing"
	"time"
)

type controllerFixture struct {
	sched     *fakeScheduler
	view      *fakeView
	registry  *Registry
	delegate  *fakeDelegate
	landscape bool
	explained int
	ctrl      *Controller
}

func newControllerFixture(layout LayoutContext, delegate *fakeDelegate) *controllerFixture {
	f := &controllerFixture{
		sched:    &fakeScheduler{},
		view:     &fakeView{},
		registry: NewRegistry(),
		delegate: delegate,
	}

	opts := Options{
		Scheduler:   f.sched,
		View:        f.view,
		Layout:      layout,
		Orientation: func() bool { return f.landscape },
		Explain:     func() { f.explained++ },
	}
	if delegate != nil {
		opts.Delegate = delegate
	}

	f.ctrl = NewController(f.registry, opts)
	f.ctrl.OnAppear()
	return f
}

func compactLayout() LayoutContext {
	return LayoutContext{Output: "eDP-1", Width: 1024, Height: 768}
}

func wideLayout() LayoutContext {
	return LayoutContext{Output: "DP-1", Width: 2560, Height: 1440, Wide: true}
}

func TestControllerCoalescesSignals(t *testing.T) {
	f := newControllerFixture(compactLayout(), nil)

	f.ctrl.OnSignal(SignalOffline)
	f.ctrl.OnSignal(SignalOnline)
	f.ctrl.OnSignal(SignalOffline)

	if len(f.view.calls) != 0 {
		t.Fatalf("rendered before the debounce window closed: %v", f.view.calls)
	}

	f.sched.advance(DefaultDebounceDelay)

	if len(f.view.calls) != 1 {
		t.Fatalf("expected exactly one render, got %d", len(f.view.calls))
	}
	if f.view.calls[0].state != StateOfflineExpanded {
		t.Errorf("rendered %v, want %v", f.view.calls[0].state, StateOfflineExpanded)
	}
	if !f.view.calls[0].animated {
		t.Error("debounced apply should render animated")
	}
	if f.ctrl.State() != StateOfflineExpanded {
		t.Errorf("controller state = %v, want %v", f.ctrl.State(), StateOfflineExpanded)
	}
}

func TestControllerAutoCollapse(t *testing.T) {
	f := newControllerFixture(compactLayout(), nil)

	f.ctrl.OnSignal(SignalOffline)
	f.sched.advance(DefaultDebounceDelay)

	if f.ctrl.State() != StateOfflineExpanded {
		t.Fatalf("state = %v, want expanded", f.ctrl.State())
	}

	f.sched.advance(DefaultCollapseDelay)

	if f.ctrl.State() != StateOfflineCollapsed {
		t.Fatalf("state = %v, want collapsed after the collapse delay", f.ctrl.State())
	}
}

func TestControllerStaleCollapseIsNoOp(t *testing.T) {
	f := newControllerFixture(compactLayout(), nil)

	f.ctrl.OnSignal(SignalOffline)
	f.sched.advance(DefaultDebounceDelay)

	// A newer signal lands while the collapse timer is pending.
	f.ctrl.OnSignal(SignalOnline)
	f.sched.advance(DefaultCollapseDelay + DefaultDebounceDelay)

	if f.ctrl.State() != StateOnline {
		t.Fatalf("state = %v, want the newer signal %v", f.ctrl.State(), StateOnline)
	}
	for _, call := range f.view.calls {
		if call.state == StateOfflineCollapsed {
			t.Fatal("stale collapse firing must not apply")
		}
	}
}

func TestControllerReentryKeepsSingleCollapseTimer(t *testing.T) {
	f := newControllerFixture(compactLayout(), nil)

	f.ctrl.OnSignal(SignalOffline)
	f.sched.advance(DefaultDebounceDelay)

	// Re-applying the expanded state must not restart the running timer.
	f.sched.advance(DefaultCollapseDelay / 2)
	f.ctrl.Expand()
	f.sched.advance(DefaultCollapseDelay / 2)

	if f.ctrl.State() != StateOfflineCollapsed {
		t.Fatalf("state = %v, want collapsed on the original deadline", f.ctrl.State())
	}
}

func TestControllerTapSemantics(t *testing.T) {
	f := newControllerFixture(compactLayout(), nil)

	// Online: tap is a no-op.
	f.ctrl.OnSignal(SignalOnline)
	f.sched.advance(DefaultDebounceDelay)
	renders := len(f.view.calls)
	f.ctrl.OnTap()
	if len(f.view.calls) != renders || f.explained != 0 {
		t.Fatal("tap while online should do nothing")
	}

	// Collapsed: tap expands.
	f.ctrl.Collapse()
	f.ctrl.OnTap()
	if f.ctrl.State() != StateOfflineExpanded {
		t.Fatalf("tap on collapsed bar should expand, state = %v", f.ctrl.State())
	}

	// Expanded: tap shows the explanation, state unchanged.
	f.ctrl.OnTap()
	if f.explained != 1 {
		t.Fatalf("explanation shown %d times, want 1", f.explained)
	}
	if f.ctrl.State() != StateOfflineExpanded {
		t.Errorf("tap on expanded bar changed state to %v", f.ctrl.State())
	}
}

func TestControllerVisibilityGating(t *testing.T) {
	delegate := &fakeDelegate{prefs: &Preferences{AllowLandscape: false, AllowPortrait: true}}
	f := newControllerFixture(wideLayout(), delegate)
	f.landscape = true

	f.ctrl.OnSignal(SignalOffline)
	f.sched.advance(DefaultDebounceDelay)

	if len(f.view.calls) != 0 {
		t.Fatalf("render call should be suppressed in denied landscape, got %v", f.view.calls)
	}
	if f.ctrl.State() != StateOfflineExpanded {
		t.Fatalf("stored state must update despite suppression, got %v", f.ctrl.State())
	}

	// Rotation to portrait re-renders the stored state without animation.
	f.landscape = false
	f.ctrl.OnLayoutChange(LayoutContext{Output: "DP-1", Width: 1440, Height: 2560, Wide: true})

	if len(f.view.calls) != 1 {
		t.Fatalf("expected the stored state to re-render, got %d calls", len(f.view.calls))
	}
	if f.view.calls[0].state != StateOfflineExpanded || f.view.calls[0].animated {
		t.Errorf("reconciliation render = %+v, want unanimated offline-expanded", f.view.calls[0])
	}
}

func TestControllerLayoutChangeForcesOnline(t *testing.T) {
	delegate := &fakeDelegate{prefs: &Preferences{AllowLandscape: false, AllowPortrait: true}}
	f := newControllerFixture(wideLayout(), delegate)

	f.ctrl.OnSignal(SignalOffline)
	f.sched.advance(DefaultDebounceDelay)

	// Rotate into denied landscape.
	f.landscape = true
	f.ctrl.OnLayoutChange(LayoutContext{Output: "DP-1", Width: 2560, Height: 1440, Wide: true})

	if f.ctrl.State() != StateOnline {
		t.Fatalf("state = %v, want forced online", f.ctrl.State())
	}
	if len(delegate.heightCalls) != 1 {
		t.Fatalf("delegate notified %d times, want 1", len(delegate.heightCalls))
	}
	if delegate.heightCalls[0] != StateOnline {
		t.Errorf("delegate notified with state %v, want %v", delegate.heightCalls[0], StateOnline)
	}
}

func TestControllerFirstAppearLatch(t *testing.T) {
	sched := &fakeScheduler{}
	view := &fakeView{}
	reg := NewRegistry()
	syncs := 0

	ctrl := NewController(reg, Options{
		Scheduler: sched,
		View:      view,
		Layout:    compactLayout(),
		Current: func() (Signal, bool) {
			syncs++
			return SignalOnline, true
		},
	})

	// Signals before the first appearance are dropped.
	ctrl.OnSignal(SignalOffline)
	sched.advance(DefaultDebounceDelay)
	if ctrl.State() != StateUnset {
		t.Fatalf("state = %v before first appearance, want unset", ctrl.State())
	}

	ctrl.OnAppear()
	ctrl.OnAppear() // the latch is one-time
	sched.advance(DefaultDebounceDelay)

	if syncs != 1 {
		t.Fatalf("initial sync ran %d times, want 1", syncs)
	}
	if ctrl.State() != StateOnline {
		t.Errorf("state = %v after initial sync, want online", ctrl.State())
	}
}

func TestControllerDisposeIdempotent(t *testing.T) {
	unsubs := 0
	sched := &fakeScheduler{}
	reg := NewRegistry()

	ctrl := NewController(reg, Options{
		Scheduler: sched,
		View:      &fakeView{},
		Layout:    compactLayout(),
		Subscribe: func(fn func(Signal)) func() {
			return func() { unsubs++ }
		},
	})
	ctrl.OnAppear()

	ctrl.OnSignal(SignalOffline)
	ctrl.Dispose()
	ctrl.Dispose()

	if unsubs != 1 {
		t.Fatalf("unsubscribed %d times, want 1", unsubs)
	}
	if reg.Len() != 0 {
		t.Fatalf("registry still holds %d controllers", reg.Len())
	}

	// No scheduled callback may touch the disposed controller.
	sched.advance(10 * time.Second)
	if ctrl.State() != StateUnset {
		t.Errorf("disposed controller mutated to %v", ctrl.State())
	}
	if sched.pendingCount() != 0 {
		t.Errorf("%d callbacks still pending after dispose", sched.pendingCount())
	}
}

func TestControllerOpsAfterDisposeAreNoOps(t *testing.T) {
	f := newControllerFixture(compactLayout(), nil)
	f.ctrl.Dispose()

	f.ctrl.OnSignal(SignalOffline)
	f.ctrl.OnTap()
	f.ctrl.OnLayoutChange(wideLayout())
	f.ctrl.Expand()
	f.ctrl.OnAppear()
	f.sched.advance(10 * time.Second)

	if f.ctrl.State() != StateUnset {
		t.Errorf("disposed controller mutated to %v", f.ctrl.State())
	}
	if len(f.view.calls) != 0 {
		t.Errorf("disposed controller rendered: %v", f.view.calls)
	}
}
