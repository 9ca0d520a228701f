package indicator

import (
	"log"
	"sync/atomic"
	"time"
)

const (
	// DefaultDebounceDelay is the window inside which rapid connectivity
	// signals are coalesced into a single applied state.
	DefaultDebounceDelay = 1 * time.Second
	// DefaultCollapseDelay is how long the expanded offline bar stays up
	// before folding into the collapsed strip.
	DefaultCollapseDelay = 2 * time.Second
)

var nextControllerID uint64

// View is the render target for the indicator bar. It exposes its own last
// rendered state for read-back, which may lag the controller's stored state
// when rendering is suppressed by policy.
type View interface {
	Update(state State, animated bool)
	State() State
}

// Delegate supplies visibility preferences for wide outputs and is notified
// when the indicator is forced away by a layout change. The controller never
// owns the delegate; a nil delegate means no preferences are expressed.
type Delegate interface {
	Preferences() *Preferences
	DidChangeHeight(c *Controller, animated bool, state State)
}

// Options configures a Controller. Scheduler is required; everything else is
// optional and degrades to fail-open defaults.
type Options struct {
	Scheduler   Scheduler
	View        View
	Delegate    Delegate
	Orientation OrientationFunc
	Layout      LayoutContext

	DebounceDelay time.Duration
	CollapseDelay time.Duration

	// Explain shows the offline explanation when the expanded bar is tapped.
	Explain func()
	// Current returns the most recent connectivity observation, if any. It
	// is consulted once, when the view first appears.
	Current func() (Signal, bool)
	// Subscribe registers the controller with the connectivity watcher and
	// returns the teardown for disposal.
	Subscribe func(fn func(Signal)) func()
}

// Controller owns the indicator's presentation state machine: it debounces
// raw connectivity signals, applies the mapped states, arms the auto-collapse
// timer for the expanded offline bar, and gates rendering through the
// visibility policy.
//
// All methods must be called on the UI loop.
type Controller struct {
	id       uint64
	registry *Registry
	view     View
	delegate Delegate
	policy   *Policy
	layout   LayoutContext

	debounce *Debouncer
	collapse *CollapseTimer
	explain  func()
	current  func() (Signal, bool)
	unsub    func()

	state    State
	appeared bool
	disposed bool
}

// NewController creates a controller, registers it with reg and subscribes it
// to the connectivity watcher.
func NewController(reg *Registry, opts Options) *Controller {
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = DefaultDebounceDelay
	}
	if opts.CollapseDelay <= 0 {
		opts.CollapseDelay = DefaultCollapseDelay
	}

	c := &Controller{
		id:       atomic.AddUint64(&nextControllerID, 1),
		registry: reg,
		view:     opts.View,
		delegate: opts.Delegate,
		policy:   NewPolicy(opts.Orientation),
		layout:   opts.Layout,
		explain:  opts.Explain,
		current:  opts.Current,
		state:    StateUnset,
	}

	c.debounce = NewDebouncer(opts.Scheduler, opts.DebounceDelay, func(s State) {
		c.applyState(s, true)
	})
	c.collapse = NewCollapseTimer(opts.Scheduler, opts.CollapseDelay, c.onCollapseFired)

	if opts.Subscribe != nil {
		c.unsub = opts.Subscribe(c.OnSignal)
	}

	if reg != nil {
		reg.add(c)
	}

	return c
}

// ID returns the controller's unique identity.
func (c *Controller) ID() uint64 {
	return c.id
}

// State returns the last applied presentation state, StateUnset before the
// first observation. It reflects display intent even while rendering is
// suppressed by policy.
func (c *Controller) State() State {
	return c.state
}

// RenderedState returns what the view last actually rendered, falling back to
// the stored state when no view is attached.
func (c *Controller) RenderedState() State {
	if c.view != nil {
		return c.view.State()
	}
	return c.state
}

// Layout returns the controller's current layout context.
func (c *Controller) Layout() LayoutContext {
	return c.layout
}

// OnAppear marks the view as having become visible and performs the initial
// sync from the connectivity watcher. The latch is one-time: later visibility
// events do not re-trigger the sync.
func (c *Controller) OnAppear() {
	if c.disposed || c.appeared {
		return
	}
	c.appeared = true

	if c.current != nil {
		if sig, ok := c.current(); ok {
			c.OnSignal(sig)
		}
	}
}

// OnSignal feeds a raw connectivity signal through the mapper and the
// debounce window. Signals arriving before the first appearance or after
// disposal are dropped.
func (c *Controller) OnSignal(sig Signal) {
	if c.disposed || !c.appeared {
		return
	}
	c.debounce.Request(MapSignal(sig))
}

// OnTap handles a tap on the bar: a collapsed offline bar expands, an
// expanded one shows the offline explanation, anything else is a no-op.
func (c *Controller) OnTap() {
	if c.disposed {
		return
	}

	switch c.RenderedState() {
	case StateOfflineCollapsed:
		c.applyState(StateOfflineExpanded, true)
	case StateOfflineExpanded:
		if c.explain != nil {
			c.explain()
		}
	}
}

// OnLayoutChange reconciles the indicator with a new layout context (output
// rotation or resize). When the policy stops allowing the indicator it is
// forced to online without animation and the delegate is told about the
// height change; when it allows it again the stored state is re-rendered
// without animation.
func (c *Controller) OnLayoutChange(ctx LayoutContext) {
	if c.disposed {
		return
	}

	c.layout = ctx
	hint := Size{Width: ctx.Width, Height: ctx.Height}

	if !c.policy.ShouldRender(ctx, hint, c.preferences()) {
		c.applyState(StateOnline, false)
		if c.delegate != nil {
			c.delegate.DidChangeHeight(c, false, c.state)
		}
		return
	}

	if c.state != StateUnset && c.view != nil {
		c.view.Update(c.state, false)
	}
}

// Expand forces the expanded offline presentation. Used by the registry's
// offline query and by IPC.
func (c *Controller) Expand() {
	if c.disposed {
		return
	}
	c.applyState(StateOfflineExpanded, true)
}

// Collapse forces the collapsed offline presentation.
func (c *Controller) Collapse() {
	if c.disposed {
		return
	}
	c.applyState(StateOfflineCollapsed, true)
}

// ShouldUpdate reports whether this controller is eligible for the registry's
// active-instance queries: its policy evaluates true under the current layout
// context with no explicit size hint.
func (c *Controller) ShouldUpdate() bool {
	if c.disposed {
		return false
	}
	return c.policy.ShouldRender(c.layout, Size{}, c.preferences())
}

// Dispose cancels the pending debounce, disarms the collapse timer, tears
// down the connectivity subscription and removes the controller from the
// registry. Safe to call more than once; everything after the first call is
// a no-op.
func (c *Controller) Dispose() {
	if c.disposed {
		log.Printf("[INDICATOR] Dispose called on disposed controller %d", c.id)
		return
	}
	c.disposed = true

	c.debounce.CancelAll()
	c.collapse.Disarm()

	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}

	if c.registry != nil {
		c.registry.remove(c)
	}
}

// applyState is the single mutation point of the state machine. It records
// the state, keeps the collapse timer consistent with it, and issues the
// render call unless the policy suppresses it. The stored state is updated
// either way so a later policy flip can re-render it.
func (c *Controller) applyState(state State, animated bool) {
	if c.disposed {
		return
	}

	c.state = state

	if state != StateOfflineExpanded {
		c.collapse.Disarm()
	} else if !c.collapse.Armed() {
		c.collapse.Arm()
	}

	if !c.policy.ShouldRender(c.layout, Size{}, c.preferences()) {
		return
	}

	if c.view != nil {
		c.view.Update(state, animated)
	}
}

// onCollapseFired folds the expanded bar. The state may have moved on while
// the timer was pending; a stale fire does nothing.
func (c *Controller) onCollapseFired() {
	if c.disposed || c.state != StateOfflineExpanded {
		return
	}
	c.applyState(StateOfflineCollapsed, true)
}

func (c *Controller) preferences() *Preferences {
	if c.delegate == nil {
		return nil
	}
	return c.delegate.Preferences()
}
