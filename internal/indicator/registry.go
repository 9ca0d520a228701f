package indicator

import (
	"log"
	"sync"
)

// Registry tracks every live controller in the process and resolves the
// single "active" one for global queries. Controllers register themselves on
// construction and leave on Dispose.
//
// The registry is an explicit service object passed into controllers rather
// than package state; it is the only piece of the indicator shared across
// instances and is mutex-guarded so IPC handlers may query it off the UI
// loop.
type Registry struct {
	mu          sync.Mutex
	controllers []*Controller
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// add appends a controller. Duplicate identities are rejected.
func (r *Registry) add(c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.controllers {
		if existing.id == c.id {
			log.Printf("[REGISTRY] Controller %d already registered", c.id)
			return
		}
	}
	r.controllers = append(r.controllers, c)
}

// remove drops a controller. Removing an unknown controller is a no-op.
func (r *Registry) remove(c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.controllers {
		if existing.id == c.id {
			r.controllers = append(r.controllers[:i], r.controllers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live controllers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Active returns the first registered controller whose visibility policy
// evaluates true under its current layout context with no explicit size
// hint, or nil. Ties resolve by registration order.
func (r *Registry) Active() *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.controllers {
		if c.ShouldUpdate() {
			return c
		}
	}
	return nil
}

// NotifyWhenOffline reports whether the active indicator currently presents
// an offline state, expanding a collapsed bar as a side effect so the notice
// is visible when the answer is yes. With no active instance it fails open
// and returns true.
//
// The query intentionally mutates state; callers treat "offline notice is
// showing" and "make sure it is showing" as one operation.
func (r *Registry) NotifyWhenOffline() bool {
	c := r.Active()
	if c == nil {
		return true
	}

	if c.RenderedState() == StateOfflineCollapsed {
		c.Expand()
	}

	return c.State().Offline()
}
