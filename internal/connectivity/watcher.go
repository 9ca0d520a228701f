// Package connectivity observes the host's network connectivity and turns it
// into raw signals for the indicator controllers.
package connectivity

import (
	"context"
	"errors"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/oxidane/netbar/internal/indicator"
)

// DefaultCommand asks NetworkManager for the current connectivity level.
const DefaultCommand = "nmcli networking connectivity check"

// DefaultInterval is the poll cadence.
const DefaultInterval = 5 * time.Second

var (
	ErrAlreadyRunning = errors.New("connectivity watcher is already running")
	ErrStopped        = errors.New("connectivity watcher has been stopped")
)

// DispatchFunc marshals a callback onto the UI loop. Subscribers are always
// notified through it so controller mutations stay on the cooperative
// context.
type DispatchFunc func(func())

// Watcher polls a connectivity command and fans observed transitions out to
// its subscribers. One subscription per controller; the returned unsubscribe
// is invoked on controller disposal.
type Watcher struct {
	command  string
	interval time.Duration
	dispatch DispatchFunc

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	subs    map[int]func(indicator.Signal)
	nextSub int
	last    indicator.Signal
	known   bool
	running bool
	stopped bool
}

// NewWatcher creates a watcher. Empty command and zero interval fall back to
// the defaults; dispatch must not be nil.
func NewWatcher(command string, interval time.Duration, dispatch DispatchFunc) *Watcher {
	if command == "" {
		command = DefaultCommand
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		command:  command,
		interval: interval,
		dispatch: dispatch,
		ctx:      ctx,
		cancel:   cancel,
		subs:     make(map[int]func(indicator.Signal)),
	}
}

// Start begins polling in the background. The lifecycle is one-shot: a
// stopped watcher cannot be started again.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrStopped
	}
	if w.running {
		return ErrAlreadyRunning
	}
	w.running = true

	go w.loop()

	log.Printf("[CONNECTIVITY] Watcher started (command: %q, interval: %v)", w.command, w.interval)
	return nil
}

// Stop stops polling. Idempotent.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	w.stopped = true
	w.cancel()

	log.Printf("[CONNECTIVITY] Watcher stopped")
}

// Subscribe registers fn for signal transitions and returns its unsubscribe.
// Unsubscribing twice is harmless.
func (w *Watcher) Subscribe(fn func(indicator.Signal)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Current returns the most recent observation; ok is false before the first
// successful poll.
func (w *Watcher) Current() (indicator.Signal, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, w.known
}

func (w *Watcher) loop() {
	w.observe(w.pollOnce())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.observe(w.pollOnce())
		}
	}
}

// pollOnce runs the connectivity command and classifies its output. A
// failing command reads as offline.
func (w *Watcher) pollOnce() indicator.Signal {
	cmd := exec.Command("sh", "-c", w.command)
	output, err := cmd.Output()
	if err != nil {
		return indicator.SignalOffline
	}
	return Classify(string(output))
}

// observe records the observation and, when it differs from the previous
// one, notifies subscribers on the UI loop.
func (w *Watcher) observe(sig indicator.Signal) {
	w.mu.Lock()
	changed := !w.known || w.last != sig
	w.last = sig
	w.known = true

	var targets []func(indicator.Signal)
	if changed {
		targets = make([]func(indicator.Signal), 0, len(w.subs))
		for _, fn := range w.subs {
			targets = append(targets, fn)
		}
	}
	w.mu.Unlock()

	if !changed {
		return
	}

	log.Printf("[CONNECTIVITY] Signal changed to %v", sig)

	for _, fn := range targets {
		fn := fn
		w.dispatch(func() { fn(sig) })
	}
}

// Classify maps a connectivity command's output to a signal. NetworkManager
// reports full, limited, portal, none or unknown; anything unrecognized is
// treated as offline.
func Classify(output string) indicator.Signal {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "full":
		return indicator.SignalOnline
	case "limited", "portal":
		return indicator.SignalSynchronizing
	default:
		return indicator.SignalOffline
	}
}
