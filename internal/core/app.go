// Package core wires the daemon together: one indicator bar and controller
// per active output, a shared connectivity watcher, and the IPC surface.
package core

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gotk3/gotk3/gtk"

	"github.com/oxidane/netbar/internal/bar"
	"github.com/oxidane/netbar/internal/config"
	"github.com/oxidane/netbar/internal/connectivity"
	"github.com/oxidane/netbar/internal/indicator"
	"github.com/oxidane/netbar/internal/layout"
)

// layoutPollInterval is how often output geometry is re-read from sway.
const layoutPollInterval = 5 * time.Second

// instance is one output's bar plus its controller.
type instance struct {
	bar        *bar.Bar
	controller *indicator.Controller
	layout     indicator.LayoutContext
}

// App is the main application.
type App struct {
	config   *config.Config
	running  bool
	sigChan  chan os.Signal
	provider *layout.Provider
	watcher  *connectivity.Watcher
	registry *indicator.Registry
	ipc      *IPCServer

	instances map[string]*instance

	layoutCtx    context.Context
	layoutCancel context.CancelFunc
}

// NewApp creates a new application.
func NewApp(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		config:       cfg,
		running:      false,
		sigChan:      make(chan os.Signal, 1),
		registry:     indicator.NewRegistry(),
		instances:    make(map[string]*instance),
		layoutCtx:    ctx,
		layoutCancel: cancel,
	}, nil
}

// Run starts the application and blocks in the GTK main loop.
func (a *App) Run() error {
	a.running = true

	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-a.sigChan
		log.Printf("Received signal: %v", sig)
		bar.IdleDispatch(a.Quit)
	}()

	log.Println("netbar starting...")

	if err := a.initialize(); err != nil {
		return err
	}

	gtk.Main()
	return nil
}

func (a *App) initialize() error {
	log.Println("Initializing components...")

	gtk.Init(nil)
	bar.SetupStyles(a.config)

	provider, err := layout.NewProvider(a.config.Bar.WideThreshold)
	if err != nil {
		return err
	}
	a.provider = provider

	a.watcher = connectivity.NewWatcher(
		a.config.Connectivity.Command,
		a.config.PollInterval(),
		bar.IdleDispatch,
	)

	contexts, err := a.provider.Refresh(a.layoutCtx)
	if err != nil {
		log.Printf("Failed to query outputs: %v", err)
		contexts = nil
	}
	for _, lc := range contexts {
		a.addInstance(lc)
	}
	if len(a.instances) == 0 {
		log.Printf("No active outputs found, waiting for one to appear")
	}

	if err := a.watcher.Start(); err != nil {
		log.Printf("Failed to start connectivity watcher: %v", err)
	}

	go a.watchLayout()

	ipc := NewIPCServer(a, a.config)
	if err := ipc.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
	} else {
		a.ipc = ipc
	}

	log.Println("Initialization complete")
	return nil
}

// addInstance creates the bar and controller for one output. Main loop only.
func (a *App) addInstance(lc indicator.LayoutContext) {
	b, err := bar.New(a.config, lc.Output)
	if err != nil {
		log.Printf("Failed to create bar for output %s: %v", lc.Output, err)
		return
	}

	ctrl := indicator.NewController(a.registry, indicator.Options{
		Scheduler:     bar.MainLoopScheduler{},
		View:          b,
		Delegate:      &visibilityDelegate{prefs: a.config.Preferences()},
		Orientation:   a.provider.Landscape,
		Layout:        lc,
		DebounceDelay: a.config.DebounceDelay(),
		CollapseDelay: a.config.CollapseDelay(),
		Explain:       b.ShowExplanation,
		Current:       a.watcher.Current,
		Subscribe:     a.watcher.Subscribe,
	})

	b.SetTapHandler(ctrl.OnTap)
	ctrl.OnAppear()

	a.instances[lc.Output] = &instance{bar: b, controller: ctrl, layout: lc}
	log.Printf("[CORE] Indicator attached to output %s (%dx%d)", lc.Output, lc.Width, lc.Height)
}

// removeInstance tears down one output's bar and controller. Main loop only.
func (a *App) removeInstance(name string) {
	inst, ok := a.instances[name]
	if !ok {
		return
	}
	delete(a.instances, name)

	inst.controller.Dispose()
	inst.bar.Destroy()
	log.Printf("[CORE] Indicator detached from output %s", name)
}

// watchLayout periodically re-reads output geometry and reconciles the
// instance set on the main loop.
func (a *App) watchLayout() {
	ticker := time.NewTicker(layoutPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.layoutCtx.Done():
			return
		case <-ticker.C:
		}

		contexts, err := a.provider.Refresh(a.layoutCtx)
		if err != nil {
			log.Printf("Failed to refresh outputs: %v", err)
			continue
		}

		bar.IdleDispatch(func() {
			a.reconcileOutputs(contexts)
		})
	}
}

// reconcileOutputs applies a fresh output snapshot: new outputs get an
// instance, vanished outputs lose theirs, and geometry changes are forwarded
// to the controller. Main loop only.
func (a *App) reconcileOutputs(contexts []indicator.LayoutContext) {
	if !a.running {
		return
	}

	seen := make(map[string]bool, len(contexts))
	for _, lc := range contexts {
		seen[lc.Output] = true

		inst, ok := a.instances[lc.Output]
		if !ok {
			a.addInstance(lc)
			continue
		}
		if inst.layout != lc {
			inst.layout = lc
			inst.controller.OnLayoutChange(lc)
		}
	}

	for name := range a.instances {
		if !seen[name] {
			a.removeInstance(name)
		}
	}
}

// Quit gracefully quits the application. Main loop only.
func (a *App) Quit() {
	if !a.running {
		return
	}
	a.running = false

	log.Println("Shutting down...")

	a.layoutCancel()

	if a.ipc != nil {
		a.ipc.Stop()
	}

	if a.watcher != nil {
		a.watcher.Stop()
	}

	for name := range a.instances {
		a.removeInstance(name)
	}

	gtk.MainQuit()
}

// Registry exposes the controller registry to the IPC surface.
func (a *App) Registry() *indicator.Registry {
	return a.registry
}

// GetConfig returns the application config.
func (a *App) GetConfig() *config.Config {
	return a.config
}

// visibilityDelegate feeds the configured visibility preferences to the
// controllers and logs forced height changes.
type visibilityDelegate struct {
	prefs *indicator.Preferences
}

func (d *visibilityDelegate) Preferences() *indicator.Preferences {
	return d.prefs
}

func (d *visibilityDelegate) DidChangeHeight(c *indicator.Controller, animated bool, state indicator.State) {
	log.Printf("[CORE] Indicator on %s forced to %v by layout change", c.Layout().Output, state)
}
