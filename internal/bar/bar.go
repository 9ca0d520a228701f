// Package bar renders the connectivity indicator as a layer-shell bar
// anchored to the top edge of an output.
package bar

import (
	"fmt"
	"unsafe"

	"github.com/gotk3/gotk3/gtk"

	"github.com/oxidane/netbar/internal/config"
	"github.com/oxidane/netbar/internal/indicator"
	"github.com/oxidane/netbar/internal/layer"
)

const animationStepPx = 4

// Bar is the render target for one controller. It tracks the state it last
// rendered, which the controller reads back for tap handling and the global
// offline query.
//
// All methods must be called on the GTK main loop.
type Bar struct {
	cfg    *config.Config
	output string

	window *gtk.Window
	label  *gtk.Label

	state         indicator.State
	onTap         func()
	currentHeight int
	anim          animator
}

// New creates a hidden bar window for the given output.
func New(cfg *config.Config, output string) (*Bar, error) {
	b := &Bar{
		cfg:    cfg,
		output: output,
		state:  indicator.StateUnset,
	}

	if err := b.createWindow(); err != nil {
		return nil, err
	}
	b.setupLayerShell()

	return b, nil
}

func (b *Bar) createWindow() error {
	win, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return fmt.Errorf("failed to create bar window: %w", err)
	}

	win.SetTitle(b.cfg.AppName)
	win.SetName("netbar")
	win.SetResizable(false)
	win.SetDecorated(false)

	box, err := gtk.EventBoxNew()
	if err != nil {
		return fmt.Errorf("failed to create event box: %w", err)
	}

	label, err := gtk.LabelNew("")
	if err != nil {
		return fmt.Errorf("failed to create label: %w", err)
	}

	box.Add(label)
	win.Add(box)

	box.Connect("button-press-event", func() {
		if b.onTap != nil {
			b.onTap()
		}
	})

	b.window = win
	b.label = label

	return nil
}

func (b *Bar) setupLayerShell() {
	// TODO: pin the surface to its output's monitor with
	// gtk_layer_set_monitor once the sway-name to GdkMonitor mapping is
	// sorted out; until then the compositor picks the monitor.
	obj := unsafe.Pointer(b.window.GObject)
	layer.InitForWindow(obj)
	layer.SetNamespace(obj, "netbar")
	layer.SetLayer(obj, layer.LayerTop)
	layer.SetKeyboardMode(obj, layer.KeyboardModeNone)
	layer.SetAnchor(obj, layer.EdgeLeft, true)
	layer.SetAnchor(obj, layer.EdgeRight, true)
	layer.SetAnchor(obj, layer.EdgeTop, true)
	layer.SetMargin(obj, layer.EdgeTop, 0)
	layer.SetExclusiveZone(obj, 0)
}

// Output returns the output name this bar is attached to.
func (b *Bar) Output() string {
	return b.output
}

// SetTapHandler installs the tap callback.
func (b *Bar) SetTapHandler(fn func()) {
	b.onTap = fn
}

// State returns the last rendered state.
func (b *Bar) State() indicator.State {
	return b.state
}

// Height returns the bar's current height in pixels.
func (b *Bar) Height() int {
	return b.currentHeight
}

// Update renders a presentation state. Redundant updates are suppressed by
// state equality; the height change slides when animated and jumps
// otherwise.
func (b *Bar) Update(state indicator.State, animated bool) {
	if state == b.state {
		return
	}
	b.state = state

	text, class, target := b.presentation(state)

	b.label.SetText(text)
	b.applyClass(class)

	if target > 0 {
		b.window.ShowAll()
	}

	if animated {
		b.animateTo(target)
	} else {
		b.anim.target = target
		b.setHeight(target)
		if target == 0 && !b.anim.running {
			b.window.Hide()
		}
	}
}

// presentation maps a state to the bar's text, CSS class and height.
func (b *Bar) presentation(state indicator.State) (text, class string, height int) {
	switch state {
	case indicator.StateOfflineExpanded:
		return b.cfg.Bar.OfflineText, "netbar-offline", b.cfg.Bar.Height
	case indicator.StateOfflineCollapsed:
		return "", "netbar-offline", b.cfg.Bar.CollapsedHeight
	case indicator.StateSynchronizing:
		return b.cfg.Bar.SynchronizingText, "netbar-syncing", b.cfg.Bar.Height
	default:
		return "", "", 0
	}
}

func (b *Bar) applyClass(class string) {
	ctx, err := b.window.GetStyleContext()
	if err != nil {
		return
	}

	ctx.RemoveClass("netbar-offline")
	ctx.RemoveClass("netbar-syncing")
	if class != "" {
		ctx.AddClass(class)
	}
}

func (b *Bar) setHeight(height int) {
	b.currentHeight = height
	b.window.SetSizeRequest(-1, height)
	layer.SetExclusiveZone(unsafe.Pointer(b.window.GObject), height)
}

// animateTo slides the bar height toward target on the main loop. Only one
// timeout loop ever runs; a slide requested while one is in flight retargets
// the running loop instead of starting a second one.
func (b *Bar) animateTo(target int) {
	b.anim.target = target
	if b.anim.running {
		return
	}
	b.anim.running = true

	timeoutAdd(16, func() bool {
		next, done := b.anim.step(b.currentHeight)
		if next != b.currentHeight {
			b.setHeight(next)
		}
		if !done {
			return true
		}

		b.anim.running = false
		if b.anim.target == 0 {
			b.window.Hide()
		}
		return false
	})
}

// Destroy tears the window down.
func (b *Bar) Destroy() {
	if b.window != nil {
		b.window.Destroy()
		b.window = nil
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
