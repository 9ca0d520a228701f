// Package layer wraps the gtk-layer-shell calls the indicator bar needs to
// anchor itself to an output edge.
package layer

/*
#cgo pkg-config: gtk-layer-shell-0
#include <gtk-layer-shell.h>
#include <stdlib.h>
*/
import "C"
import "unsafe"

// Layer is a layer shell stacking layer.
type Layer int

const (
	LayerBackground Layer = 0
	LayerBottom     Layer = 1
	LayerTop        Layer = 2
	LayerOverlay    Layer = 3
)

// Edge is a screen edge.
type Edge int

const (
	EdgeLeft   Edge = 0
	EdgeRight  Edge = 1
	EdgeTop    Edge = 2
	EdgeBottom Edge = 3
)

// KeyboardMode is the keyboard interactivity mode of a layer surface.
type KeyboardMode int

const (
	KeyboardModeNone      KeyboardMode = 0
	KeyboardModeExclusive KeyboardMode = 1
	KeyboardModeOnDemand  KeyboardMode = 2
)

// InitForWindow turns a GTK window into a layer shell surface. Must be
// called before the window is mapped.
func InitForWindow(window unsafe.Pointer) {
	C.gtk_layer_init_for_window((*C.GtkWindow)(window))
}

// SetNamespace names the layer surface for compositor rules.
func SetNamespace(window unsafe.Pointer, namespace string) {
	cstr := C.CString(namespace)
	defer C.free(unsafe.Pointer(cstr))
	C.gtk_layer_set_namespace((*C.GtkWindow)(window), cstr)
}

// SetLayer places the surface on a stacking layer.
func SetLayer(window unsafe.Pointer, layer Layer) {
	C.gtk_layer_set_layer((*C.GtkWindow)(window), C.GtkLayerShellLayer(layer))
}

// SetAnchor anchors (or releases) the surface to a screen edge.
func SetAnchor(window unsafe.Pointer, edge Edge, anchorTo bool) {
	var anchor C.gboolean
	if anchorTo {
		anchor = 1
	}
	C.gtk_layer_set_anchor((*C.GtkWindow)(window), C.GtkLayerShellEdge(edge), anchor)
}

// SetExclusiveZone reserves space so other windows do not overlap the bar.
func SetExclusiveZone(window unsafe.Pointer, zone int) {
	C.gtk_layer_set_exclusive_zone((*C.GtkWindow)(window), C.int(zone))
}

// SetMargin sets the margin for a specific edge.
func SetMargin(window unsafe.Pointer, edge Edge, margin int) {
	C.gtk_layer_set_margin((*C.GtkWindow)(window), C.GtkLayerShellEdge(edge), C.int(margin))
}

// SetKeyboardMode sets the keyboard interactivity mode.
func SetKeyboardMode(window unsafe.Pointer, mode KeyboardMode) {
	C.gtk_layer_set_keyboard_mode((*C.GtkWindow)(window), C.GtkLayerShellKeyboardMode(mode))
}
