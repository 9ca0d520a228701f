package indicator

// LayoutContext describes the host output the indicator lives on.
type LayoutContext struct {
	// Output is the compositor output name (e.g. "eDP-1").
	Output string
	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int
	// Wide marks a regular-width output where indicator visibility becomes
	// conditional on the configured preferences. On compact outputs the
	// indicator always renders.
	Wide bool
}

// Size is an explicit size hint passed alongside a layout change. The zero
// value means no hint.
type Size struct {
	Width  int
	Height int
}

// Preferences are the delegate-supplied visibility preferences for wide
// outputs.
type Preferences struct {
	AllowLandscape bool
	AllowPortrait  bool
}

// OrientationFunc is the ambient orientation query used when no explicit
// size hint is available. It returns true for landscape.
type OrientationFunc func() bool

// Policy decides whether the indicator should render at all for a given
// layout context. Pure aside from the ambient orientation fallback.
type Policy struct {
	landscape OrientationFunc
}

// NewPolicy creates a policy with the given ambient orientation query. A nil
// query is treated as portrait.
func NewPolicy(landscape OrientationFunc) *Policy {
	return &Policy{landscape: landscape}
}

// ShouldRender reports whether the indicator should render.
//
// Compact outputs always render. Absent preferences the policy fails open and
// renders. Otherwise orientation comes from the size hint when one is given
// (landscape iff width > height), falling back to the ambient query, and the
// matching preference decides.
func (p *Policy) ShouldRender(ctx LayoutContext, hint Size, prefs *Preferences) bool {
	if !ctx.Wide {
		return true
	}

	if prefs == nil {
		return true
	}

	landscape := false
	if hint.Width > 0 {
		landscape = hint.Width > hint.Height
	} else if p.landscape != nil {
		landscape = p.landscape()
	}

	if landscape {
		return prefs.AllowLandscape
	}
	return prefs.AllowPortrait
}
