package bar

// animator holds the goal of the height slide. The target may be replaced
// while a slide is in flight; the single running loop converges on whatever
// the target is at each tick.
type animator struct {
	target  int
	running bool
}

// step advances one tick from current and reports whether the slide reached
// the target.
func (a *animator) step(current int) (next int, done bool) {
	switch {
	case current < a.target:
		next = minInt(current+animationStepPx, a.target)
	case current > a.target:
		next = maxInt(current-animationStepPx, a.target)
	default:
		next = current
	}
	return next, next == a.target
}
