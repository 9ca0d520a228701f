package indicator

// Signal is a raw connectivity observation delivered by the connectivity
// watcher.
type Signal int

const (
	SignalOffline Signal = iota
	SignalOnline
	SignalSynchronizing
)

// String returns the string representation of Signal
func (s Signal) String() string {
	switch s {
	case SignalOffline:
		return "offline"
	case SignalOnline:
		return "online"
	case SignalSynchronizing:
		return "synchronizing"
	default:
		return "unknown"
	}
}

// State is a discrete presentation state of the indicator bar. States are
// mutually exclusive; equality is used to suppress redundant renders and to
// gate timer restarts.
type State int

const (
	// StateUnset means no observation has been applied yet.
	StateUnset State = iota
	StateOnline
	StateSynchronizing
	StateOfflineExpanded
	StateOfflineCollapsed
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateOnline:
		return "online"
	case StateSynchronizing:
		return "synchronizing"
	case StateOfflineExpanded:
		return "offline-expanded"
	case StateOfflineCollapsed:
		return "offline-collapsed"
	default:
		return "unknown"
	}
}

// Offline reports whether the state is one of the offline presentations.
func (s State) Offline() bool {
	return s == StateOfflineExpanded || s == StateOfflineCollapsed
}

// MapSignal maps a raw connectivity signal to its presentation state.
// An offline signal always maps to the expanded presentation; the collapsed
// form is only ever reached through the auto-collapse timer or a tap.
func MapSignal(sig Signal) State {
	switch sig {
	case SignalOffline:
		return StateOfflineExpanded
	case SignalOnline:
		return StateOnline
	case SignalSynchronizing:
		return StateSynchronizing
	default:
		// Unreachable for the closed enum. A value from outside it is a
		// contract violation; the mapper stays pure and degrades to the
		// benign online presentation rather than failing.
		return StateOnline
	}
}
