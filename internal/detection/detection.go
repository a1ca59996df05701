// Package detection produces the readiness signal that gates capture. The
// current source is a timer simulation; the Source boundary exists so a
// real document/face detector can replace it without touching the capture
// workflow.
package detection

// State is the qualitative readiness of the subject inside the guide
// region.
type State string

const (
	StatePositioning State = "positioning"
	StateAligning    State = "aligning"
	StateReady       State = "ready"
)

// Source yields the current detection state. It is the only signal the
// capture workflow consumes from this package.
type Source interface {
	State() State
}

// next returns the state following s in the simulated cycle.
func (s State) next() State {
	switch s {
	case StatePositioning:
		return StateAligning
	case StateAligning:
		return StateReady
	default:
		return StatePositioning
	}
}
