package component

import "github.com/jakecoffman/cp"

// Muncher holds the construction-time tuning for the snow muncher's
// behavior. All values are world units and seconds.
type Muncher struct {
	MinFlakeDistance   float64
	ArcHeight          float64
	SmoothTime         float64
	Speed              float64
	TimeBeforeMoveAway float64
}

var MuncherComponent = NewComponent[Muncher]()

// BehaviorPhase is the muncher's current mode.
type BehaviorPhase int

const (
	PhaseApproaching BehaviorPhase = iota
	PhaseAttached
	PhaseDeparting
)

func (p BehaviorPhase) String() string {
	switch p {
	case PhaseApproaching:
		return "approaching"
	case PhaseAttached:
		return "attached"
	case PhaseDeparting:
		return "departing"
	}
	return "unknown"
}

// VisualState is what the renderer should show; the behavior core never
// touches sprites directly.
type VisualState int

const (
	VisualNormal VisualState = iota
	VisualAttached
)

// MuncherState is the mutable half of the muncher: phase, the damped
// integrator's velocity state, the wait timer that runs while attached, and
// the departure point cached for the length of one departing episode.
type MuncherState struct {
	Phase    BehaviorPhase
	Visual   VisualState
	Velocity cp.Vector

	WaitTimer float64

	// ArcStart anchors the parabolic path for the current episode; it is
	// reset whenever the phase changes.
	ArcStart cp.Vector

	DepartureTarget    cp.Vector
	HasDepartureTarget bool
}

var MuncherStateComponent = NewComponent[MuncherState]()
