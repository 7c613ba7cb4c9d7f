package system

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/coldsnap/flurry/common"
	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
)

const (
	// Distance over which the approach arc grows to its full height.
	arcDistanceScale = 10.0
	// Pull-back margin around the hover radius when computing the safe
	// approach target.
	approachEpsilon = 0.1
	// Rate at which leftover integrator velocity bleeds off while hovering.
	hoverDecayRate = 5.0

	// Departing flies a taller, faster arc than approaching.
	departureApexScale   = 1.5
	departureSmoothScale = 0.8
	departureSpeedScale  = 1.2

	// Departing ends on arrival at the sampled point or once the muncher
	// has put this much distance between itself and the flake.
	departureArriveDist = 1.5
	departureEscapeDist = 15.0
)

// MuncherSystem drives the snow muncher's pursue/attach/depart cycle. Each
// tick it reads the flake's transform, advances the behavior state machine,
// and writes position, rotation, and visual state back to the muncher's
// components. It owns all mutation of MuncherState.
type MuncherSystem struct {
	rng *rand.Rand
}

// NewMuncherSystem creates the behavior system. The seed fixes the
// departure sampler, so a given seed replays the same trajectory.
func NewMuncherSystem(seed int64) *MuncherSystem {
	return &MuncherSystem{rng: rand.New(rand.NewSource(seed))}
}

// tickContext gathers everything one muncher tick operates on.
type tickContext struct {
	tuning component.Muncher
	state  *component.MuncherState
	tr     *component.Transform
	flake  cp.Vector
	vp     component.Viewport
	dt     float64
}

func (s *MuncherSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}

	flakeEnt, flakeFound := w.First(component.FlakeTagComponent.ID())
	var flakePos cp.Vector
	if flakeFound {
		ft, ok := ecs.Get(w, flakeEnt, component.TransformComponent)
		if !ok {
			flakeFound = false
		} else {
			flakePos = ft.Position()
		}
	}

	for _, ent := range w.Query(
		component.MuncherComponent.ID(),
		component.MuncherStateComponent.ID(),
		component.TransformComponent.ID(),
	) {
		// No flake to chase: skip the whole tick and try again next time.
		// Queued contact events stay queued.
		if !flakeFound {
			continue
		}

		tuning, _ := ecs.Get(w, ent, component.MuncherComponent)
		state, _ := ecs.Get(w, ent, component.MuncherStateComponent)
		tr, _ := ecs.Get(w, ent, component.TransformComponent)

		ctx := &tickContext{
			tuning: tuning,
			state:  &state,
			tr:     &tr,
			flake:  flakePos,
			vp:     s.viewport(w, flakePos),
			dt:     dt,
		}

		// Contact events queue up out-of-band and apply here, at the tick
		// boundary. A contact-triggered transition takes the whole tick;
		// the wait timer starts counting on the next one.
		if ecs.Has(w, ent, component.ContactComponent) {
			ecs.Remove(w, ent, component.ContactComponent)
			if state.Phase == component.PhaseApproaching {
				s.enterAttached(ctx)
				s.countAttach(w, flakeEnt)
				_ = ecs.Add(w, ent, component.MuncherStateComponent, state)
				_ = ecs.Add(w, ent, component.TransformComponent, tr)
				continue
			}
		}

		switch state.Phase {
		case component.PhaseApproaching:
			s.updateApproaching(ctx)
		case component.PhaseAttached:
			s.updateAttached(ctx)
		case component.PhaseDeparting:
			s.updateDeparting(ctx)
		}

		if err := ecs.Add(w, ent, component.MuncherStateComponent, state); err != nil {
			continue
		}
		_ = ecs.Add(w, ent, component.TransformComponent, tr)
	}
}

func (s *MuncherSystem) viewport(w *ecs.World, flake cp.Vector) component.Viewport {
	if ent, ok := w.First(component.ViewportComponent.ID()); ok {
		if vp, ok := ecs.Get(w, ent, component.ViewportComponent); ok {
			return vp
		}
	}
	// No camera in the world (headless tests); anything inside the escape
	// radius keeps the cycle alive.
	return component.Viewport{
		MinX: flake.X - departureEscapeDist,
		MinY: flake.Y - departureEscapeDist,
		MaxX: flake.X + departureEscapeDist,
		MaxY: flake.Y + departureEscapeDist,
	}
}

// updateApproaching chases the flake along a parabolic arc, or hovers in
// place once inside the minimum distance.
func (s *MuncherSystem) updateApproaching(ctx *tickContext) {
	st := ctx.state
	pos := ctx.tr.Position()
	dist := pos.Distance(ctx.flake)

	st.Visual = component.VisualNormal

	if dist <= ctx.tuning.MinFlakeDistance {
		// Hover: no translation, bleed off the integrator, keep facing
		// the flake so an attach looks deliberate.
		st.Velocity = st.Velocity.Mult(common.Clamp(1-hoverDecayRate*ctx.dt, 0, 1))
		ctx.tr.Rotation = common.SmoothHeading(ctx.tr.Rotation, pos, ctx.flake, ctx.dt)
		return
	}

	target := safeApproachTarget(pos, ctx.flake, ctx.tuning.MinFlakeDistance)
	apex := ctx.tuning.ArcHeight * math.Min(1, dist/arcDistanceScale)

	next, vel := common.SmoothDamp(pos, target, st.Velocity, ctx.tuning.SmoothTime, ctx.tuning.Speed, ctx.dt)
	st.Velocity = vel
	ctx.tr.SetPosition(common.ArcPoint(next, st.ArcStart, target, apex))
	ctx.tr.Rotation = common.SmoothHeading(ctx.tr.Rotation, pos, target, ctx.dt)
}

// updateAttached sits on the flake and waits out the timer.
func (s *MuncherSystem) updateAttached(ctx *tickContext) {
	st := ctx.state
	st.Visual = component.VisualAttached
	st.WaitTimer += ctx.dt
	if st.WaitTimer >= ctx.tuning.TimeBeforeMoveAway {
		s.enterDeparting(ctx)
	}
}

// updateDeparting flies toward the cached departure point on a taller,
// faster arc, then resumes the chase.
func (s *MuncherSystem) updateDeparting(ctx *tickContext) {
	st := ctx.state
	st.Visual = component.VisualNormal

	if !st.HasDepartureTarget {
		// Normally set on entry; recover if state was restored raw.
		st.DepartureTarget = SampleDeparturePoint(s.rng, ctx.flake, ctx.vp, ctx.tuning.MinFlakeDistance)
		st.HasDepartureTarget = true
	}

	pos := ctx.tr.Position()
	if pos.Distance(st.DepartureTarget) <= departureArriveDist ||
		pos.Distance(ctx.flake) > departureEscapeDist {
		s.enterApproaching(ctx)
		return
	}

	apex := ctx.tuning.ArcHeight * departureApexScale
	next, vel := common.SmoothDamp(
		pos, st.DepartureTarget, st.Velocity,
		ctx.tuning.SmoothTime*departureSmoothScale,
		ctx.tuning.Speed*departureSpeedScale,
		ctx.dt,
	)
	st.Velocity = vel
	ctx.tr.SetPosition(common.ArcPoint(next, st.ArcStart, st.DepartureTarget, apex))
	ctx.tr.Rotation = common.SmoothHeading(ctx.tr.Rotation, pos, st.DepartureTarget, ctx.dt)
}

func (s *MuncherSystem) enterAttached(ctx *tickContext) {
	st := ctx.state
	st.Phase = component.PhaseAttached
	st.Visual = component.VisualAttached
	st.WaitTimer = 0
	st.Velocity = cp.Vector{}
}

func (s *MuncherSystem) enterDeparting(ctx *tickContext) {
	st := ctx.state
	st.Phase = component.PhaseDeparting
	st.Visual = component.VisualNormal
	st.Velocity = cp.Vector{}
	st.ArcStart = ctx.tr.Position()
	st.DepartureTarget = SampleDeparturePoint(s.rng, ctx.flake, ctx.vp, ctx.tuning.MinFlakeDistance)
	st.HasDepartureTarget = true
}

func (s *MuncherSystem) enterApproaching(ctx *tickContext) {
	st := ctx.state
	st.Phase = component.PhaseApproaching
	st.Visual = component.VisualNormal
	st.Velocity = cp.Vector{}
	st.ArcStart = ctx.tr.Position()
	st.HasDepartureTarget = false
	st.DepartureTarget = cp.Vector{}
}

func (s *MuncherSystem) countAttach(w *ecs.World, flakeEnt ecs.Entity) {
	drift, ok := ecs.Get(w, flakeEnt, component.FlakeDriftComponent)
	if !ok {
		return
	}
	drift.Attaches++
	_ = ecs.Add(w, flakeEnt, component.FlakeDriftComponent, drift)
}

// safeApproachTarget is the point the approach steers toward: the flake
// itself from far away, or the flake pulled back along the line to the
// muncher once the muncher is close to the hover radius, so the damped
// move settles at the radius instead of plowing through the flake.
func safeApproachTarget(pos, flake cp.Vector, minDistance float64) cp.Vector {
	dir := flake.Sub(pos)
	d := dir.Length()
	if d*d < 1e-12 {
		return flake
	}
	if d <= minDistance+approachEpsilon {
		return flake.Sub(dir.Mult(minDistance / d))
	}
	return flake
}
