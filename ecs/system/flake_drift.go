package system

import (
	"math"
	"math/rand"

	"github.com/coldsnap/flurry/common"
	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
)

// FlakeDriftSystem wanders the flake around its base point on two
// sinusoids so the muncher always has a moving target, and relocates the
// base point after the flake has been munched on enough times.
type FlakeDriftSystem struct {
	rng *rand.Rand
}

func NewFlakeDriftSystem(seed int64) *FlakeDriftSystem {
	return &FlakeDriftSystem{rng: rand.New(rand.NewSource(seed))}
}

func (s *FlakeDriftSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}

	for _, ent := range w.Query(
		component.FlakeTagComponent.ID(),
		component.FlakeDriftComponent.ID(),
		component.TransformComponent.ID(),
	) {
		drift, _ := ecs.Get(w, ent, component.FlakeDriftComponent)
		tr, _ := ecs.Get(w, ent, component.TransformComponent)

		if drift.RelocateAfter > 0 && drift.Attaches >= drift.RelocateAfter {
			s.relocate(w, &drift)
		}

		drift.Elapsed += dt
		tr.X = drift.BaseX + drift.AmplitudeX*math.Sin(drift.Elapsed*drift.SpeedX)
		tr.Y = drift.BaseY + drift.AmplitudeY*math.Sin(drift.Elapsed*drift.SpeedY)

		_ = ecs.Add(w, ent, component.FlakeDriftComponent, drift)
		_ = ecs.Add(w, ent, component.TransformComponent, tr)
	}
}

func (s *FlakeDriftSystem) relocate(w *ecs.World, drift *component.FlakeDrift) {
	drift.Attaches = 0

	vpEnt, ok := w.First(component.ViewportComponent.ID())
	if !ok {
		return
	}
	vp, ok := ecs.Get(w, vpEnt, component.ViewportComponent)
	if !ok {
		return
	}
	p := vp.WorldPoint(
		common.Lerp(vp.PaddingX, 1-vp.PaddingX, s.rng.Float64()),
		common.Lerp(vp.PaddingY, 1-vp.PaddingY, s.rng.Float64()),
	)
	drift.BaseX = p.X
	drift.BaseY = p.Y
}
