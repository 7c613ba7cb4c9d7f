package entity

import (
	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
	"github.com/coldsnap/flurry/prefabs"
)

// BuildFlake creates the snowflake entity, drifting around its spawn point.
func BuildFlake(w *ecs.World, spec prefabs.FlakeSpec) (ecs.Entity, error) {
	e := w.CreateEntity()

	tr := transformFromSpec(spec.Transform)
	if err := ecs.Add(w, e, component.TransformComponent, tr); err != nil {
		return 0, err
	}

	if err := ecs.Add(w, e, component.FlakeTagComponent, component.FlakeTag{}); err != nil {
		return 0, err
	}

	drift := component.FlakeDrift{
		BaseX:         tr.X,
		BaseY:         tr.Y,
		AmplitudeX:    spec.Drift.AmplitudeX,
		AmplitudeY:    spec.Drift.AmplitudeY,
		SpeedX:        spec.Drift.SpeedX,
		SpeedY:        spec.Drift.SpeedY,
		RelocateAfter: spec.Drift.RelocateAfter,
	}
	if err := ecs.Add(w, e, component.FlakeDriftComponent, drift); err != nil {
		return 0, err
	}

	if err := ecs.Add(w, e, component.SpriteComponent, spriteFromSpec(spec.Sprite)); err != nil {
		return 0, err
	}

	return e, nil
}

// ApplyFlakeSpec refreshes the drift shape and sprite from a reloaded
// prefab. The drift base, elapsed time, and attach count carry over so the
// flake does not jump on reload.
func ApplyFlakeSpec(w *ecs.World, e ecs.Entity, spec prefabs.FlakeSpec) error {
	if drift, ok := ecs.Get(w, e, component.FlakeDriftComponent); ok {
		drift.AmplitudeX = spec.Drift.AmplitudeX
		drift.AmplitudeY = spec.Drift.AmplitudeY
		drift.SpeedX = spec.Drift.SpeedX
		drift.SpeedY = spec.Drift.SpeedY
		drift.RelocateAfter = spec.Drift.RelocateAfter
		if err := ecs.Add(w, e, component.FlakeDriftComponent, drift); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.SpriteComponent, spriteFromSpec(spec.Sprite))
}
