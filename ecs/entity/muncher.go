package entity

import (
	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
	"github.com/coldsnap/flurry/prefabs"
)

// BuildMuncher creates the muncher entity from its prefab. The behavior
// starts in the approaching phase with the arc anchored at the spawn point.
func BuildMuncher(w *ecs.World, spec prefabs.MuncherSpec) (ecs.Entity, error) {
	e := w.CreateEntity()

	tr := transformFromSpec(spec.Transform)
	if err := ecs.Add(w, e, component.TransformComponent, tr); err != nil {
		return 0, err
	}

	if err := ecs.Add(w, e, component.MuncherComponent, tuningFromSpec(spec.Tuning)); err != nil {
		return 0, err
	}

	state := component.MuncherState{
		Phase:    component.PhaseApproaching,
		Visual:   component.VisualNormal,
		ArcStart: tr.Position(),
	}
	if err := ecs.Add(w, e, component.MuncherStateComponent, state); err != nil {
		return 0, err
	}

	if err := ecs.Add(w, e, component.SpriteComponent, spriteFromSpec(spec.Sprite)); err != nil {
		return 0, err
	}

	return e, nil
}

// ApplyMuncherSpec refreshes tuning and sprite from a reloaded prefab
// without disturbing the live behavior state.
func ApplyMuncherSpec(w *ecs.World, e ecs.Entity, spec prefabs.MuncherSpec) error {
	if err := ecs.Add(w, e, component.MuncherComponent, tuningFromSpec(spec.Tuning)); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent, spriteFromSpec(spec.Sprite))
}

func tuningFromSpec(s prefabs.MuncherTuningSpec) component.Muncher {
	return component.Muncher{
		MinFlakeDistance:   s.MinFlakeDistance,
		ArcHeight:          s.ArcHeight,
		SmoothTime:         s.SmoothTime,
		Speed:              s.Speed,
		TimeBeforeMoveAway: s.TimeBeforeMoveAway,
	}
}

func transformFromSpec(s prefabs.TransformSpec) component.Transform {
	tr := component.Transform{
		X:        s.X,
		Y:        s.Y,
		Z:        s.Z,
		Rotation: s.Rotation,
		ScaleX:   s.ScaleX,
		ScaleY:   s.ScaleY,
	}
	if tr.ScaleX == 0 {
		tr.ScaleX = 1
	}
	if tr.ScaleY == 0 {
		tr.ScaleY = 1
	}
	return tr
}

func spriteFromSpec(s prefabs.SpriteSpec) component.Sprite {
	return component.Sprite{
		Radius:        s.Radius,
		Color:         s.Color,
		AttachedColor: s.AttachedColor,
	}
}
