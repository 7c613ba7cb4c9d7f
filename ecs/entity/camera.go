package entity

import (
	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
	"github.com/coldsnap/flurry/prefabs"
)

// BuildCamera creates the camera entity carrying the viewport mapping. The
// viewport's world rectangle is filled in by the camera system each tick;
// only the padding fractions come from the prefab.
func BuildCamera(w *ecs.World, spec prefabs.CameraSpec) (ecs.Entity, error) {
	e := w.CreateEntity()

	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 32
	}
	if err := ecs.Add(w, e, component.CameraComponent, component.Camera{Zoom: zoom}); err != nil {
		return 0, err
	}

	vp := component.Viewport{
		PaddingX: spec.PaddingX,
		PaddingY: spec.PaddingY,
	}
	if err := ecs.Add(w, e, component.ViewportComponent, vp); err != nil {
		return 0, err
	}

	return e, nil
}

// ApplyCameraSpec refreshes zoom and viewport padding from a reloaded
// prefab. The viewport's world rectangle is recomputed by the camera system
// on the next tick.
func ApplyCameraSpec(w *ecs.World, e ecs.Entity, spec prefabs.CameraSpec) error {
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 32
	}
	if err := ecs.Add(w, e, component.CameraComponent, component.Camera{Zoom: zoom}); err != nil {
		return err
	}

	vp, _ := ecs.Get(w, e, component.ViewportComponent)
	vp.PaddingX = spec.PaddingX
	vp.PaddingY = spec.PaddingY
	return ecs.Add(w, e, component.ViewportComponent, vp)
}
