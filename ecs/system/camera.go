package system

import (
	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
)

// CameraSystem keeps the Viewport component's world rectangle in sync with
// the camera zoom and the screen size, preserving the configured padding
// fractions. Everything that samples "somewhere on screen" reads the
// viewport this system maintains.
type CameraSystem struct {
	screenW float64
	screenH float64
}

func NewCameraSystem(screenW, screenH float64) *CameraSystem {
	return &CameraSystem{screenW: screenW, screenH: screenH}
}

func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if cs == nil || w == nil {
		return
	}

	camEnt, ok := w.First(component.CameraComponent.ID())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEnt, component.CameraComponent)
	if !ok || cam.Zoom <= 0 {
		return
	}

	vp, _ := ecs.Get(w, camEnt, component.ViewportComponent)
	vp.MinX = 0
	vp.MinY = 0
	vp.MaxX = cs.screenW / cam.Zoom
	vp.MaxY = cs.screenH / cam.Zoom
	_ = ecs.Add(w, camEnt, component.ViewportComponent, vp)
}
