package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
)

// RenderSystem draws every sprite-carrying entity as a filled circle with a
// heading line. It is called from the game's Draw, not from the world's
// update order.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.ID()); ok {
			r.camEntity = camEntity
		}
	}
	zoom := 32.0
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent); ok && cam.Zoom > 0 {
		zoom = cam.Zoom
	}
	screenH := float64(screen.Bounds().Dy())

	for _, ent := range w.Query(component.TransformComponent.ID(), component.SpriteComponent.ID()) {
		tr, _ := ecs.Get(w, ent, component.TransformComponent)
		sprite, _ := ecs.Get(w, ent, component.SpriteComponent)

		name := sprite.Color
		if st, ok := ecs.Get(w, ent, component.MuncherStateComponent); ok && st.Visual == component.VisualAttached {
			name = sprite.AttachedColor
		}
		col := resolveColor(name)

		// World Y points up; screen Y points down.
		sx := float32(tr.X * zoom)
		sy := float32(screenH - tr.Y*zoom)
		radius := float32(sprite.Radius * zoom)

		vector.FillCircle(screen, sx, sy, radius, col, true)

		if tr.Rotation != 0 {
			nx := sx + radius*float32(math.Cos(tr.Rotation))
			ny := sy - radius*float32(math.Sin(tr.Rotation))
			vector.StrokeLine(screen, sx, sy, nx, ny, 2, color.White, true)
		}
	}
}

func resolveColor(name string) color.Color {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.White
}
