package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
)

func newPhysicsRig(t *testing.T, muncherPos, flakePos cp.Vector) (*ecs.World, *PhysicsSystem, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	m := w.CreateEntity()
	if err := ecs.Add(w, m, component.TransformComponent, component.Transform{X: muncherPos.X, Y: muncherPos.Y}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, m, component.MuncherComponent, testTuning()); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, m, component.SpriteComponent, component.Sprite{Radius: 0.8}); err != nil {
		t.Fatal(err)
	}

	f := w.CreateEntity()
	if err := ecs.Add(w, f, component.TransformComponent, component.Transform{X: flakePos.X, Y: flakePos.Y}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, f, component.FlakeTagComponent, component.FlakeTag{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, f, component.SpriteComponent, component.Sprite{Radius: 0.5}); err != nil {
		t.Fatal(err)
	}

	return w, NewPhysicsSystem(), m
}

func TestPhysicsContactOnOverlap(t *testing.T) {
	w, ps, m := newPhysicsRig(t, cp.Vector{}, cp.Vector{X: 1})

	ps.Update(w, testDt)

	if !ecs.Has(w, m, component.ContactComponent) {
		t.Fatalf("overlapping shapes produced no contact event")
	}
}

func TestPhysicsNoContactWhenApart(t *testing.T) {
	w, ps, m := newPhysicsRig(t, cp.Vector{}, cp.Vector{X: 10})

	for i := 0; i < 5; i++ {
		ps.Update(w, testDt)
	}

	if ecs.Has(w, m, component.ContactComponent) {
		t.Fatalf("separated shapes produced a contact event")
	}
}

func TestPhysicsContactFiresOncePerTouch(t *testing.T) {
	w, ps, m := newPhysicsRig(t, cp.Vector{}, cp.Vector{X: 1})

	ps.Update(w, testDt)
	if !ecs.Has(w, m, component.ContactComponent) {
		t.Fatalf("no initial contact")
	}
	ecs.Remove(w, m, component.ContactComponent)

	// Still overlapping: the begin event must not re-fire.
	ps.Update(w, testDt)
	if ecs.Has(w, m, component.ContactComponent) {
		t.Fatalf("contact re-fired while continuously overlapping")
	}
}
