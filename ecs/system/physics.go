package system

import (
	"github.com/jakecoffman/cp"

	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
)

const (
	collisionTypeMuncher cp.CollisionType = iota + 1
	collisionTypeFlake
)

// PhysicsSystem owns the chipmunk space that detects muncher/flake contact.
// Bodies mirror the entities' transforms (the behavior system moves the
// muncher, not the solver), and the shapes are sensors: the only output of
// this system is the queued Contact component the behavior system consumes
// at its next tick boundary.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	bodies map[ecs.Entity]*cp.Body
	owners map[*cp.Shape]ecs.Entity

	pending []ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	return &PhysicsSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*cp.Body),
		owners: make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || w == nil || dt <= 0 {
		return
	}

	ps.ensureHandlers()
	ps.syncBodies(w)

	ps.space.Step(dt)

	// Deliver contacts collected during the step. Applying them here keeps
	// them out of the middle of a behavior tick.
	for _, ent := range ps.pending {
		if w.IsAlive(ent) {
			_ = ecs.Add(w, ent, component.ContactComponent, component.Contact{})
		}
	}
	ps.pending = ps.pending[:0]
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	handler := ps.space.NewCollisionHandler(collisionTypeMuncher, collisionTypeFlake)
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, _ interface{}) bool {
		a, _ := arb.Shapes()
		if ent, ok := ps.owners[a]; ok {
			ps.pending = append(ps.pending, ent)
		}
		return true
	}
	ps.handlersReady = true
}

// syncBodies creates bodies for new muncher/flake entities and keeps all
// body positions in lockstep with the transforms.
func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	for _, ent := range w.Query(component.MuncherComponent.ID(), component.TransformComponent.ID()) {
		ps.syncEntity(w, ent, collisionTypeMuncher)
	}
	for _, ent := range w.Query(component.FlakeTagComponent.ID(), component.TransformComponent.ID()) {
		ps.syncEntity(w, ent, collisionTypeFlake)
	}

	for ent, body := range ps.bodies {
		if w.IsAlive(ent) {
			continue
		}
		for _, shape := range ps.shapesOf(body) {
			ps.space.RemoveShape(shape)
			delete(ps.owners, shape)
		}
		ps.space.RemoveBody(body)
		delete(ps.bodies, ent)
	}
}

func (ps *PhysicsSystem) syncEntity(w *ecs.World, ent ecs.Entity, ctype cp.CollisionType) {
	tr, ok := ecs.Get(w, ent, component.TransformComponent)
	if !ok {
		return
	}

	body, exists := ps.bodies[ent]
	if !exists {
		radius := 0.5
		if sprite, ok := ecs.Get(w, ent, component.SpriteComponent); ok && sprite.Radius > 0 {
			radius = sprite.Radius
		}

		// The muncher body is dynamic so the space reports its contacts
		// against the kinematic flake; it carries no forces of its own.
		if ctype == collisionTypeMuncher {
			body = cp.NewBody(1, cp.MomentForCircle(1, 0, radius, cp.Vector{}))
		} else {
			body = cp.NewKinematicBody()
		}
		ps.space.AddBody(body)

		shape := ps.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
		shape.SetSensor(true)
		shape.SetCollisionType(ctype)

		ps.bodies[ent] = body
		ps.owners[shape] = ent
	}

	body.SetPosition(tr.Position())
	body.SetVelocityVector(cp.Vector{})
}

func (ps *PhysicsSystem) shapesOf(body *cp.Body) []*cp.Shape {
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	return shapes
}
