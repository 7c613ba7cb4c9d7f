package ecs

import (
	"errors"

	"github.com/coldsnap/flurry/ecs/component"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

// System advances one concern of the simulation by dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities, component tables, and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity handle.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

// IsAlive reports whether a handle still resolves.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// SetComponent attaches or replaces a component value on an entity.
func (w *World) SetComponent(e Entity, id component.ComponentID, v any) error {
	if !w.IsAlive(e) {
		return ErrEntityNotAlive
	}
	w.store(id, true).Set(e, v)
	return nil
}

// GetComponent returns the raw component value for an entity.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s := w.store(id, false)
	if s == nil || !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

// RemoveComponent detaches a component from an entity.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	s := w.store(id, false)
	return s != nil && s.Remove(e)
}

// HasComponent reports whether the entity carries the component.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	s := w.store(id, false)
	return w.IsAlive(e) && s != nil && s.Has(e)
}

// Query returns the entities carrying every listed component, iterating the
// smallest table.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if len(ids) == 0 {
		return nil
	}
	smallest := w.store(ids[0], false)
	if smallest == nil {
		return nil
	}
	for _, id := range ids[1:] {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
entities:
	for _, e := range smallest.Entities() {
		for _, id := range ids {
			if s := w.store(id, false); s == nil || !s.Has(e) {
				continue entities
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns an arbitrary entity carrying the component, if any.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	s := w.store(id, false)
	if s == nil || s.Len() == 0 {
		return 0, false
	}
	return s.Entities()[0], true
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s != nil {
		w.systems = append(w.systems, s)
	}
}

// Update advances every system once by dt seconds.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}
