package ecs

import "github.com/mossfell/bossrush/ecs/component"

// CreateEntity allocates a new entity handle.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and strips all of its components.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is still valid.
func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	return w.entities.alive()
}

// Add attaches (or replaces) a component value on an entity.
func Add[T any](w *World, e Entity, k component.ComponentKind[T], v *T) error {
	if !k.Valid() {
		return component.ErrInvalidComponentKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(k.ID()).Set(e, v)
	return nil
}

// Remove detaches a component from an entity.
func Remove[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	s := w.lookup(k.ID())
	if s == nil {
		return false
	}
	return s.Remove(e)
}

// Has reports whether the entity carries the component.
func Has[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	s := w.lookup(k.ID())
	return s != nil && s.Has(e) && w.entities.isAlive(e)
}

// Get returns the entity's component value.
func Get[T any](w *World, e Entity, k component.ComponentKind[T]) (*T, bool) {
	s := w.lookup(k.ID())
	if s == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v, ok := s.Get(e).(*T)
	if !ok {
		return nil, false
	}
	return v, true
}

// First returns any one live entity carrying the component.
func First[T any](w *World, k component.ComponentKind[T]) (Entity, bool) {
	s := w.lookup(k.ID())
	if s == nil {
		return 0, false
	}
	for _, e := range s.Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every live entity carrying the component. Iteration works
// over a snapshot of the dense list, so callbacks may add or destroy
// entities without skipping or double-visiting existing entries.
func ForEach[T any](w *World, k component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.lookup(k.ID())
	if s == nil {
		return
	}
	snapshot := append([]Entity(nil), s.Entities()...)
	for _, e := range snapshot {
		if !w.entities.isAlive(e) {
			continue
		}
		if v, ok := s.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits live entities carrying both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 visits live entities carrying all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

// ForEach4 visits live entities carrying all four components.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		if d, ok := Get(w, e, kd); ok {
			fn(e, a, b, c, d)
		}
	})
}
