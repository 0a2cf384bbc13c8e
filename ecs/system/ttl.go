package system

import (
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

// TTLSystem destroys entities whose lifetime ran out and fades hit flashes.
type TTLSystem struct{}

func (TTLSystem) Update(w *ecs.World, dt float64) {
	var expired []ecs.Entity
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds <= 0 {
			expired = append(expired, e)
		}
	})
	for _, e := range expired {
		ReleaseOwned(w, e)
		ecs.DestroyEntity(w, e)
	}

	ecs.ForEach(w, component.HitFlashComponent.Kind(), func(e ecs.Entity, f *component.HitFlash) {
		f.Remaining -= dt
		if f.Remaining <= 0 {
			ecs.Remove(w, e, component.HitFlashComponent.Kind())
		}
	})
}
