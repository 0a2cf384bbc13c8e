package system

import (
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

const minionHitCooldown = 1.0

// MinionSystem drives boss-owned adds: mobile roles chase the player and
// bite on contact, platforms hold position. Defeated minions are destroyed
// outright; nothing lingers.
type MinionSystem struct{}

func (MinionSystem) Update(w *ecs.World, dt float64) {
	target, hasTarget := playerPosition(w)
	ptr, _ := playerTransform(w)

	var dead []ecs.Entity
	ecs.ForEach2(w, component.MinionComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, m *component.Minion, tr *component.Transform) {
			if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && hp.Current <= 0 {
				dead = append(dead, e)
				return
			}
			m.SinceHit += dt
			if !hasTarget || m.MoveSpeed <= 0 {
				return
			}
			to := target.Sub(tr.Pos)
			dist := to.Length()
			if dist > tr.Radius+ptr.Radius {
				tr.Pos = clampToArena(w.Arena(), tr.Pos.Add(to.Normalize().Mult(m.MoveSpeed*dt)))
				return
			}
			if m.ContactDamage > 0 && m.SinceHit >= minionHitCooldown {
				m.SinceHit = 0
				DamagePlayer(w, m.ContactDamage)
				// Phantoms burn out on their single strike.
				if m.Role == component.RolePhantom {
					dead = append(dead, e)
				}
			}
		})
	for _, e := range dead {
		w.PlaySound("minion_down", 0.4)
		ecs.DestroyEntity(w, e)
	}
}
