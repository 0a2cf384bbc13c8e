package system

import (
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

// ProjectileSystem advances pooled projectiles, resolves their hits, and
// compacts the pool. Iteration is bounded by a snapshot of the live count so
// projectiles spawned mid-pass (lob impacts chaining into spreads) wait for
// the next tick.
type ProjectileSystem struct{}

func (ProjectileSystem) Update(w *ecs.World, dt float64) {
	pool := w.Projectiles()
	if pool == nil {
		return
	}
	playerPos, hasPlayer := playerPosition(w)
	ptr, _ := playerTransform(w)

	live := pool.Live()
	for i := 0; i < len(live); i++ {
		p := live[i]
		if !p.Live {
			continue
		}
		if p.Lob != nil {
			advanceLob(w, p, dt)
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Mult(dt))
		p.TTL -= dt
		if p.TTL <= 0 || !w.Arena().ContainsVect(p.Pos) {
			p.Live = false
			continue
		}
		if p.FromBoss {
			if hasPlayer && playerPos.Sub(p.Pos).Length() <= p.Radius+ptr.Radius {
				DamagePlayer(w, p.Damage)
				p.Live = false
			}
			continue
		}
		hitBoss(w, p)
		if p.Live {
			hitMinion(w, p)
		}
	}
	pool.Compact()
}

// advanceLob moves a mortar shell along its arc and detonates at the
// precomputed impact point when the flight completes.
func advanceLob(w *ecs.World, p *component.Projectile, dt float64) {
	p.Lob.Elapsed += dt
	pos, _ := p.Lob.At()
	p.Pos = pos
	if !p.Lob.Done() {
		return
	}
	hitPlayerInRadius(w, p.Lob.End, p.Radius, p.Damage)
	w.PlaySound("impact", 0.8)
	p.Live = false
}

// hitBoss applies a player projectile to the first boss it overlaps.
func hitBoss(w *ecs.World, p *component.Projectile) {
	ecs.ForEach2(w, component.BossComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.Boss, tr *component.Transform) {
			if !p.Live {
				return
			}
			if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && hp.Defeated {
				return
			}
			if tr.Pos.Sub(p.Pos).Length() <= p.Radius+tr.Radius {
				ApplyDamage(w, e, p.Damage, p.Pos)
				p.Live = false
			}
		})
}

// hitMinion applies a player projectile to the first minion it overlaps.
// Minions have no mitigation; damage lands directly on their health.
func hitMinion(w *ecs.World, p *component.Projectile) {
	ecs.ForEach2(w, component.MinionComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.Minion, tr *component.Transform) {
			if !p.Live {
				return
			}
			if tr.Pos.Sub(p.Pos).Length() > p.Radius+tr.Radius {
				return
			}
			if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
				hp.Current -= p.Damage
				if fb := w.Presenter(); fb != nil {
					fb.HitFeedback(e)
				}
			}
			p.Live = false
		})
}
