package system

import (
	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

const orbitalContactRadius = 10.0

// EffectSystem ages every boss-owned area effect, applies the damage and
// forces the live ones exert, and drops the expired ones from their lists.
type EffectSystem struct{}

func (EffectSystem) Update(w *ecs.World, dt float64) {
	playerPos, hasPlayer := playerPosition(w)
	ptr, _ := playerTransform(w)

	ecs.ForEach2(w, component.BossRuntimeComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, rt *component.BossRuntime, tr *component.Transform) {
			rt.Warnings = retain(rt.Warnings, dt)

			rt.Hazards = retain(rt.Hazards, dt)
			if hasPlayer {
				for _, h := range rt.Hazards {
					if h.TickDue() && playerPos.Sub(h.Pos).Length() <= h.Radius+ptr.Radius {
						DamagePlayer(w, h.Damage)
					}
				}
			}

			rt.Lasers = retain(rt.Lasers, dt)
			if hasPlayer {
				for _, l := range rt.Lasers {
					l.Origin = tr.Pos
					if segmentDistance(playerPos, l.Origin, l.End()) <= l.Width/2+ptr.Radius {
						DamagePlayer(w, l.Damage*dt)
					}
				}
			}

			rt.GravityZones = retain(rt.GravityZones, dt)
			if hasPlayer {
				for _, z := range rt.GravityZones {
					toCenter := z.Pos.Sub(playerPos)
					d := toCenter.Length()
					if d > 0 && d <= z.Radius {
						ptr.Pos = ptr.Pos.Add(toCenter.Normalize().Mult(z.Pull * dt))
					}
				}
			}

			rt.Orbitals = retain(rt.Orbitals, dt)
			for _, o := range rt.Orbitals {
				o.Center = tr.Pos
				if o.Persistent && hasPlayer && playerPos.Sub(o.Pos()).Length() <= orbitalContactRadius+ptr.Radius {
					DamagePlayer(w, o.Damage*dt)
				}
			}
		})
}

// retain ages a homogeneous effect list in place and keeps the survivors.
func retain[T component.Effect](list []T, dt float64) []T {
	kept := list[:0]
	for _, ef := range list {
		if ef.Advance(dt) {
			kept = append(kept, ef)
		}
	}
	// Zero the tail so dropped effects do not pin memory.
	for i := len(kept); i < len(list); i++ {
		var zero T
		list[i] = zero
	}
	return kept
}

// segmentDistance is the distance from p to the segment a-b.
func segmentDistance(p, a, b cp.Vector) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.Mult(t))).Length()
}
