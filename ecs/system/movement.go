package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

const (
	spawnFallSpeed = 340.0
	// distanceBand is the hysteresis width around MaintainDistance. While
	// the player sits inside the band the boss strafes instead of
	// oscillating between approach and retreat.
	distanceBand = 24.0
	strafeRate   = 1.1
)

// MovementSystem drives boss locomotion: the spawn drop, exclusive charge
// advances, and the per-phase chase or keep-away behavior.
type MovementSystem struct{}

func (MovementSystem) Update(w *ecs.World, dt float64) {
	target, hasTarget := playerPosition(w)
	ecs.ForEach3(w, component.BossComponent.Kind(), component.BossRuntimeComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, tr *component.Transform) {
			if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && hp.Defeated {
				return
			}
			if rt.State == component.StateSpawning {
				advanceSpawnFall(w, e, rt, tr, dt)
				return
			}
			tr.Alt = tr.GroundAlt
			if rt.Current != nil {
				advanceCharge(w, e, boss, rt, tr, dt)
				return
			}
			if !hasTarget || rt.MoveMultiplier == 0 {
				return
			}
			tr.Facing = faceToward(tr.Pos, target, tr.Facing)
			speed := boss.MoveSpeed * rt.MoveMultiplier
			if rt.MaintainDistance > 0 {
				keepDistance(w, tr, target, rt.MaintainDistance, speed, dt)
			} else {
				chase(w, tr, target, boss.EngagementRange, speed, dt)
			}
		})
}

func advanceSpawnFall(w *ecs.World, e ecs.Entity, rt *component.BossRuntime, tr *component.Transform, dt float64) {
	tr.Alt -= spawnFallSpeed * dt
	if tr.Alt > tr.GroundAlt {
		return
	}
	tr.Alt = tr.GroundAlt
	rt.State = component.StateIdle
	w.PlaySound("land", 0.9)
	if boss, ok := ecs.Get(w, e, component.BossComponent.Kind()); ok {
		w.Events().Push(ecs.Event{Type: ecs.EventNotification, Data: ecs.NotificationEvent{
			Title: boss.Name,
			Text:  "has entered the arena",
		}})
	}
}

// advanceCharge moves the boss along the committed charge line. The charge
// ends on its timer or when the arena wall stops it, and deals contact
// damage once per pass if it runs the player over.
func advanceCharge(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, tr *component.Transform, dt float64) {
	cur := rt.Current
	cur.Elapsed += dt
	next := tr.Pos.Add(cur.Dir.Mult(cur.Speed * dt))
	clamped := clampToArena(w.Arena(), next)
	hitWall := clamped != next
	tr.Pos = clamped
	tr.Facing = cur.Dir

	if boss.ContactDamage > 0 {
		if target, ok := playerPosition(w); ok {
			if ptr, pok := playerTransform(w); pok && target.Sub(tr.Pos).Length() <= tr.Radius+ptr.Radius {
				DamagePlayer(w, boss.ContactDamage)
				cur.Elapsed = cur.Duration
			}
		}
	}
	if cur.Elapsed >= cur.Duration || hitWall {
		rt.Current = nil
		rt.State = component.StateIdle
	}
}

// keepDistance holds the boss near its preferred range. Outside the band it
// closes or retreats; inside it circles the player on the current radius.
func keepDistance(w *ecs.World, tr *component.Transform, target cp.Vector, maintain, speed, dt float64) {
	offset := tr.Pos.Sub(target)
	dist := offset.Length()
	switch {
	case dist > maintain+distanceBand/2:
		step := target.Sub(tr.Pos).Normalize().Mult(speed * dt)
		tr.Pos = clampToArena(w.Arena(), tr.Pos.Add(step))
	case dist < maintain-distanceBand/2:
		away := offset
		if dist == 0 {
			away = cp.Vector{X: 1}
		}
		step := away.Normalize().Mult(speed * dt)
		tr.Pos = clampToArena(w.Arena(), tr.Pos.Add(step))
	default:
		angle := math.Atan2(offset.Y, offset.X) + strafeRate*dt
		tr.Pos = clampToArena(w.Arena(), target.Add(cp.ForAngle(angle).Mult(dist)))
	}
}

func chase(w *ecs.World, tr *component.Transform, target cp.Vector, reach, speed, dt float64) {
	to := target.Sub(tr.Pos)
	if to.Length() <= reach {
		return
	}
	tr.Pos = clampToArena(w.Arena(), tr.Pos.Add(to.Normalize().Mult(speed*dt)))
}

func faceToward(from, to, fallback cp.Vector) cp.Vector {
	d := to.Sub(from)
	if d.Length() == 0 {
		return fallback
	}
	return d.Normalize()
}

func playerTransform(w *ecs.World) (*component.Transform, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, player, component.TransformComponent.Kind())
}
