package system

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

// corpseLinger is how long a defeated boss entity stays in the world for the
// death presentation before the TTL system removes it.
const corpseLinger = 2.5

// ApplyDamage resolves incoming damage against a boss's invulnerability and
// shield state. It returns whether any damage was applied. Health is clamped
// to [0, Max]; reaching zero defeats the boss and synchronously releases
// everything it owns.
func ApplyDamage(w *ecs.World, e ecs.Entity, raw float64, attackerPos cp.Vector) bool {
	boss, ok := ecs.Get(w, e, component.BossComponent.Kind())
	if !ok {
		return false
	}
	rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind())
	if !ok {
		return false
	}
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || hp.Defeated {
		return false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}

	// Feedback fires for every resolved hit, blocked ones included.
	if p := w.Presenter(); p != nil {
		p.HitFeedback(e)
	}

	if rt.Invulnerable {
		blockHit(w, e, boss, rt, tr)
		return false
	}

	damage := raw
	if rt.ShieldActive && boss.Shield != nil && shieldCovers(tr, attackerPos, boss.Shield.ArcDegrees) {
		damage *= 1 - boss.Shield.Reduction
	}
	if rt.ArmorBroken {
		damage *= armorBreakMultiplier
	}

	hp.Current -= damage
	if hp.Current <= 0 {
		hp.Current = 0
		hp.Defeated = true
		defeatBoss(w, e, boss, rt)
	}
	return true
}

const armorBreakMultiplier = 1.25

// blockHit handles a hit landing while the boss is invulnerable. Bosses with
// a breakable guard count blocked hits: at the threshold the guard opens for
// a timed vulnerability window, below it the boss punishes the attacker by
// relocating to a random nearby point.
func blockHit(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, tr *component.Transform) {
	guard := boss.Guard
	if guard == nil || guard.Threshold <= 0 {
		return
	}
	rt.BlockedHits++
	if rt.BlockedHits < guard.Threshold {
		relocate(w, tr, guard.RelocateMin, guard.RelocateMax)
		w.PlaySound("guard_deflect", 0.6)
		return
	}

	rt.BlockedHits = 0
	rt.Invulnerable = false
	w.PlaySound("guard_break", 0.9)
	w.Events().Push(ecs.Event{Type: ecs.EventNotification, Data: ecs.NotificationEvent{
		Title: boss.Name,
		Text:  "guard broken",
	}})
	w.Timeline().After(guard.VulnerableFor, bossAlive(w, e), func() {
		rt.Invulnerable = true
	})
}

// relocate moves the boss to a uniformly random bearing at a distance inside
// [min, max] from its current position, clamped to the arena.
func relocate(w *ecs.World, tr *component.Transform, min, max float64) {
	if max <= 0 {
		return
	}
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	rng := w.Rand()
	dist := min + rng.Float64()*(max-min)
	angle := rng.Float64() * 2 * math.Pi
	tr.Pos = clampToArena(w.Arena(), tr.Pos.Add(cp.ForAngle(angle).Mult(dist)))
}

// shieldCovers reports whether the attacker's bearing relative to the boss's
// facing falls within the shield arc. A bearing exactly at half the arc
// counts as covered; the boundary resolves toward the shield.
func shieldCovers(tr *component.Transform, attackerPos cp.Vector, arcDegrees float64) bool {
	toAttacker := attackerPos.Sub(tr.Pos)
	if toAttacker.Length() < 1e-9 {
		return true
	}
	facing := tr.Facing
	if facing.Length() < 1e-9 {
		facing = cp.Vector{X: 1}
	}
	bearing := math.Abs(angleBetween(facing, toAttacker))
	return bearing <= (arcDegrees*math.Pi/180)/2
}

func angleBetween(a, b cp.Vector) float64 {
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// defeatBoss releases everything a boss owns the moment it dies: every
// transient effect list empties, every owned minion, clone, and platform is
// destroyed, and the corpse gets a short TTL. Deferred actions are left in
// the timeline; their liveness checks no-op them.
func defeatBoss(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
	rt.ClearEffects()
	rt.Current = nil
	ReleaseOwned(w, e)
	forgetScriptRuntime(e)

	w.Events().Push(ecs.Event{Type: ecs.EventBossDefeated, Data: ecs.BossDefeatedEvent{Boss: e, Name: boss.Name}})
	w.PlaySound("boss_down", 1.0)
	slog.Info("boss defeated", "boss", boss.Name, "id", boss.ID)

	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: corpseLinger}); err != nil {
		slog.Warn("damage: corpse ttl", "err", err)
	}
}

// ReleaseOwned destroys every live entity owned by the boss.
func ReleaseOwned(w *ecs.World, owner ecs.Entity) {
	ecs.ForEach(w, component.MinionComponent.Kind(), func(ent ecs.Entity, m *component.Minion) {
		if m.Owner == uint64(owner) {
			ecs.DestroyEntity(w, ent)
		}
	})
}

// DamagePlayer applies flat damage to the player, clamped at zero.
func DamagePlayer(w *ecs.World, amount float64) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	hp, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || hp.Defeated {
		return
	}
	hp.Current -= amount
	if hp.Current <= 0 {
		hp.Current = 0
		hp.Defeated = true
	}
	if p := w.Presenter(); p != nil {
		p.HitFeedback(player)
	}
}

// hitPlayerInRadius damages the player if within radius of pos.
func hitPlayerInRadius(w *ecs.World, pos cp.Vector, radius, damage float64) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if tr.Pos.Distance(pos) <= radius+tr.Radius {
		DamagePlayer(w, damage)
	}
}
