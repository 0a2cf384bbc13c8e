package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

func init() {
	RegisterPattern("spread", execSpread)
	RegisterPattern("burst", execBurst)
	RegisterPattern("barrage", execBarrage)
	RegisterPattern("charge", execCharge)
	RegisterPattern("dash", execDash)
	RegisterPattern("slam", execSlam)
	RegisterPattern("laser", execLaser)
	RegisterPattern("orbit", execOrbit)
	RegisterPattern("weapon_rotation", execWeaponRotation)
	RegisterPattern("gravity_zone", execGravityZone)
	RegisterPattern("teleport", execTeleport)
	RegisterPattern("mortar_barrage", execMortar)
	RegisterPattern("summon", execSummon)
}

// execSpread fans Count projectiles across ArcDegrees toward the player.
func execSpread(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	FireSpread(ctx.World, ctx.Transform.Pos, ctx.Target, p.Count, p.ArcDegrees, p.Speed, p.Damage, projRadius(p), true)
	ctx.World.PlaySound("shot", 0.5)
	return true
}

// execBurst fires Count single shots staggered Interval apart; each shot
// re-aims at the player's position at its own fire time.
func execBurst(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	w, e := ctx.World, ctx.Entity
	pattern := *p
	for i := 0; i < max(p.Count, 1); i++ {
		w.Timeline().After(float64(i)*p.Interval, bossAlive(w, e), func() {
			from, target, ok := bossAndPlayer(w, e)
			if !ok {
				return
			}
			FireSpread(w, from, target, 1, 0, pattern.Speed, pattern.Damage, projRadius(&pattern), true)
			w.PlaySound("shot", 0.4)
		})
	}
	return true
}

// execBarrage fires Count full spreads staggered Interval apart.
func execBarrage(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	w, e := ctx.World, ctx.Entity
	pattern := *p
	for i := 0; i < max(p.Count, 1); i++ {
		w.Timeline().After(float64(i)*p.Interval, bossAlive(w, e), func() {
			from, target, ok := bossAndPlayer(w, e)
			if !ok {
				return
			}
			FireSpread(w, from, target, 3, pattern.ArcDegrees, pattern.Speed, pattern.Damage, projRadius(&pattern), true)
			w.PlaySound("shot", 0.4)
		})
	}
	return true
}

// execCharge telegraphs briefly, then starts the exclusive charge toward the
// player's position as recorded at telegraph time. If the boss dies before
// the deferred start fires, nothing happens.
func execCharge(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	w, e := ctx.World, ctx.Entity
	rt := ctx.Runtime
	target := ctx.Target
	pattern := *p
	warn := pattern.WarnDuration
	if warn <= 0 {
		warn = 0.6
	}
	TelegraphAt(rt, target, projRadius(&pattern)*3, warn)
	w.Timeline().After(warn, bossAlive(w, e), func() {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		if StartCharge(rt, "charge", tr.Pos, target, pattern.Speed, pattern.Duration) {
			rt.State = component.StateSpecial
			w.PlaySound("charge", 0.8)
		}
	})
	return true
}

// execDash is an immediate short exclusive burst of movement away from the
// player, a repositioning tool rather than an attack.
func execDash(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	away := ctx.Transform.Pos.Add(ctx.Transform.Pos.Sub(ctx.Target))
	if StartCharge(ctx.Runtime, "dash", ctx.Transform.Pos, away, p.Speed, p.Duration) {
		ctx.Runtime.State = component.StateSpecial
		ctx.World.PlaySound("dash", 0.6)
	}
	return true
}

// execSlam telegraphs a ring on the player and schedules the impact for the
// telegraph's expiry.
func execSlam(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	warn := p.WarnDuration
	if warn <= 0 {
		warn = 1.0
	}
	TelegraphAt(ctx.Runtime, ctx.Target, p.Radius, warn)
	ScheduleImpact(ctx.World, ctx.Entity, ctx.Target, p.Radius, p.Damage, warn)
	return true
}

// execLaser spawns a sweeping beam aimed at the player.
func execLaser(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	if SpawnLaser(ctx.Runtime, ctx.Transform.Pos, ctx.Target, p) {
		ctx.World.PlaySound("laser", 0.7)
	}
	return true
}

// execOrbit rings the boss with orbitals and schedules their launch once the
// hold duration elapses.
func execOrbit(ctx *AttackContext, p *component.Pattern) bool {
	w, e, rt := ctx.World, ctx.Entity, ctx.Runtime
	hold := p.Duration
	if hold <= 0 {
		hold = 2.0
	}
	PlaceOrbitals(rt, ctx.Transform.Pos, max(p.Count, 1), p.Range, p.AngularVel, p.Speed, p.Damage, hold+0.05, false)
	w.Timeline().After(hold, bossAlive(w, e), func() {
		if LaunchOrbitals(w, rt) > 0 {
			w.PlaySound("orbit_launch", 0.7)
		}
	})
	return true
}

// execWeaponRotation rings the boss with persistent contact-damage orbitals.
func execWeaponRotation(ctx *AttackContext, p *component.Pattern) bool {
	PlaceOrbitals(ctx.Runtime, ctx.Transform.Pos, max(p.Count, 1), p.Range, p.AngularVel, 0, p.Damage, p.Duration, true)
	ctx.World.PlaySound("blades", 0.6)
	return true
}

// execGravityZone drops a pull zone on the player's position.
func execGravityZone(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	if SpawnGravityZone(ctx.Runtime, ctx.Target, p) {
		ctx.World.PlaySound("gravity", 0.6)
	}
	return true
}

// execTeleport blinks the boss onto a ring around the player.
func execTeleport(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	ring := p.Range
	if ring <= 0 {
		ring = 160
	}
	return TeleportBoss(ctx.World, ctx.Transform, ctx.Target, ring)
}

// execMortar lobs Count shells at scattered points around the player, each
// stagger-launched and telegraphed for exactly its computed flight time.
func execMortar(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget {
		return false
	}
	w, e := ctx.World, ctx.Entity
	rt := ctx.Runtime
	pattern := *p
	scatter := pattern.Radius * 1.5
	if scatter <= 0 {
		scatter = 60
	}
	stagger := pattern.Interval
	if stagger <= 0 {
		stagger = 0.18
	}
	target := ctx.Target
	for i := 0; i < max(p.Count, 1); i++ {
		offset := cp.ForAngle(ctx.RNG.Float64() * 2 * math.Pi).Mult(ctx.RNG.Float64() * scatter)
		impact := clampToArena(w.Arena(), target.Add(offset))
		w.Timeline().After(float64(i)*stagger, bossAlive(w, e), func() {
			tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok {
				return
			}
			if FireMortar(w, e, rt, tr.Pos, impact, pattern.Speed, pattern.ApexHeight, pattern.Radius, pattern.Damage) {
				w.PlaySound("mortar", 0.6)
			}
		})
	}
	return true
}

// execSummon asks the spawner for a wave of minions around the boss.
func execSummon(ctx *AttackContext, p *component.Pattern) bool {
	count := max(p.Count, 1)
	SummonMinions(ctx.World, ctx.Entity, ctx.Transform.Pos, p.MinionKind, p.MinionLevel, count, component.RoleMinion)
	ctx.World.PlaySound("summon", 0.7)
	return true
}

func projRadius(p *component.Pattern) float64 {
	if p.Radius > 0 {
		return p.Radius
	}
	return 6
}

func bossAndPlayer(w *ecs.World, e ecs.Entity) (cp.Vector, cp.Vector, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, cp.Vector{}, false
	}
	target, ok := playerPosition(w)
	if !ok {
		return cp.Vector{}, cp.Vector{}, false
	}
	return tr.Pos, target, true
}
