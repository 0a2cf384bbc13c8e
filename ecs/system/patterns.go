package system

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

// The pattern library is stateless: every function takes its inputs
// explicitly and appends effects to the owning boss's lists or acquires
// pooled projectiles. Delays are entries on the world timeline, never waits.

// finiteVector reports whether a position is usable by a pattern.
// Patterns fed a non-finite position abort, log, and produce zero effects.
func finiteVector(v cp.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// bossAlive builds the liveness predicate carried by every deferred action a
// boss schedules. A destroyed or defeated boss turns all of its pending
// actions into no-ops at fire time.
func bossAlive(w *ecs.World, e ecs.Entity) func() bool {
	return func() bool {
		if !ecs.IsAlive(w, e) {
			return false
		}
		hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		return ok && !hp.Defeated
	}
}

// SpreadDirections computes count unit direction vectors evenly spaced
// across arcDegrees, centered on the bearing from `from` to `target`.
// count == 1 ignores the arc and returns the exact bearing.
func SpreadDirections(from, target cp.Vector, count int, arcDegrees float64) []cp.Vector {
	if count <= 0 || !finiteVector(from) || !finiteVector(target) {
		return nil
	}
	bearing := math.Atan2(target.Y-from.Y, target.X-from.X)
	if count == 1 {
		return []cp.Vector{cp.ForAngle(bearing)}
	}
	arc := arcDegrees * math.Pi / 180
	step := arc / float64(count-1)
	start := bearing - arc/2
	dirs := make([]cp.Vector, 0, count)
	for i := 0; i < count; i++ {
		dirs = append(dirs, cp.ForAngle(start+float64(i)*step))
	}
	return dirs
}

// FireSpread acquires count pooled projectiles fanned across the arc toward
// target. Returns the number actually fired (zero on invalid input).
func FireSpread(w *ecs.World, from, target cp.Vector, count int, arcDegrees, speed, damage, radius float64, fromBoss bool) int {
	if !finiteVector(from) || !finiteVector(target) {
		slog.Warn("pattern: spread aborted on non-finite position", "from", from, "target", target)
		return 0
	}
	pool := w.Projectiles()
	if pool == nil {
		return 0
	}
	dirs := SpreadDirections(from, target, count, arcDegrees)
	for _, dir := range dirs {
		rec := pool.Acquire()
		rec.Pos = from
		rec.Vel = dir.Mult(speed)
		rec.Radius = radius
		rec.Damage = damage
		rec.TTL = projectileLifetime
		rec.FromBoss = fromBoss
	}
	return len(dirs)
}

const projectileLifetime = 6.0

// TelegraphAt appends a timed ground warning to the boss's warning list and
// returns it. The caller schedules the matching impact separately.
func TelegraphAt(rt *component.BossRuntime, pos cp.Vector, radius, duration float64) *component.Telegraph {
	warn := &component.Telegraph{Pos: pos, Radius: radius, Duration: duration}
	rt.Warnings = append(rt.Warnings, warn)
	return warn
}

// ScheduleImpact arms a deferred ground impact at pos after delay seconds.
// If the boss died before the fire time the action no-ops.
func ScheduleImpact(w *ecs.World, owner ecs.Entity, pos cp.Vector, radius, damage, delay float64) {
	if !finiteVector(pos) {
		slog.Warn("pattern: impact aborted on non-finite position", "pos", pos)
		return
	}
	w.Timeline().After(delay, bossAlive(w, owner), func() {
		hitPlayerInRadius(w, pos, radius, damage)
		w.PlaySound("impact", 0.8)
	})
}

// PlaceOrbitals arranges count orbitals at equal angular spacing around
// center and appends them to the boss's orbital list.
func PlaceOrbitals(rt *component.BossRuntime, center cp.Vector, count int, radius, angularVel, speed, damage, duration float64, persistent bool) {
	if count <= 0 || !finiteVector(center) {
		slog.Warn("pattern: orbit aborted", "center", center, "count", count)
		return
	}
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		rt.Orbitals = append(rt.Orbitals, &component.Orbital{
			Center:     center,
			Angle:      float64(i) * step,
			Radius:     radius,
			AngularVel: angularVel,
			Speed:      speed,
			Damage:     damage,
			Duration:   duration,
			Persistent: persistent,
		})
	}
}

// LaunchOrbitals converts every non-persistent orbital into a linear pooled
// projectile moving along its orbital angle at launch time.
func LaunchOrbitals(w *ecs.World, rt *component.BossRuntime) int {
	pool := w.Projectiles()
	if pool == nil {
		return 0
	}
	launched := 0
	kept := rt.Orbitals[:0]
	for _, orb := range rt.Orbitals {
		if orb.Persistent {
			kept = append(kept, orb)
			continue
		}
		rec := pool.Acquire()
		rec.Pos = orb.Pos()
		rec.Vel = cp.ForAngle(orb.Angle).Mult(orb.Speed)
		rec.Radius = 8
		rec.Damage = orb.Damage
		rec.TTL = projectileLifetime
		rec.FromBoss = true
		launched++
	}
	rt.Orbitals = kept
	return launched
}

// StartCharge records the exclusive charge once; per-tick advancement is the
// movement controller's job. Returns false when another exclusive attack is
// already running or the positions are unusable.
func StartCharge(rt *component.BossRuntime, kind string, from, target cp.Vector, speed, duration float64) bool {
	if rt.Current != nil {
		return false
	}
	if !finiteVector(from) || !finiteVector(target) {
		slog.Warn("pattern: charge aborted on non-finite position", "from", from, "target", target)
		return false
	}
	dir := target.Sub(from)
	if dir.Length() < 1e-9 {
		dir = cp.Vector{X: 1}
	} else {
		dir = dir.Normalize()
	}
	rt.Current = &component.ActiveAttack{
		Kind:     kind,
		Target:   target,
		Dir:      dir,
		Speed:    speed,
		Duration: duration,
	}
	return true
}

// MortarFlightTime derives the lob flight time from launch/impact distance.
// The ground telegraph for a lob must use this value, never a constant, so
// warning and impact stay synchronized at any range.
func MortarFlightTime(from, impact cp.Vector, speed float64) float64 {
	if speed <= 0 {
		speed = 120
	}
	ft := from.Distance(impact) / speed
	if ft < 0.35 {
		ft = 0.35
	}
	return ft
}

// FireMortar telegraphs an impact point and lobs a parabolic projectile
// whose flight time matches the telegraph duration exactly.
func FireMortar(w *ecs.World, owner ecs.Entity, rt *component.BossRuntime, from, impact cp.Vector, speed, apex, radius, damage float64) bool {
	if !finiteVector(from) || !finiteVector(impact) {
		slog.Warn("pattern: mortar aborted on non-finite position", "from", from, "impact", impact)
		return false
	}
	pool := w.Projectiles()
	if pool == nil {
		return false
	}
	flight := MortarFlightTime(from, impact, speed)
	TelegraphAt(rt, impact, radius, flight)

	rec := pool.Acquire()
	rec.Pos = from
	rec.Radius = radius
	rec.Damage = damage
	rec.TTL = flight
	rec.FromBoss = true
	rec.Lob = &component.LobArc{Start: from, End: impact, FlightTime: flight, Apex: apex}
	return true
}

// SpawnLaser appends a sweeping beam starting on the bearing to target.
func SpawnLaser(rt *component.BossRuntime, origin, target cp.Vector, p *component.Pattern) bool {
	if !finiteVector(origin) || !finiteVector(target) {
		slog.Warn("pattern: laser aborted on non-finite position", "origin", origin, "target", target)
		return false
	}
	length := p.Range
	if length <= 0 {
		length = 420
	}
	width := p.Radius
	if width <= 0 {
		width = 14
	}
	rt.Lasers = append(rt.Lasers, &component.LaserBeam{
		Origin:    origin,
		Angle:     math.Atan2(target.Y-origin.Y, target.X-origin.X),
		SweepRate: p.AngularVel,
		Length:    length,
		Width:     width,
		Damage:    p.Damage,
		Duration:  p.Duration,
	})
	return true
}

// SpawnGravityZone appends a pull zone at pos.
func SpawnGravityZone(rt *component.BossRuntime, pos cp.Vector, p *component.Pattern) bool {
	if !finiteVector(pos) {
		slog.Warn("pattern: gravity zone aborted on non-finite position", "pos", pos)
		return false
	}
	rt.GravityZones = append(rt.GravityZones, &component.GravityZone{
		Pos:      pos,
		Radius:   p.Radius,
		Pull:     p.Speed,
		Duration: p.Duration,
	})
	return true
}

// SpawnHazard appends a lingering damage pool at pos.
func SpawnHazard(rt *component.BossRuntime, pos cp.Vector, radius, damage, interval, duration float64) bool {
	if !finiteVector(pos) {
		slog.Warn("pattern: hazard aborted on non-finite position", "pos", pos)
		return false
	}
	rt.Hazards = append(rt.Hazards, &component.Hazard{
		Pos:      pos,
		Radius:   radius,
		Damage:   damage,
		Interval: interval,
		Duration: duration,
	})
	return true
}

// TeleportBoss relocates the boss to a random point on a ring of p.Range
// around target, clamped to the arena.
func TeleportBoss(w *ecs.World, tr *component.Transform, target cp.Vector, ringRadius float64) bool {
	if !finiteVector(target) {
		slog.Warn("pattern: teleport aborted on non-finite position", "target", target)
		return false
	}
	angle := w.Rand().Float64() * 2 * math.Pi
	tr.Pos = clampToArena(w.Arena(), target.Add(cp.ForAngle(angle).Mult(ringRadius)))
	w.PlaySound("teleport", 0.7)
	return true
}

// SummonMinions asks the spawner collaborator for count minions scattered
// around pos. Missing spawner or refused spawns are not errors.
func SummonMinions(w *ecs.World, owner ecs.Entity, pos cp.Vector, kind string, level, count int, role component.MinionRole) int {
	spawner := w.Spawner()
	if spawner == nil || count <= 0 || !finiteVector(pos) {
		return 0
	}
	spawned := 0
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		at := clampToArena(w.Arena(), pos.Add(cp.ForAngle(angle).Mult(60)))
		ent, ok := spawner.SpawnMinion(w, kind, level, at)
		if !ok {
			continue
		}
		if minion, ok := ecs.Get(w, ent, component.MinionComponent.Kind()); ok {
			minion.Owner = uint64(owner)
			minion.Role = role
		}
		spawned++
	}
	return spawned
}

func clampToArena(bb cp.BB, pos cp.Vector) cp.Vector {
	if bb.R <= bb.L || bb.T <= bb.B {
		return pos
	}
	return cp.Vector{
		X: math.Min(math.Max(pos.X, bb.L), bb.R),
		Y: math.Min(math.Max(pos.Y, bb.B), bb.T),
	}
}
