package system

import (
	"log/slog"

	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

// transitionGuard is the fixed invulnerability window granted on every phase
// transition, scheduled on the timeline like any other deferred effect.
const transitionGuard = 1.2

// PhaseSystem re-evaluates each boss's phase from its health ratio every
// tick and runs transition side effects when the selected phase changes.
//
// Selection scans phases from the most-depleted window (highest index) down,
// picking the first whose [min, max] window contains the ratio; a ratio
// sitting exactly on a shared boundary therefore resolves to the deeper
// phase. Because selection always re-evaluates, healing can regress the
// phase index; see the phase tests documenting that behavior.
type PhaseSystem struct{}

func NewPhaseSystem() *PhaseSystem { return &PhaseSystem{} }

func (s *PhaseSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.BossRuntimeComponent.Kind(),
		component.HealthComponent.Kind(),
		func(e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, hp *component.Health) {
			if len(boss.Phases) == 0 || hp.Defeated || rt.State == component.StateSpawning {
				return
			}
			idx := SelectPhase(boss.Phases, hp.Ratio())
			if idx != rt.PhaseIndex {
				s.transition(w, e, boss, rt, idx)
			}
		})
}

// SelectPhase picks the phase index for a health ratio. Highest index wins
// ties on shared boundaries.
func SelectPhase(phases []component.Phase, ratio float64) int {
	for i := len(phases) - 1; i >= 0; i-- {
		ph := &phases[i]
		if ratio >= ph.MinHealthPercent && ratio <= ph.HealthPercent {
			return i
		}
	}
	if ratio > 1 {
		return 0
	}
	return len(phases) - 1
}

func (s *PhaseSystem) transition(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, idx int) {
	if idx < 0 || idx >= len(boss.Phases) {
		return
	}
	phase := &boss.Phases[idx]
	rt.PhaseIndex = idx
	rt.PatternCursor = 0
	rt.Current = nil
	rt.AttackCooldown = 0
	rt.MoveMultiplier = phase.MoveMultiplier
	rt.MaintainDistance = phase.MaintainDistance
	rt.Color = phase.Color

	rt.Invulnerable = true
	rt.TransitionGen++
	gen := rt.TransitionGen
	hadGuard := boss.Guard != nil
	w.Timeline().After(transitionGuard, bossAlive(w, e), func() {
		// Guard archetypes stay invulnerable by default; everyone else
		// returns to normal once the transition window closes. A stale
		// window from an earlier transition must not cut a newer one short.
		if !hadGuard && gen == rt.TransitionGen {
			rt.Invulnerable = false
		}
	})

	s.applyPhaseEffect(w, e, boss, rt, phase)

	if p := w.Presenter(); p != nil {
		p.ColorMarker(e, phase.Color)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventPhaseStarted, Data: ecs.PhaseStartedEvent{Boss: e, Index: idx, Name: phase.Name}})
	w.Events().Push(ecs.Event{Type: ecs.EventNotification, Data: ecs.NotificationEvent{Title: boss.Name, Text: phase.Name}})
	w.PlaySound("phase_shift", 0.8)
	slog.Info("phase transition", "boss", boss.Name, "phase", idx, "name", phase.Name)
}

// phaseEffects maps onStart tags to their handlers. Unknown tags are logged
// and ignored; a bad config line never takes down the update loop.
var phaseEffects = map[string]func(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime){
	"shieldShatter": func(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
		rt.ShieldActive = false
		w.PlaySound("shield_shatter", 0.9)
	},
	"armorBreak": func(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
		rt.ArmorBroken = true
		w.PlaySound("armor_break", 0.9)
	},
	"spawnClones": func(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
		summonAtBoss(w, e, boss, string(boss.Type)+"_clone", 2, component.RoleClone)
	},
	"spawnPhantomClones": func(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
		summonAtBoss(w, e, boss, string(boss.Type)+"_phantom", 3, component.RolePhantom)
	},
	"deployPlatforms": func(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
		summonAtBoss(w, e, boss, "platform", 4, component.RolePlatform)
	},
	"recallPlatforms": func(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
		ecs.ForEach(w, component.MinionComponent.Kind(), func(ent ecs.Entity, m *component.Minion) {
			if m.Owner == uint64(e) && m.Role == component.RolePlatform {
				ecs.DestroyEntity(w, ent)
			}
		})
	},
	"summonMinions": func(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
		summonAtBoss(w, e, boss, "thrall", 3, component.RoleMinion)
	},
}

func (s *PhaseSystem) applyPhaseEffect(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, phase *component.Phase) {
	for _, tag := range phase.OnStart {
		handler, ok := phaseEffects[tag]
		if !ok {
			slog.Warn("phase: unknown onStart effect", "boss", boss.Name, "effect", tag)
			continue
		}
		handler(w, e, boss, rt)
	}
}

func summonAtBoss(w *ecs.World, e ecs.Entity, boss *component.Boss, kind string, count int, role component.MinionRole) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	SummonMinions(w, e, tr.Pos, kind, 1, count, role)
}
