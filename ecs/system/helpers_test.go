package system

import (
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetArena(cp.BB{L: 0, B: 0, R: 1280, T: 720})
	w.SetRand(rand.New(rand.NewPCG(7, 11)))
	w.SetProjectiles(ecs.NewProjectilePool(32))
	return w
}

func addBoss(t *testing.T, w *ecs.World, boss *component.Boss, health float64, pos cp.Vector) (ecs.Entity, *component.BossRuntime) {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.BossComponent.Kind(), boss))

	rt := &component.BossRuntime{State: component.StateIdle, MoveMultiplier: 1}
	if len(boss.Phases) > 0 {
		rt.MoveMultiplier = boss.Phases[0].MoveMultiplier
		rt.MaintainDistance = boss.Phases[0].MaintainDistance
	}
	rt.ShieldActive = boss.Shield != nil
	rt.Invulnerable = boss.Guard != nil
	require.NoError(t, ecs.Add(w, e, component.BossRuntimeComponent.Kind(), rt))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Pos:    pos,
		Facing: cp.Vector{X: 1},
		Radius: 20,
	}))
	return e, rt
}

func addPlayer(t *testing.T, w *ecs.World, pos cp.Vector, health float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Pos:    pos,
		Facing: cp.Vector{X: 1},
		Radius: 10,
	}))
	return e
}

func bossHealth(t *testing.T, w *ecs.World, e ecs.Entity) *component.Health {
	t.Helper()
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	require.True(t, ok)
	return hp
}

func bossTransform(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

// tick advances the simulated clock and fires due deferred actions, the way
// the timeline system does during a real update.
func tick(w *ecs.World, dt float64) {
	w.Timeline().Advance(dt)
	w.Timeline().Fire()
}

func threePhases() []component.Phase {
	pattern := []component.Pattern{{Kind: "spread", Cooldown: 2, Count: 3, Speed: 200, Damage: 5}}
	return []component.Phase{
		{Name: "opening", HealthPercent: 1.0, MinHealthPercent: 0.6, MoveMultiplier: 1.0, Patterns: pattern},
		{Name: "middle", HealthPercent: 0.6, MinHealthPercent: 0.25, MoveMultiplier: 1.2, Patterns: pattern},
		{Name: "final", HealthPercent: 0.25, MinHealthPercent: 0, MoveMultiplier: 1.5, Patterns: pattern},
	}
}
