package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/bossrush/ecs/component"
)

func TestDirectorAlwaysReArmsCooldown(t *testing.T) {
	cases := []struct {
		name  string
		phase component.Phase
	}{
		{"no_patterns", component.Phase{HealthPercent: 1.0, MoveMultiplier: 1}},
		{"unknown_kind", component.Phase{HealthPercent: 1.0, MoveMultiplier: 1,
			Patterns: []component.Pattern{{Kind: "no_such_pattern", Cooldown: 2}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld()
			boss := &component.Boss{Name: "test", Type: "bulwark", Phases: []component.Phase{c.phase}}
			_, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
			addPlayer(t, w, cp.Vector{X: 400, Y: 360}, 100)

			NewAttackSystem().Update(w, 0.1)
			assert.Equal(t, fallbackCooldown, rt.AttackCooldown)
		})
	}
}

func TestDirectorUsesPatternCooldown(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", Phases: []component.Phase{{
		HealthPercent:  1.0,
		MoveMultiplier: 1,
		Patterns:       []component.Pattern{{Kind: "spread", Cooldown: 3.5, Count: 3, ArcDegrees: 30, Speed: 400, Damage: 5}},
	}}}
	_, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	addPlayer(t, w, cp.Vector{X: 400, Y: 360}, 100)

	sys := NewAttackSystem()
	sys.Update(w, 0.1)

	assert.Equal(t, 3.5, rt.AttackCooldown)
	assert.Equal(t, 3, w.Projectiles().LiveCount())

	// Cooldown gates the next volley.
	sys.Update(w, 0.1)
	assert.Equal(t, 3, w.Projectiles().LiveCount())
}

func TestDirectorRetriesWhenTargetMissing(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", Phases: []component.Phase{{
		HealthPercent:  1.0,
		MoveMultiplier: 1,
		Patterns: []component.Pattern{{
			Kind: "spread", Cooldown: 3.5, Count: 3, ArcDegrees: 30, Speed: 400, Damage: 5, RetryOnNoTarget: true,
		}},
	}}}
	_, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})

	// No player entity exists yet.
	NewAttackSystem().Update(w, 0.1)
	assert.Equal(t, float64(0), rt.AttackCooldown, "a no-target abort must retry next tick")
	assert.Zero(t, w.Projectiles().LiveCount())

	addPlayer(t, w, cp.Vector{X: 400, Y: 360}, 100)
	NewAttackSystem().Update(w, 0.1)
	assert.Equal(t, 3.5, rt.AttackCooldown)
	assert.Equal(t, 3, w.Projectiles().LiveCount())
}

func TestDirectorWaitsOutExclusiveAttack(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", Phases: threePhases()}
	_, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	addPlayer(t, w, cp.Vector{X: 400, Y: 360}, 100)

	require.True(t, StartCharge(rt, "charge", cp.Vector{X: 600, Y: 360}, cp.Vector{X: 400, Y: 360}, 400, 2))
	NewAttackSystem().Update(w, 0.1)

	assert.Equal(t, fallbackCooldown, rt.AttackCooldown)
	assert.Zero(t, w.Projectiles().LiveCount())
}

func TestSelectByModeCyclesPatterns(t *testing.T) {
	w := newTestWorld()
	phase := &component.Phase{
		HealthPercent:  1.0,
		MoveMultiplier: 1,
		Patterns: []component.Pattern{
			{Kind: "spread"}, {Kind: "burst"}, {Kind: "slam"},
		},
	}
	ctx := &AttackContext{Runtime: &component.BossRuntime{}, RNG: w.Rand()}

	var got []string
	for i := 0; i < 6; i++ {
		got = append(got, SelectByMode(ctx, phase).Kind)
	}
	assert.Equal(t, []string{"spread", "burst", "slam", "spread", "burst", "slam"}, got)
}

func TestSelectByModeRandomHonorsWeights(t *testing.T) {
	w := newTestWorld()
	phase := &component.Phase{
		HealthPercent:  1.0,
		MoveMultiplier: 1,
		PatternMode:    "random",
		Patterns: []component.Pattern{
			{Kind: "spread", Weight: 0.0001},
			{Kind: "burst", Weight: 1000},
		},
	}
	ctx := &AttackContext{Runtime: &component.BossRuntime{}, RNG: w.Rand()}

	bursts := 0
	for i := 0; i < 200; i++ {
		if SelectByMode(ctx, phase).Kind == "burst" {
			bursts++
		}
	}
	assert.Greater(t, bursts, 190, "selection should follow the weights")
}

func TestDeferredVolleyDropsWithDefeatedBoss(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "revenant", Phases: []component.Phase{{
		HealthPercent:  1.0,
		MoveMultiplier: 1,
		Patterns: []component.Pattern{{
			Kind: "burst", Cooldown: 4, Count: 3, Interval: 0.5, Speed: 300, Damage: 5,
		}}},
	}}
	e, _ := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	addPlayer(t, w, cp.Vector{X: 400, Y: 360}, 100)

	NewAttackSystem().Update(w, 0.1)
	tick(w, 0)
	first := w.Projectiles().LiveCount()
	require.Equal(t, 1, first, "the first burst shot is due immediately")

	// Kill the boss before the staggered follow-ups are due.
	require.True(t, ApplyDamage(w, e, 500, cp.Vector{X: 500, Y: 360}))
	tick(w, 2.0)

	assert.Equal(t, first, w.Projectiles().LiveCount(), "follow-up shots from a dead boss must not fire")
}
