package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

func TestBreakableGuardSequence(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{
		Name:   "test",
		Type:   "revenant",
		Guard:  &component.GuardConfig{Threshold: 5, VulnerableFor: 3, RelocateMin: 50, RelocateMax: 100},
		Phases: threePhases(),
	}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	require.True(t, rt.Invulnerable)

	attacker := cp.Vector{X: 500, Y: 360}

	// Hits one through four are blocked and relocate the boss.
	for i := 1; i <= 4; i++ {
		before := bossTransform(t, w, e).Pos
		assert.False(t, ApplyDamage(w, e, 10, attacker), "hit %d should be blocked", i)
		assert.Equal(t, float64(100), bossHealth(t, w, e).Current)
		assert.NotEqual(t, before, bossTransform(t, w, e).Pos, "hit %d should relocate", i)
		assert.Equal(t, i, rt.BlockedHits)
	}

	// The fifth blocked hit breaks the guard open.
	assert.False(t, ApplyDamage(w, e, 10, attacker))
	assert.False(t, rt.Invulnerable)
	assert.Zero(t, rt.BlockedHits)
	assert.Equal(t, float64(100), bossHealth(t, w, e).Current)

	// Now damage lands.
	assert.True(t, ApplyDamage(w, e, 10, attacker))
	assert.Equal(t, float64(90), bossHealth(t, w, e).Current)

	// The window closes on the timeline and the guard is back.
	tick(w, 3.1)
	assert.True(t, rt.Invulnerable)
	assert.False(t, ApplyDamage(w, e, 10, attacker))
	assert.Equal(t, float64(90), bossHealth(t, w, e).Current)
}

func TestDirectionalShieldArc(t *testing.T) {
	arc := 90.0
	cases := []struct {
		name       string
		bearingDeg float64
		wantDamage float64
	}{
		{"head_on", 0, 5},
		{"inside_arc", 30, 5},
		{"exactly_half_arc_counts_inside", 45, 5},
		{"just_outside", 46, 10},
		{"behind", 180, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld()
			boss := &component.Boss{
				Name:   "test",
				Type:   "warden",
				Shield: &component.ShieldConfig{ArcDegrees: arc, Reduction: 0.5},
				Phases: threePhases(),
			}
			e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
			require.True(t, rt.ShieldActive)
			// Facing +X; attacker placed on the given bearing.
			rad := c.bearingDeg * math.Pi / 180
			attacker := cp.Vector{X: 600, Y: 360}.Add(cp.ForAngle(rad).Mult(80))

			require.True(t, ApplyDamage(w, e, 10, attacker))
			assert.InDelta(t, 100-c.wantDamage, bossHealth(t, w, e).Current, 1e-9)
		})
	}
}

func TestArmorBreakAmplifiesDamage(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	rt.ArmorBroken = true

	require.True(t, ApplyDamage(w, e, 10, cp.Vector{X: 500, Y: 360}))
	assert.InDelta(t, 87.5, bossHealth(t, w, e).Current, 1e-9)
}

func TestDefeatReleasesEverythingOwned(t *testing.T) {
	w := newTestWorld()
	w.SetSpawner(&stubSpawner{})
	boss := &component.Boss{Name: "test", Type: "gravemind", Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 10, cp.Vector{X: 600, Y: 360})

	rt.Warnings = append(rt.Warnings, &component.Telegraph{Duration: 10})
	rt.Orbitals = append(rt.Orbitals, &component.Orbital{Duration: 10})

	minions := SummonMinions(w, e, cp.Vector{X: 600, Y: 360}, "thrall", 1, 2, component.RoleMinion)
	require.Equal(t, 2, minions)

	require.True(t, ApplyDamage(w, e, 50, cp.Vector{X: 500, Y: 360}))

	hp := bossHealth(t, w, e)
	assert.True(t, hp.Defeated)
	assert.Zero(t, hp.Current)
	assert.Empty(t, rt.Warnings)
	assert.Empty(t, rt.Orbitals)

	owned := 0
	ecs.ForEach(w, component.MinionComponent.Kind(), func(ent ecs.Entity, m *component.Minion) {
		if m.Owner == uint64(e) {
			owned++
		}
	})
	assert.Zero(t, owned, "owned minions must die with the boss")

	// Further hits are ignored.
	assert.False(t, ApplyDamage(w, e, 10, cp.Vector{X: 500, Y: 360}))

	// The corpse reaps through the TTL system.
	TTLSystem{}.Update(w, corpseLinger+0.1)
	assert.False(t, ecs.IsAlive(w, e))
}

type recordingPresenter struct {
	hits []ecs.Entity
}

func (p *recordingPresenter) HitFeedback(e ecs.Entity)       { p.hits = append(p.hits, e) }
func (p *recordingPresenter) ColorMarker(ecs.Entity, string) {}

func TestHitFeedbackFiresOnBlockedHits(t *testing.T) {
	w := newTestWorld()
	pres := &recordingPresenter{}
	w.SetPresenter(pres)

	boss := &component.Boss{
		Name:   "test",
		Type:   "revenant",
		Guard:  &component.GuardConfig{Threshold: 5, VulnerableFor: 3, RelocateMin: 50, RelocateMax: 100},
		Phases: threePhases(),
	}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	require.True(t, rt.Invulnerable)

	require.False(t, ApplyDamage(w, e, 10, cp.Vector{X: 500, Y: 360}))
	require.Len(t, pres.hits, 1, "blocked hits still flash")
	assert.Equal(t, e, pres.hits[0])

	rt.Invulnerable = false
	rt.BlockedHits = 0
	require.True(t, ApplyDamage(w, e, 10, cp.Vector{X: 500, Y: 360}))
	assert.Len(t, pres.hits, 2)
}

func TestDamagePlayerClampsAtZero(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(t, w, cp.Vector{X: 100, Y: 100}, 15)

	DamagePlayer(w, 10)
	DamagePlayer(w, 10)

	hp, ok := ecs.Get(w, p, component.HealthComponent.Kind())
	require.True(t, ok)
	assert.Zero(t, hp.Current)
}
