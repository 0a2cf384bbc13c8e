package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

func TestEffectListsDropExpired(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", Phases: threePhases()}
	_, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})

	rt.Warnings = append(rt.Warnings,
		&component.Telegraph{Pos: cp.Vector{X: 100}, Radius: 40, Duration: 0.5},
		&component.Telegraph{Pos: cp.Vector{X: 200}, Radius: 40, Duration: 2.0},
	)
	rt.Hazards = append(rt.Hazards, &component.Hazard{Pos: cp.Vector{X: 100}, Radius: 40, Duration: 0.5})
	rt.GravityZones = append(rt.GravityZones, &component.GravityZone{Pos: cp.Vector{X: 100}, Radius: 40, Duration: 3.0})

	EffectSystem{}.Update(w, 1.0)

	require.Len(t, rt.Warnings, 1)
	assert.Equal(t, float64(200), rt.Warnings[0].Pos.X, "the longer warning survives")
	assert.Empty(t, rt.Hazards)
	assert.Len(t, rt.GravityZones, 1)
}

func TestHazardTicksDamage(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "gravemind", Phases: threePhases()}
	_, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	player := addPlayer(t, w, cp.Vector{X: 100, Y: 100}, 100)
	rt.Hazards = append(rt.Hazards, &component.Hazard{
		Pos: cp.Vector{X: 100, Y: 100}, Radius: 40, Damage: 10, Interval: 0.5, Duration: 10,
	})

	sys := EffectSystem{}
	sys.Update(w, 0.4)
	hp := bossHealth(t, w, player)
	assert.Equal(t, float64(100), hp.Current, "no tick due yet")

	sys.Update(w, 0.2)
	assert.Equal(t, float64(90), hp.Current)

	// Standing outside the pool is safe even when a tick is due.
	ptr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	require.True(t, ok)
	ptr.Pos = cp.Vector{X: 400, Y: 400}
	sys.Update(w, 0.6)
	assert.Equal(t, float64(90), hp.Current)
}

func TestLaserFollowsBossAndBurns(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "warden", Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	player := addPlayer(t, w, cp.Vector{X: 700, Y: 360}, 100)
	rt.Lasers = append(rt.Lasers, &component.LaserBeam{
		Angle: 0, SweepRate: 0, Length: 300, Width: 14, Damage: 40, Duration: 5,
	})

	sys := EffectSystem{}
	sys.Update(w, 0.5)

	// The beam re-anchors on the boss each tick and burns per second.
	assert.Equal(t, cp.Vector{X: 600, Y: 360}, rt.Lasers[0].Origin)
	hp := bossHealth(t, w, player)
	assert.InDelta(t, 80, hp.Current, 1e-9)

	// Moving the boss moves the beam off the player.
	tr := bossTransform(t, w, e)
	tr.Pos = cp.Vector{X: 600, Y: 60}
	sys.Update(w, 0.5)
	assert.InDelta(t, 80, hp.Current, 1e-9)
}

func TestGravityZonePullsPlayer(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "gravemind", Phases: threePhases()}
	_, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	player := addPlayer(t, w, cp.Vector{X: 460, Y: 360}, 100)
	rt.GravityZones = append(rt.GravityZones, &component.GravityZone{
		Pos: cp.Vector{X: 400, Y: 360}, Radius: 100, Pull: 80, Duration: 5,
	})

	EffectSystem{}.Update(w, 0.5)

	ptr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 420, ptr.Pos.X, 1e-9, "pulled 40 units toward the center")

	// Outside the radius the zone has no grip.
	ptr.Pos = cp.Vector{X: 600, Y: 360}
	EffectSystem{}.Update(w, 0.5)
	assert.InDelta(t, 600, ptr.Pos.X, 1e-9)
}

func TestPersistentOrbitalsTrackBoss(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	addPlayer(t, w, cp.Vector{X: 100, Y: 100}, 100)

	PlaceOrbitals(rt, cp.Vector{X: 600, Y: 360}, 1, 50, 0, 0, 10, 10, true)
	require.Len(t, rt.Orbitals, 1)

	tr := bossTransform(t, w, e)
	tr.Pos = cp.Vector{X: 300, Y: 200}
	EffectSystem{}.Update(w, 1.0/60)

	// The blade ring re-centers on the boss as it moves.
	assert.Equal(t, cp.Vector{X: 300, Y: 200}, rt.Orbitals[0].Center)
	assert.InDelta(t, 50, rt.Orbitals[0].Pos().Sub(tr.Pos).Length(), 1e-9)
}
