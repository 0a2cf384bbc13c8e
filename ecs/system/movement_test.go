package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

func TestSpawnFallLandsAndAnnounces(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "Bulwark", Type: "bulwark", MoveSpeed: 100, Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	rt.State = component.StateSpawning
	tr := bossTransform(t, w, e)
	tr.Alt = 260
	tr.GroundAlt = 0

	sys := MovementSystem{}
	sys.Update(w, 0.5)
	assert.InDelta(t, 260-spawnFallSpeed*0.5, tr.Alt, 1e-9)
	assert.Equal(t, component.StateSpawning, rt.State)

	// Enough frames to reach the ground.
	sys.Update(w, 0.5)
	assert.Equal(t, float64(0), tr.Alt)
	assert.Equal(t, component.StateIdle, rt.State)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	note, ok := events[0].Data.(ecs.NotificationEvent)
	require.True(t, ok)
	assert.Equal(t, "Bulwark", note.Title)
}

func TestChaseStopsAtEngagementRange(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", MoveSpeed: 100, EngagementRange: 60, Phases: threePhases()}
	e, _ := addBoss(t, w, boss, 100, cp.Vector{X: 700, Y: 360})
	addPlayer(t, w, cp.Vector{X: 400, Y: 360}, 100)
	tr := bossTransform(t, w, e)

	sys := MovementSystem{}
	for i := 0; i < 600; i++ {
		sys.Update(w, 1.0/60)
	}

	dist := tr.Pos.Sub(cp.Vector{X: 400, Y: 360}).Length()
	assert.InDelta(t, 60, dist, 2.0, "chase should settle at the engagement range")
	assert.InDelta(t, -1, tr.Facing.X, 1e-9)
	assert.InDelta(t, 0, tr.Facing.Y, 1e-9)
}

func TestZeroMoveMultiplierHoldsPosition(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "gravemind", MoveSpeed: 100, Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 700, Y: 360})
	rt.MoveMultiplier = 0
	addPlayer(t, w, cp.Vector{X: 100, Y: 100}, 100)
	tr := bossTransform(t, w, e)

	MovementSystem{}.Update(w, 1.0)
	assert.Equal(t, cp.Vector{X: 700, Y: 360}, tr.Pos)
}

func TestKeepDistanceStrafesInsideBand(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "warden", MoveSpeed: 200, Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	rt.MaintainDistance = 200
	player := cp.Vector{X: 400, Y: 360}
	addPlayer(t, w, player, 100)
	tr := bossTransform(t, w, e)

	before := tr.Pos
	MovementSystem{}.Update(w, 1.0/60)

	// Inside the hysteresis band the boss circles the player without
	// changing its radius.
	assert.NotEqual(t, before, tr.Pos)
	assert.InDelta(t, 200, tr.Pos.Sub(player).Length(), 1e-6)
}

func TestKeepDistanceClosesWhenTooFar(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "warden", MoveSpeed: 200, Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 900, Y: 360})
	rt.MaintainDistance = 200
	player := cp.Vector{X: 400, Y: 360}
	addPlayer(t, w, player, 100)
	tr := bossTransform(t, w, e)

	MovementSystem{}.Update(w, 0.1)
	assert.InDelta(t, 480, tr.Pos.Sub(player).Length(), 1e-6)

	// Too close flips the step outward.
	tr.Pos = cp.Vector{X: 450, Y: 360}
	MovementSystem{}.Update(w, 0.1)
	assert.InDelta(t, 70, tr.Pos.Sub(player).Length(), 1e-6)
}

func TestChargeEndsOnWall(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", MoveSpeed: 100, Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 1200, Y: 360})
	tr := bossTransform(t, w, e)

	require.True(t, StartCharge(rt, "charge", tr.Pos, cp.Vector{X: 2000, Y: 360}, 800, 5.0))
	rt.State = component.StateSpecial

	sys := MovementSystem{}
	sys.Update(w, 0.5)

	assert.Nil(t, rt.Current, "hitting the arena wall ends the charge")
	assert.Equal(t, component.StateIdle, rt.State)
	assert.LessOrEqual(t, tr.Pos.X, 1280.0)
}

func TestChargeRunsOverPlayer(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "bulwark", MoveSpeed: 100, ContactDamage: 30, Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	player := addPlayer(t, w, cp.Vector{X: 640, Y: 360}, 100)
	tr := bossTransform(t, w, e)

	require.True(t, StartCharge(rt, "charge", tr.Pos, cp.Vector{X: 900, Y: 360}, 400, 5.0))

	sys := MovementSystem{}
	sys.Update(w, 0.1)

	hp := bossHealth(t, w, player)
	assert.Equal(t, float64(70), hp.Current)
	assert.Nil(t, rt.Current, "contact ends the charge early")
}

func TestChargeSkipsRegularSteering(t *testing.T) {
	w := newTestWorld()
	boss := &component.Boss{Name: "test", Type: "warden", MoveSpeed: 200, Phases: threePhases()}
	e, rt := addBoss(t, w, boss, 100, cp.Vector{X: 600, Y: 360})
	rt.MaintainDistance = 300
	addPlayer(t, w, cp.Vector{X: 600, Y: 100}, 100)
	tr := bossTransform(t, w, e)

	require.True(t, StartCharge(rt, "dash", tr.Pos, cp.Vector{X: 700, Y: 360}, 100, 0.2))
	MovementSystem{}.Update(w, 0.1)

	// The dash direction wins over keep-away steering.
	assert.InDelta(t, 610, tr.Pos.X, 1e-6)
	assert.InDelta(t, 360, tr.Pos.Y, 1e-6)
}
