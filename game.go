package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/mossfell/bossrush/common"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
	"github.com/mossfell/bossrush/ecs/entity"
	"github.com/mossfell/bossrush/ecs/system"
	"github.com/mossfell/bossrush/prefabs"
)

// simDT is the fixed simulation step. Ebiten ticks at 60 TPS by default, so
// one Update call is one step.
const simDT = 1.0 / 60.0

const defaultSeed = 0x6242

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	hud       *HUD

	roster    []string
	rosterIdx int
	boss      ecs.Entity
	player    ecs.Entity

	arena   *prefabs.ArenaSpec
	watcher *prefabs.Watcher

	debug    bool
	paused   bool
	over     bool
	overText string
}

func NewGame(roster []string, seed uint64, debug bool) (*Game, error) {
	arena, err := prefabs.LoadArenaSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	minions, err := prefabs.LoadMinionSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	if seed == 0 {
		seed = defaultSeed
	}

	w := ecs.NewWorld()
	w.SetArena(cp.BB{L: 0, B: 0, R: arena.Width, T: arena.Height})
	w.SetRand(rand.New(rand.NewPCG(seed, seed<<1|1)))
	w.SetProjectiles(ecs.NewProjectilePool(256))
	w.SetIDs(ecs.NewIDAllocator(1))
	w.SetPresenter(&flashPresenter{world: w})
	w.SetAudio(&logAudio{enabled: debug})
	w.SetSpawner(&prefabSpawner{minions: minions})

	g := &Game{
		world:  w,
		roster: roster,
		arena:  arena,
		debug:  debug,
	}

	g.scheduler = ecs.NewScheduler(
		&system.PhaseSystem{},
		&system.AttackSystem{},
		system.MovementSystem{},
		system.MinionSystem{},
		system.EffectSystem{},
		system.ProjectileSystem{},
		system.TimelineSystem{},
		system.TTLSystem{},
	)

	g.player, err = entity.NewPlayer(w, cp.Vector{X: arena.PlayerSpawn.X, Y: arena.PlayerSpawn.Y})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	if err := g.spawnBoss(roster[0]); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g.hud = NewHUD()

	if watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err == nil {
		g.watcher = watcher
	} else {
		slog.Debug("game: prefab watcher unavailable", "err", err)
	}

	return g, nil
}

func (g *Game) spawnBoss(name string) error {
	boss, err := entity.NewBoss(g.world, name, cp.Vector{X: g.arena.BossSpawn.X, Y: g.arena.BossSpawn.Y})
	if err != nil {
		return err
	}
	g.boss = boss
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused || g.over {
		return nil
	}

	g.pollWatcher()
	g.updatePlayer(simDT)
	g.scheduler.Update(g.world, simDT)
	g.drainEvents()
	g.hud.Update(g.world, g.boss, g.player, simDT)
	return nil
}

// updatePlayer applies movement and firing input. The player is a plain
// circle with a gun; everything interesting lives on the other side.
func (g *Game) updatePlayer(dt float64) {
	ply, ok := ecs.Get(g.world, g.player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	tr, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if hp, ok := ecs.Get(g.world, g.player, component.HealthComponent.Kind()); ok && hp.Current <= 0 {
		g.over = true
		g.overText = "Defeated"
		return
	}

	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X += 1
	}
	if move.Length() > 0 {
		step := move.Normalize().Mult(ply.MoveSpeed * dt)
		next := tr.Pos.Add(step)
		next.X = common.Clamp(next.X, 0, g.arena.Width)
		next.Y = common.Clamp(next.Y, 0, g.arena.Height)
		tr.Pos = next
	}

	cx, cy := ebiten.CursorPosition()
	aim := cp.Vector{X: float64(cx), Y: float64(cy)}.Sub(tr.Pos)
	if aim.Length() > 0 {
		tr.Facing = aim.Normalize()
	}

	ply.SinceShot += dt
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && ply.SinceShot >= ply.FireCooldown {
		ply.SinceShot = 0
		p := g.world.Projectiles().Acquire()
		p.Pos = tr.Pos.Add(tr.Facing.Mult(tr.Radius + ply.ProjectileSize))
		p.Vel = tr.Facing.Mult(ply.ProjectileSpeed)
		p.Radius = ply.ProjectileSize
		p.Damage = ply.Damage
		p.TTL = 3.0
		p.FromBoss = false
	}
}

func (g *Game) drainEvents() {
	for _, ev := range g.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventNotification:
			if n, ok := ev.Data.(ecs.NotificationEvent); ok {
				g.hud.Notify(n.Title, n.Text)
			}
		case ecs.EventPhaseStarted:
			if p, ok := ev.Data.(ecs.PhaseStartedEvent); ok {
				slog.Debug("phase started", "index", p.Index, "name", p.Name)
			}
		case ecs.EventBossDefeated:
			g.advanceRoster()
		}
	}
}

// advanceRoster schedules the next boss three seconds after a kill, or ends
// the run when the roster is exhausted.
func (g *Game) advanceRoster() {
	g.rosterIdx++
	if g.rosterIdx >= len(g.roster) {
		g.over = true
		g.overText = "Victory"
		return
	}
	next := g.roster[g.rosterIdx]
	g.world.Timeline().After(3.0, func() bool { return true }, func() {
		if err := g.spawnBoss(next); err != nil {
			slog.Warn("game: spawn next boss", "boss", next, "err", err)
			g.over = true
			g.overText = "Victory"
		}
	})
}

// pollWatcher applies prefab edits to the live boss without restarting the
// fight. Static tuning and phase tables swap in place; runtime progression
// (health, phase index, cooldowns) is kept.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			slog.Info("prefab changed", "path", path)
			reload = true
		case err := <-g.watcher.Errors:
			if err != nil {
				slog.Warn("prefab watcher", "err", err)
			}
			return
		default:
			if reload {
				g.reloadBoss()
			}
			return
		}
	}
}

func (g *Game) reloadBoss() {
	name := g.roster[g.rosterIdx%len(g.roster)]
	spec, err := prefabs.LoadBossSpec(name)
	if err != nil {
		slog.Warn("game: reload boss spec", "boss", name, "err", err)
		return
	}
	boss, ok := ecs.Get(g.world, g.boss, component.BossComponent.Kind())
	if !ok {
		return
	}
	if err := entity.ApplySpec(boss, spec); err != nil {
		slog.Warn("game: apply reloaded spec", "boss", name, "err", err)
		return
	}
	g.hud.Notify(boss.Name, "tuning reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world, g.debug)
	g.hud.Draw(screen, g.paused, g.over, g.overText)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
