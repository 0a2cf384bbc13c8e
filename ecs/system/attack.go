package system

import (
	"log/slog"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

// fallbackCooldown is applied whenever a pattern aborts or misconfigures so
// the director always makes forward progress.
const fallbackCooldown = 1.5

// AttackContext carries everything a handler or pattern executor needs for
// one director invocation.
type AttackContext struct {
	World     *ecs.World
	Entity    ecs.Entity
	Boss      *component.Boss
	Runtime   *component.BossRuntime
	Transform *component.Transform
	Target    cp.Vector
	HasTarget bool
	RNG       *rand.Rand
}

// AttackHandler picks the next pattern for one boss archetype. Handlers are
// registered per boss type; adding an archetype never touches the director.
type AttackHandler interface {
	SelectPattern(ctx *AttackContext, phase *component.Phase) *component.Pattern
}

var attackHandlers = map[component.BossType]AttackHandler{}

// RegisterAttackHandler installs the handler for a boss type, replacing any
// previous registration.
func RegisterAttackHandler(t component.BossType, h AttackHandler) {
	attackHandlers[t] = h
}

// HasAttackHandler reports whether a boss type has a registered handler.
// Encounter creation uses this to reject unknown types up front.
func HasAttackHandler(t component.BossType) bool {
	_, ok := attackHandlers[t]
	return ok
}

// PatternFunc executes one pattern kind. It returns false only for a
// missing-target abort; every other outcome counts as executed.
type PatternFunc func(ctx *AttackContext, p *component.Pattern) bool

var patternFuncs = map[string]PatternFunc{}

// RegisterPattern installs the executor for a pattern kind.
func RegisterPattern(kind string, fn PatternFunc) {
	patternFuncs[kind] = fn
}

// AttackSystem is the per-boss attack director. Once a boss's cooldown
// reaches zero it dispatches through the type handler table, runs the chosen
// pattern, and re-arms the cooldown. Every invocation, aborts included, sets
// a new cooldown before returning. The one exception is a no-target abort on
// a pattern flagged RetryOnNoTarget, which retries next tick.
type AttackSystem struct{}

func NewAttackSystem() *AttackSystem { return &AttackSystem{} }

func (s *AttackSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	target, hasTarget := playerPosition(w)

	ecs.ForEach4(w,
		component.BossComponent.Kind(),
		component.BossRuntimeComponent.Kind(),
		component.HealthComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, hp *component.Health, tr *component.Transform) {
			if hp.Defeated {
				return
			}
			rt.AttackCooldown -= dt
			if rt.AttackCooldown > 0 {
				return
			}
			if rt.State == component.StateSpawning || rt.Current != nil {
				// Not ready to act; still consume the attempt so the
				// director keeps making forward progress.
				rt.AttackCooldown = fallbackCooldown
				return
			}

			ctx := &AttackContext{
				World:     w,
				Entity:    e,
				Boss:      boss,
				Runtime:   rt,
				Transform: tr,
				Target:    target,
				HasTarget: hasTarget,
				RNG:       w.Rand(),
			}
			s.direct(ctx)
		})
}

func (s *AttackSystem) direct(ctx *AttackContext) {
	rt := ctx.Runtime
	if rt.PhaseIndex < 0 || rt.PhaseIndex >= len(ctx.Boss.Phases) {
		rt.AttackCooldown = fallbackCooldown
		return
	}
	phase := &ctx.Boss.Phases[rt.PhaseIndex]
	if len(phase.Patterns) == 0 {
		rt.AttackCooldown = fallbackCooldown
		return
	}

	handler, ok := attackHandlers[ctx.Boss.Type]
	if !ok {
		handler = defaultHandler{}
	}
	pattern := handler.SelectPattern(ctx, phase)
	if pattern == nil {
		rt.AttackCooldown = fallbackCooldown
		return
	}

	exec, ok := patternFuncs[pattern.Kind]
	if !ok {
		slog.Warn("attack: no executor for pattern", "boss", ctx.Boss.Name, "kind", pattern.Kind)
		rt.AttackCooldown = fallbackCooldown
		return
	}

	rt.State = component.StateAttacking
	executed := exec(ctx, pattern)
	if !executed && pattern.RetryOnNoTarget {
		// Leave the cooldown unconsumed so the attempt repeats next tick.
		rt.AttackCooldown = 0
		return
	}
	cooldown := pattern.Cooldown
	if cooldown <= 0 {
		cooldown = fallbackCooldown
	}
	rt.AttackCooldown = cooldown
}

// defaultHandler walks the phase's patterns by cursor ("cycle") or weighted
// random ("random").
type defaultHandler struct{}

func (defaultHandler) SelectPattern(ctx *AttackContext, phase *component.Phase) *component.Pattern {
	return SelectByMode(ctx, phase)
}

// SelectByMode is the shared cycle/weighted-random selection used by the
// default handler and, as a base case, by the archetype handlers.
func SelectByMode(ctx *AttackContext, phase *component.Phase) *component.Pattern {
	n := len(phase.Patterns)
	if n == 0 {
		return nil
	}
	if phase.PatternMode == "random" {
		total := 0.0
		for i := range phase.Patterns {
			wgt := phase.Patterns[i].Weight
			if wgt <= 0 {
				wgt = 1
			}
			total += wgt
		}
		roll := ctx.RNG.Float64() * total
		for i := range phase.Patterns {
			wgt := phase.Patterns[i].Weight
			if wgt <= 0 {
				wgt = 1
			}
			roll -= wgt
			if roll <= 0 {
				return &phase.Patterns[i]
			}
		}
		return &phase.Patterns[n-1]
	}
	pick := &phase.Patterns[ctx.Runtime.PatternCursor%n]
	ctx.Runtime.PatternCursor++
	return pick
}

func playerPosition(w *ecs.World) (cp.Vector, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return tr.Pos, true
}
