package system

import (
	"math/rand/v2"

	"github.com/mossfell/bossrush/ecs/component"
)

func init() {
	RegisterAttackHandler("bulwark", bulwarkHandler{})
	RegisterAttackHandler("warden", wardenHandler{})
	RegisterAttackHandler("revenant", revenantHandler{})
	RegisterAttackHandler("gravemind", gravemindHandler{})
}

// bulwarkHandler splits the current phase's patterns into melee and ranged
// sets and picks from whichever matches the player's distance. A brawler
// that has closed in should not waste its turn lobbing shots.
type bulwarkHandler struct{}

func (bulwarkHandler) SelectPattern(ctx *AttackContext, phase *component.Phase) *component.Pattern {
	if !ctx.HasTarget {
		return SelectByMode(ctx, phase)
	}
	dist := ctx.Target.Sub(ctx.Transform.Pos).Length()
	inReach := dist <= ctx.Boss.EngagementRange
	var pool []*component.Pattern
	for i := range phase.Patterns {
		p := &phase.Patterns[i]
		if isMeleeKind(p.Kind) == inReach {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return SelectByMode(ctx, phase)
	}
	return weightedPick(ctx.RNG, pool)
}

func isMeleeKind(kind string) bool {
	switch kind {
	case "slam", "weapon_rotation", "charge":
		return true
	}
	return false
}

// wardenHandler keeps range. When the player crowds inside the maintain
// band it reaches for an escape pattern before anything else.
type wardenHandler struct{}

func (wardenHandler) SelectPattern(ctx *AttackContext, phase *component.Phase) *component.Pattern {
	if ctx.HasTarget && ctx.Runtime.MaintainDistance > 0 {
		dist := ctx.Target.Sub(ctx.Transform.Pos).Length()
		if dist < ctx.Runtime.MaintainDistance*0.6 {
			for i := range phase.Patterns {
				p := &phase.Patterns[i]
				if p.Kind == "dash" || p.Kind == "teleport" {
					return p
				}
			}
		}
	}
	return SelectByMode(ctx, phase)
}

// revenantHandler never fires the same pattern twice in a row when it has a
// choice, which keeps its blink-and-strike rhythm unpredictable.
type revenantHandler struct{}

func (revenantHandler) SelectPattern(ctx *AttackContext, phase *component.Phase) *component.Pattern {
	n := len(phase.Patterns)
	if n <= 1 {
		return SelectByMode(ctx, phase)
	}
	last := ctx.Runtime.PatternCursor % n
	pool := make([]*component.Pattern, 0, n-1)
	for i := range phase.Patterns {
		if i != last {
			pool = append(pool, &phase.Patterns[i])
		}
	}
	pick := weightedPick(ctx.RNG, pool)
	for i := range phase.Patterns {
		if &phase.Patterns[i] == pick {
			ctx.Runtime.PatternCursor = i
		}
	}
	return pick
}

// gravemindHandler defers to the phase's own mode. Registered so the boss
// roster stays explicit even where no override is needed.
type gravemindHandler struct{}

func (gravemindHandler) SelectPattern(ctx *AttackContext, phase *component.Phase) *component.Pattern {
	return SelectByMode(ctx, phase)
}

func weightedPick(rng *rand.Rand, pool []*component.Pattern) *component.Pattern {
	if len(pool) == 0 {
		return nil
	}
	total := 0.0
	for _, p := range pool {
		w := p.Weight
		if w <= 0 {
			w = 1
		}
		total += w
	}
	roll := rng.Float64() * total
	for _, p := range pool {
		w := p.Weight
		if w <= 0 {
			w = 1
		}
		roll -= w
		if roll < 0 {
			return p
		}
	}
	return pool[len(pool)-1]
}
