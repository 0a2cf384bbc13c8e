package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
	"github.com/mossfell/bossrush/ecs/system"
	"github.com/mossfell/bossrush/prefabs"
)

// NewBoss builds a boss from <name>.yaml at pos. The boss starts in the
// spawning drop; gameplay systems leave it alone until it lands.
func NewBoss(w *ecs.World, name string, pos cp.Vector) (ecs.Entity, error) {
	spec, err := prefabs.LoadBossSpec(name)
	if err != nil {
		return 0, fmt.Errorf("boss: load spec: %w", err)
	}
	if !system.HasAttackHandler(component.BossType(spec.Type)) {
		return 0, fmt.Errorf("boss: unknown type %q", spec.Type)
	}

	e := ecs.CreateEntity(w)

	boss := &component.Boss{
		ID:              w.IDs().Next(),
		Name:            spec.Name,
		Type:            component.BossType(spec.Type),
		MoveSpeed:       spec.MoveSpeed,
		EngagementRange: spec.EngagementRange,
		ContactDamage:   spec.ContactDamage,
		Phases:          convertPhases(spec.Phases),
	}
	if spec.Shield != nil {
		boss.Shield = &component.ShieldConfig{
			ArcDegrees: spec.Shield.ArcDegrees,
			Reduction:  spec.Shield.Reduction,
		}
	}
	if spec.Guard != nil {
		boss.Guard = &component.GuardConfig{
			Threshold:     spec.Guard.Threshold,
			VulnerableFor: spec.Guard.VulnerableFor,
			RelocateMin:   spec.Guard.RelocateMin,
			RelocateMax:   spec.Guard.RelocateMax,
		}
	}
	if err := ecs.Add(w, e, component.BossComponent.Kind(), boss); err != nil {
		return 0, fmt.Errorf("boss: add boss: %w", err)
	}

	first := &boss.Phases[0]
	rt := &component.BossRuntime{
		State:            component.StateSpawning,
		PhaseIndex:       0,
		ShieldActive:     boss.Shield != nil,
		Invulnerable:     boss.Guard != nil,
		MoveMultiplier:   first.MoveMultiplier,
		MaintainDistance: first.MaintainDistance,
		Color:            first.Color,
	}
	if err := ecs.Add(w, e, component.BossRuntimeComponent.Kind(), rt); err != nil {
		return 0, fmt.Errorf("boss: add runtime: %w", err)
	}

	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: spec.Health,
		Max:     spec.Health,
	}); err != nil {
		return 0, fmt.Errorf("boss: add health: %w", err)
	}

	alt := spec.SpawnAltitude
	if alt <= 0 {
		alt = 260
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Pos:    pos,
		Alt:    alt,
		Facing: cp.Vector{X: -1},
		Radius: spec.Radius,
	}); err != nil {
		return 0, fmt.Errorf("boss: add transform: %w", err)
	}

	return e, nil
}

// ApplySpec swaps a live boss's static tuning for a freshly loaded spec.
// Identity and runtime progression are untouched, so a fight in progress
// picks up edits without resetting.
func ApplySpec(boss *component.Boss, spec *prefabs.BossSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	boss.Name = spec.Name
	boss.Type = component.BossType(spec.Type)
	boss.MoveSpeed = spec.MoveSpeed
	boss.EngagementRange = spec.EngagementRange
	boss.ContactDamage = spec.ContactDamage
	boss.Phases = convertPhases(spec.Phases)
	boss.Shield = nil
	if spec.Shield != nil {
		boss.Shield = &component.ShieldConfig{
			ArcDegrees: spec.Shield.ArcDegrees,
			Reduction:  spec.Shield.Reduction,
		}
	}
	boss.Guard = nil
	if spec.Guard != nil {
		boss.Guard = &component.GuardConfig{
			Threshold:     spec.Guard.Threshold,
			VulnerableFor: spec.Guard.VulnerableFor,
			RelocateMin:   spec.Guard.RelocateMin,
			RelocateMax:   spec.Guard.RelocateMax,
		}
	}
	return nil
}

func convertPhases(specs []prefabs.PhaseSpec) []component.Phase {
	phases := make([]component.Phase, len(specs))
	for i, ps := range specs {
		phases[i] = component.Phase{
			Name:             ps.Name,
			HealthPercent:    ps.HealthPercent,
			MinHealthPercent: ps.MinHealthPercent,
			OnStart:          ps.OnStart,
			MoveMultiplier:   ps.MoveMultiplier,
			MaintainDistance: ps.MaintainDistance,
			Color:            ps.Color,
			PatternMode:      ps.PatternMode,
			Patterns:         convertPatterns(ps.Patterns),
		}
	}
	return phases
}

func convertPatterns(specs []prefabs.PatternSpec) []component.Pattern {
	patterns := make([]component.Pattern, len(specs))
	for i, ps := range specs {
		patterns[i] = component.Pattern{
			Kind:            ps.Kind,
			Cooldown:        ps.Cooldown,
			Weight:          ps.Weight,
			RetryOnNoTarget: ps.RetryOnNoTarget,
			Count:           ps.Count,
			ArcDegrees:      ps.ArcDegrees,
			Speed:           ps.Speed,
			Damage:          ps.Damage,
			Radius:          ps.Radius,
			Range:           ps.Range,
			Duration:        ps.Duration,
			WarnDuration:    ps.WarnDuration,
			Interval:        ps.Interval,
			ApexHeight:      ps.ApexHeight,
			AngularVel:      ps.AngularVel,
			Script:          ps.Script,
			MinionKind:      ps.MinionKind,
			MinionLevel:     ps.MinionLevel,
		}
	}
	return patterns
}
