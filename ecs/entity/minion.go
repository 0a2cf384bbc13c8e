package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
	"github.com/mossfell/bossrush/prefabs"
)

// NewMinion builds a minion of the given kind at pos. Kinds come from
// minion.yaml; unknown kinds are an error so summon configs fail loudly.
// Ownership is set by the caller after creation.
func NewMinion(w *ecs.World, spec *prefabs.MinionSpec, kind string, level int, pos cp.Vector) (ecs.Entity, error) {
	ks, ok := spec.Kinds[kind]
	if !ok {
		return 0, fmt.Errorf("minion: unknown kind %q", kind)
	}
	if level < 1 {
		level = 1
	}

	e := ecs.CreateEntity(w)

	hp := ks.Health + ks.HealthPerLvl*float64(level-1)
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: hp,
		Max:     hp,
	}); err != nil {
		return 0, fmt.Errorf("minion: add health: %w", err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Pos:    pos,
		Facing: cp.Vector{X: 1},
		Radius: ks.Radius,
	}); err != nil {
		return 0, fmt.Errorf("minion: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.MinionComponent.Kind(), &component.Minion{
		Kind:          kind,
		Level:         level,
		MoveSpeed:     ks.MoveSpeed,
		ContactDamage: ks.ContactDamage,
	}); err != nil {
		return 0, fmt.Errorf("minion: add minion: %w", err)
	}

	if ks.Color != "" {
		if err := ecs.Add(w, e, component.ColorMarkerComponent.Kind(), &component.ColorMarker{Color: ks.Color}); err != nil {
			return 0, fmt.Errorf("minion: add color: %w", err)
		}
	}

	if ks.Lifetime > 0 {
		if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: ks.Lifetime}); err != nil {
			return 0, fmt.Errorf("minion: add ttl: %w", err)
		}
	}

	return e, nil
}
