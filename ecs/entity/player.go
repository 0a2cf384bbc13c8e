package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
	"github.com/mossfell/bossrush/prefabs"
)

func NewPlayer(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}

	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:       spec.MoveSpeed,
		ProjectileSpeed: spec.ProjectileSpeed,
		ProjectileSize:  spec.ProjectileSize,
		Damage:          spec.Damage,
		FireCooldown:    spec.FireCooldown,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: spec.Health,
		Max:     spec.Health,
	}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Pos:    pos,
		Facing: cp.Vector{X: 1},
		Radius: spec.Radius,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	return e, nil
}
