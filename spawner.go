package main

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/entity"
	"github.com/mossfell/bossrush/prefabs"
)

// prefabSpawner builds minions from minion.yaml kinds.
type prefabSpawner struct {
	minions *prefabs.MinionSpec
}

func (s *prefabSpawner) SpawnMinion(w *ecs.World, kind string, level int, pos cp.Vector) (ecs.Entity, bool) {
	e, err := entity.NewMinion(w, s.minions, kind, level, pos)
	if err != nil {
		slog.Warn("spawner: minion", "kind", kind, "err", err)
		return 0, false
	}
	return e, true
}
