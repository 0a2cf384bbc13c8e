package main

import (
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

const hitFlashDuration = 0.12

// flashPresenter turns core feedback callbacks into render-side components.
type flashPresenter struct {
	world *ecs.World
}

func (p *flashPresenter) HitFeedback(e ecs.Entity) {
	if flash, ok := ecs.Get(p.world, e, component.HitFlashComponent.Kind()); ok {
		flash.Remaining = hitFlashDuration
		return
	}
	_ = ecs.Add(p.world, e, component.HitFlashComponent.Kind(), &component.HitFlash{Remaining: hitFlashDuration})
}

func (p *flashPresenter) ColorMarker(e ecs.Entity, color string) {
	if marker, ok := ecs.Get(p.world, e, component.ColorMarkerComponent.Kind()); ok {
		marker.Color = color
		return
	}
	_ = ecs.Add(p.world, e, component.ColorMarkerComponent.Kind(), &component.ColorMarker{Color: color})
}
