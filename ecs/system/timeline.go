package system

import "github.com/mossfell/bossrush/ecs"

// TimelineSystem pumps the world's deferred-action queue. It runs after the
// gameplay systems so actions scheduled this tick fire no earlier than the
// next one.
type TimelineSystem struct{}

func (TimelineSystem) Update(w *ecs.World, dt float64) {
	tl := w.Timeline()
	tl.Advance(dt)
	tl.Fire()
}
