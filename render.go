package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

var palette = map[string]color.NRGBA{
	"steel":     {R: 0x9c, G: 0xa8, B: 0xb8, A: 0xff},
	"ember":     {R: 0xe8, G: 0x6a, B: 0x17, A: 0xff},
	"blood":     {R: 0xb8, G: 0x1d, B: 0x2c, A: 0xff},
	"verdigris": {R: 0x43, G: 0xb0, B: 0x94, A: 0xff},
	"amber":     {R: 0xe0, G: 0xa4, B: 0x2b, A: 0xff},
	"ash":       {R: 0x6e, G: 0x6a, B: 0x73, A: 0xff},
	"violet":    {R: 0x8d, G: 0x4d, B: 0xc7, A: 0xff},
	"moss":      {R: 0x5a, G: 0x7d, B: 0x3b, A: 0xff},
	"bone":      {R: 0xd8, G: 0xd0, B: 0xbe, A: 0xff},
}

func paletteColor(name string, fallback color.NRGBA) color.NRGBA {
	if c, ok := palette[name]; ok {
		return c
	}
	return fallback
}

func drawWorld(screen *ebiten.Image, w *ecs.World, debug bool) {
	screen.Fill(color.NRGBA{R: 0x14, G: 0x12, B: 0x18, A: 0xff})

	ecs.ForEach2(w, component.BossRuntimeComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, rt *component.BossRuntime, tr *component.Transform) {
			drawEffects(screen, rt)
		})

	drawProjectiles(screen, w)
	drawMinions(screen, w)
	drawBosses(screen, w, debug)
	drawPlayer(screen, w)
}

func drawEffects(screen *ebiten.Image, rt *component.BossRuntime) {
	for _, warn := range rt.Warnings {
		// The ring tightens as the impact approaches.
		frac := float32(1 - warn.Elapsed/warn.Duration)
		vector.FillCircle(screen, float32(warn.Pos.X), float32(warn.Pos.Y), float32(warn.Radius), color.NRGBA{R: 0xff, G: 0x44, B: 0x22, A: 0x28}, false)
		vector.StrokeCircle(screen, float32(warn.Pos.X), float32(warn.Pos.Y), float32(warn.Radius)*frac, 2, color.NRGBA{R: 0xff, G: 0x66, B: 0x33, A: 0xc0}, false)
	}
	for _, h := range rt.Hazards {
		vector.FillCircle(screen, float32(h.Pos.X), float32(h.Pos.Y), float32(h.Radius), color.NRGBA{R: 0x7a, G: 0xb0, B: 0x22, A: 0x44}, false)
	}
	for _, z := range rt.GravityZones {
		vector.StrokeCircle(screen, float32(z.Pos.X), float32(z.Pos.Y), float32(z.Radius), 1.5, color.NRGBA{R: 0x8d, G: 0x4d, B: 0xc7, A: 0xa0}, false)
		vector.FillCircle(screen, float32(z.Pos.X), float32(z.Pos.Y), 6, color.NRGBA{R: 0x8d, G: 0x4d, B: 0xc7, A: 0xff}, false)
	}
	for _, l := range rt.Lasers {
		end := l.End()
		vector.StrokeLine(screen, float32(l.Origin.X), float32(l.Origin.Y), float32(end.X), float32(end.Y), float32(l.Width), color.NRGBA{R: 0xff, G: 0x2a, B: 0x5a, A: 0xb0}, false)
	}
	for _, o := range rt.Orbitals {
		pos := o.Pos()
		vector.FillCircle(screen, float32(pos.X), float32(pos.Y), 7, color.NRGBA{R: 0xff, G: 0xa0, B: 0x30, A: 0xff}, false)
	}
}

func drawProjectiles(screen *ebiten.Image, w *ecs.World) {
	pool := w.Projectiles()
	if pool == nil {
		return
	}
	for _, p := range pool.Live() {
		if !p.Live {
			continue
		}
		if p.Lob != nil {
			_, alt := p.Lob.At()
			// Shadow at the ground point, shell raised by its arc height.
			vector.FillCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius)*0.6, color.NRGBA{A: 0x60}, false)
			vector.FillCircle(screen, float32(p.Pos.X), float32(p.Pos.Y-alt*0.5), float32(p.Radius), color.NRGBA{R: 0xd0, G: 0x70, B: 0x20, A: 0xff}, false)
			continue
		}
		clr := color.NRGBA{R: 0x4a, G: 0xd0, B: 0xe8, A: 0xff}
		if p.FromBoss {
			clr = color.NRGBA{R: 0xe8, G: 0x50, B: 0x38, A: 0xff}
		}
		vector.FillCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), clr, false)
	}
}

func drawMinions(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.MinionComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, m *component.Minion, tr *component.Transform) {
			clr := paletteColor(minionColor(w, e), color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff})
			if m.Role == component.RolePlatform {
				vector.StrokeCircle(screen, float32(tr.Pos.X), float32(tr.Pos.Y), float32(tr.Radius), 2, clr, false)
				return
			}
			vector.FillCircle(screen, float32(tr.Pos.X), float32(tr.Pos.Y), float32(tr.Radius), clr, false)
		})
}

func minionColor(w *ecs.World, e ecs.Entity) string {
	if marker, ok := ecs.Get(w, e, component.ColorMarkerComponent.Kind()); ok {
		return marker.Color
	}
	return ""
}

func drawBosses(screen *ebiten.Image, w *ecs.World, debug bool) {
	ecs.ForEach3(w, component.BossComponent.Kind(), component.BossRuntimeComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, tr *component.Transform) {
			clr := paletteColor(rt.Color, color.NRGBA{R: 0xc0, G: 0x30, B: 0x30, A: 0xff})
			if _, flashing := ecs.Get(w, e, component.HitFlashComponent.Kind()); flashing {
				clr = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			}
			y := tr.Pos.Y - tr.Alt
			if tr.Alt > 0 {
				vector.FillCircle(screen, float32(tr.Pos.X), float32(tr.Pos.Y), float32(tr.Radius)*0.7, color.NRGBA{A: 0x60}, false)
			}
			vector.FillCircle(screen, float32(tr.Pos.X), float32(y), float32(tr.Radius), clr, false)

			if rt.Invulnerable {
				vector.StrokeCircle(screen, float32(tr.Pos.X), float32(y), float32(tr.Radius)+4, 2, color.NRGBA{R: 0xf0, G: 0xf0, B: 0xff, A: 0xa0}, false)
			}
			if rt.ShieldActive && boss.Shield != nil {
				drawShieldArc(screen, tr, boss.Shield.ArcDegrees)
			}
			if debug {
				ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s p%d cd %.1f", boss.Name, rt.State, rt.PhaseIndex, rt.AttackCooldown),
					int(tr.Pos.X)-40, int(y)-int(tr.Radius)-28)
			}
		})
}

// drawShieldArc marks the covered arc with two edge ticks along the facing.
func drawShieldArc(screen *ebiten.Image, tr *component.Transform, arcDegrees float64) {
	half := arcDegrees / 2 * (math.Pi / 180)
	base := tr.Facing
	if base.Length() == 0 {
		base = cp.Vector{X: 1}
	}
	for _, a := range []float64{-half, 0, half} {
		dir := base.Rotate(cp.ForAngle(a))
		from := tr.Pos.Add(dir.Mult(tr.Radius + 2))
		to := tr.Pos.Add(dir.Mult(tr.Radius + 10))
		vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 2, color.NRGBA{R: 0x70, G: 0xc8, B: 0xff, A: 0xe0}, false)
	}
}

func drawPlayer(screen *ebiten.Image, w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	clr := color.NRGBA{R: 0x58, G: 0xd8, B: 0xff, A: 0xff}
	if _, flashing := ecs.Get(w, player, component.HitFlashComponent.Kind()); flashing {
		clr = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	vector.FillCircle(screen, float32(tr.Pos.X), float32(tr.Pos.Y), float32(tr.Radius), clr, false)
	tip := tr.Pos.Add(tr.Facing.Mult(tr.Radius + 8))
	vector.StrokeLine(screen, float32(tr.Pos.X), float32(tr.Pos.Y), float32(tip.X), float32(tip.Y), 2, clr, false)
}
