package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/mossfell/bossrush/common"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
)

const noticeDuration = 2.5

// HUD renders the text layer with ebitenui and the health bars directly.
type HUD struct {
	ui *ebitenui.UI

	bossLabel   *widget.Text
	noticeLabel *widget.Text
	bannerLabel *widget.Text

	noticeTimer float64

	bossRatio   float64
	bossName    string
	playerRatio float64
}

func NewHUD() *HUD {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	bossLabel := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	noticeLabel := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xd8, B: 0x70, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	bannerLabel := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 0})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 28}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(bossLabel)
	panel.AddChild(noticeLabel)
	panel.AddChild(bannerLabel)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &HUD{
		ui:          &ebitenui.UI{Container: root},
		bossLabel:   bossLabel,
		noticeLabel: noticeLabel,
		bannerLabel: bannerLabel,
	}
}

func (h *HUD) Notify(title, text string) {
	h.noticeLabel.Label = fmt.Sprintf("%s: %s", title, text)
	h.noticeTimer = noticeDuration
}

func (h *HUD) Update(w *ecs.World, boss, player ecs.Entity, dt float64) {
	h.noticeTimer -= dt
	if h.noticeTimer <= 0 {
		h.noticeLabel.Label = ""
	}

	h.bossRatio = 0
	h.bossName = ""
	if b, ok := ecs.Get(w, boss, component.BossComponent.Kind()); ok {
		if hp, ok := ecs.Get(w, boss, component.HealthComponent.Kind()); ok && !hp.Defeated {
			h.bossRatio = hp.Ratio()
			h.bossName = b.Name
			if rt, ok := ecs.Get(w, boss, component.BossRuntimeComponent.Kind()); ok && rt.PhaseIndex < len(b.Phases) {
				h.bossName = fmt.Sprintf("%s :: %s", b.Name, b.Phases[rt.PhaseIndex].Name)
			}
		}
	}
	h.bossLabel.Label = h.bossName

	h.playerRatio = 0
	if hp, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
		h.playerRatio = hp.Ratio()
	}

	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image, paused, over bool, overText string) {
	switch {
	case over:
		h.bannerLabel.Label = overText
	case paused:
		h.bannerLabel.Label = "Paused"
	default:
		h.bannerLabel.Label = ""
	}

	if h.bossName != "" {
		drawBar(screen, common.BaseWidth/2-220, 12, 440, 10, h.bossRatio, color.NRGBA{R: 0xc0, G: 0x28, B: 0x28, A: 0xff})
	}
	drawBar(screen, 20, common.BaseHeight-26, 200, 8, h.playerRatio, color.NRGBA{R: 0x38, G: 0xb8, B: 0xe0, A: 0xff})

	h.ui.Draw(screen)
}

func drawBar(screen *ebiten.Image, x, y, w, hgt, ratio float64, fill color.NRGBA) {
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(hgt), color.NRGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xd0}, false)
	vector.FillRect(screen, float32(x), float32(y), float32(w*ratio), float32(hgt), fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(hgt), 1, color.NRGBA{R: 0x50, G: 0x50, B: 0x5c, A: 0xff}, false)
}
