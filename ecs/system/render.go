package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/ecs/component"
)

// PixelsPerBlock is the screen scale at zoom 1.
const PixelsPerBlock = 48.0

// RenderSystem draws spawned hologram lines of one world as seen from the
// side: X to the right, Y up, centered on the camera.
type RenderSystem struct {
	World string
	CamX  float64
	CamY  float64
	Zoom  float64

	face text.Face
}

func NewRenderSystem(world string) *RenderSystem {
	return &RenderSystem{
		World: world,
		Zoom:  1,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

type drawable struct {
	e     ecs.Entity
	t     *component.Transform
	label string
	color color.Color
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var items []drawable
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.NameplateComponent.Kind(), func(e ecs.Entity, t *component.Transform, n *component.Nameplate) {
		if t.World == r.World {
			items = append(items, drawable{e: e, t: t, label: n.Text, color: n.Color})
		}
	})
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ItemDisplayComponent.Kind(), func(e ecs.Entity, t *component.Transform, item *component.ItemDisplay) {
		if t.World == r.World {
			label := fmt.Sprintf("[%s x%d]", item.Material, item.Amount)
			items = append(items, drawable{e: e, t: t, label: label, color: colornames.Lightgrey})
		}
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].t.Y != items[j].t.Y {
			return items[i].t.Y > items[j].t.Y
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	zoom := r.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	bounds := screen.Bounds()
	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2

	for _, it := range items {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(cx+(it.t.X-r.CamX)*PixelsPerBlock*zoom, cy-(it.t.Y-r.CamY)*PixelsPerBlock*zoom)
		op.ColorScale.ScaleWithColor(it.color)
		text.Draw(screen, it.label, r.face, op)
	}
}
