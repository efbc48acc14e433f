package system

import (
	"math"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/ecs/component"
)

// ItemSpinSystem turns floating items around their vertical axis.
type ItemSpinSystem struct{}

func NewItemSpinSystem() *ItemSpinSystem {
	return &ItemSpinSystem{}
}

func (s *ItemSpinSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ItemDisplayComponent.Kind(), func(_ ecs.Entity, t *component.Transform, item *component.ItemDisplay) {
		if item.Spin == 0 {
			return
		}
		t.Yaw = math.Mod(t.Yaw+item.Spin, 360)
		if t.Yaw < 0 {
			t.Yaw += 360
		}
	})
}
