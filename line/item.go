package line

import (
	"log/slog"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/ecs/component"
	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/world"
)

// DefaultSpin is how far an item turns per tick, in degrees.
const DefaultSpin = 4.0

// Item is a line showing a floating item stack.
type Item struct {
	entity
	material string
	amount   int
}

// NewItem returns an item line. Amounts below one are shown as one.
func NewItem(w *world.World, owner, material string, amount int) *Item {
	if amount < 1 {
		amount = 1
	}
	return &Item{
		entity:   entity{world: w, owner: owner},
		material: material,
		amount:   amount,
	}
}

func (l *Item) Material() string {
	return l.material
}

func (l *Item) Amount() int {
	return l.amount
}

func (l *Item) Height() float64 {
	return ItemHeight
}

func (l *Item) Spawn(at hologram.Location) {
	err := l.spawn(at, func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, component.ItemDisplayComponent.Kind(), &component.ItemDisplay{
			Material: l.material,
			Amount:   l.amount,
			Spin:     DefaultSpin,
		})
	})
	if err != nil {
		slog.Error("Failed to spawn item line", "error", err)
	}
}

func (l *Item) Despawn() {
	l.despawn()
}

func (l *Item) Location() (hologram.Location, bool) {
	return l.location()
}
