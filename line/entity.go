// Package line implements the hologram line kinds. Each spawned line is an
// entity in the world's ECS, tagged with the id of the hologram owning it.
package line

import (
	"fmt"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/ecs/component"
	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/world"
)

const (
	TextHeight = 0.23
	ItemHeight = 0.6
)

// entity is the spawn state shared by every line kind.
type entity struct {
	world *world.World
	owner string
	e     ecs.Entity
}

// spawn replaces any current visual with a fresh entity at at. attach adds
// the kind specific components.
func (l *entity) spawn(at hologram.Location, attach func(w *ecs.World, e ecs.Entity) error) error {
	l.despawn()

	w := l.world.ECS()
	e := ecs.CreateEntity(w)
	err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		World: at.World,
		X:     at.X,
		Y:     at.Y,
		Z:     at.Z,
		Yaw:   at.Yaw,
	})
	if err == nil {
		err = ecs.Add(w, e, component.LineTagComponent.Kind(), &component.LineTag{Hologram: l.owner})
	}
	if err == nil {
		err = attach(w, e)
	}
	if err != nil {
		ecs.DestroyEntity(w, e)
		return fmt.Errorf("line: spawn for %s at %s: %w", l.owner, at, err)
	}
	l.e = e
	return nil
}

func (l *entity) despawn() {
	if l.e.Valid() {
		ecs.DestroyEntity(l.world.ECS(), l.e)
		l.e = 0
	}
}

// location reads the live transform of the spawned entity.
func (l *entity) location() (hologram.Location, bool) {
	t, ok := ecs.Get(l.world.ECS(), l.e, component.TransformComponent.Kind())
	if !ok {
		return hologram.Location{}, false
	}
	return hologram.Location{World: t.World, X: t.X, Y: t.Y, Z: t.Z, Yaw: t.Yaw}, true
}

// Entity returns the spawned entity, or the zero Entity when not spawned.
func (l *entity) Entity() ecs.Entity {
	if !ecs.IsAlive(l.world.ECS(), l.e) {
		return 0
	}
	return l.e
}
