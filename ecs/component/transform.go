package component

// Transform places an entity in a named world.
type Transform struct {
	World string
	X     float64
	Y     float64
	Z     float64
	Yaw   float64
}

var TransformComponent = NewComponent[Transform]()
