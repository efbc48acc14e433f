package hologram

import (
	"fmt"
	"math"
)

// ChunkSize is the edge length of a chunk in blocks.
const ChunkSize = 16

// Location is a point in a named world. It is a value type: every copy is
// independent, so handing one out never exposes internal state.
type Location struct {
	World string  `yaml:"world"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw,omitempty"`
	Pitch float64 `yaml:"pitch,omitempty"`
}

// NewLocation returns a location without rotation.
func NewLocation(world string, x, y, z float64) Location {
	return Location{World: world, X: x, Y: y, Z: z}
}

// Valid reports whether the location names a world.
func (l Location) Valid() bool {
	return l.World != ""
}

// Equal compares every field.
func (l Location) Equal(o Location) bool {
	return l == o
}

// WithY returns a copy of l at height y.
func (l Location) WithY(y float64) Location {
	l.Y = y
	return l
}

// Chunk returns the chunk coordinates containing l.
func (l Location) Chunk() (x, z int) {
	return int(math.Floor(l.X / ChunkSize)), int(math.Floor(l.Z / ChunkSize))
}

func (l Location) String() string {
	return fmt.Sprintf("%s(%.2f, %.2f, %.2f)", l.World, l.X, l.Y, l.Z)
}
