package hologram

// Line is one stackable visual unit of a hologram.
//
// Implementations must be pointer types: a hologram finds its lines by
// identity. Spawning an already spawned line replaces its old visual.
type Line interface {
	// Height is the vertical space the line takes up.
	Height() float64
	Spawn(at Location)
	Despawn()
	// Location reports where the line is currently spawned.
	Location() (Location, bool)
}

// RegionChecker decides whether lines at a location may be spawned.
type RegionChecker interface {
	IsLoaded(at Location) bool
}

// RegionFunc adapts a function to RegionChecker.
type RegionFunc func(at Location) bool

func (f RegionFunc) IsLoaded(at Location) bool {
	return f(at)
}

var alwaysLoaded = RegionFunc(func(Location) bool { return true })
