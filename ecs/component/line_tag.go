package component

// LineTag marks an entity as a spawned hologram line.
type LineTag struct {
	Hologram string
}

var LineTagComponent = NewComponent[LineTag]()
