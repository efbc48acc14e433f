package component

// ItemDisplay is a floating item stack. Spin is in degrees per update.
type ItemDisplay struct {
	Material string
	Amount   int
	Spin     float64
}

var ItemDisplayComponent = NewComponent[ItemDisplay]()
