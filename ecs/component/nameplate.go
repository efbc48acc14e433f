package component

import "image/color"

// Nameplate is a floating piece of text.
type Nameplate struct {
	Text  string
	Color color.RGBA
}

var NameplateComponent = NewComponent[Nameplate]()
