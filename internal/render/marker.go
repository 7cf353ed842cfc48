package render

import (
	"image/color"

	"fieldplot/internal/model"
)

// Marker is the filled circle drawn at a charge position.
type Marker struct {
	Center     model.Point
	Radius     float64
	Fill       color.RGBA
	Label      string
	LabelColor color.RGBA
}

// MarkerFor styles a charge: red "+" for positive, blue "-" for negative.
func MarkerFor(c model.Charge, radius float64) Marker {
	fill := Blue
	if c.Positive() {
		fill = Red
	}
	return Marker{
		Center:     c.Position,
		Radius:     radius,
		Fill:       fill,
		Label:      c.Sign.Label(),
		LabelColor: White,
	}
}
