package plot

import (
	"image"

	"fieldplot/internal/field"
	"fieldplot/internal/render"
)

// Result carries every stage's output so callers can display, export or inspect it.
type Result struct {
	Field *field.Field
	Scene render.Scene
	Image *image.RGBA
}

// Sample is one grid point of the evaluated field.
type Sample struct {
	Index     int
	X         float64
	Y         float64
	Ex        float64
	Ey        float64
	Magnitude float64
}

// Samples flattens a field into per-point rows, in grid order.
func Samples(f *field.Field) []Sample {
	if f == nil {
		return nil
	}
	mag := f.Magnitude()
	out := make([]Sample, len(f.Ex))
	for i := range f.Ex {
		out[i] = Sample{
			Index:     i,
			X:         f.Grid.X[i],
			Y:         f.Grid.Y[i],
			Ex:        f.Ex[i],
			Ey:        f.Ey[i],
			Magnitude: mag[i],
		}
	}
	return out
}
