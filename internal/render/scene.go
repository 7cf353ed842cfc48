package render

import (
	"fieldplot/internal/field"
	"fieldplot/internal/model"
)

// Scene is everything that gets drawn, in data coordinates.
type Scene struct {
	View        Bounds
	Streamlines []Streamline
	Markers     []Marker
	Title       string
}

// BuildScene traces streamlines for f and adds one marker per charge, in input order.
// An unknown seeding name falls back to grid seeding; Options.Validate reports it.
func BuildScene(f *field.Field, charges []model.Charge, opts Options) Scene {
	seeder, err := NewSeeder(opts.Seeding, opts.LinesPerCharge)
	if err != nil {
		seeder = GridSeeder{}
	}
	markers := make([]Marker, 0, len(charges))
	for _, c := range charges {
		markers = append(markers, MarkerFor(c, opts.MarkerRadius))
	}
	return Scene{
		View:        opts.View,
		Streamlines: TraceWith(f, opts.Density, seeder, charges),
		Markers:     markers,
		Title:       opts.Title,
	}
}
