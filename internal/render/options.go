package render

import (
	"errors"
	"image/color"
	"math"
)

var (
	Red   = color.RGBA{R: 0xff, A: 0xff}
	Blue  = color.RGBA{B: 0xff, A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black = color.RGBA{A: 0xff}
	Gray  = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
)

// Bounds is the visible data range.
type Bounds struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

func (b Bounds) Width() float64  { return b.XMax - b.XMin }
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Options controls how a scene is traced and drawn.
// Sizes are in pixels unless noted.
type Options struct {
	Width  int
	Height int
	View   Bounds

	// Density scales the streamline seeding mask (30*Density cells per side).
	Density float64
	// Seeding names the Seeder: "grid" or "charges".
	Seeding string
	// LinesPerCharge is lines per unit of charge for "charges" seeding.
	LinesPerCharge float64
	LineWidth      float64
	LineColor      color.RGBA
	Arrows         bool

	// MarkerRadius is in data units.
	MarkerRadius float64

	GridLines bool
	Title     string
}

func DefaultOptions() Options {
	return Options{
		Width:          800,
		Height:         800,
		View:           Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10},
		Density:        1.5,
		Seeding:        SeedingGrid,
		LinesPerCharge: 2,
		LineWidth:      1.2,
		LineColor:      Blue,
		Arrows:         true,
		MarkerRadius:   0.5,
		GridLines:      true,
	}
}

func (o Options) Validate() error {
	if o.Width < minCanvas || o.Height < minCanvas {
		return errors.New("width and height must be at least 100 pixels")
	}
	if !(o.View.Width() > 0) || !(o.View.Height() > 0) {
		return errors.New("view bounds must have positive extent")
	}
	if !(o.Density > 0) || math.IsInf(o.Density, 0) {
		return errors.New("density must be > 0")
	}
	if _, err := NewSeeder(o.Seeding, o.LinesPerCharge); err != nil {
		return err
	}
	if !(o.LineWidth > 0) {
		return errors.New("line width must be > 0")
	}
	if !(o.MarkerRadius > 0) {
		return errors.New("marker radius must be > 0")
	}
	return nil
}
