package models

import (
	"encoding/json"

	"fieldplot/internal/config"
)

// PlotRequest is the body for POST /api/v1/field and POST /api/v1/render.
// Charges is kept raw so it goes through the same loader as files do.
type PlotRequest struct {
	Charges json.RawMessage `json:"charges" binding:"required"`
	Title   string          `json:"title,omitempty"`
	Grid    GridOptions     `json:"grid,omitempty"`
	Physics PhysicsOptions  `json:"physics,omitempty"`
	Render  RenderOptions   `json:"render,omitempty"`
}

// GridOptions overrides the sampling grid; zero values keep the defaults.
type GridOptions struct {
	XMin     float64 `json:"x_min"`
	XMax     float64 `json:"x_max"`
	YMin     float64 `json:"y_min"`
	YMax     float64 `json:"y_max"`
	SamplesX int     `json:"samples_x"`
	SamplesY int     `json:"samples_y"`
}

type PhysicsOptions struct {
	CoulombConstant float64 `json:"coulomb_constant,omitempty"`
	Epsilon         float64 `json:"epsilon,omitempty"`
}

type RenderOptions struct {
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	Density        float64 `json:"density,omitempty"`
	LineWidth      float64 `json:"line_width,omitempty"`
	MarkerRadius   float64 `json:"marker_radius,omitempty"`
	Seeding        string  `json:"seeding,omitempty"`
	LinesPerCharge float64 `json:"lines_per_charge,omitempty"`
	GridLines      *bool   `json:"grid_lines,omitempty"`
	Arrows         *bool   `json:"arrows,omitempty"`
}

// ToConfig converts the request overrides into the on-disk config shape.
func (r PlotRequest) ToConfig() config.Config {
	return config.Config{
		Title: r.Title,
		Grid: config.GridConfig{
			XMin:     r.Grid.XMin,
			XMax:     r.Grid.XMax,
			YMin:     r.Grid.YMin,
			YMax:     r.Grid.YMax,
			SamplesX: r.Grid.SamplesX,
			SamplesY: r.Grid.SamplesY,
		},
		Physics: config.PhysicsConfig{
			CoulombConstant: r.Physics.CoulombConstant,
			Epsilon:         r.Physics.Epsilon,
		},
		Render: config.RenderConfig{
			Width:          r.Render.Width,
			Height:         r.Render.Height,
			Density:        r.Render.Density,
			LineWidth:      r.Render.LineWidth,
			MarkerRadius:   r.Render.MarkerRadius,
			Seeding:        r.Render.Seeding,
			LinesPerCharge: r.Render.LinesPerCharge,
			GridLines:      r.Render.GridLines,
			Arrows:         r.Render.Arrows,
		},
	}
}
